package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository/memory"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func TestCreateReservationPricesStay(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	breakfast := env.service(t, "Breakfast", 20)

	res, err := env.facade.CreateBooking(env.ctx, client, CreateReservationInput{
		RoomID:    r.ID,
		StartDate: day("2026-04-10"),
		EndDate:   day("2026-04-13"),
		Guests:    2,
		Services:  []ServiceRequest{{ServiceID: breakfast.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationStatusPending, res.Status)
	assert.Equal(t, client.UserID, res.ClientID)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, models.StrategyNormal, res.Strategy)
	assert.InDelta(t, 20.0, res.ServicesTotal, 0.001)
	assert.InDelta(t, 371.2, res.TotalPrice, 0.001)
	assert.Equal(t, models.RoomStatusAvailable, env.roomStatus(t, r.ID), "pending reservations do not reserve the room")

	assert.Equal(t, []notification.Event{notification.EventReservationCreated, notification.EventReservationCreated}, env.notifier.events())
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"inside", "2026-04-11", "2026-04-12", true},
		{"overlapping tail", "2026-04-12", "2026-04-15", true},
		{"same start", "2026-04-10", "2026-04-11", true},
		{"same end", "2026-04-08", "2026-04-13", true},
		{"covering", "2026-04-09", "2026-04-14", true},
		{"back to back after", "2026-04-13", "2026-04-15", false},
		{"back to back before", "2026-04-08", "2026-04-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// every case starts from the single April 10-13 booking
			env := newEnv(t)
			r := env.room(t, "101", 100, 2)
			env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

			_, err := env.facade.CreateBooking(env.ctx, other, CreateReservationInput{
				RoomID: r.ID, StartDate: day(tt.start), EndDate: day(tt.end), Guests: 1,
			})
			if tt.wantErr {
				requireCode(t, err, apperrors.ErrCodeRoomNotAvailable)
				return
			}
			require.NoError(t, err)
		})
	}

	_, err := env.facade.CreateBooking(env.ctx, other, CreateReservationInput{
		RoomID: r.ID, StartDate: day("2026-04-11"), EndDate: day("2026-04-12"), Guests: 1,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrRoomNotAvailable))
}

func TestConcurrentCreatesBookRoomOnce(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	const attempts = 20
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := client
			if i%2 == 1 {
				actor = other
			}
			_, errs[i] = env.reservations.Create(env.ctx, actor, CreateReservationInput{
				RoomID:    r.ID,
				StartDate: day("2026-04-10"),
				EndDate:   day("2026-04-13"),
				Guests:    1,
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		requireCode(t, err, apperrors.ErrCodeRoomNotAvailable)
	}
	assert.Equal(t, 1, created)

	listed, total, err := env.reservations.List(env.ctx, admin, repository.ReservationFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, listed, 1)
}

func TestCancelledReservationFreesDates(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	_, err := env.facade.ChangeStatus(env.ctx, client, res.ID, models.ActionCancel, "plans changed")
	require.NoError(t, err)

	again := env.book(t, other, r.ID, "2026-04-10", "2026-04-13")
	assert.NotEqual(t, res.ID, again.ID)
}

func TestCreateReservationValidation(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	closed := env.room(t, "102", 100, 2)
	require.NoError(t, env.store.Rooms().UpdateStatus(env.ctx, closed.ID, models.RoomStatusMaintenance))

	tests := []struct {
		name   string
		roomID uint
		start  string
		end    string
		guests int
		code   apperrors.ErrorCode
	}{
		{"end before start", r.ID, "2026-04-13", "2026-04-10", 1, apperrors.ErrCodeInvalidDateRange},
		{"empty range", r.ID, "2026-04-10", "2026-04-10", 1, apperrors.ErrCodeInvalidDateRange},
		{"start in the past", r.ID, "2026-02-20", "2026-02-22", 1, apperrors.ErrCodeInvalidDateRange},
		{"too many guests", r.ID, "2026-04-10", "2026-04-12", 3, apperrors.ErrCodeCapacityExceeded},
		{"no guests", r.ID, "2026-04-10", "2026-04-12", 0, apperrors.ErrCodeValidation},
		{"maintenance", closed.ID, "2026-04-10", "2026-04-12", 1, apperrors.ErrCodeRoomNotAvailable},
		{"unknown room", 99, "2026-04-10", "2026-04-12", 1, apperrors.ErrCodeDBNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.reservations.Create(env.ctx, client, CreateReservationInput{
				RoomID: tt.roomID, StartDate: day(tt.start), EndDate: day(tt.end), Guests: tt.guests,
			})
			requireCode(t, err, tt.code)
		})
	}
}

func TestCreateReservationUnknownService(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	_, err := env.reservations.Create(env.ctx, client, CreateReservationInput{
		RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-12"), Guests: 1,
		Services: []ServiceRequest{{ServiceID: 42, Quantity: 1}},
	})
	requireCode(t, err, apperrors.ErrCodeDBNotFound)
}

func TestServicePricesAreSnapshotted(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	spa := env.service(t, "Spa", 50)

	res, err := env.reservations.Create(env.ctx, client, CreateReservationInput{
		RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-12"), Guests: 1,
		Services: []ServiceRequest{{ServiceID: spa.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	spa.Price = 80
	require.NoError(t, env.store.Services().Update(env.ctx, spa))

	got, err := env.reservations.Get(env.ctx, client, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.InDelta(t, 50.0, got.Services[0].UnitPrice, 0.001)
	assert.InDelta(t, 100.0, got.Services[0].Subtotal, 0.001)
	assert.InDelta(t, res.TotalPrice, got.TotalPrice, 0.001)
}

func TestConfirmAndCompleteUpdateRoomStatus(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	confirmed, err := env.facade.ChangeStatus(env.ctx, admin, res.ID, models.ActionConfirm, "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, confirmed.Status)
	assert.Equal(t, models.RoomStatusReserved, env.roomStatus(t, r.ID))

	completed, err := env.facade.ChangeStatus(env.ctx, admin, res.ID, models.ActionComplete, "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCompleted, completed.Status)
	assert.Equal(t, models.RoomStatusAvailable, env.roomStatus(t, r.ID))
}

func TestCancelConfirmedReleasesRoom(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")
	_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
	require.NoError(t, err)

	cancelled, err := env.reservations.Cancel(env.ctx, client, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, cancelled.Status)
	assert.Equal(t, models.RoomStatusAvailable, env.roomStatus(t, r.ID))
}

func TestConfirmTwiceFails(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
	require.NoError(t, err)

	_, err = env.reservations.Confirm(env.ctx, admin, res.ID)
	requireCode(t, err, apperrors.ErrCodeInvalidTransition)
	assert.Contains(t, err.Error(), "only pending reservations can be confirmed")
}

func TestClientCannotConfirmOrComplete(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	_, err := env.reservations.Confirm(env.ctx, client, res.ID)
	requireCode(t, err, apperrors.ErrCodeForbidden)
	_, err = env.reservations.Complete(env.ctx, client, res.ID)
	requireCode(t, err, apperrors.ErrCodeForbidden)
}

func TestClientCannotSeeOtherReservations(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	_, err := env.reservations.Get(env.ctx, other, res.ID)
	requireCode(t, err, apperrors.ErrCodeDBNotFound)
	_, err = env.reservations.Cancel(env.ctx, other, res.ID)
	requireCode(t, err, apperrors.ErrCodeDBNotFound)

	list, total, err := env.reservations.List(env.ctx, other, repository.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	list, total, err = env.reservations.List(env.ctx, admin, repository.ReservationFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.EqualValues(t, 1, total)
}

func TestClientCancellationWindow(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	// check-in tomorrow at 15:00, the 24h window closes today at 15:00
	tomorrow := env.book(t, client, r.ID, "2026-03-03", "2026-03-04")
	_, err := env.reservations.Cancel(env.ctx, client, tomorrow.ID)
	require.NoError(t, err)

	today := env.book(t, client, r.ID, "2026-03-02", "2026-03-03")
	_, err = env.reservations.Cancel(env.ctx, client, today.ID)
	requireCode(t, err, apperrors.ErrCodeCancelWindow)

	res, err := env.reservations.Cancel(env.ctx, admin, today.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, res.Status)
}

type failingRooms struct {
	repository.RoomRepository
}

func (failingRooms) UpdateStatus(context.Context, uint, models.RoomStatus) error {
	return errors.New("room table unavailable")
}

// failingStore fails every room status write
type failingStore struct {
	repository.Store
}

func (s failingStore) Rooms() repository.RoomRepository {
	return failingRooms{s.Store.Rooms()}
}

func (s failingStore) Transaction(ctx context.Context, fn func(repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(failingStore{tx})
	})
}

func TestTransitionRollsBackWhenRoomUpdateFails(t *testing.T) {
	store := memory.New()
	env := newEnvWithStore(t, store, failingStore{store})
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")

	_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
	requireCode(t, err, apperrors.ErrCodeDBError)

	got, err := store.Reservations().GetByID(env.ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, got.Status)
	assert.Equal(t, models.RoomStatusAvailable, env.roomStatus(t, r.ID))
}

func TestModifyRecordsPriceDifference(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")
	require.InDelta(t, 348.0, res.TotalPrice, 0.001)

	end := day("2026-04-14")
	updated, err := env.facade.ModifyBooking(env.ctx, client, res.ID, ModifyReservationInput{EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Nights)
	assert.InDelta(t, 464.0, updated.TotalPrice, 0.001)
	assert.InDelta(t, 348.0, updated.PreviousTotal, 0.001)
	assert.InDelta(t, 116.0, updated.PriceDifference, 0.001)
	assert.Contains(t, env.notifier.events(), notification.EventReservationModified)
}

func TestModifyRejectsConflictingDates(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	first := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")
	env.book(t, other, r.ID, "2026-04-15", "2026-04-18")

	end := day("2026-04-16")
	_, err := env.reservations.Modify(env.ctx, client, first.ID, ModifyReservationInput{EndDate: &end})
	requireCode(t, err, apperrors.ErrCodeRoomNotAvailable)

	// shrinking its own range does not collide with itself
	shorter := day("2026-04-12")
	_, err = env.reservations.Modify(env.ctx, client, first.ID, ModifyReservationInput{EndDate: &shorter})
	require.NoError(t, err)
}

func TestModifyMovesConfirmedReservationToNewRoom(t *testing.T) {
	env := newEnv(t)
	standard := env.room(t, "101", 100, 2)
	suite := env.room(t, "201", 200, 4)
	res := env.book(t, client, standard.ID, "2026-04-10", "2026-04-12")
	_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
	require.NoError(t, err)

	updated, err := env.reservations.Modify(env.ctx, admin, res.ID, ModifyReservationInput{RoomID: &suite.ID})
	require.NoError(t, err)

	assert.Equal(t, suite.ID, updated.RoomID)
	assert.InDelta(t, 464.0, updated.TotalPrice, 0.001)
	assert.InDelta(t, 232.0, updated.PriceDifference, 0.001)
	assert.Equal(t, models.RoomStatusAvailable, env.roomStatus(t, standard.ID))
	assert.Equal(t, models.RoomStatusReserved, env.roomStatus(t, suite.ID))
}

func TestModifyTerminalReservationFails(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-04-10", "2026-04-13")
	_, err := env.reservations.Cancel(env.ctx, client, res.ID)
	require.NoError(t, err)

	guests := 2
	_, err = env.reservations.Modify(env.ctx, client, res.ID, ModifyReservationInput{Guests: &guests})
	requireCode(t, err, apperrors.ErrCodeInvalidTransition)
}

func TestLoyaltyAfterThreeCompletedStays(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	for _, stay := range [][2]string{
		{"2026-04-01", "2026-04-02"},
		{"2026-04-05", "2026-04-06"},
		{"2026-04-09", "2026-04-10"},
	} {
		res := env.book(t, client, r.ID, stay[0], stay[1])
		_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
		require.NoError(t, err)
		_, err = env.reservations.Complete(env.ctx, admin, res.ID)
		require.NoError(t, err)
	}

	res := env.book(t, client, r.ID, "2026-04-20", "2026-04-21")
	assert.Equal(t, models.StrategyLoyalty, res.Strategy)
	assert.InDelta(t, 104.4, res.TotalPrice, 0.001)

	newcomer := env.book(t, other, r.ID, "2026-04-22", "2026-04-23")
	assert.Equal(t, models.StrategyNormal, newcomer.Strategy)
}

func TestOnlyAdminsForceStrategy(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	forced, err := env.reservations.Create(env.ctx, admin, CreateReservationInput{
		ClientID: client.UserID, RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-11"),
		Guests: 1, Strategy: models.StrategySeason,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StrategySeason, forced.Strategy)
	assert.Equal(t, client.UserID, forced.ClientID)

	ignored, err := env.reservations.Create(env.ctx, client, CreateReservationInput{
		ClientID: other.UserID, RoomID: r.ID, StartDate: day("2026-04-12"), EndDate: day("2026-04-13"),
		Guests: 1, Strategy: models.StrategySeason,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StrategyNormal, ignored.Strategy)
	assert.Equal(t, client.UserID, ignored.ClientID)
}

func TestQuoteDoesNotPersist(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)

	q, err := env.reservations.Quote(env.ctx, client, CreateReservationInput{
		RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-13"), Guests: 1,
	})
	require.NoError(t, err)
	assert.True(t, q.Available)
	assert.InDelta(t, 348.0, q.Total, 0.001)

	_, total, err := env.reservations.List(env.ctx, admin, repository.ReservationFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	env.book(t, other, r.ID, "2026-04-10", "2026-04-13")
	q, err = env.reservations.Quote(env.ctx, client, CreateReservationInput{
		RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-13"), Guests: 1,
	})
	require.NoError(t, err)
	assert.False(t, q.Available)
}

func TestQuoteStrategy(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	quote := func(actor Actor, strategy models.PricingStrategy) (*Quote, error) {
		return env.reservations.Quote(env.ctx, actor, CreateReservationInput{
			RoomID: r.ID, StartDate: day("2026-04-10"), EndDate: day("2026-04-13"), Guests: 1, Strategy: strategy,
		})
	}

	_, err := quote(admin, "black_friday")
	requireCode(t, err, apperrors.ErrCodeValidation)

	q, err := quote(admin, models.StrategySeason)
	require.NoError(t, err)
	assert.Equal(t, models.StrategySeason, q.Strategy)
	assert.InDelta(t, 417.6, q.Total, 0.001)

	q, err = quote(client, "black_friday")
	require.NoError(t, err)
	assert.Equal(t, models.StrategyNormal, q.Strategy)
	assert.InDelta(t, 348.0, q.Total, 0.001)
}

func TestCheckInReminders(t *testing.T) {
	env := newEnv(t)
	r := env.room(t, "101", 100, 2)
	res := env.book(t, client, r.ID, "2026-03-03", "2026-03-05")
	env.book(t, other, r.ID, "2026-03-05", "2026-03-06")
	_, err := env.reservations.Confirm(env.ctx, admin, res.ID)
	require.NoError(t, err)

	sent, err := env.facade.SendCheckInReminders(env.ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Contains(t, env.notifier.events(), notification.EventCheckInReminder)
}
