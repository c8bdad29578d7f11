package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository/memory"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"

	"github.com/stretchr/testify/require"
)

// fixedNow is a Monday in March, outside the high season months
var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

var (
	admin  = Actor{UserID: 1, Role: constants.RoleAdmin}
	client = Actor{UserID: 2, Role: constants.RoleClient}
	other  = Actor{UserID: 3, Role: constants.RoleClient}
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (n *recordingNotifier) Dispatch(_ context.Context, msgs ...notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msgs...)
}

func (n *recordingNotifier) events() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.Event, 0, len(n.msgs))
	for _, m := range n.msgs {
		out = append(out, m.Event)
	}
	return out
}

type testEnv struct {
	ctx          context.Context
	store        *memory.Store
	config       *HotelConfigService
	reservations *ReservationService
	payments     *PaymentService
	facade       *BookingFacade
	notifier     *recordingNotifier
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWithStore(t, memory.New(), nil)
}

// newEnvWithStore builds the services on top of store; wrapped, when set, is the
// store the services see (used to inject failures)
func newEnvWithStore(t *testing.T, store *memory.Store, wrapped repository.Store) *testEnv {
	t.Helper()
	return buildEnv(t, store, wrapped, nil)
}

func newEnvWithCache(t *testing.T, cache *Cache) *testEnv {
	t.Helper()
	return buildEnv(t, memory.New(), nil, cache)
}

func buildEnv(t *testing.T, store *memory.Store, wrapped repository.Store, cache *Cache) *testEnv {
	t.Helper()
	var s repository.Store = store
	if wrapped != nil {
		s = wrapped
	}
	log := logger.Discard()
	clock := func() time.Time { return fixedNow }
	cfg := NewHotelConfigService(HotelConfigServiceOptions{Store: s, Logger: log})
	reservations := NewReservationService(ReservationServiceOptions{Store: s, Config: cfg, Cache: cache, Logger: log, Clock: clock})
	payments := NewPaymentService(PaymentServiceOptions{Store: s, Cache: cache, Logger: log, Clock: clock})
	notifier := &recordingNotifier{}
	facade := NewBookingFacade(BookingFacadeOptions{
		Reservations: reservations,
		Payments:     payments,
		Notifier:     notifier,
		Users:        s.Users(),
		Logger:       log,
	})

	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &models.User{Name: "Admin", Email: "admin@hotel.test", Role: constants.RoleAdmin}))
	require.NoError(t, store.Users().Create(ctx, &models.User{Name: "Ana", Email: "ana@hotel.test", Role: constants.RoleClient}))
	require.NoError(t, store.Users().Create(ctx, &models.User{Name: "Luis", Email: "luis@hotel.test", Role: constants.RoleClient}))

	return &testEnv{
		ctx:          ctx,
		store:        store,
		config:       cfg,
		reservations: reservations,
		payments:     payments,
		facade:       facade,
		notifier:     notifier,
	}
}

func (e *testEnv) room(t *testing.T, number string, price float64, capacity int) *models.Room {
	t.Helper()
	r := &models.Room{Number: number, Floor: 1, Capacity: capacity, BasePrice: price, Status: models.RoomStatusAvailable}
	require.NoError(t, e.store.Rooms().Create(e.ctx, r))
	return r
}

func (e *testEnv) service(t *testing.T, name string, price float64) *models.Service {
	t.Helper()
	s := &models.Service{Name: name, Price: price, Available: true}
	require.NoError(t, e.store.Services().Create(e.ctx, s))
	return s
}

func (e *testEnv) book(t *testing.T, actor Actor, roomID uint, start, end string) *models.Reservation {
	t.Helper()
	res, err := e.facade.CreateBooking(e.ctx, actor, CreateReservationInput{
		RoomID:    roomID,
		StartDate: day(start),
		EndDate:   day(end),
		Guests:    1,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) roomStatus(t *testing.T, id uint) models.RoomStatus {
	t.Helper()
	r, err := e.store.Rooms().GetByID(e.ctx, id)
	require.NoError(t, err)
	return r.Status
}
