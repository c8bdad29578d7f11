package services

import (
	"testing"
	"time"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboards(t *testing.T) {
	env := newEnv(t)
	dashboards := NewDashboardService(DashboardServiceOptions{
		Store:  env.store,
		Logger: logger.Discard(),
		Clock:  func() time.Time { return fixedNow },
	})

	env.paidReservation(t, "2026-04-10", "2026-04-13")
	soon := env.room(t, "201", 100, 2)
	upcoming := env.book(t, client, soon.ID, "2026-03-05", "2026-03-06")
	_, err := env.reservations.Confirm(env.ctx, admin, upcoming.ID)
	require.NoError(t, err)
	env.book(t, other, soon.ID, "2026-03-20", "2026-03-21")

	_, err = dashboards.Admin(env.ctx, client)
	requireCode(t, err, apperrors.ErrCodeForbidden)

	board, err := dashboards.Admin(env.ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, board.RoomsByStatus[models.RoomStatusAvailable])
	assert.EqualValues(t, 1, board.RoomsByStatus[models.RoomStatusReserved])
	assert.EqualValues(t, 0, board.RoomsByStatus[models.RoomStatusMaintenance])
	assert.EqualValues(t, 1, board.ReservationsByStatus[models.ReservationStatusCompleted])
	assert.EqualValues(t, 1, board.ReservationsByStatus[models.ReservationStatusConfirmed])
	assert.EqualValues(t, 1, board.ReservationsByStatus[models.ReservationStatusPending])
	assert.InDelta(t, 348.0, board.Revenue, 0.001)
	require.Len(t, board.UpcomingCheckIns, 1)
	assert.Equal(t, upcoming.ID, board.UpcomingCheckIns[0].ID)

	mine, err := dashboards.Client(env.ctx, client)
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.Completed)
	assert.EqualValues(t, 2, mine.UntilLoyalty)
	assert.False(t, mine.LoyaltyActive)
	assert.InDelta(t, 348.0, mine.TotalSpent, 0.001)

	theirs, err := dashboards.Client(env.ctx, other)
	require.NoError(t, err)
	assert.Zero(t, theirs.TotalSpent)
	assert.EqualValues(t, 1, theirs.ReservationsByStatus[models.ReservationStatusPending])
}
