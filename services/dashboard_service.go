package services

import (
	"context"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"
)

// UpcomingDays is how far ahead the admin dashboard lists check-ins
const UpcomingDays = 7

type AdminDashboard struct {
	RoomsByStatus        map[models.RoomStatus]int64        `json:"roomsByStatus"`
	ReservationsByStatus map[models.ReservationStatus]int64 `json:"reservationsByStatus"`
	Revenue              float64                            `json:"revenue"`
	UpcomingCheckIns     []models.Reservation               `json:"upcomingCheckIns"`
}

type ClientDashboard struct {
	ReservationsByStatus map[models.ReservationStatus]int64 `json:"reservationsByStatus"`
	TotalSpent           float64                            `json:"totalSpent"`
	Completed            int64                              `json:"completed"`
	UntilLoyalty         int64                              `json:"untilLoyalty"`
	LoyaltyActive        bool                               `json:"loyaltyActive"`
}

type DashboardService struct {
	store  repository.Store
	logger logger.Logger
	now    Clock
}

type DashboardServiceOptions struct {
	Store  repository.Store
	Logger logger.Logger
	Clock  Clock
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	return &DashboardService{store: opts.Store, logger: opts.Logger, now: clockOrNow(opts.Clock)}
}

func (s *DashboardService) Admin(ctx context.Context, actor Actor) (*AdminDashboard, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("admin dashboard requires an administrator")
	}

	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	byRoom := map[models.RoomStatus]int64{
		models.RoomStatusAvailable:   0,
		models.RoomStatusReserved:    0,
		models.RoomStatusOccupied:    0,
		models.RoomStatusMaintenance: 0,
	}
	for _, r := range rooms {
		byRoom[r.Status]++
	}

	byStatus, err := s.store.Reservations().CountByStatus(ctx, nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	revenue, err := s.store.Payments().SumNet(ctx, nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrPaymentNotFound)
	}

	today := utils.StartOfDay(s.now())
	upcoming, err := s.store.Reservations().StartingBetween(ctx, today, today.AddDate(0, 0, UpcomingDays), models.ReservationStatusConfirmed)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	if upcoming == nil {
		upcoming = []models.Reservation{}
	}

	return &AdminDashboard{
		RoomsByStatus:        byRoom,
		ReservationsByStatus: byStatus,
		Revenue:              round2(revenue),
		UpcomingCheckIns:     upcoming,
	}, nil
}

func (s *DashboardService) Client(ctx context.Context, actor Actor) (*ClientDashboard, error) {
	id := actor.UserID
	byStatus, err := s.store.Reservations().CountByStatus(ctx, &id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	spent, err := s.store.Payments().SumNet(ctx, &id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrPaymentNotFound)
	}
	completed, err := s.store.Reservations().CountCompletedByClient(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}

	until := int64(LoyaltyThreshold) - completed
	if until < 0 {
		until = 0
	}
	return &ClientDashboard{
		ReservationsByStatus: byStatus,
		TotalSpent:           round2(spent),
		Completed:            completed,
		UntilLoyalty:         until,
		LoyaltyActive:        until == 0,
	}, nil
}
