package repository

import (
	"context"
	"errors"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrOverlap   = errors.New("reservation_overlapped")
	ErrDuplicate = errors.New("duplicate record")
)

type ReservationFilter struct {
	ClientID *uint
	RoomID   *uint
	Status   models.ReservationStatus
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type PaymentFilter struct {
	ClientID      *uint
	ReservationID *uint
	Status        models.PaymentStatus
	Page          int
	Limit         int
}

type NotificationFilter struct {
	UserID     *uint
	UnreadOnly bool
	Page       int
	Limit      int
}

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	// GetForUpdate locks the room row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	ReplaceServices(ctx context.Context, reservationID uint, services []models.ReservationService) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Reservation, error)
	// HasOverlap reports whether an active reservation on roomID intersects [start, end).
	// excludeID skips one reservation, used when a reservation is being modified.
	HasOverlap(ctx context.Context, roomID uint, start, end time.Time, excludeID uint) (bool, error)
	HasActiveForRoom(ctx context.Context, roomID uint) (bool, error)
	List(ctx context.Context, f ReservationFilter) ([]models.Reservation, int64, error)
	CountCompletedByClient(ctx context.Context, clientID uint) (int64, error)
	CountByStatus(ctx context.Context, clientID *uint) (map[models.ReservationStatus]int64, error)
	StartingBetween(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment) error
	ListByReservation(ctx context.Context, reservationID uint) ([]models.Payment, error)
	List(ctx context.Context, f PaymentFilter) ([]models.Payment, int64, error)
	// SumNet adds completed and refunded rows, so refunds (negative rows) are netted out
	SumNet(ctx context.Context, clientID *uint) (float64, error)
	GetMethod(ctx context.Context, id uint) (*models.PaymentMethod, error)
	ListMethods(ctx context.Context) ([]models.PaymentMethod, error)
	SeedMethods(ctx context.Context, methods []models.PaymentMethod) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	Update(ctx context.Context, n *models.Notification) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f NotificationFilter) ([]models.Notification, int64, error)
}

type HotelConfigRepository interface {
	Get(ctx context.Context) (*models.HotelConfiguration, error)
	Save(ctx context.Context, cfg *models.HotelConfiguration) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role int) ([]models.User, error)
}

// Store groups the repositories that share one transaction boundary
type Store interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Services() ServiceRepository
	Notifications() NotificationRepository
	HotelConfig() HotelConfigRepository
	Users() UserRepository
	// Transaction runs fn against a Store bound to a single transaction.
	// Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Offset converts page/limit into an offset, page is zero based
func Offset(page, limit int) int {
	if page < 0 {
		page = 0
	}
	return page * limit
}
