package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// GormStore is the Postgres backed Store
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Rooms() RoomRepository                 { return &RoomRepo{db: s.db} }
func (s *GormStore) Reservations() ReservationRepository   { return &ReservationRepo{db: s.db} }
func (s *GormStore) Payments() PaymentRepository           { return &PaymentRepo{db: s.db} }
func (s *GormStore) Services() ServiceRepository           { return &ServiceRepo{db: s.db} }
func (s *GormStore) Notifications() NotificationRepository { return &NotificationRepo{db: s.db} }
func (s *GormStore) HotelConfig() HotelConfigRepository    { return &HotelConfigRepo{db: s.db} }
func (s *GormStore) Users() UserRepository                 { return &UserRepo{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translate maps driver errors onto the repository sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return ErrOverlap
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
