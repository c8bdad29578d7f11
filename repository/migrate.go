package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
)

// noOverlapConstraint rejects a second active reservation whose [start, end) range
// intersects another one on the same room, whatever the application checked before.
const noOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(start_date, end_date, '[)') WITH &&)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END $$;`

// Migrate creates the schema, the overlap constraint and the seed rows
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Service{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.PaymentMethod{},
		&models.Payment{},
		&models.Notification{},
		&models.HotelConfiguration{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	if err := db.WithContext(ctx).Exec(noOverlapConstraint).Error; err != nil {
		return fmt.Errorf("add overlap constraint: %w", err)
	}

	store := NewGormStore(db)
	if err := store.Payments().SeedMethods(ctx, models.DefaultPaymentMethods()); err != nil {
		return fmt.Errorf("seed payment methods: %w", err)
	}
	if _, err := store.HotelConfig().Get(ctx); errors.Is(err, ErrNotFound) {
		cfg := models.DefaultHotelConfiguration()
		if err := store.HotelConfig().Save(ctx, &cfg); err != nil {
			return fmt.Errorf("seed hotel configuration: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("load hotel configuration: %w", err)
	}
	return nil
}
