package services

import (
	"context"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

// DateRange is a half-open [Start, End) stay in whole days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the conflict rule shared with the storage query: the ranges intersect,
// or they share a start day, or they share an end day.
func Overlaps(a, b DateRange) bool {
	return (a.Start.Before(b.End) && a.End.After(b.Start)) ||
		a.Start.Equal(b.Start) || a.End.Equal(b.End)
}

// AvailabilityChecker answers whether a room is free for a date range
type AvailabilityChecker struct {
	reservations repository.ReservationRepository
}

func NewAvailabilityChecker(reservations repository.ReservationRepository) *AvailabilityChecker {
	return &AvailabilityChecker{reservations: reservations}
}

// IsAvailable is true when no pending or confirmed reservation on roomID overlaps the
// range. excludeID skips a reservation that is being modified; pass 0 otherwise.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	overlap, err := c.reservations.HasOverlap(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}
