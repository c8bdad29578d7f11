package builders

import (
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
)

// ReservationBuilder assembles a reservation step by step
type ReservationBuilder struct {
	reservation *models.Reservation
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{Status: models.ReservationStatusPending},
	}
}

// FromReservation starts from a copy of an existing reservation, used by modifications
func FromReservation(r models.Reservation) *ReservationBuilder {
	return &ReservationBuilder{reservation: &r}
}

func (b *ReservationBuilder) WithClient(clientID uint) *ReservationBuilder {
	b.reservation.ClientID = clientID
	return b
}

func (b *ReservationBuilder) WithRoom(room *models.Room) *ReservationBuilder {
	b.reservation.RoomID = room.ID
	b.reservation.BasePrice = room.BasePrice
	return b
}

func (b *ReservationBuilder) WithDates(start, end time.Time) *ReservationBuilder {
	b.reservation.StartDate = start
	b.reservation.EndDate = end
	return b
}

func (b *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	b.reservation.Guests = guests
	return b
}

func (b *ReservationBuilder) WithServices(services []models.ReservationService) *ReservationBuilder {
	b.reservation.Services = services
	return b
}

func (b *ReservationBuilder) WithNotes(notes string) *ReservationBuilder {
	b.reservation.Notes = notes
	return b
}

// WithPricing copies the computed amounts onto the reservation
func (b *ReservationBuilder) WithPricing(strategy models.PricingStrategy, nights int, servicesTotal, tax, total float64) *ReservationBuilder {
	b.reservation.Strategy = strategy
	b.reservation.Nights = nights
	b.reservation.ServicesTotal = servicesTotal
	b.reservation.TaxAmount = tax
	b.reservation.TotalPrice = total
	return b
}

func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
