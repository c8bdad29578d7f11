package commands

import (
	"context"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
)

// ReservationCommand is one lifecycle operation on a reservation
type ReservationCommand interface {
	Execute(ctx context.Context) (*models.Reservation, error)
}

// StatusChanger is satisfied by services.BookingFacade
type StatusChanger interface {
	ChangeStatus(ctx context.Context, actor services.Actor, id uint, action models.ReservationAction, reason string) (*models.Reservation, error)
}

// ChangeStatusCommand applies an action to one reservation
type ChangeStatusCommand struct {
	facade        StatusChanger
	actor         services.Actor
	reservationID uint
	action        models.ReservationAction
	reason        string
}

func NewChangeStatusCommand(facade StatusChanger, actor services.Actor, id uint, action models.ReservationAction, reason string) *ChangeStatusCommand {
	return &ChangeStatusCommand{
		facade:        facade,
		actor:         actor,
		reservationID: id,
		action:        action,
		reason:        reason,
	}
}

func (c *ChangeStatusCommand) Execute(ctx context.Context) (*models.Reservation, error) {
	return c.facade.ChangeStatus(ctx, c.actor, c.reservationID, c.action, c.reason)
}

// CreateReservationCommand books a reservation through the facade
type CreateReservationCommand struct {
	facade *services.BookingFacade
	actor  services.Actor
	input  services.CreateReservationInput
}

func NewCreateReservationCommand(facade *services.BookingFacade, actor services.Actor, in services.CreateReservationInput) *CreateReservationCommand {
	return &CreateReservationCommand{facade: facade, actor: actor, input: in}
}

func (c *CreateReservationCommand) Execute(ctx context.Context) (*models.Reservation, error) {
	return c.facade.CreateBooking(ctx, c.actor, c.input)
}

// BatchResult reports the outcome of one command in a batch
type BatchResult struct {
	ReservationID uint                     `json:"reservationId"`
	Status        models.ReservationStatus `json:"status,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

// RunBatch executes each status change in its own transaction. A failure does not
// stop the rest of the batch.
func RunBatch(ctx context.Context, facade StatusChanger, actor services.Actor, ids []uint, action models.ReservationAction, reason string) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		res, err := NewChangeStatusCommand(facade, actor, id, action, reason).Execute(ctx)
		r := BatchResult{ReservationID: id}
		switch {
		case err != nil:
			r.Error = message(err)
		case res != nil:
			r.Status = res.Status
		}
		results = append(results, r)
	}
	return results
}

func message(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return "internal error"
}
