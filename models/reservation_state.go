package models

import (
	"fmt"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
)

// ReservationAction is an input to the reservation state machine
type ReservationAction string

const (
	ActionConfirm       ReservationAction = "confirm"
	ActionComplete      ReservationAction = "complete"
	ActionCancel        ReservationAction = "cancel"
	ActionRequestRefund ReservationAction = "request_refund"
	ActionRefund        ReservationAction = "refund"
	ActionApproveRefund ReservationAction = "approve_refund"
	ActionRejectRefund  ReservationAction = "reject_refund"
)

// IsValid reports whether a is a known action
func (a ReservationAction) IsValid() bool {
	switch a {
	case ActionConfirm, ActionComplete, ActionCancel, ActionRequestRefund,
		ActionRefund, ActionApproveRefund, ActionRejectRefund:
		return true
	}
	return false
}

// Transition is the outcome of applying an action: the next reservation status and,
// when RoomStatus is not empty, the status the owning room must move to.
type Transition struct {
	From       ReservationStatus
	Action     ReservationAction
	To         ReservationStatus
	RoomStatus RoomStatus
}

type transitionKey struct {
	from   ReservationStatus
	action ReservationAction
}

var transitions = map[transitionKey]Transition{
	{ReservationStatusPending, ActionConfirm}:                {To: ReservationStatusConfirmed, RoomStatus: RoomStatusReserved},
	{ReservationStatusPending, ActionCancel}:                 {To: ReservationStatusCancelled, RoomStatus: RoomStatusAvailable},
	{ReservationStatusConfirmed, ActionComplete}:             {To: ReservationStatusCompleted, RoomStatus: RoomStatusAvailable},
	{ReservationStatusConfirmed, ActionCancel}:               {To: ReservationStatusCancelled, RoomStatus: RoomStatusAvailable},
	{ReservationStatusCompleted, ActionRequestRefund}:        {To: ReservationStatusRefundInProgress},
	{ReservationStatusCompleted, ActionRefund}:               {To: ReservationStatusCancelled},
	{ReservationStatusRefundInProgress, ActionApproveRefund}: {To: ReservationStatusRefunded},
	{ReservationStatusRefundInProgress, ActionRejectRefund}:  {To: ReservationStatusCompleted},
}

// NextState looks up the transition for action from status without mutating anything
func NextState(status ReservationStatus, action ReservationAction) (Transition, error) {
	t, ok := transitions[transitionKey{status, action}]
	if !ok {
		return Transition{}, invalidTransition(status, action)
	}
	t.From = status
	t.Action = action
	return t, nil
}

// CanApply reports whether action is allowed from status
func CanApply(status ReservationStatus, action ReservationAction) bool {
	_, ok := transitions[transitionKey{status, action}]
	return ok
}

// Apply moves the reservation to its next status and returns the transition so the
// caller can update the room in the same storage transaction.
func (r *Reservation) Apply(action ReservationAction) (Transition, error) {
	t, err := NextState(r.Status, action)
	if err != nil {
		return Transition{}, err
	}
	r.Status = t.To
	return t, nil
}

func invalidTransition(status ReservationStatus, action ReservationAction) error {
	if action == ActionConfirm {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("only pending reservations can be confirmed (current status %q)", status), nil)
	}
	return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
		fmt.Sprintf("cannot %s a reservation in status %q", actionVerb(action), status), nil)
}

func actionVerb(a ReservationAction) string {
	switch a {
	case ActionRequestRefund:
		return "request a refund for"
	case ActionRefund:
		return "refund"
	case ActionApproveRefund:
		return "approve the refund of"
	case ActionRejectRefund:
		return "reject the refund of"
	}
	return string(a)
}
