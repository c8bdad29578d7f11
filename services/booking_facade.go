package services

import (
	"context"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"
)

// Notifier is satisfied by notification.Dispatcher
type Notifier interface {
	Dispatch(ctx context.Context, msgs ...notification.Message)
}

// BookingFacade composes reservations, payments and notifications for the HTTP layer.
// Notifications go out after the operation committed; their failures never fail it.
type BookingFacade struct {
	reservations *ReservationService
	payments     *PaymentService
	notifier     Notifier
	users        repository.UserRepository
	logger       logger.Logger
}

type BookingFacadeOptions struct {
	Reservations *ReservationService
	Payments     *PaymentService
	Notifier     Notifier
	Users        repository.UserRepository
	Logger       logger.Logger
}

func NewBookingFacade(opts BookingFacadeOptions) *BookingFacade {
	return &BookingFacade{
		reservations: opts.Reservations,
		payments:     opts.Payments,
		notifier:     opts.Notifier,
		users:        opts.Users,
		logger:       opts.Logger,
	}
}

func (f *BookingFacade) Reservations() *ReservationService { return f.reservations }

func (f *BookingFacade) Payments() *PaymentService { return f.payments }

// notify sends b to the reservation's client and, when toAdmins is set, to every admin
func (f *BookingFacade) notify(ctx context.Context, b *notification.MessageBuilder, toAdmins bool) {
	if f.notifier == nil {
		return
	}
	msgs := []notification.Message{b.Build()}
	if toAdmins && f.users != nil {
		admins, err := f.users.ListByRole(ctx, constants.RoleAdmin)
		if err != nil {
			f.logger.Error("load admins for notification: %v", err)
		}
		for _, a := range admins {
			msgs = append(msgs, b.To(a.ID).Build())
		}
	}
	f.notifier.Dispatch(ctx, msgs...)
}

func (f *BookingFacade) CreateBooking(ctx context.Context, actor Actor, in CreateReservationInput) (*models.Reservation, error) {
	res, err := f.reservations.Create(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationCreated).Reservation(res), true)
	return res, nil
}

func (f *BookingFacade) ModifyBooking(ctx context.Context, actor Actor, id uint, in ModifyReservationInput) (*models.Reservation, error) {
	res, err := f.reservations.Modify(ctx, actor, id, in)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationModified).Reservation(res), false)
	return res, nil
}

// ChangeStatus applies any lifecycle action, routing refund actions to the payment side
func (f *BookingFacade) ChangeStatus(ctx context.Context, actor Actor, id uint, action models.ReservationAction, reason string) (*models.Reservation, error) {
	switch action {
	case models.ActionRequestRefund:
		r, err := f.RequestRefund(ctx, actor, id, reason)
		return reservationOf(r), err
	case models.ActionRefund:
		r, err := f.Refund(ctx, actor, id, reason)
		return reservationOf(r), err
	case models.ActionApproveRefund:
		r, err := f.ApproveRefund(ctx, actor, id)
		return reservationOf(r), err
	case models.ActionRejectRefund:
		r, err := f.RejectRefund(ctx, actor, id, reason)
		return reservationOf(r), err
	}

	res, err := f.reservations.Transition(ctx, actor, id, action)
	if err != nil {
		return nil, err
	}
	var event notification.Event
	switch action {
	case models.ActionConfirm:
		event = notification.EventReservationConfirmed
	case models.ActionComplete:
		event = notification.EventReservationCompleted
	default:
		event = notification.EventReservationCancelled
	}
	f.notify(ctx, notification.NewMessageBuilder(event).Reservation(res).Reason(reason), action == models.ActionCancel)
	return res, nil
}

func reservationOf(r *RefundResult) *models.Reservation {
	if r == nil {
		return nil
	}
	return r.Reservation
}

func (f *BookingFacade) RecordPayment(ctx context.Context, actor Actor, in RecordPaymentInput) (*PaymentResult, error) {
	result, err := f.payments.RecordPayment(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventPaymentReceived).
		Reservation(result.Reservation).Amount(result.Payment.Amount), false)
	return result, nil
}

func (f *BookingFacade) Refund(ctx context.Context, actor Actor, id uint, reason string) (*RefundResult, error) {
	result, err := f.payments.Refund(ctx, actor, id, reason)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventRefundProcessed).
		Reservation(result.Reservation).Amount(result.Amount).Percentage(result.Percentage).Reason(reason), true)
	return result, nil
}

func (f *BookingFacade) RequestRefund(ctx context.Context, actor Actor, id uint, reason string) (*RefundResult, error) {
	result, err := f.payments.RequestRefund(ctx, actor, id, reason)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventRefundRequested).
		Reservation(result.Reservation).Amount(result.Amount).Reason(reason), true)
	return result, nil
}

func (f *BookingFacade) ApproveRefund(ctx context.Context, actor Actor, id uint) (*RefundResult, error) {
	result, err := f.payments.ApproveRefund(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventRefundProcessed).
		Reservation(result.Reservation).Amount(result.Amount).Percentage(result.Percentage), false)
	return result, nil
}

func (f *BookingFacade) RejectRefund(ctx context.Context, actor Actor, id uint, reason string) (*RefundResult, error) {
	result, err := f.payments.RejectRefund(ctx, actor, id, reason)
	if err != nil {
		return nil, err
	}
	f.notify(ctx, notification.NewMessageBuilder(notification.EventRefundRejected).
		Reservation(result.Reservation).Reason(reason), false)
	return result, nil
}

// SendCheckInReminders notifies every client whose confirmed stay starts the day after day
func (f *BookingFacade) SendCheckInReminders(ctx context.Context, day time.Time) (int, error) {
	tomorrow := day.AddDate(0, 0, 1)
	upcoming, err := f.reservations.UpcomingCheckIns(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	for i := range upcoming {
		f.notify(ctx, notification.NewMessageBuilder(notification.EventCheckInReminder).Reservation(&upcoming[i]), false)
	}
	return len(upcoming), nil
}
