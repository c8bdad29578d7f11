package services

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type PaymentService struct {
	store  repository.Store
	cache  *Cache
	logger logger.Logger
	now    Clock
}

type PaymentServiceOptions struct {
	Store  repository.Store
	Cache  *Cache
	Logger logger.Logger
	Clock  Clock
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	return &PaymentService{store: opts.Store, cache: opts.Cache, logger: opts.Logger, now: clockOrNow(opts.Clock)}
}

type RecordPaymentInput struct {
	ReservationID uint
	MethodID      uint
	// Amount defaults to the reservation total and must match it when given
	Amount *float64
}

type PaymentResult struct {
	Payment     *models.Payment     `json:"payment"`
	Reservation *models.Reservation `json:"reservation"`
}

type RefundResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Payment     *models.Payment     `json:"payment,omitempty"`
	Percentage  int                 `json:"percentage"`
	Amount      float64             `json:"amount"`
}

// RefundPercentage is the share of the paid amount returned for a cancellation made
// daysBeforeCheckIn days ahead of check-in
func RefundPercentage(daysBeforeCheckIn int) int {
	switch {
	case daysBeforeCheckIn >= 7:
		return 100
	case daysBeforeCheckIn >= 3:
		return 75
	default:
		return 50
	}
}

func (s *PaymentService) RecordPayment(ctx context.Context, actor Actor, in RecordPaymentInput) (_ *PaymentResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.RecordPayment", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(in.ReservationID)),
	))
	defer func() { endSpan(span, err) }()

	var (
		payment *models.Payment
		tr      models.Transition
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, in.ReservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationStatusConfirmed {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
				fmt.Sprintf("payments can only be recorded for confirmed reservations (current status %q)", res.Status), nil)
		}

		method, err := tx.Payments().GetMethod(ctx, in.MethodID)
		if apperrors.Is(err, repository.ErrNotFound) || (err == nil && !method.Active) {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidMethod,
				fmt.Sprintf("payment method %d is not available", in.MethodID), nil)
		}
		if err != nil {
			return storeError(err, apperrors.ErrPaymentNotFound)
		}

		amount := res.TotalPrice
		if in.Amount != nil && math.Abs(*in.Amount-res.TotalPrice) > 0.005 {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount,
				fmt.Sprintf("payment amount %.2f does not match reservation total %.2f", *in.Amount, res.TotalPrice),
				apperrors.ErrInvalidAmount)
		}
		if amount <= 0 {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "reservation total must be positive", apperrors.ErrInvalidAmount)
		}

		payment = &models.Payment{
			ReservationID: res.ID,
			MethodID:      method.ID,
			Amount:        round2(amount),
			Status:        models.PaymentStatusCompleted,
			TransactionID: uuid.NewString(),
			Reference:     fmt.Sprintf("PAY-%d-%d", res.ID, s.now().Unix()),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return storeError(err, apperrors.ErrPaymentNotFound)
		}
		payment.Method = method

		tr, err = applyTransition(ctx, tx, res, models.ActionComplete)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tr.RoomStatus != "" {
		invalidateRooms(ctx, s.cache, s.logger)
	}

	res, err := s.reload(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment %s recorded for reservation %d: %.2f", payment.Reference, res.ID, payment.Amount)
	return &PaymentResult{Payment: payment, Reservation: res}, nil
}

// refundable sums the completed payments of a reservation and returns them
func refundable(ctx context.Context, tx repository.Store, reservationID uint) (float64, []models.Payment, error) {
	payments, err := tx.Payments().ListByReservation(ctx, reservationID)
	if err != nil {
		return 0, nil, storeError(err, apperrors.ErrPaymentNotFound)
	}
	var paid float64
	var completed []models.Payment
	for _, p := range payments {
		if p.Status == models.PaymentStatusCompleted && p.Amount > 0 {
			paid += p.Amount
			completed = append(completed, p)
		}
	}
	if paid <= 0 {
		return 0, nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation,
			"reservation has no completed payment to refund", apperrors.ErrPaymentNotFound)
	}
	return round2(paid), completed, nil
}

func (s *PaymentService) refundTerms(res *models.Reservation, paid float64) (int, float64) {
	pct := RefundPercentage(utils.DaysBetween(s.now(), res.StartDate))
	return pct, round2(paid * float64(pct) / 100)
}

// settle writes the negative refund row and marks the original payments refunded
func (s *PaymentService) settle(ctx context.Context, tx repository.Store, res *models.Reservation, amount float64, originals []models.Payment) (*models.Payment, error) {
	refund := &models.Payment{
		ReservationID: res.ID,
		MethodID:      originals[len(originals)-1].MethodID,
		Amount:        -round2(amount),
		Status:        models.PaymentStatusRefunded,
		TransactionID: uuid.NewString(),
		Reference:     fmt.Sprintf("REF-%d-%d", res.ID, s.now().Unix()),
	}
	if err := tx.Payments().Create(ctx, refund); err != nil {
		return nil, storeError(err, apperrors.ErrPaymentNotFound)
	}
	for i := range originals {
		originals[i].Status = models.PaymentStatusRefunded
		originals[i].Method = nil
		if err := tx.Payments().Update(ctx, &originals[i]); err != nil {
			return nil, storeError(err, apperrors.ErrPaymentNotFound)
		}
	}
	return refund, nil
}

// Refund cancels a paid reservation immediately, returning the tiered percentage
func (s *PaymentService) Refund(ctx context.Context, actor Actor, reservationID uint, reason string) (_ *RefundResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.Refund", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(reservationID)),
	))
	defer func() { endSpan(span, err) }()

	result := &RefundResult{}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, reservationID)
		if err != nil {
			return err
		}
		if _, err := models.NextState(res.Status, models.ActionRefund); err != nil {
			return err
		}
		paid, originals, err := refundable(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		result.Percentage, result.Amount = s.refundTerms(res, paid)

		if result.Payment, err = s.settle(ctx, tx, res, result.Amount, originals); err != nil {
			return err
		}
		res.RefundAmount = result.Amount
		res.RefundReason = reason
		_, err = applyTransition(ctx, tx, res, models.ActionRefund)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Reservation, err = s.reload(ctx, reservationID); err != nil {
		return nil, err
	}
	s.logger.Info("reservation %d refunded %d%% (%.2f)", reservationID, result.Percentage, result.Amount)
	return result, nil
}

// RequestRefund opens a refund that an administrator approves or rejects later
func (s *PaymentService) RequestRefund(ctx context.Context, actor Actor, reservationID uint, reason string) (_ *RefundResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.RequestRefund", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(reservationID)),
	))
	defer func() { endSpan(span, err) }()

	result := &RefundResult{}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, reservationID)
		if err != nil {
			return err
		}
		if _, err := models.NextState(res.Status, models.ActionRequestRefund); err != nil {
			return err
		}
		paid, _, err := refundable(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		result.Percentage, result.Amount = s.refundTerms(res, paid)
		res.RefundAmount = result.Amount
		res.RefundReason = reason
		_, err = applyTransition(ctx, tx, res, models.ActionRequestRefund)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Reservation, err = s.reload(ctx, reservationID); err != nil {
		return nil, err
	}
	s.logger.Info("refund requested for reservation %d: %.2f", reservationID, result.Amount)
	return result, nil
}

func (s *PaymentService) ApproveRefund(ctx context.Context, actor Actor, reservationID uint) (_ *RefundResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.ApproveRefund", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(reservationID)),
	))
	defer func() { endSpan(span, err) }()

	if !actor.IsAdmin() {
		return nil, forbidden("only administrators can approve refunds")
	}

	result := &RefundResult{}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, reservationID)
		if err != nil {
			return err
		}
		if _, err := models.NextState(res.Status, models.ActionApproveRefund); err != nil {
			return err
		}
		paid, originals, err := refundable(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		result.Amount = res.RefundAmount
		if paid > 0 {
			result.Percentage = int(math.Round(res.RefundAmount / paid * 100))
		}
		if result.Payment, err = s.settle(ctx, tx, res, res.RefundAmount, originals); err != nil {
			return err
		}
		_, err = applyTransition(ctx, tx, res, models.ActionApproveRefund)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Reservation, err = s.reload(ctx, reservationID); err != nil {
		return nil, err
	}
	s.logger.Info("refund approved for reservation %d: %.2f", reservationID, result.Amount)
	return result, nil
}

func (s *PaymentService) RejectRefund(ctx context.Context, actor Actor, reservationID uint, reason string) (_ *RefundResult, err error) {
	ctx, span := tracer.Start(ctx, "PaymentService.RejectRefund", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(reservationID)),
	))
	defer func() { endSpan(span, err) }()

	if !actor.IsAdmin() {
		return nil, forbidden("only administrators can reject refunds")
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, reservationID)
		if err != nil {
			return err
		}
		if _, err := models.NextState(res.Status, models.ActionRejectRefund); err != nil {
			return err
		}
		res.RefundAmount = 0
		if reason != "" {
			res.RefundReason = reason
		}
		_, err = applyTransition(ctx, tx, res, models.ActionRejectRefund)
		return err
	})
	if err != nil {
		return nil, err
	}

	res, err := s.reload(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("refund rejected for reservation %d", reservationID)
	return &RefundResult{Reservation: res}, nil
}

func (s *PaymentService) reload(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	return res, nil
}

// List returns payments; clients only see payments on their own reservations
func (s *PaymentService) List(ctx context.Context, actor Actor, f repository.PaymentFilter) ([]models.Payment, int64, error) {
	if !actor.IsAdmin() {
		f.ClientID = &actor.UserID
	}
	out, total, err := s.store.Payments().List(ctx, f)
	if err != nil {
		return nil, 0, storeError(err, apperrors.ErrPaymentNotFound)
	}
	return out, total, nil
}

func (s *PaymentService) Methods(ctx context.Context) ([]models.PaymentMethod, error) {
	out, err := s.store.Payments().ListMethods(ctx)
	if err != nil {
		return nil, storeError(err, apperrors.ErrPaymentNotFound)
	}
	return out, nil
}
