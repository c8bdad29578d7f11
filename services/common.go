package services

import (
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/22161183-afk/HotelOaxacaPatrones-sub001/services")

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID uint
	Role   int
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// System is used by background jobs
var System = Actor{Role: constants.RoleAdmin}

// Clock returns the current time; services take one so tests can pin "now"
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// storeError turns repository failures into AppErrors. notFound is the sentinel to
// report when the row does not exist.
func storeError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	switch {
	case apperrors.Is(err, repository.ErrNotFound):
		return apperrors.NewAppError(apperrors.ErrCodeDBNotFound, notFound.Error(), notFound)
	case apperrors.Is(err, repository.ErrOverlap):
		return roomNotAvailable()
	case apperrors.Is(err, repository.ErrDuplicate):
		return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "record already exists", err)
	}
	return apperrors.NewAppError(apperrors.ErrCodeDBError, "database error", err)
}

func roomNotAvailable() error {
	return apperrors.NewAppError(apperrors.ErrCodeRoomNotAvailable,
		apperrors.ErrRoomNotAvailable.Error(), apperrors.ErrRoomNotAvailable)
}

func forbidden(message string) error {
	return apperrors.NewAppError(apperrors.ErrCodeForbidden, message, apperrors.ErrUnauthorized)
}

func validation(message string) error {
	return apperrors.NewAppError(apperrors.ErrCodeValidation, message, apperrors.ErrInvalidInput)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
