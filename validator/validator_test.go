package validator

import (
	"testing"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.Code
}

func TestValidateDateRange(t *testing.T) {
	start, end, err := ValidateDateRange("2026-04-10", "2026-04-13")
	require.NoError(t, err)
	assert.Equal(t, 3, int(end.Sub(start).Hours()/24))

	tests := []struct {
		name     string
		from, to string
		want     errors.ErrorCode
	}{
		{"bad start", "10/04/2026", "2026-04-13", errors.ErrCodeInvalidFormat},
		{"bad end", "2026-04-10", "tomorrow", errors.ErrCodeInvalidFormat},
		{"same day", "2026-04-10", "2026-04-10", errors.ErrCodeInvalidDateRange},
		{"reversed", "2026-04-13", "2026-04-10", errors.ErrCodeInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateDateRange(tt.from, tt.to)
			assert.Equal(t, tt.want, code(t, err))
		})
	}
}

func TestValidateUser(t *testing.T) {
	ok := &models.User{Email: "ana@hotel.test", Password: "long-enough", Phone: "+529511234567"}
	require.NoError(t, ValidateUser(ok))

	tests := []struct {
		name string
		user models.User
		want errors.ErrorCode
	}{
		{"no email", models.User{Password: "long-enough"}, errors.ErrCodeRequiredField},
		{"bad email", models.User{Email: "ana@", Password: "long-enough"}, errors.ErrCodeInvalidEmail},
		{"no password", models.User{Email: "ana@hotel.test"}, errors.ErrCodeRequiredField},
		{"short password", models.User{Email: "ana@hotel.test", Password: "1234"}, errors.ErrCodeInvalidPassword},
		{"bad phone", models.User{Email: "ana@hotel.test", Password: "long-enough", Phone: "95-12"}, errors.ErrCodeInvalidPhone},
		{"bad role", models.User{Email: "ana@hotel.test", Password: "long-enough", Role: 7}, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, code(t, ValidateUser(&tt.user)))
		})
	}

	assert.Equal(t, errors.ErrCodeInvalidAmount, code(t, ValidateAmount(-1)))
	assert.NoError(t, ValidateAmount(0))
}

type statusBody struct {
	Action models.ReservationAction `binding:"required,reservation_action"`
}

type roomBody struct {
	Status   models.RoomStatus      `binding:"omitempty,room_status"`
	Strategy models.PricingStrategy `binding:"pricing_strategy"`
}

func TestRegisteredTags(t *testing.T) {
	v := playground.New()
	v.SetTagName("binding")
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(statusBody{Action: models.ActionConfirm}))
	assert.NoError(t, v.Struct(statusBody{Action: models.ActionRejectRefund}))
	assert.Error(t, v.Struct(statusBody{Action: "teleport"}))

	assert.NoError(t, v.Struct(roomBody{}))
	assert.NoError(t, v.Struct(roomBody{Status: models.RoomStatusMaintenance, Strategy: models.StrategyLoyalty}))
	assert.Error(t, v.Struct(roomBody{Status: "flooded"}))
	assert.Error(t, v.Struct(roomBody{Strategy: "black_friday"}))
}
