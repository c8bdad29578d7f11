package validator

import (
	"regexp"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
)

// ValidateUser checks a user before it is stored. Phone is optional.
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "email is required", errors.ErrMissingRequired)
	}
	if err := ValidateEmail(user.Email); err != nil {
		return err
	}
	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "password is required", errors.ErrMissingRequired)
	}
	if err := ValidatePassword(user.Password); err != nil {
		return err
	}
	if user.Phone != "" {
		if err := ValidatePhone(user.Phone); err != nil {
			return err
		}
	}
	if user.Role != 0 && user.Role != 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "invalid role", nil)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "invalid email", errors.ErrInvalidFormat)
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "invalid phone number", errors.ErrInvalidFormat)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "password must be at least 8 characters", nil)
	}
	return nil
}

// ValidateDateRange parses YYYY-MM-DD dates and requires end after start
func ValidateDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid start date, expected YYYY-MM-DD", err)
	}
	end, err := utils.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid end date, expected YYYY-MM-DD", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidDateRange, "end date must be after start date", nil)
	}
	return start, end, nil
}

func ValidateAmount(amount float64) error {
	if amount < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "amount cannot be negative", errors.ErrInvalidAmount)
	}
	return nil
}

func reservationAction(fl playground.FieldLevel) bool {
	return models.ReservationAction(fl.Field().String()).IsValid()
}

func roomStatus(fl playground.FieldLevel) bool {
	return models.RoomStatus(fl.Field().String()).IsValid()
}

func pricingStrategy(fl playground.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || models.PricingStrategy(s).IsValid()
}

// RegisterBindings adds the domain tags to gin's validator engine
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *playground.Validate) error {
	if err := v.RegisterValidation("reservation_action", reservationAction); err != nil {
		return err
	}
	if err := v.RegisterValidation("room_status", roomStatus); err != nil {
		return err
	}
	return v.RegisterValidation("pricing_strategy", pricingStrategy)
}
