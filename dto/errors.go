package dto

import (
	"fmt"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
)

func invalidDate(field string, err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
		fmt.Sprintf("invalid %s, expected YYYY-MM-DD", field), err)
}
