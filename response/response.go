package response

import (
	"net/http"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a failure envelope with the given HTTP status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not found")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeUnauthorized:    http.StatusUnauthorized,
	apperrors.ErrCodeInvalidToken:    http.StatusUnauthorized,
	apperrors.ErrCodeMissingToken:    http.StatusUnauthorized,
	apperrors.ErrCodeInvalidPassword: http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:       http.StatusForbidden,

	apperrors.ErrCodeUserNotFound: http.StatusNotFound,
	apperrors.ErrCodeDBNotFound:   http.StatusNotFound,

	apperrors.ErrCodeRoomNotAvailable:  http.StatusConflict,
	apperrors.ErrCodeInvalidTransition: http.StatusConflict,
	apperrors.ErrCodeCancelWindow:      http.StatusConflict,
	apperrors.ErrCodeUserExists:        http.StatusConflict,
	apperrors.ErrCodeDBDuplicate:       http.StatusConflict,
	apperrors.ErrCodeInvalidOperation:  http.StatusConflict,

	apperrors.ErrCodeInvalidEmail:     http.StatusBadRequest,
	apperrors.ErrCodeInvalidPhone:     http.StatusBadRequest,
	apperrors.ErrCodeInvalidDateRange: http.StatusBadRequest,
	apperrors.ErrCodeCapacityExceeded: http.StatusBadRequest,
	apperrors.ErrCodeInvalidAmount:    http.StatusBadRequest,
	apperrors.ErrCodeInvalidMethod:    http.StatusBadRequest,
	apperrors.ErrCodeValidation:       http.StatusBadRequest,
	apperrors.ErrCodeRequiredField:    http.StatusBadRequest,
	apperrors.ErrCodeInvalidFormat:    http.StatusBadRequest,

	apperrors.ErrCodeDBError: http.StatusInternalServerError,
}

// StatusFor returns the HTTP status an error maps to
func StatusFor(err error) int {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		return http.StatusInternalServerError
	}
	if status, ok := statusByCode[appErr.Code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// FromError writes err using the status its AppError code maps to.
// Errors without a code become a generic 500 so internals never leak.
func FromError(c *gin.Context, err error) {
	status := StatusFor(err)
	appErr := apperrors.GetAppError(err)
	if appErr == nil || status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	Error(c, status, appErr.Message)
}
