package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NewAppError(apperrors.ErrCodeRoomNotAvailable, "room not available for these dates", nil), http.StatusConflict},
		{apperrors.NewAppError(apperrors.ErrCodeInvalidTransition, "bad", nil), http.StatusConflict},
		{apperrors.NewAppError(apperrors.ErrCodeForbidden, "no", nil), http.StatusForbidden},
		{apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "gone", nil), http.StatusNotFound},
		{apperrors.NewAppError(apperrors.ErrCodeMissingToken, "token", nil), http.StatusUnauthorized},
		{apperrors.NewAppError(apperrors.ErrCodeCapacityExceeded, "too many", nil), http.StatusBadRequest},
		{apperrors.NewAppError("SOMETHING_NEW", "unmapped", nil), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", apperrors.NewAppError(apperrors.ErrCodeCancelWindow, "late", nil)), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, apperrors.NewAppError(apperrors.ErrCodeDBError, "insert reservations", errors.New("pq: deadlock detected")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":0,"mess":"Internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	FromError(c, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "amount must equal the reservation total", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"code":0,"mess":"amount must equal the reservation total"}`, w.Body.String())
}

func TestSuccessWithPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPagination(c, []int{1, 2}, 2, 10, 12)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":1,"mess":"Success","data":[1,2],"pagination":{"page":2,"limit":10,"total":12}}`, w.Body.String())
}
