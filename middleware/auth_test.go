package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens accepts "admin" and "client" as tokens
type staticTokens struct{}

func (staticTokens) GetUserIDFromToken(token string) (uint, int, error) {
	switch token {
	case "admin":
		return 1, constants.RoleAdmin, nil
	case "client":
		return 2, constants.RoleClient, nil
	}
	return 0, 0, errors.New("bad token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(), ErrorHandler())
	whoami := func(c *gin.Context) {
		actor := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": actor.Role})
	}
	r.GET("/me", AuthMiddleware(staticTokens{}), whoami)
	r.GET("/admin", AuthMiddleware(staticTokens{}, constants.RoleAdmin), whoami)
	r.GET("/chained", AuthMiddleware(staticTokens{}), RoleMiddleware(constants.RoleAdmin), whoami)
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperrors.NewAppError(apperrors.ErrCodeRoomNotAvailable, "room not available for these dates", nil))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection reset"))
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"missing token", "/me", "", http.StatusUnauthorized},
		{"bad token", "/me", "nope", http.StatusUnauthorized},
		{"client", "/me", "client", http.StatusOK},
		{"client on admin route", "/admin", "client", http.StatusForbidden},
		{"admin on admin route", "/admin", "admin", http.StatusOK},
		{"client chained", "/chained", "client", http.StatusForbidden},
		{"admin chained", "/chained", "admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.path, tt.token)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCurrentActorFromToken(t *testing.T) {
	w := do(newRouter(), "/me", "client")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID uint `json:"userId"`
		Role   int  `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.UserID)
	assert.Equal(t, constants.RoleClient, body.Role)
	assert.NotEmpty(t, w.Header().Get("X-Session-ID"))
}

func TestErrorHandler(t *testing.T) {
	r := newRouter()

	w := do(r, "/boom", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":0,"mess":"room not available for these dates"}`, w.Body.String())

	w = do(r, "/internal", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestSessionIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer admin")
	req.Header.Set("X-Session-ID", "abc-123")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Session-ID"))
}
