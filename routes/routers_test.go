package routes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	middlewares "github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository/memory"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code int             `json:"code"`
	Mess string          `json:"mess"`
	Data json.RawMessage `json:"data"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterBindings()

	store := memory.New()
	log := logger.Discard()
	cache := services.NewCache(nil, 0)
	tokens := services.NewTokenManager("routes-test", time.Hour)
	hotelConfig := services.NewHotelConfigService(services.HotelConfigServiceOptions{Store: store, Cache: cache, Logger: log})
	dispatcher := notification.NewDispatcher(notification.DispatcherOptions{Repo: store.Notifications(), Logger: log})
	reservations := services.NewReservationService(services.ReservationServiceOptions{Store: store, Config: hotelConfig, Cache: cache, Logger: log})
	payments := services.NewPaymentService(services.PaymentServiceOptions{Store: store, Cache: cache, Logger: log})
	auth := services.NewAuthService(services.AuthServiceOptions{Users: store.Users(), Tokens: tokens, Logger: log})
	require.NoError(t, auth.EnsureAdmin(context.Background(), "Admin", "admin@hotel.test", "admin-pass"))

	router := gin.New()
	router.Use(middlewares.ErrorHandler())
	SetupRoutes(router, Dependencies{
		Tokens:      tokens,
		Auth:        auth,
		Rooms:       services.NewRoomService(services.RoomServiceOptions{Store: store, Cache: cache, Logger: log}),
		Catalog:     services.NewCatalogService(services.CatalogServiceOptions{Store: store, Cache: cache, Logger: log}),
		HotelConfig: hotelConfig,
		Booking: services.NewBookingFacade(services.BookingFacadeOptions{
			Reservations: reservations,
			Payments:     payments,
			Notifier:     dispatcher,
			Users:        store.Users(),
			Logger:       log,
		}),
		Notifications: services.NewNotificationService(services.NotificationServiceOptions{Store: store, Notifier: dispatcher, Logger: log}),
		Dashboards:    services.NewDashboardService(services.DashboardServiceOptions{Store: store, Logger: log}),
	})
	return &api{t: t, router: router}
}

func (a *api) call(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	status, env := a.call(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, status, env.Mess)
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.AccessToken
}

func (a *api) register(name, email string) string {
	a.t.Helper()
	status, env := a.call(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "client-pass",
	})
	require.Equal(a.t, http.StatusCreated, status, env.Mess)
	return a.login(email, "client-pass")
}

func id(t *testing.T, env envelope) uint {
	t.Helper()
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotZero(t, out.ID)
	return out.ID
}

func date(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestBookingFlowOverHTTP(t *testing.T) {
	a := newAPI(t)
	adminToken := a.login("admin@hotel.test", "admin-pass")
	ana := a.register("Ana", "ana@hotel.test")
	luis := a.register("Luis", "luis@hotel.test")

	status, _ := a.call(http.MethodPost, "/api/v1/rooms", ana, gin.H{"number": "101", "capacity": 2, "basePrice": 100})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := a.call(http.MethodPost, "/api/v1/rooms", adminToken, gin.H{
		"number": "101", "floor": 1, "capacity": 2, "basePrice": 100, "amenities": []string{"wifi"},
	})
	require.Equal(t, http.StatusCreated, status, env.Mess)
	roomID := id(t, env)

	status, env = a.call(http.MethodGet, "/api/v1/rooms", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Code)

	booking := gin.H{"roomId": roomID, "startDate": date(30), "endDate": date(33), "guests": 2}
	status, env = a.call(http.MethodPost, "/api/v1/reservations", ana, booking)
	require.Equal(t, http.StatusCreated, status, env.Mess)
	reservationID := id(t, env)
	var created struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Positive(t, created.TotalPrice)

	status, env = a.call(http.MethodPost, "/api/v1/reservations", luis, booking)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "room not available for these dates", env.Mess)

	status, _ = a.call(http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", reservationID), luis, nil)
	assert.Equal(t, http.StatusNotFound, status)

	path := fmt.Sprintf("/api/v1/reservations/%d/status", reservationID)
	status, _ = a.call(http.MethodPut, path, ana, gin.H{"action": "confirm"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = a.call(http.MethodPut, path, adminToken, gin.H{"action": "teleport"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.call(http.MethodPut, path, adminToken, gin.H{"action": "confirm"})
	require.Equal(t, http.StatusOK, status, env.Mess)

	status, env = a.call(http.MethodPut, path, adminToken, gin.H{"action": "confirm"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, env.Mess, "only pending reservations can be confirmed")

	status, env = a.call(http.MethodPost, "/api/v1/payments", ana, gin.H{"reservationId": reservationID, "methodId": 2})
	require.Equal(t, http.StatusCreated, status, env.Mess)

	status, env = a.call(http.MethodGet, "/api/v1/notifications", ana, nil)
	require.Equal(t, http.StatusOK, status)
	var inbox []struct {
		Event string `json:"event"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	assert.Len(t, inbox, 3)

	status, _ = a.call(http.MethodGet, "/api/v1/dashboard/admin", ana, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = a.call(http.MethodGet, "/api/v1/dashboard/admin", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var board struct {
		Revenue float64 `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &board))
	assert.InDelta(t, created.TotalPrice, board.Revenue, 0.001)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/api/v1/reservations", "/api/v1/payments", "/api/v1/profile", "/api/v1/services"} {
		status, env := a.call(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, 0, env.Code, path)
	}

	status, _ := a.call(http.MethodGet, "/api/v1/hotel-configuration", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestInvalidDatesRejected(t *testing.T) {
	a := newAPI(t)
	adminToken := a.login("admin@hotel.test", "admin-pass")
	_, env := a.call(http.MethodPost, "/api/v1/rooms", adminToken, gin.H{"number": "101", "capacity": 2, "basePrice": 100})
	roomID := id(t, env)

	status, _ := a.call(http.MethodPost, "/api/v1/reservations", adminToken, gin.H{
		"roomId": roomID, "startDate": date(10), "endDate": date(8), "guests": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.call(http.MethodPost, "/api/v1/reservations", adminToken, gin.H{
		"roomId": roomID, "startDate": "10/04/2026", "endDate": date(8), "guests": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
