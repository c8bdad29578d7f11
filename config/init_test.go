package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenUsers map[string]uint

func (t tokenUsers) GetUserIDFromToken(token string) (uint, int, error) {
	if id, ok := t[token]; ok {
		return id, 0, nil
	}
	return 0, 0, errors.New("bad token")
}

func TestWebSocketDeliversOnlyToRecipient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := melody.New()
	defer m.Close()
	connected := make(chan struct{}, 2)
	m.HandleConnect(func(*melody.Session) { connected <- struct{}{} })
	InitWebSocket(router, m, tokenUsers{"ana": 2, "luis": 3})

	srv := httptest.NewServer(router)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token="

	_, resp, err := websocket.DefaultDialer.Dial(base+"nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ana, _, err := websocket.DefaultDialer.Dial(base+"ana", nil)
	require.NoError(t, err)
	defer ana.Close()
	luis, _, err := websocket.DefaultDialer.Dial(base+"luis", nil)
	require.NoError(t, err)
	defer luis.Close()
	for i := 0; i < 2; i++ {
		select {
		case <-connected:
		case <-time.After(2 * time.Second):
			t.Fatal("websocket session was not registered")
		}
	}

	ch := notification.NewMelodyService(m)
	require.NoError(t, ch.Send(context.Background(), notification.Message{
		UserID: 2, Event: notification.EventManual, Title: "Pool", Body: "The pool is closed today",
	}))

	require.NoError(t, ana.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := ana.ReadMessage()
	require.NoError(t, err)
	var got notification.Message
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Pool", got.Title)
	assert.EqualValues(t, 2, got.UserID)

	require.NoError(t, luis.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = luis.ReadMessage()
	assert.Error(t, err, "other users' sessions receive nothing")
}
