package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"gorm.io/datatypes"
)

type Event string

const (
	EventReservationCreated   Event = "reservation.created"
	EventReservationConfirmed Event = "reservation.confirmed"
	EventReservationCancelled Event = "reservation.cancelled"
	EventReservationCompleted Event = "reservation.completed"
	EventReservationModified  Event = "reservation.modified"
	EventPaymentReceived      Event = "payment.received"
	EventRefundRequested      Event = "refund.requested"
	EventRefundProcessed      Event = "refund.processed"
	EventRefundRejected       Event = "refund.rejected"
	EventCheckInReminder      Event = "checkin.reminder"
	EventManual               Event = "manual"
)

const channelApp = "app"

// Message is one notification for one recipient
type Message struct {
	UserID  uint           `json:"userId"`
	Event   Event          `json:"event"`
	Title   string         `json:"title"`
	Body    string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
	SentAt  time.Time      `json:"sentAt"`
}

// Channel delivers a message outside the database
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// LogChannel writes every message to the application log
type LogChannel struct {
	logger logger.Logger
}

func NewLogChannel(l logger.Logger) *LogChannel {
	return &LogChannel{logger: l}
}

func (c *LogChannel) Name() string { return "log" }

func (c *LogChannel) Send(_ context.Context, msg Message) error {
	c.logger.Info("[notify] user=%d event=%s %s: %s", msg.UserID, msg.Event, msg.Title, msg.Body)
	return nil
}

// SessionUserKey is the melody session key holding the connected user's id
const SessionUserKey = "userID"

// MelodyService pushes messages to the websocket sessions of the recipient
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Name() string { return "websocket" }

func (s *MelodyService) Send(_ context.Context, msg Message) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(b, func(sess *melody.Session) bool {
		id, ok := sess.Get(SessionUserKey)
		return ok && id == msg.UserID
	})
}

// Publisher is satisfied by mq.Publisher
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AMQPChannel publishes each message with its event as the routing key
type AMQPChannel struct {
	pub Publisher
}

func NewAMQPChannel(pub Publisher) *AMQPChannel {
	return &AMQPChannel{pub: pub}
}

func (c *AMQPChannel) Name() string { return "amqp" }

func (c *AMQPChannel) Send(ctx context.Context, msg Message) error {
	return c.pub.PublishJSON(ctx, string(msg.Event), msg)
}

// Dispatcher stores notifications and fans them out to the channels. Delivery
// failures are logged and never returned.
type Dispatcher struct {
	repo     repository.NotificationRepository
	channels []Channel
	logger   logger.Logger
	now      func() time.Time
}

type DispatcherOptions struct {
	Repo     repository.NotificationRepository
	Channels []Channel
	Logger   logger.Logger
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	return &Dispatcher{
		repo:     opts.Repo,
		channels: opts.Channels,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msgs ...Message) {
	for _, msg := range msgs {
		if msg.SentAt.IsZero() {
			msg.SentAt = d.now()
		}
		if err := d.persist(ctx, msg); err != nil {
			d.logger.Error("store notification %s for user %d: %v", msg.Event, msg.UserID, err)
		}
		for _, ch := range d.channels {
			if err := ch.Send(ctx, msg); err != nil {
				d.logger.Error("send notification %s over %s: %v", msg.Event, ch.Name(), err)
			}
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, msg Message) error {
	if d.repo == nil || msg.UserID == 0 {
		return nil
	}
	var payload datatypes.JSON
	if len(msg.Payload) > 0 {
		b, err := json.Marshal(msg.Payload)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(b)
	}
	return d.repo.Create(ctx, &models.Notification{
		UserID:  msg.UserID,
		Event:   string(msg.Event),
		Channel: channelApp,
		Title:   msg.Title,
		Message: msg.Body,
		Payload: payload,
	})
}
