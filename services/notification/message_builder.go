package notification

import (
	"fmt"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"
)

// MessageBuilder formats the title and text for a lifecycle event
type MessageBuilder struct {
	event       Event
	userID      uint
	reservation *models.Reservation
	amount      float64
	percentage  int
	reason      string
	title       string
	body        string
}

func NewMessageBuilder(event Event) *MessageBuilder {
	return &MessageBuilder{event: event}
}

func (b *MessageBuilder) To(userID uint) *MessageBuilder {
	b.userID = userID
	return b
}

func (b *MessageBuilder) Reservation(r *models.Reservation) *MessageBuilder {
	b.reservation = r
	return b
}

func (b *MessageBuilder) Amount(amount float64) *MessageBuilder {
	b.amount = amount
	return b
}

func (b *MessageBuilder) Percentage(p int) *MessageBuilder {
	b.percentage = p
	return b
}

func (b *MessageBuilder) Reason(reason string) *MessageBuilder {
	b.reason = reason
	return b
}

// Text sets a free-form title and body, used for manual notices
func (b *MessageBuilder) Text(title, body string) *MessageBuilder {
	b.title = title
	b.body = body
	return b
}

func (b *MessageBuilder) roomLabel() string {
	r := b.reservation
	if r.Room != nil && r.Room.Number != "" {
		return "room " + r.Room.Number
	}
	return fmt.Sprintf("room #%d", r.RoomID)
}

func (b *MessageBuilder) stay() string {
	r := b.reservation
	return fmt.Sprintf("%s, %s to %s", b.roomLabel(), utils.FormatDate(r.StartDate), utils.FormatDate(r.EndDate))
}

func (b *MessageBuilder) Build() Message {
	msg := Message{UserID: b.userID, Event: b.event, Title: b.title, Body: b.body}
	r := b.reservation
	if r == nil {
		return msg
	}
	if msg.UserID == 0 {
		msg.UserID = r.ClientID
	}
	msg.Payload = map[string]any{
		"reservationId": r.ID,
		"roomId":        r.RoomID,
		"status":        r.Status,
		"startDate":     utils.FormatDate(r.StartDate),
		"endDate":       utils.FormatDate(r.EndDate),
		"total":         r.TotalPrice,
	}

	switch b.event {
	case EventReservationCreated:
		msg.Title = "Reservation received"
		msg.Body = fmt.Sprintf("Reservation #%d for %s is pending confirmation. Total %.2f.", r.ID, b.stay(), r.TotalPrice)
	case EventReservationConfirmed:
		msg.Title = "Reservation confirmed"
		msg.Body = fmt.Sprintf("Reservation #%d for %s is confirmed.", r.ID, b.stay())
	case EventReservationCancelled:
		msg.Title = "Reservation cancelled"
		msg.Body = fmt.Sprintf("Reservation #%d for %s was cancelled.", r.ID, b.stay())
	case EventReservationCompleted:
		msg.Title = "Reservation completed"
		msg.Body = fmt.Sprintf("Reservation #%d is completed. Thank you for staying with us.", r.ID)
	case EventReservationModified:
		msg.Title = "Reservation updated"
		msg.Body = fmt.Sprintf("Reservation #%d now covers %s. New total %.2f (difference %+.2f).",
			r.ID, b.stay(), r.TotalPrice, r.PriceDifference)
		msg.Payload["priceDifference"] = r.PriceDifference
	case EventPaymentReceived:
		msg.Title = "Payment received"
		msg.Body = fmt.Sprintf("We received %.2f for reservation #%d.", b.amount, r.ID)
		msg.Payload["amount"] = b.amount
	case EventRefundRequested:
		msg.Title = "Refund requested"
		msg.Body = fmt.Sprintf("A refund of %.2f was requested for reservation #%d.", b.amount, r.ID)
		msg.Payload["amount"] = b.amount
	case EventRefundProcessed:
		msg.Title = "Refund processed"
		msg.Body = fmt.Sprintf("%.2f (%d%%) was refunded for reservation #%d.", b.amount, b.percentage, r.ID)
		msg.Payload["amount"] = b.amount
		msg.Payload["percentage"] = b.percentage
	case EventRefundRejected:
		msg.Title = "Refund rejected"
		msg.Body = fmt.Sprintf("The refund request for reservation #%d was rejected.", r.ID)
	case EventCheckInReminder:
		msg.Title = "Check-in tomorrow"
		msg.Body = fmt.Sprintf("Reminder: your stay in %s starts tomorrow.", b.stay())
	}
	if b.reason != "" {
		msg.Body += " Reason: " + b.reason
		msg.Payload["reason"] = b.reason
	}
	if b.title != "" {
		msg.Title = b.title
	}
	return msg
}
