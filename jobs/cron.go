package jobs

import (
	"context"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"

	"github.com/robfig/cron/v3"
)

// CheckInReminderSpec runs every day at 08:00
const CheckInReminderSpec = "0 8 * * *"

// ReminderSender is satisfied by services.BookingFacade
type ReminderSender interface {
	SendCheckInReminders(ctx context.Context, day time.Time) (int, error)
}

// RunCheckInReminders notifies guests whose confirmed stay starts the day after now
func RunCheckInReminders(ctx context.Context, sender ReminderSender, log logger.Logger, now time.Time) {
	sent, err := sender.SendCheckInReminders(ctx, now)
	if err != nil {
		log.Error("check-in reminders after %s: %v", now.Format("2006-01-02"), err)
		return
	}
	log.Info("check-in reminders sent: %d", sent)
}

// InitCronJobs registers the scheduled jobs and starts c
func InitCronJobs(c *cron.Cron, sender ReminderSender, log logger.Logger) error {
	_, err := c.AddFunc(CheckInReminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		RunCheckInReminders(ctx, sender, log, time.Now())
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized")
	return nil
}
