package services

import (
	"context"
	"strings"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"
)

// NotificationService backs the notification inbox endpoints
type NotificationService struct {
	store    repository.Store
	notifier Notifier
	logger   logger.Logger
}

type NotificationServiceOptions struct {
	Store    repository.Store
	Notifier Notifier
	Logger   logger.Logger
}

func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	return &NotificationService{store: opts.Store, notifier: opts.Notifier, logger: opts.Logger}
}

func (s *NotificationService) List(ctx context.Context, actor Actor, f repository.NotificationFilter) ([]models.Notification, int64, error) {
	if !actor.IsAdmin() {
		f.UserID = &actor.UserID
	}
	out, total, err := s.store.Notifications().List(ctx, f)
	if err != nil {
		return nil, 0, storeError(err, apperrors.ErrNotificationNotFound)
	}
	return out, total, nil
}

func (s *NotificationService) owned(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	n, err := s.store.Notifications().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrNotificationNotFound)
	}
	if !actor.IsAdmin() && n.UserID != actor.UserID {
		return nil, storeError(repository.ErrNotFound, apperrors.ErrNotificationNotFound)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	n, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	if err := s.store.Notifications().Update(ctx, n); err != nil {
		return nil, storeError(err, apperrors.ErrNotificationNotFound)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return storeError(s.store.Notifications().Delete(ctx, id), apperrors.ErrNotificationNotFound)
}

// Send delivers a manual notice. An empty userIDs list targets every client.
func (s *NotificationService) Send(ctx context.Context, actor Actor, userIDs []uint, title, body string) (int, error) {
	if !actor.IsAdmin() {
		return 0, forbidden("only administrators can send notifications")
	}
	if strings.TrimSpace(body) == "" {
		return 0, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "message is required", apperrors.ErrMissingRequired)
	}
	if len(userIDs) == 0 {
		clients, err := s.store.Users().ListByRole(ctx, constants.RoleClient)
		if err != nil {
			return 0, storeError(err, apperrors.ErrUserNotFound)
		}
		for _, c := range clients {
			userIDs = append(userIDs, c.ID)
		}
	}
	msgs := make([]notification.Message, 0, len(userIDs))
	for _, id := range userIDs {
		msgs = append(msgs, notification.NewMessageBuilder(notification.EventManual).To(id).Text(title, body).Build())
	}
	s.notifier.Dispatch(ctx, msgs...)
	s.logger.Info("manual notification sent to %d users", len(msgs))
	return len(msgs), nil
}
