package repository

import (
	"context"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
)

type NotificationRepo struct{ db *gorm.DB }

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *NotificationRepo) Update(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Save(n).Error)
}

func (r *NotificationRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) List(ctx context.Context, f NotificationFilter) ([]models.Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Notification{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Offset(Offset(f.Page, f.Limit)).Limit(f.Limit)
	}
	var out []models.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}
