package repository

import (
	"context"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepo struct{ db *gorm.DB }

func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *PaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := r.db.WithContext(ctx).Preload("Method").
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC").
		Find(&out).Error
	return out, translate(err)
}

func (r *PaymentRepo) scoped(ctx context.Context, clientID *uint) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if clientID != nil {
		q = q.Joins("JOIN reservations ON reservations.id = payments.reservation_id").
			Where("reservations.client_id = ?", *clientID)
	}
	return q
}

func (r *PaymentRepo) List(ctx context.Context, f PaymentFilter) ([]models.Payment, int64, error) {
	q := r.scoped(ctx, f.ClientID)
	if f.ReservationID != nil {
		q = q.Where("payments.reservation_id = ?", *f.ReservationID)
	}
	if f.Status != "" {
		q = q.Where("payments.status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	q = q.Preload("Method").Order("payments.created_at DESC")
	if f.Limit > 0 {
		q = q.Offset(Offset(f.Page, f.Limit)).Limit(f.Limit)
	}
	var out []models.Payment
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *PaymentRepo) SumNet(ctx context.Context, clientID *uint) (float64, error) {
	var sum float64
	err := r.scoped(ctx, clientID).
		Where("payments.status IN ?", []models.PaymentStatus{models.PaymentStatusCompleted, models.PaymentStatusRefunded}).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&sum).Error
	return sum, translate(err)
}

func (r *PaymentRepo) GetMethod(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *PaymentRepo) ListMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, translate(err)
}

func (r *PaymentRepo) SeedMethods(ctx context.Context, methods []models.PaymentMethod) error {
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&methods).Error)
}
