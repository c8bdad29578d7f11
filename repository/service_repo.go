package repository

import (
	"context"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
)

type ServiceRepo struct{ db *gorm.DB }

func (r *ServiceRepo) Create(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *ServiceRepo) Update(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *ServiceRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ServiceRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, translate(err)
}

func (r *ServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, translate(err)
}
