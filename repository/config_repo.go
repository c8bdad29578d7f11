package repository

import (
	"context"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
)

type HotelConfigRepo struct{ db *gorm.DB }

func (r *HotelConfigRepo) Get(ctx context.Context) (*models.HotelConfiguration, error) {
	var cfg models.HotelConfiguration
	if err := r.db.WithContext(ctx).Order("id ASC").First(&cfg).Error; err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (r *HotelConfigRepo) Save(ctx context.Context, cfg *models.HotelConfiguration) error {
	if cfg.ID == 0 {
		cfg.ID = 1
	}
	return translate(r.db.WithContext(ctx).Save(cfg).Error)
}
