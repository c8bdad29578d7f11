package services

import (
	"context"
	"regexp"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ConfigProvider hands out the hotel configuration that pricing and cancellation use
type ConfigProvider interface {
	Current(ctx context.Context) (models.HotelConfiguration, error)
}

type HotelConfigService struct {
	store  repository.Store
	cache  *Cache
	logger logger.Logger
}

type HotelConfigServiceOptions struct {
	Store  repository.Store
	Cache  *Cache
	Logger logger.Logger
}

func NewHotelConfigService(opts HotelConfigServiceOptions) *HotelConfigService {
	return &HotelConfigService{store: opts.Store, cache: opts.Cache, logger: opts.Logger}
}

// Current returns the stored configuration, or the defaults when none was saved
func (s *HotelConfigService) Current(ctx context.Context) (models.HotelConfiguration, error) {
	var cfg models.HotelConfiguration
	if found, err := s.cache.Get(ctx, constants.CacheKeyHotelConfig, &cfg); err != nil {
		s.logger.Error("read hotel configuration cache: %v", err)
	} else if found {
		return cfg, nil
	}

	stored, err := s.store.HotelConfig().Get(ctx)
	if apperrors.Is(err, repository.ErrNotFound) {
		return models.DefaultHotelConfiguration(), nil
	}
	if err != nil {
		return cfg, storeError(err, apperrors.ErrInvalidInput)
	}
	if err := s.cache.Set(ctx, constants.CacheKeyHotelConfig, stored); err != nil {
		s.logger.Error("write hotel configuration cache: %v", err)
	}
	return *stored, nil
}

type UpdateHotelConfigInput struct {
	HotelName               *string
	Currency                *string
	TaxRate                 *float64
	CancellationWindowHours *int
	CheckInTime             *string
	CheckOutTime            *string
}

func (s *HotelConfigService) Update(ctx context.Context, in UpdateHotelConfigInput) (*models.HotelConfiguration, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if in.HotelName != nil {
		cfg.HotelName = *in.HotelName
	}
	if in.Currency != nil {
		if len(*in.Currency) != 3 {
			return nil, validation("currency must be a 3 letter code")
		}
		cfg.Currency = *in.Currency
	}
	if in.TaxRate != nil {
		if *in.TaxRate < 0 || *in.TaxRate > 100 {
			return nil, validation("tax rate must be between 0 and 100")
		}
		cfg.TaxRate = *in.TaxRate
	}
	if in.CancellationWindowHours != nil {
		if *in.CancellationWindowHours < 0 {
			return nil, validation("cancellation window cannot be negative")
		}
		cfg.CancellationWindowHours = *in.CancellationWindowHours
	}
	if in.CheckInTime != nil {
		if !clockPattern.MatchString(*in.CheckInTime) {
			return nil, validation("check-in time must be HH:MM")
		}
		cfg.CheckInTime = *in.CheckInTime
	}
	if in.CheckOutTime != nil {
		if !clockPattern.MatchString(*in.CheckOutTime) {
			return nil, validation("check-out time must be HH:MM")
		}
		cfg.CheckOutTime = *in.CheckOutTime
	}

	if err := s.store.HotelConfig().Save(ctx, &cfg); err != nil {
		return nil, storeError(err, apperrors.ErrInvalidInput)
	}
	if err := s.cache.Delete(ctx, constants.CacheKeyHotelConfig); err != nil {
		s.logger.Error("invalidate hotel configuration cache: %v", err)
	}
	s.logger.Info("hotel configuration updated: tax=%.2f window=%dh", cfg.TaxRate, cfg.CancellationWindowHours)
	return &cfg, nil
}
