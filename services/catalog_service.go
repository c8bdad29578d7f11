package services

import (
	"context"
	"strings"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
)

type ServiceInput struct {
	Name        *string
	Description *string
	Price       *float64
	Available   *bool
}

type ServiceSearchResult struct {
	Services   []models.Service `json:"services"`
	Suggestion string           `json:"suggestion,omitempty"`
}

// CatalogService manages the add-on services that can be attached to reservations
type CatalogService struct {
	store  repository.Store
	cache  *Cache
	logger logger.Logger
}

type CatalogServiceOptions struct {
	Store  repository.Store
	Cache  *Cache
	Logger logger.Logger
}

func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	return &CatalogService{store: opts.Store, cache: opts.Cache, logger: opts.Logger}
}

func (s *CatalogService) all(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if found, err := s.cache.Get(ctx, constants.CacheKeyServices, &services); err != nil {
		s.logger.Error("read services cache: %v", err)
	} else if found {
		return services, nil
	}
	services, err := s.store.Services().List(ctx)
	if err != nil {
		return nil, storeError(err, apperrors.ErrServiceNotFound)
	}
	if err := s.cache.Set(ctx, constants.CacheKeyServices, services); err != nil {
		s.logger.Error("write services cache: %v", err)
	}
	return services, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CacheKeyServices); err != nil {
		s.logger.Error("invalidate services cache: %v", err)
	}
}

// List returns the catalog; clients only see available services
func (s *CatalogService) List(ctx context.Context, actor Actor) ([]models.Service, error) {
	services, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return services, nil
	}
	out := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if svc.Available {
			out = append(out, svc)
		}
	}
	return out, nil
}

// Search matches names ignoring accents and small typos
func (s *CatalogService) Search(ctx context.Context, actor Actor, query string) (*ServiceSearchResult, error) {
	services, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return &ServiceSearchResult{Services: services}, nil
	}
	hits, suggestion := rankByName(services, func(svc models.Service) string { return svc.Name }, query)
	return &ServiceSearchResult{Services: hits, Suggestion: suggestion}, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := s.store.Services().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrServiceNotFound)
	}
	return svc, nil
}

func applyServiceInput(svc *models.Service, in ServiceInput) error {
	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Available != nil {
		svc.Available = *in.Available
	}
	if svc.Name == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "service name is required", apperrors.ErrMissingRequired)
	}
	if svc.Price < 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "price cannot be negative", apperrors.ErrInvalidAmount)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	svc := &models.Service{Available: true}
	if err := applyServiceInput(svc, in); err != nil {
		return nil, err
	}
	if err := s.store.Services().Create(ctx, svc); err != nil {
		return nil, storeError(err, apperrors.ErrServiceNotFound)
	}
	s.invalidate(ctx)
	return svc, nil
}

// Update edits the catalog entry. Reservations keep the unit price they were booked with.
func (s *CatalogService) Update(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyServiceInput(svc, in); err != nil {
		return nil, err
	}
	if err := s.store.Services().Update(ctx, svc); err != nil {
		return nil, storeError(err, apperrors.ErrServiceNotFound)
	}
	s.invalidate(ctx)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Services().Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrServiceNotFound)
	}
	s.invalidate(ctx)
	return nil
}
