package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"
)

type RoomFilter struct {
	Status      models.RoomStatus
	Floor       *int
	MinCapacity *int
	MaxPrice    *float64
	Amenity     string
	Page        int
	Limit       int
}

type RoomInput struct {
	Number      *string
	Floor       *int
	Capacity    *int
	BasePrice   *float64
	Status      *models.RoomStatus
	Amenities   []string
	Description *string
}

type RoomAvailability struct {
	RoomID    uint              `json:"roomId"`
	Number    string            `json:"number"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Status    models.RoomStatus `json:"status"`
	Available bool              `json:"available"`
}

type RoomService struct {
	store    repository.Store
	cache    *Cache
	uploader ImageUploader
	logger   logger.Logger
}

type RoomServiceOptions struct {
	Store    repository.Store
	Cache    *Cache
	Uploader ImageUploader
	Logger   logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	return &RoomService{store: opts.Store, cache: opts.Cache, uploader: opts.Uploader, logger: opts.Logger}
}

func (s *RoomService) all(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if found, err := s.cache.Get(ctx, constants.CacheKeyRooms, &rooms); err != nil {
		s.logger.Error("read rooms cache: %v", err)
	} else if found {
		return rooms, nil
	}

	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	if err := s.cache.Set(ctx, constants.CacheKeyRooms, rooms); err != nil {
		s.logger.Error("write rooms cache: %v", err)
	}
	return rooms, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	invalidateRooms(ctx, s.cache, s.logger)
}

// invalidateRooms drops every cached room list. Callers run it after the transaction
// that changed a room has committed.
func invalidateRooms(ctx context.Context, cache *Cache, log logger.Logger) {
	if err := cache.DeletePattern(ctx, constants.CacheKeyRoomsPrefix+"*"); err != nil {
		log.Error("invalidate rooms cache: %v", err)
	}
}

func matchesRoom(r models.Room, f RoomFilter) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Floor != nil && r.Floor != *f.Floor {
		return false
	}
	if f.MinCapacity != nil && r.Capacity < *f.MinCapacity {
		return false
	}
	if f.MaxPrice != nil && r.BasePrice > *f.MaxPrice {
		return false
	}
	if f.Amenity != "" {
		found := false
		for _, a := range r.Amenities {
			if fuzzyContains(a, f.Amenity) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// List filters the cached room list and paginates it
func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]models.Room, int, error) {
	rooms, err := s.all(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if matchesRoom(r, f) {
			filtered = append(filtered, r)
		}
	}
	total := len(filtered)
	if f.Limit <= 0 {
		return filtered, total, nil
	}
	start := repository.Offset(f.Page, f.Limit)
	if start >= total {
		return []models.Room{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	return room, nil
}

func applyRoomInput(room *models.Room, in RoomInput) error {
	if in.Number != nil {
		room.Number = *in.Number
	}
	if in.Floor != nil {
		room.Floor = *in.Floor
	}
	if in.Capacity != nil {
		room.Capacity = *in.Capacity
	}
	if in.BasePrice != nil {
		room.BasePrice = *in.BasePrice
	}
	if in.Status != nil {
		room.Status = *in.Status
	}
	if in.Amenities != nil {
		room.Amenities = in.Amenities
	}
	if in.Description != nil {
		room.Description = *in.Description
	}

	if room.Number == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "room number is required", apperrors.ErrMissingRequired)
	}
	if room.Capacity < 1 {
		return validation("capacity must be at least 1")
	}
	if room.BasePrice <= 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "base price must be positive", apperrors.ErrInvalidAmount)
	}
	if err := room.ValidateStatus(); err != nil {
		return validation(err.Error())
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	room := &models.Room{Status: models.RoomStatusAvailable}
	if err := applyRoomInput(room, in); err != nil {
		return nil, err
	}
	if err := s.store.Rooms().Create(ctx, room); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, fmt.Sprintf("room %s already exists", room.Number), err)
		}
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	s.invalidate(ctx)
	s.logger.Info("room %s created (id=%d)", room.Number, room.ID)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	var room *models.Room
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		if room, err = tx.Rooms().GetForUpdate(ctx, id); err != nil {
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		previous := room.Status
		if err := applyRoomInput(room, in); err != nil {
			return err
		}
		if room.Status != previous {
			if err := checkStatusChange(ctx, tx, room.ID, room.Status); err != nil {
				return err
			}
		}
		if err := tx.Rooms().Update(ctx, room); err != nil {
			if apperrors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, fmt.Sprintf("room %s already exists", room.Number), err)
			}
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return room, nil
}

// checkStatusChange refuses maintenance while an active reservation holds the room
func checkStatusChange(ctx context.Context, tx repository.Store, roomID uint, status models.RoomStatus) error {
	if status != models.RoomStatusMaintenance {
		return nil
	}
	active, err := tx.Reservations().HasActiveForRoom(ctx, roomID)
	if err != nil {
		return storeError(err, apperrors.ErrReservationNotFound)
	}
	if active {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidOperation,
			"room has active reservations and cannot go into maintenance", nil)
	}
	return nil
}

func (s *RoomService) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) (*models.Room, error) {
	if !status.IsValid() {
		return nil, validation(fmt.Sprintf("invalid status: %q", status))
	}
	var room *models.Room
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		if room, err = tx.Rooms().GetForUpdate(ctx, id); err != nil {
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		if err := checkStatusChange(ctx, tx, id, status); err != nil {
			return err
		}
		if err := tx.Rooms().UpdateStatus(ctx, id, status); err != nil {
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		room.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("room %d status -> %s", id, status)
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Rooms().GetForUpdate(ctx, id); err != nil {
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		active, err := tx.Reservations().HasActiveForRoom(ctx, id)
		if err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if active {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "room has active reservations and cannot be deleted", nil)
		}
		return storeError(tx.Rooms().Delete(ctx, id), apperrors.ErrRoomNotFound)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomService) Availability(ctx context.Context, id uint, start, end time.Time) (*RoomAvailability, error) {
	if !end.After(start) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidDateRange, "end date must be after start date", nil)
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	free, err := NewAvailabilityChecker(s.store.Reservations()).IsAvailable(ctx, id, start, end, 0)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	return &RoomAvailability{
		RoomID:    room.ID,
		Number:    room.Number,
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
		Status:    room.Status,
		Available: free && room.Status != models.RoomStatusMaintenance,
	}, nil
}

func (s *RoomService) UploadPhoto(ctx context.Context, id uint, file io.Reader) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "image uploads are not configured", nil)
	}
	url, err := s.uploader.Upload(ctx, file, "rooms", fmt.Sprintf("room-%d", room.ID))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "upload failed", err)
	}
	room.PhotoURL = url
	if err := s.store.Rooms().Update(ctx, room); err != nil {
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	s.invalidate(ctx)
	return room, nil
}
