package repository

import (
	"context"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepo struct{ db *gorm.DB }

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r *RoomRepo) Update(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Save(room).Error)
}

func (r *RoomRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *RoomRepo) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *RoomRepo) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (r *RoomRepo) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
