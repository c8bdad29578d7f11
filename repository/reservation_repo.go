package repository

import (
	"context"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepo struct{ db *gorm.DB }

// Create inserts the reservation and its service attachments
func (r *ReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	services := res.Services
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error; err != nil {
		return translate(err)
	}
	if len(services) == 0 {
		return nil
	}
	return r.ReplaceServices(ctx, res.ID, services)
}

// Update writes the reservation's own columns; associations are managed separately
func (r *ReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error)
}

func (r *ReservationRepo) ReplaceServices(ctx context.Context, reservationID uint, services []models.ReservationService) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("reservation_id = ?", reservationID).Delete(&models.ReservationService{}).Error; err != nil {
		return translate(err)
	}
	if len(services) == 0 {
		return nil
	}
	for i := range services {
		services[i].ReservationID = reservationID
	}
	return translate(db.Omit("Service").Create(&services).Error)
}

func (r *ReservationRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Room").
		Preload("Services.Service").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

func (r *ReservationRepo) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.preloaded(ctx).First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationRepo) GetForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Services").
		First(&res, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationRepo) HasOverlap(ctx context.Context, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveReservationStatuses).
		Where("(start_date < ? AND end_date > ?) OR start_date = ? OR end_date = ?", end, start, start, end)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *ReservationRepo) HasActiveForRoom(ctx context.Context, roomID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveReservationStatuses).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("end_date > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_date < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q = q.Preload("Room").Preload("Services.Service").Order("start_date DESC")
	if f.Limit > 0 {
		q = q.Offset(Offset(f.Page, f.Limit)).Limit(f.Limit)
	}
	var out []models.Reservation
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *ReservationRepo) CountCompletedByClient(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("client_id = ? AND status = ?", clientID, models.ReservationStatusCompleted).
		Count(&count).Error
	return count, translate(err)
}

func (r *ReservationRepo) CountByStatus(ctx context.Context, clientID *uint) (map[models.ReservationStatus]int64, error) {
	type row struct {
		Status models.ReservationStatus
		Count  int64
	}
	var rows []row
	q := r.db.WithContext(ctx).Model(&models.Reservation{}).Select("status, COUNT(*) AS count").Group("status")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make(map[models.ReservationStatus]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Count
	}
	return out, nil
}

func (r *ReservationRepo) StartingBetween(ctx context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).Preload("Room").
		Where("start_date >= ? AND start_date < ? AND status = ?", from, to, status).
		Order("start_date ASC").
		Find(&out).Error
	return out, translate(err)
}
