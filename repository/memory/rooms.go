package memory

import (
	"context"
	"sort"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

type roomRepo struct{ s *Store }

func numberTaken(d *data, number string, id uint) bool {
	for _, r := range d.rooms {
		if r.Number == number && r.ID != id {
			return true
		}
	}
	return false
}

func (r *roomRepo) Create(_ context.Context, room *models.Room) error {
	return r.s.do(func(d *data) error {
		if numberTaken(d, room.Number, 0) {
			return repository.ErrDuplicate
		}
		room.ID = d.nextID("rooms")
		if room.Status == "" {
			room.Status = models.RoomStatusAvailable
		}
		now := r.s.db.now()
		room.CreatedAt, room.UpdatedAt = now, now
		d.rooms[room.ID] = copyRoom(*room)
		return nil
	})
}

func (r *roomRepo) Update(_ context.Context, room *models.Room) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.rooms[room.ID]; !ok {
			return repository.ErrNotFound
		}
		if numberTaken(d, room.Number, room.ID) {
			return repository.ErrDuplicate
		}
		room.UpdatedAt = r.s.db.now()
		d.rooms[room.ID] = copyRoom(*room)
		return nil
	})
}

func (r *roomRepo) Delete(_ context.Context, id uint) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.rooms[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.rooms, id)
		return nil
	})
}

func (r *roomRepo) GetByID(_ context.Context, id uint) (*models.Room, error) {
	var out models.Room
	err := r.s.do(func(d *data) error {
		room, ok := d.rooms[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyRoom(room)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate needs no row lock, the transaction already holds the store mutex
func (r *roomRepo) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *roomRepo) List(_ context.Context) ([]models.Room, error) {
	var out []models.Room
	err := r.s.do(func(d *data) error {
		out = make([]models.Room, 0, len(d.rooms))
		for _, room := range d.rooms {
			out = append(out, copyRoom(room))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, err
}

func (r *roomRepo) UpdateStatus(_ context.Context, id uint, status models.RoomStatus) error {
	return r.s.do(func(d *data) error {
		room, ok := d.rooms[id]
		if !ok {
			return repository.ErrNotFound
		}
		room.Status = status
		room.UpdatedAt = r.s.db.now()
		d.rooms[id] = room
		return nil
	})
}
