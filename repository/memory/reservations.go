package memory

import (
	"context"
	"sort"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

type reservationRepo struct{ s *Store }

// stored strips associations, they live in their own maps
func stored(res models.Reservation) models.Reservation {
	res.Room = nil
	res.Client = nil
	res.Services = nil
	res.Payments = nil
	return res
}

func overlaps(res models.Reservation, roomID uint, start, end time.Time, excludeID uint) bool {
	if res.RoomID != roomID || !res.Status.IsActive() {
		return false
	}
	if excludeID != 0 && res.ID == excludeID {
		return false
	}
	return (res.StartDate.Before(end) && res.EndDate.After(start)) ||
		res.StartDate.Equal(start) || res.EndDate.Equal(end)
}

func (r *reservationRepo) Create(_ context.Context, res *models.Reservation) error {
	return r.s.do(func(d *data) error {
		// stands in for the exclusion constraint on the SQL side
		for _, other := range d.reservations {
			if res.Status.IsActive() && overlaps(other, res.RoomID, res.StartDate, res.EndDate, 0) {
				return repository.ErrOverlap
			}
		}
		res.ID = d.nextID("reservations")
		if res.Status == "" {
			res.Status = models.ReservationStatusPending
		}
		now := r.s.db.now()
		res.CreatedAt, res.UpdatedAt = now, now
		d.reservations[res.ID] = stored(*res)
		setServices(d, res.ID, res.Services)
		return nil
	})
}

func (r *reservationRepo) Update(_ context.Context, res *models.Reservation) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.reservations[res.ID]; !ok {
			return repository.ErrNotFound
		}
		if res.Status.IsActive() {
			for _, other := range d.reservations {
				if overlaps(other, res.RoomID, res.StartDate, res.EndDate, res.ID) {
					return repository.ErrOverlap
				}
			}
		}
		res.UpdatedAt = r.s.db.now()
		d.reservations[res.ID] = stored(*res)
		return nil
	})
}

func setServices(d *data, reservationID uint, services []models.ReservationService) {
	if len(services) == 0 {
		delete(d.resServices, reservationID)
		return
	}
	rows := make([]models.ReservationService, len(services))
	for i := range services {
		services[i].ReservationID = reservationID
		rows[i] = services[i]
		rows[i].Service = nil
	}
	d.resServices[reservationID] = rows
}

func (r *reservationRepo) ReplaceServices(_ context.Context, reservationID uint, services []models.ReservationService) error {
	return r.s.do(func(d *data) error {
		setServices(d, reservationID, services)
		return nil
	})
}

func (r *reservationRepo) load(d *data, res models.Reservation, withPayments bool) models.Reservation {
	if room, ok := d.rooms[res.RoomID]; ok {
		room = copyRoom(room)
		res.Room = &room
	}
	for _, rs := range d.resServices[res.ID] {
		if svc, ok := d.services[rs.ServiceID]; ok {
			svc := svc
			rs.Service = &svc
		}
		res.Services = append(res.Services, rs)
	}
	if withPayments {
		res.Payments = paymentsFor(d, res.ID)
	}
	return res
}

func (r *reservationRepo) GetByID(_ context.Context, id uint) (*models.Reservation, error) {
	var out models.Reservation
	err := r.s.do(func(d *data) error {
		res, ok := d.reservations[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = r.load(d, res, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *reservationRepo) GetForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	return r.GetByID(ctx, id)
}

func (r *reservationRepo) HasOverlap(_ context.Context, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	var found bool
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if overlaps(res, roomID, start, end, excludeID) {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *reservationRepo) HasActiveForRoom(_ context.Context, roomID uint) (bool, error) {
	var found bool
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if res.RoomID == roomID && res.Status.IsActive() {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func matches(res models.Reservation, f repository.ReservationFilter) bool {
	if f.ClientID != nil && res.ClientID != *f.ClientID {
		return false
	}
	if f.RoomID != nil && res.RoomID != *f.RoomID {
		return false
	}
	if f.Status != "" && res.Status != f.Status {
		return false
	}
	if f.From != nil && !res.EndDate.After(*f.From) {
		return false
	}
	if f.To != nil && !res.StartDate.Before(*f.To) {
		return false
	}
	return true
}

func (r *reservationRepo) List(_ context.Context, f repository.ReservationFilter) ([]models.Reservation, int64, error) {
	var out []models.Reservation
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if matches(res, f) {
				out = append(out, r.load(d, res, false))
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	total := int64(len(out))
	return page(out, f.Page, f.Limit), total, nil
}

func (r *reservationRepo) CountCompletedByClient(_ context.Context, clientID uint) (int64, error) {
	var count int64
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if res.ClientID == clientID && res.Status == models.ReservationStatusCompleted {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *reservationRepo) CountByStatus(_ context.Context, clientID *uint) (map[models.ReservationStatus]int64, error) {
	out := make(map[models.ReservationStatus]int64)
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if clientID != nil && res.ClientID != *clientID {
				continue
			}
			out[res.Status]++
		}
		return nil
	})
	return out, err
}

func (r *reservationRepo) StartingBetween(_ context.Context, from, to time.Time, status models.ReservationStatus) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.s.do(func(d *data) error {
		for _, res := range d.reservations {
			if res.Status != status || res.StartDate.Before(from) || !res.StartDate.Before(to) {
				continue
			}
			out = append(out, r.load(d, res, false))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, err
}
