package memory

import (
	"context"
	"sort"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

type serviceRepo struct{ s *Store }

func (r *serviceRepo) Create(_ context.Context, svc *models.Service) error {
	return r.s.do(func(d *data) error {
		svc.ID = d.nextID("services")
		now := r.s.db.now()
		svc.CreatedAt, svc.UpdatedAt = now, now
		d.services[svc.ID] = *svc
		return nil
	})
}

func (r *serviceRepo) Update(_ context.Context, svc *models.Service) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.services[svc.ID]; !ok {
			return repository.ErrNotFound
		}
		svc.UpdatedAt = r.s.db.now()
		d.services[svc.ID] = *svc
		return nil
	})
}

func (r *serviceRepo) Delete(_ context.Context, id uint) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.services[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.services, id)
		return nil
	})
}

func (r *serviceRepo) GetByID(_ context.Context, id uint) (*models.Service, error) {
	var out models.Service
	err := r.s.do(func(d *data) error {
		svc, ok := d.services[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *serviceRepo) GetByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	err := r.s.do(func(d *data) error {
		for _, id := range ids {
			if svc, ok := d.services[id]; ok {
				out = append(out, svc)
			}
		}
		return nil
	})
	return out, err
}

func (r *serviceRepo) List(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	err := r.s.do(func(d *data) error {
		for _, svc := range d.services {
			out = append(out, svc)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, n *models.Notification) error {
	return r.s.do(func(d *data) error {
		n.ID = d.nextID("notifications")
		now := r.s.db.now()
		n.CreatedAt, n.UpdatedAt = now, now
		d.notifications[n.ID] = copyNotification(*n)
		return nil
	})
}

func (r *notificationRepo) GetByID(_ context.Context, id uint) (*models.Notification, error) {
	var out models.Notification
	err := r.s.do(func(d *data) error {
		n, ok := d.notifications[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyNotification(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notificationRepo) Update(_ context.Context, n *models.Notification) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.notifications[n.ID]; !ok {
			return repository.ErrNotFound
		}
		n.UpdatedAt = r.s.db.now()
		d.notifications[n.ID] = copyNotification(*n)
		return nil
	})
}

func (r *notificationRepo) Delete(_ context.Context, id uint) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.notifications[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.notifications, id)
		return nil
	})
}

func (r *notificationRepo) List(_ context.Context, f repository.NotificationFilter) ([]models.Notification, int64, error) {
	var out []models.Notification
	err := r.s.do(func(d *data) error {
		for _, n := range d.notifications {
			if f.UserID != nil && n.UserID != *f.UserID {
				continue
			}
			if f.UnreadOnly && n.Read {
				continue
			}
			out = append(out, copyNotification(n))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	total := int64(len(out))
	return page(out, f.Page, f.Limit), total, nil
}

type configRepo struct{ s *Store }

func (r *configRepo) Get(_ context.Context) (*models.HotelConfiguration, error) {
	var out models.HotelConfiguration
	err := r.s.do(func(d *data) error {
		if d.config == nil {
			return repository.ErrNotFound
		}
		out = *d.config
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *configRepo) Save(_ context.Context, cfg *models.HotelConfiguration) error {
	return r.s.do(func(d *data) error {
		if cfg.ID == 0 {
			cfg.ID = 1
		}
		cfg.UpdatedAt = r.s.db.now()
		c := *cfg
		d.config = &c
		return nil
	})
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *models.User) error {
	return r.s.do(func(d *data) error {
		for _, cur := range d.users {
			if cur.Email == u.Email {
				return repository.ErrDuplicate
			}
		}
		u.ID = d.nextID("users")
		now := r.s.db.now()
		u.CreatedAt, u.UpdatedAt = now, now
		d.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	var out models.User
	err := r.s.do(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var out models.User
	err := r.s.do(func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				out = u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) ListByRole(_ context.Context, role int) ([]models.User, error) {
	var out []models.User
	err := r.s.do(func(d *data) error {
		for _, u := range d.users {
			if u.Role == role {
				out = append(out, u)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
