package memory

import (
	"context"
	"sort"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

type paymentRepo struct{ s *Store }

func paymentsFor(d *data, reservationID uint) []models.Payment {
	var out []models.Payment
	for _, p := range d.payments {
		if p.ReservationID == reservationID {
			out = append(out, withMethod(d, p))
		}
	}
	sortPayments(out, true)
	return out
}

func withMethod(d *data, p models.Payment) models.Payment {
	if m, ok := d.methods[p.MethodID]; ok {
		p.Method = &m
	}
	return p
}

func sortPayments(p []models.Payment, asc bool) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].CreatedAt.Equal(p[j].CreatedAt) {
			return (p[i].ID < p[j].ID) == asc
		}
		return p[i].CreatedAt.Before(p[j].CreatedAt) == asc
	})
}

func transactionTaken(d *data, txID string, id uint) bool {
	if txID == "" {
		return false
	}
	for _, p := range d.payments {
		if p.TransactionID == txID && p.ID != id {
			return true
		}
	}
	return false
}

func (r *paymentRepo) Create(_ context.Context, p *models.Payment) error {
	return r.s.do(func(d *data) error {
		if transactionTaken(d, p.TransactionID, 0) {
			return repository.ErrDuplicate
		}
		p.ID = d.nextID("payments")
		now := r.s.db.now()
		p.CreatedAt, p.UpdatedAt = now, now
		row := *p
		row.Method = nil
		d.payments[p.ID] = row
		return nil
	})
}

func (r *paymentRepo) Update(_ context.Context, p *models.Payment) error {
	return r.s.do(func(d *data) error {
		if _, ok := d.payments[p.ID]; !ok {
			return repository.ErrNotFound
		}
		if transactionTaken(d, p.TransactionID, p.ID) {
			return repository.ErrDuplicate
		}
		p.UpdatedAt = r.s.db.now()
		row := *p
		row.Method = nil
		d.payments[p.ID] = row
		return nil
	})
}

func (r *paymentRepo) ListByReservation(_ context.Context, reservationID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := r.s.do(func(d *data) error {
		out = paymentsFor(d, reservationID)
		return nil
	})
	return out, err
}

func ownedBy(d *data, p models.Payment, clientID *uint) bool {
	if clientID == nil {
		return true
	}
	res, ok := d.reservations[p.ReservationID]
	return ok && res.ClientID == *clientID
}

func (r *paymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]models.Payment, int64, error) {
	var out []models.Payment
	err := r.s.do(func(d *data) error {
		for _, p := range d.payments {
			if !ownedBy(d, p, f.ClientID) {
				continue
			}
			if f.ReservationID != nil && p.ReservationID != *f.ReservationID {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			out = append(out, withMethod(d, p))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sortPayments(out, false)
	total := int64(len(out))
	return page(out, f.Page, f.Limit), total, nil
}

func (r *paymentRepo) SumNet(_ context.Context, clientID *uint) (float64, error) {
	var sum float64
	err := r.s.do(func(d *data) error {
		for _, p := range d.payments {
			if p.Status != models.PaymentStatusCompleted && p.Status != models.PaymentStatusRefunded {
				continue
			}
			if ownedBy(d, p, clientID) {
				sum += p.Amount
			}
		}
		return nil
	})
	return sum, err
}

func (r *paymentRepo) GetMethod(_ context.Context, id uint) (*models.PaymentMethod, error) {
	var out models.PaymentMethod
	err := r.s.do(func(d *data) error {
		m, ok := d.methods[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *paymentRepo) ListMethods(_ context.Context) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	err := r.s.do(func(d *data) error {
		for _, m := range d.methods {
			out = append(out, m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *paymentRepo) SeedMethods(_ context.Context, methods []models.PaymentMethod) error {
	return r.s.do(func(d *data) error {
		for _, m := range methods {
			exists := false
			for _, cur := range d.methods {
				if cur.Code == m.Code {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			if m.ID == 0 {
				m.ID = d.nextID("payment_methods")
			}
			d.bump("payment_methods", m.ID)
			d.methods[m.ID] = m
		}
		return nil
	})
}
