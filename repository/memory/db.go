// Package memory is a process-local Store used by tests and by STORAGE=memory runs.
// A transaction holds the store mutex for its whole duration and works on a copy of
// the dataset that replaces the live one only when the callback succeeds.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
)

type data struct {
	seq           map[string]uint
	rooms         map[uint]models.Room
	reservations  map[uint]models.Reservation
	resServices   map[uint][]models.ReservationService
	payments      map[uint]models.Payment
	methods       map[uint]models.PaymentMethod
	services      map[uint]models.Service
	notifications map[uint]models.Notification
	users         map[uint]models.User
	config        *models.HotelConfiguration
}

func newData() *data {
	return &data{
		seq:           make(map[string]uint),
		rooms:         make(map[uint]models.Room),
		reservations:  make(map[uint]models.Reservation),
		resServices:   make(map[uint][]models.ReservationService),
		payments:      make(map[uint]models.Payment),
		methods:       make(map[uint]models.PaymentMethod),
		services:      make(map[uint]models.Service),
		notifications: make(map[uint]models.Notification),
		users:         make(map[uint]models.User),
	}
}

func (d *data) nextID(table string) uint {
	d.seq[table]++
	return d.seq[table]
}

// bump keeps the sequence ahead of explicitly assigned ids
func (d *data) bump(table string, id uint) {
	if id > d.seq[table] {
		d.seq[table] = id
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.seq {
		c.seq[k] = v
	}
	for k, v := range d.rooms {
		c.rooms[k] = copyRoom(v)
	}
	for k, v := range d.reservations {
		c.reservations[k] = v
	}
	for k, v := range d.resServices {
		c.resServices[k] = append([]models.ReservationService(nil), v...)
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	for k, v := range d.methods {
		c.methods[k] = v
	}
	for k, v := range d.services {
		c.services[k] = v
	}
	for k, v := range d.notifications {
		c.notifications[k] = copyNotification(v)
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	if d.config != nil {
		cfg := *d.config
		c.config = &cfg
	}
	return c
}

// DB is the shared state behind every Store handed out by New
type DB struct {
	mu  sync.Mutex
	d   *data
	now func() time.Time
}

// Store implements repository.Store. tx is set when the store is bound to a transaction.
type Store struct {
	db *DB
	tx *data
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store seeded with the default payment methods and hotel configuration
func New() *Store {
	db := &DB{d: newData(), now: time.Now}
	for _, m := range models.DefaultPaymentMethods() {
		db.d.methods[m.ID] = m
		db.d.bump("payment_methods", m.ID)
	}
	cfg := models.DefaultHotelConfiguration()
	db.d.config = &cfg
	return &Store{db: db}
}

// do runs fn against the transaction copy, or against the live data under the lock
func (s *Store) do(fn func(d *data) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.d)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	work := s.db.d.clone()
	if err := fn(&Store{db: s.db, tx: work}); err != nil {
		return err
	}
	s.db.d = work
	return nil
}

func (s *Store) Rooms() repository.RoomRepository               { return &roomRepo{s} }
func (s *Store) Reservations() repository.ReservationRepository { return &reservationRepo{s} }
func (s *Store) Payments() repository.PaymentRepository         { return &paymentRepo{s} }
func (s *Store) Services() repository.ServiceRepository         { return &serviceRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository {
	return &notificationRepo{s}
}
func (s *Store) HotelConfig() repository.HotelConfigRepository { return &configRepo{s} }
func (s *Store) Users() repository.UserRepository              { return &userRepo{s} }

func copyRoom(r models.Room) models.Room {
	if r.Amenities != nil {
		r.Amenities = append([]string(nil), r.Amenities...)
	}
	return r
}

func copyNotification(n models.Notification) models.Notification {
	if n.Payload != nil {
		n.Payload = append([]byte(nil), n.Payload...)
	}
	return n
}

// page slices items the way Offset/Limit would in SQL
func page[T any](items []T, p, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := repository.Offset(p, limit)
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
