package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/builders"
	apperrors "github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ServiceRequest struct {
	ServiceID uint
	Quantity  int
}

type CreateReservationInput struct {
	ClientID  uint
	RoomID    uint
	StartDate time.Time
	EndDate   time.Time
	Guests    int
	Services  []ServiceRequest
	// Strategy forces a pricing strategy; only honoured for administrators
	Strategy models.PricingStrategy
	Notes    string
}

// ModifyReservationInput changes only the fields that are set. A nil Services keeps
// the current attachments, an empty slice removes them.
type ModifyReservationInput struct {
	RoomID    *uint
	StartDate *time.Time
	EndDate   *time.Time
	Guests    *int
	Services  []ServiceRequest
	Notes     *string
}

type Quote struct {
	RoomID    uint                        `json:"roomId"`
	StartDate string                      `json:"startDate"`
	EndDate   string                      `json:"endDate"`
	Available bool                        `json:"available"`
	Services  []models.ReservationService `json:"services"`
	PriceBreakdown
}

type ReservationService struct {
	store  repository.Store
	config ConfigProvider
	cache  *Cache
	logger logger.Logger
	now    Clock
}

type ReservationServiceOptions struct {
	Store  repository.Store
	Config ConfigProvider
	// Cache holds the room lists that status changes invalidate
	Cache  *Cache
	Logger logger.Logger
	Clock  Clock
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	return &ReservationService{
		store:  opts.Store,
		config: opts.Config,
		cache:  opts.Cache,
		logger: opts.Logger,
		now:    clockOrNow(opts.Clock),
	}
}

func (s *ReservationService) validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "start and end dates are required", apperrors.ErrMissingRequired)
	}
	if !end.After(start) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidDateRange, "end date must be after start date", nil)
	}
	if utils.DaysBetween(s.now(), start) < 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidDateRange, "start date cannot be in the past", nil)
	}
	return nil
}

func checkRoomFits(room *models.Room, guests int) error {
	if guests < 1 {
		return validation("at least one guest is required")
	}
	if room.Status == models.RoomStatusMaintenance {
		return apperrors.NewAppError(apperrors.ErrCodeRoomNotAvailable,
			fmt.Sprintf("room %s is under maintenance", room.Number), apperrors.ErrRoomNotAvailable)
	}
	if guests > room.Capacity {
		return apperrors.NewAppError(apperrors.ErrCodeCapacityExceeded,
			fmt.Sprintf("room %s holds at most %d guests", room.Number, room.Capacity), nil)
	}
	return nil
}

// resolveServices snapshots catalog prices into reservation rows
func resolveServices(ctx context.Context, repo repository.ServiceRepository, reqs []ServiceRequest) ([]models.ReservationService, error) {
	if len(reqs) == 0 {
		return []models.ReservationService{}, nil
	}
	quantities := make(map[uint]int, len(reqs))
	ids := make([]uint, 0, len(reqs))
	for _, r := range reqs {
		qty := r.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, validation("service quantity must be positive")
		}
		if _, seen := quantities[r.ServiceID]; !seen {
			ids = append(ids, r.ServiceID)
		}
		quantities[r.ServiceID] += qty
	}

	catalog, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, apperrors.ErrServiceNotFound)
	}
	byID := make(map[uint]models.Service, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}

	rows := make([]models.ReservationService, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound,
				fmt.Sprintf("service %d not found", id), apperrors.ErrServiceNotFound)
		}
		if !svc.Available {
			return nil, validation(fmt.Sprintf("service %q is not available", svc.Name))
		}
		qty := quantities[id]
		snapshot := svc
		rows = append(rows, models.ReservationService{
			ServiceID: id,
			Service:   &snapshot,
			Quantity:  qty,
			UnitPrice: svc.Price,
			Subtotal:  round2(svc.Price * float64(qty)),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ServiceID < rows[j].ServiceID })
	return rows, nil
}

func (s *ReservationService) strategyFor(ctx context.Context, repo repository.ReservationRepository, clientID uint, checkIn time.Time) (models.PricingStrategy, error) {
	completed, err := repo.CountCompletedByClient(ctx, clientID)
	if err != nil {
		return "", storeError(err, apperrors.ErrUserNotFound)
	}
	return SelectStrategy(StrategyContext{
		CompletedReservations: completed,
		CheckIn:               checkIn,
		Now:                   s.now(),
	}), nil
}

// lockReservation locks the room before the reservation so that creates and
// transitions take row locks in the same order.
func lockReservation(ctx context.Context, tx repository.Store, actor Actor, id uint) (*models.Reservation, *models.Room, error) {
	current, err := tx.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	if !actor.IsAdmin() && current.ClientID != actor.UserID {
		return nil, nil, storeError(repository.ErrNotFound, apperrors.ErrReservationNotFound)
	}
	room, err := tx.Rooms().GetForUpdate(ctx, current.RoomID)
	if err != nil {
		return nil, nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	res, err := tx.Reservations().GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	return res, room, nil
}

// applyTransition runs the state machine on a locked reservation and writes the room
// side effect in the same transaction.
func applyTransition(ctx context.Context, tx repository.Store, res *models.Reservation, action models.ReservationAction) (models.Transition, error) {
	t, err := res.Apply(action)
	if err != nil {
		return t, err
	}
	if err := tx.Reservations().Update(ctx, res); err != nil {
		return t, storeError(err, apperrors.ErrReservationNotFound)
	}
	if t.RoomStatus != "" {
		if err := tx.Rooms().UpdateStatus(ctx, res.RoomID, t.RoomStatus); err != nil {
			return t, storeError(err, apperrors.ErrRoomNotFound)
		}
	}
	return t, nil
}

// checkInAt combines the reservation start date with the configured check-in time
func checkInAt(date time.Time, clock string) time.Time {
	day := utils.StartOfDay(date)
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

// CancellationAllowed reports whether a client may still cancel, i.e. check-in is more
// than the configured window away.
func CancellationAllowed(res *models.Reservation, cfg models.HotelConfiguration, now time.Time) bool {
	deadline := checkInAt(res.StartDate, cfg.CheckInTime).Add(-time.Duration(cfg.CancellationWindowHours) * time.Hour)
	return now.Before(deadline)
}

func (s *ReservationService) Create(ctx context.Context, actor Actor, in CreateReservationInput) (_ *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ReservationService.Create", trace.WithAttributes(
		attribute.Int64("room.id", int64(in.RoomID)),
	))
	defer func() { endSpan(span, err) }()

	if !actor.IsAdmin() || in.ClientID == 0 {
		in.ClientID = actor.UserID
	}
	if !actor.IsAdmin() {
		in.Strategy = ""
	}
	if in.Strategy != "" && !in.Strategy.IsValid() {
		return nil, validation(fmt.Sprintf("unknown pricing strategy %q", in.Strategy))
	}
	if err = s.validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	var created *models.Reservation
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		room, err := tx.Rooms().GetForUpdate(ctx, in.RoomID)
		if err != nil {
			return storeError(err, apperrors.ErrRoomNotFound)
		}
		if err := checkRoomFits(room, in.Guests); err != nil {
			return err
		}

		available, err := NewAvailabilityChecker(tx.Reservations()).IsAvailable(ctx, room.ID, in.StartDate, in.EndDate, 0)
		if err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if !available {
			return roomNotAvailable()
		}

		services, err := resolveServices(ctx, tx.Services(), in.Services)
		if err != nil {
			return err
		}

		strategy := in.Strategy
		if strategy == "" {
			if strategy, err = s.strategyFor(ctx, tx.Reservations(), in.ClientID, in.StartDate); err != nil {
				return err
			}
		}
		nights := Nights(in.StartDate, in.EndDate)
		price := CalculateTotal(PriceInput{
			BasePrice: room.BasePrice,
			Nights:    nights,
			Strategy:  strategy,
			Services:  services,
			ApplyTax:  true,
			TaxRate:   cfg.TaxRate,
		})

		res := builders.NewReservationBuilder().
			WithClient(in.ClientID).
			WithRoom(room).
			WithDates(in.StartDate, in.EndDate).
			WithGuests(in.Guests).
			WithServices(services).
			WithNotes(in.Notes).
			WithPricing(price.Strategy, nights, price.ServicesTotal, price.TaxAmount, price.Total).
			Build()
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		res.Room = room
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation %d created: room=%d client=%d %s..%s total=%.2f strategy=%s",
		created.ID, created.RoomID, created.ClientID,
		utils.FormatDate(created.StartDate), utils.FormatDate(created.EndDate), created.TotalPrice, created.Strategy)
	return created, nil
}

// Quote prices a stay without persisting anything
func (s *ReservationService) Quote(ctx context.Context, actor Actor, in CreateReservationInput) (*Quote, error) {
	if !actor.IsAdmin() || in.ClientID == 0 {
		in.ClientID = actor.UserID
	}
	if !actor.IsAdmin() {
		in.Strategy = ""
	}
	if in.Strategy != "" && !in.Strategy.IsValid() {
		return nil, validation(fmt.Sprintf("unknown pricing strategy %q", in.Strategy))
	}
	if err := s.validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}
	room, err := s.store.Rooms().GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoomNotFound)
	}
	if in.Guests == 0 {
		in.Guests = 1
	}
	if err := checkRoomFits(room, in.Guests); err != nil {
		return nil, err
	}
	available, err := NewAvailabilityChecker(s.store.Reservations()).IsAvailable(ctx, room.ID, in.StartDate, in.EndDate, 0)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	services, err := resolveServices(ctx, s.store.Services(), in.Services)
	if err != nil {
		return nil, err
	}
	strategy := in.Strategy
	if strategy == "" {
		if strategy, err = s.strategyFor(ctx, s.store.Reservations(), in.ClientID, in.StartDate); err != nil {
			return nil, err
		}
	}
	price := CalculateTotal(PriceInput{
		BasePrice: room.BasePrice,
		Nights:    Nights(in.StartDate, in.EndDate),
		Strategy:  strategy,
		Services:  services,
		ApplyTax:  true,
		TaxRate:   cfg.TaxRate,
	})
	return &Quote{
		RoomID:         room.ID,
		StartDate:      utils.FormatDate(in.StartDate),
		EndDate:        utils.FormatDate(in.EndDate),
		Available:      available,
		Services:       services,
		PriceBreakdown: price,
	}, nil
}

// Transition applies confirm, complete or cancel. Refund actions go through PaymentService.
func (s *ReservationService) Transition(ctx context.Context, actor Actor, id uint, action models.ReservationAction) (_ *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ReservationService.Transition", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(id)),
		attribute.String("reservation.action", string(action)),
	))
	defer func() { endSpan(span, err) }()

	switch action {
	case models.ActionConfirm, models.ActionComplete:
		if !actor.IsAdmin() {
			return nil, forbidden(fmt.Sprintf("only administrators can %s reservations", action))
		}
	case models.ActionCancel:
	default:
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation,
			fmt.Sprintf("action %q is not handled here", action), nil)
	}

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		from models.ReservationStatus
		tr   models.Transition
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		res, _, err := lockReservation(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		from = res.Status
		if action == models.ActionCancel && !actor.IsAdmin() && res.Status.IsActive() &&
			!CancellationAllowed(res, cfg, s.now()) {
			return apperrors.NewAppError(apperrors.ErrCodeCancelWindow,
				fmt.Sprintf("reservations can only be cancelled more than %d hours before check-in", cfg.CancellationWindowHours), nil)
		}
		tr, err = applyTransition(ctx, tx, res, action)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tr.RoomStatus != "" {
		invalidateRooms(ctx, s.cache, s.logger)
	}

	res, err := s.Get(ctx, System, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reservation %d: %s -> %s (%s)", id, from, res.Status, action)
	return res, nil
}

func (s *ReservationService) Confirm(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	return s.Transition(ctx, actor, id, models.ActionConfirm)
}

func (s *ReservationService) Complete(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	return s.Transition(ctx, actor, id, models.ActionComplete)
}

func (s *ReservationService) Cancel(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	return s.Transition(ctx, actor, id, models.ActionCancel)
}

// Modify changes dates, room, guests or services of an active reservation and reprices it.
// The strategy chosen at booking time is kept.
func (s *ReservationService) Modify(ctx context.Context, actor Actor, id uint, in ModifyReservationInput) (_ *models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ReservationService.Modify", trace.WithAttributes(
		attribute.Int64("reservation.id", int64(id)),
	))
	defer func() { endSpan(span, err) }()

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, err
	}

	var roomsMoved bool
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := tx.Reservations().GetByID(ctx, id)
		if err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if !actor.IsAdmin() && current.ClientID != actor.UserID {
			return storeError(repository.ErrNotFound, apperrors.ErrReservationNotFound)
		}

		targetRoomID := current.RoomID
		if in.RoomID != nil {
			targetRoomID = *in.RoomID
		}
		rooms, err := lockRooms(ctx, tx, current.RoomID, targetRoomID)
		if err != nil {
			return err
		}
		res, err := tx.Reservations().GetForUpdate(ctx, id)
		if err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if !res.Status.IsActive() {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
				fmt.Sprintf("cannot modify a reservation in status %q", res.Status), nil)
		}

		start, end := res.StartDate, res.EndDate
		if in.StartDate != nil {
			start = *in.StartDate
		}
		if in.EndDate != nil {
			end = *in.EndDate
		}
		if !start.Equal(res.StartDate) || !end.Equal(res.EndDate) {
			if err := s.validateDates(start, end); err != nil {
				return err
			}
		}

		guests := res.Guests
		if in.Guests != nil {
			guests = *in.Guests
		}
		room := rooms[targetRoomID]
		roomChanged := targetRoomID != res.RoomID
		if roomChanged || in.Guests != nil {
			if err := checkRoomFits(room, guests); err != nil {
				return err
			}
		}

		available, err := NewAvailabilityChecker(tx.Reservations()).IsAvailable(ctx, targetRoomID, start, end, res.ID)
		if err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if !available {
			return roomNotAvailable()
		}

		services := res.Services
		if in.Services != nil {
			if services, err = resolveServices(ctx, tx.Services(), in.Services); err != nil {
				return err
			}
		}

		basePrice := res.BasePrice
		if roomChanged {
			basePrice = room.BasePrice
		}
		nights := Nights(start, end)
		price := CalculateTotal(PriceInput{
			BasePrice: basePrice,
			Nights:    nights,
			Strategy:  res.Strategy,
			Services:  services,
			ApplyTax:  true,
			TaxRate:   cfg.TaxRate,
		})

		oldRoomID, previous := res.RoomID, res.TotalPrice
		updated := builders.FromReservation(*res).
			WithRoom(&models.Room{ID: targetRoomID, BasePrice: basePrice}).
			WithDates(start, end).
			WithGuests(guests).
			WithServices(services).
			WithPricing(price.Strategy, nights, price.ServicesTotal, price.TaxAmount, price.Total).
			Build()
		if in.Notes != nil {
			updated.Notes = *in.Notes
		}
		updated.PreviousTotal = previous
		updated.PriceDifference = round2(price.Total - previous)

		if err := tx.Reservations().Update(ctx, updated); err != nil {
			return storeError(err, apperrors.ErrReservationNotFound)
		}
		if in.Services != nil {
			if err := tx.Reservations().ReplaceServices(ctx, updated.ID, services); err != nil {
				return storeError(err, apperrors.ErrReservationNotFound)
			}
		}
		if roomChanged && updated.Status == models.ReservationStatusConfirmed {
			if err := tx.Rooms().UpdateStatus(ctx, oldRoomID, models.RoomStatusAvailable); err != nil {
				return storeError(err, apperrors.ErrRoomNotFound)
			}
			if err := tx.Rooms().UpdateStatus(ctx, targetRoomID, models.RoomStatusReserved); err != nil {
				return storeError(err, apperrors.ErrRoomNotFound)
			}
			roomsMoved = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if roomsMoved {
		invalidateRooms(ctx, s.cache, s.logger)
	}

	res, err := s.Get(ctx, System, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reservation %d modified: total %.2f -> %.2f (diff %.2f)", id, res.PreviousTotal, res.TotalPrice, res.PriceDifference)
	return res, nil
}

// lockRooms locks the given rooms in ascending id order
func lockRooms(ctx context.Context, tx repository.Store, ids ...uint) (map[uint]*models.Room, error) {
	sorted := append([]uint(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rooms := make(map[uint]*models.Room, len(sorted))
	for _, id := range sorted {
		if _, done := rooms[id]; done {
			continue
		}
		room, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return nil, storeError(err, apperrors.ErrRoomNotFound)
		}
		rooms[id] = room
	}
	return rooms, nil
}

func (s *ReservationService) Get(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	res, err := s.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	if !actor.IsAdmin() && res.ClientID != actor.UserID {
		return nil, storeError(repository.ErrNotFound, apperrors.ErrReservationNotFound)
	}
	return res, nil
}

// List returns reservations; clients only ever see their own
func (s *ReservationService) List(ctx context.Context, actor Actor, f repository.ReservationFilter) ([]models.Reservation, int64, error) {
	if !actor.IsAdmin() {
		f.ClientID = &actor.UserID
	}
	out, total, err := s.store.Reservations().List(ctx, f)
	if err != nil {
		return nil, 0, storeError(err, apperrors.ErrReservationNotFound)
	}
	return out, total, nil
}

// UpcomingCheckIns lists confirmed reservations starting in [from, to)
func (s *ReservationService) UpcomingCheckIns(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	out, err := s.store.Reservations().StartingBetween(ctx, utils.StartOfDay(from), utils.StartOfDay(to), models.ReservationStatusConfirmed)
	if err != nil {
		return nil, storeError(err, apperrors.ErrReservationNotFound)
	}
	return out, nil
}
