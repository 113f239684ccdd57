package bookings

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"venuebook/internal/domain"
	"venuebook/internal/events"
	"venuebook/internal/store"
	"venuebook/internal/validate"
)

const (
	maxIdempotencyKeyLen  = 256
	DefaultPublishTimeout = 2 * time.Second
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ConflictError reports that some requested dates are already booked.
type ConflictError struct {
	Report domain.ConflictReport
}

func (e *ConflictError) Error() string {
	return "dates already booked: " + strings.Join(domain.FormatDates(e.Report.Conflicts), ", ")
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type Options struct {
	Checker   domain.Checker
	Location  *time.Location
	Now       func() time.Time
	Publisher events.Publisher

	// PublishTimeout bounds each event publish. Publishing is detached from
	// the request context because the write it reports has already committed.
	PublishTimeout time.Duration
	Logger         *slog.Logger
}

type Service struct {
	bookings  store.BookingRepository
	dates     store.BookedDateRepository
	checker   domain.Checker
	loc       *time.Location
	now       func() time.Time
	publisher events.Publisher
	pubWait   time.Duration
	log       *slog.Logger
	validate  *validator.Validate
}

func NewService(bookings store.BookingRepository, dates store.BookedDateRepository, opts Options) (*Service, error) {
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultPublishTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		bookings:  bookings,
		dates:     dates,
		checker:   opts.Checker,
		loc:       opts.Location,
		now:       opts.Now,
		publisher: opts.Publisher,
		pubWait:   opts.PublishTimeout,
		log:       opts.Logger.With(slog.String("component", "bookings")),
		validate:  v,
	}, nil
}

func (s *Service) Today() domain.CalendarDate {
	return domain.Today(s.now(), s.loc)
}

func (s *Service) BookedDates(ctx context.Context) ([]domain.BookedDate, error) {
	return s.dates.ListBookedDates(ctx)
}

func (s *Service) snapshot(ctx context.Context) (domain.BookedDateSet, error) {
	rows, err := s.dates.ListBookedDates(ctx)
	if err != nil {
		return domain.BookedDateSet{}, err
	}
	return domain.BookedDateSetOf(rows), nil
}

func (s *Service) CheckAvailability(ctx context.Context, dates []string) (domain.ConflictReport, error) {
	if len(dates) == 0 {
		return domain.ConflictReport{}, validationError("at least one date is required")
	}
	candidates, err := domain.ParseDates(dates)
	if err != nil {
		return domain.ConflictReport{}, validationError(err.Error())
	}
	booked, err := s.snapshot(ctx)
	if err != nil {
		return domain.ConflictReport{}, err
	}
	return s.checker.Check(candidates, booked, s.Today()), nil
}

type SubmitInput struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Email          string   `json:"email" validate:"required,email,max=254"`
	Phone          string   `json:"phone" validate:"required,phone"`
	EventType      string   `json:"event_type" validate:"required,event_type"`
	PreferredDates []string `json:"preferred_dates" validate:"min=1,max=30,dive,calendar_date"`
	IdempotencyKey string   `json:"-"`
}

// Submit re-checks the requested dates against a fresh snapshot and stores
// the booking as pending. Dates are not reserved until staff confirm it.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Booking, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(s.validate, in); err != nil {
		return domain.Booking{}, err
	}

	candidates, err := domain.ParseDates(in.PreferredDates)
	if err != nil {
		return domain.Booking{}, validationError(err.Error())
	}
	today := s.Today()
	for _, d := range candidates {
		if !d.After(today) {
			return domain.Booking{}, validationError("preferred dates must be after " + today.String())
		}
	}

	var id uuid.UUID
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		if len(key) > maxIdempotencyKeyLen {
			return domain.Booking{}, validationError("idempotency key too long")
		}
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("venuebook:submit_booking:"+key))
	}

	booked, err := s.snapshot(ctx)
	if err != nil {
		return domain.Booking{}, err
	}

	form := NewForm(s.checker, booked, today)
	form.SetContact(Contact{Name: in.Name, Email: in.Email, Phone: in.Phone, EventType: in.EventType})
	for _, d := range candidates {
		if _, err := form.AddDate(d); err != nil {
			return domain.Booking{}, err
		}
	}
	if form.State() == StateConflicted {
		return domain.Booking{}, &ConflictError{Report: form.Report()}
	}

	created, err := form.Submit(ctx, func(ctx context.Context, sub Submission) (domain.Booking, error) {
		return s.bookings.Create(ctx, domain.Booking{
			ID:             id,
			Name:           sub.Contact.Name,
			Email:          sub.Contact.Email,
			Phone:          sub.Contact.Phone,
			EventType:      sub.Contact.EventType,
			PreferredDates: domain.FormatDates(sub.Dates),
			Status:         domain.BookingStatusPending,
		})
	})
	if err != nil {
		var submitErr *SubmitError
		if errors.As(err, &submitErr) {
			return domain.Booking{}, submitErr.Err
		}
		return domain.Booking{}, err
	}

	s.publish(ctx, events.BookingEvent(events.TypeBookingSubmitted, created))
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	if id == uuid.Nil {
		return domain.Booking{}, validationError("booking id is required")
	}
	return s.bookings.Get(ctx, id)
}

// Upcoming returns confirmed bookings with a date on or after today,
// soonest first.
func (s *Service) Upcoming(ctx context.Context) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.IsUpcoming(today) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return nextDate(out[i], today).Before(nextDate(out[j], today))
	})
	return out, nil
}

func nextDate(b domain.Booking, today domain.CalendarDate) domain.CalendarDate {
	var next domain.CalendarDate
	for _, s := range b.PreferredDates {
		d, err := domain.ParseDate(s)
		if err != nil || d.Before(today) {
			continue
		}
		if next.IsZero() || d.Before(next) {
			next = d
		}
	}
	return next
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	if id == uuid.Nil {
		return domain.Booking{}, validationError("booking id is required")
	}
	if !status.Valid() {
		return domain.Booking{}, validationError("status must be one of: pending, confirmed, cancelled")
	}

	before, err := s.bookings.Get(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Booking{}, err
	}
	if before.Status == updated.Status {
		return updated, nil
	}

	s.invalidate(ctx)
	e := events.BookingEvent(events.TypeBookingStatusChanged, updated)
	e.PreviousStatus = before.Status
	s.publish(ctx, e)
	return updated, nil
}

type UpdateInput struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Email          *string  `json:"email" validate:"omitempty,email,max=254"`
	Phone          *string  `json:"phone" validate:"omitempty,phone"`
	EventType      *string  `json:"event_type" validate:"omitempty,event_type"`
	PreferredDates []string `json:"preferred_dates" validate:"omitempty,min=1,max=30,dive,calendar_date"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Booking, error) {
	if id == uuid.Nil {
		return domain.Booking{}, validationError("booking id is required")
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return domain.Booking{}, validationError("name must not be empty")
		}
		in.Name = &trimmed
	}
	if in.PreferredDates != nil && len(in.PreferredDates) == 0 {
		return domain.Booking{}, validationError("preferred_dates must have at least 1 entries")
	}
	if err := validateStruct(s.validate, in); err != nil {
		return domain.Booking{}, err
	}

	patch := store.BookingPatch{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		EventType: in.EventType,
	}
	if in.PreferredDates != nil {
		dates, err := domain.ParseDates(in.PreferredDates)
		if err != nil {
			return domain.Booking{}, validationError(err.Error())
		}
		patch.PreferredDates = domain.FormatDates(domain.NewSelection(dates...).Dates())
	}

	updated, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return domain.Booking{}, err
	}
	if patch.PreferredDates != nil && updated.Status == domain.BookingStatusConfirmed {
		s.invalidate(ctx)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("booking id is required")
	}
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	if b.Status == domain.BookingStatusConfirmed {
		s.invalidate(ctx)
	}
	s.publish(ctx, events.BookingEvent(events.TypeBookingDeleted, b))
	return nil
}

type AdminBookingInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,phone"`
	EventType string `json:"event_type" validate:"required,event_type"`
	EventDate string `json:"event_date" validate:"required,calendar_date"`
}

// CreateConfirmed records a booking taken by staff directly, reserving its
// single event date in the same transaction.
func (s *Service) CreateConfirmed(ctx context.Context, in AdminBookingInput) (domain.Booking, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(s.validate, in); err != nil {
		return domain.Booking{}, err
	}
	date, err := domain.ParseDate(in.EventDate)
	if err != nil {
		return domain.Booking{}, validationError(err.Error())
	}

	booked, err := s.snapshot(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	if booked.Contains(date) {
		return domain.Booking{}, store.ErrConflict
	}

	created, err := s.bookings.CreateConfirmed(ctx, domain.Booking{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		EventType:      in.EventType,
		PreferredDates: []string{date.String()},
		Status:         domain.BookingStatusConfirmed,
	}, in.EventType+" - "+in.Name)
	if err != nil {
		return domain.Booking{}, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.BookingEvent(events.TypeBookingCreatedByStaff, created))
	return created, nil
}

// ReserveDate blocks a day without a booking, e.g. for maintenance.
func (s *Service) ReserveDate(ctx context.Context, date, eventName string) (domain.BookedDate, error) {
	d, err := domain.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return domain.BookedDate{}, validationError(err.Error())
	}
	eventName = strings.TrimSpace(eventName)
	if len(eventName) > 200 {
		return domain.BookedDate{}, validationError("event_name must be at most 200 characters")
	}
	return s.dates.CreateBookedDate(ctx, domain.BookedDate{Date: d, EventName: eventName})
}

func (s *Service) ReleaseDate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("booked date id is required")
	}
	return s.dates.DeleteBookedDate(ctx, id)
}

func (s *Service) invalidate(ctx context.Context) {
	if c, ok := s.dates.(cacheInvalidator); ok {
		c.Invalidate(ctx)
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.pubWait)
	defer cancel()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn("publish booking event",
			slog.String("type", string(e.Type)),
			slog.String("booking_id", e.BookingID.String()),
			slog.Any("err", err),
		)
	}
}
