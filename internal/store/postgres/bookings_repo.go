package postgres

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

const (
	calendarLockKey   = "venue_calendar"
	pgUniqueViolation = "23505"
)

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

type calendarTx struct {
	tx bun.Tx
}

func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	var out domain.Booking
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		created, err := tx.InsertBooking(ctx, b)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) CreateConfirmed(ctx context.Context, b domain.Booking, eventName string) (domain.Booking, error) {
	b.Status = domain.BookingStatusConfirmed

	var out domain.Booking
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		created, err := tx.InsertBooking(ctx, b)
		if err != nil {
			return err
		}
		if err := tx.ReserveDates(ctx, bookedDatesFor(created, eventName)); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return getBooking(ctx, r.db, id)
}

func (r *BookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) Update(ctx context.Context, id uuid.UUID, patch store.BookingPatch) (domain.Booking, error) {
	var out domain.Booking
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		datesChanged := patch.PreferredDates != nil && !slices.Equal(patch.PreferredDates, b.PreferredDates)
		applyPatch(&b, patch)

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if datesChanged && b.Status == domain.BookingStatusConfirmed {
			if err := tx.ReleaseBookingDates(ctx, b.ID); err != nil {
				return err
			}
			if err := tx.ReserveDates(ctx, bookedDatesFor(b, "")); err != nil {
				return err
			}
		}
		out = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	var out domain.Booking
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if b.Status == status {
			out = b
			return nil
		}

		previous := b.Status
		if err := tx.SetBookingStatus(ctx, id, status); err != nil {
			return err
		}
		switch {
		case status == domain.BookingStatusConfirmed:
			if err := tx.ReserveDates(ctx, bookedDatesFor(b, "")); err != nil {
				return err
			}
		case previous == domain.BookingStatusConfirmed:
			if err := tx.ReleaseBookingDates(ctx, id); err != nil {
				return err
			}
		}

		updated, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		if err := tx.ReleaseBookingDates(ctx, id); err != nil {
			return err
		}
		return tx.DeleteBooking(ctx, id)
	})
}

func (r *BookingRepo) InCalendarTransaction(ctx context.Context, fn func(ctx context.Context, tx store.CalendarTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendar(ctx, tx); err != nil {
			return err
		}
		return fn(ctx, calendarTx{tx: tx})
	})
}

func lockCalendar(ctx context.Context, tx bun.Tx) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", calendarLockKey).Exec(ctx)
	return err
}

func (r calendarTx) InsertBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	m := domain.Booking{
		ID:             b.ID,
		Name:           b.Name,
		Email:          b.Email,
		Phone:          b.Phone,
		EventType:      b.EventType,
		PreferredDates: b.PreferredDates,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	res, err := r.tx.NewInsert().
		Model(&m).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Booking{}, err
	}
	if affected == 0 {
		// Replayed idempotency key: the same request must map to the same row.
		existing, err := r.GetBooking(ctx, m.ID)
		if err != nil {
			return domain.Booking{}, err
		}
		if existing.Name != m.Name ||
			existing.Email != m.Email ||
			existing.Phone != m.Phone ||
			existing.EventType != m.EventType ||
			!slices.Equal(existing.PreferredDates, m.PreferredDates) {
			return domain.Booking{}, store.ErrIdempotencyConflict
		}
		return existing, nil
	}
	return m, nil
}

func (r calendarTx) GetBooking(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return getBooking(ctx, r.tx, id)
}

func (r calendarTx) UpdateBooking(ctx context.Context, b domain.Booking) error {
	res, err := r.tx.NewUpdate().
		Model(&b).
		Column("name", "email", "phone", "event_type", "preferred_dates", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r calendarTx) SetBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	b := domain.Booking{ID: id, Status: status}
	res, err := r.tx.NewUpdate().
		Model(&b).
		Column("status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r calendarTx) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	res, err := r.tx.NewDelete().
		Model((*domain.Booking)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r calendarTx) ReserveDates(ctx context.Context, dates []domain.BookedDate) error {
	if len(dates) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range dates {
		if dates[i].ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			dates[i].ID = id
		}
		if dates[i].CreatedAt.IsZero() {
			dates[i].CreatedAt = now
		}
	}
	_, err := r.tx.NewInsert().Model(&dates).Exec(ctx)
	return translateUniqueViolation(err)
}

func (r calendarTx) ReleaseBookingDates(ctx context.Context, bookingID uuid.UUID) error {
	_, err := r.tx.NewDelete().
		Model((*domain.BookedDate)(nil)).
		Where("booking_id = ?", bookingID).
		Exec(ctx)
	return err
}

func getBooking(ctx context.Context, db bun.IDB, id uuid.UUID) (domain.Booking, error) {
	var b domain.Booking
	err := db.NewSelect().
		Model(&b).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, store.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return b, nil
}

func applyPatch(b *domain.Booking, patch store.BookingPatch) {
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Email != nil {
		b.Email = *patch.Email
	}
	if patch.Phone != nil {
		b.Phone = *patch.Phone
	}
	if patch.EventType != nil {
		b.EventType = *patch.EventType
	}
	if patch.PreferredDates != nil {
		b.PreferredDates = patch.PreferredDates
	}
}

// bookedDatesFor links one reservation per preferred date to b. Unparseable
// dates are skipped; the service layer validates them before they are stored.
func bookedDatesFor(b domain.Booking, eventName string) []domain.BookedDate {
	if eventName == "" {
		eventName = b.EventType + " - " + b.Name
	}
	id := b.ID
	out := make([]domain.BookedDate, 0, len(b.PreferredDates))
	for _, s := range b.PreferredDates {
		d, err := domain.ParseDate(s)
		if err != nil {
			continue
		}
		out = append(out, domain.BookedDate{
			Date:      d,
			EventName: eventName,
			BookingID: &id,
		})
	}
	return out
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return store.ErrConflict
	}
	return err
}
