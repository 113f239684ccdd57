package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"venuebook/internal/domain"
)

func (r *BookingRepo) ListBookedDates(ctx context.Context) ([]domain.BookedDate, error) {
	var rows []domain.BookedDate
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) CreateBookedDate(ctx context.Context, d domain.BookedDate) (domain.BookedDate, error) {
	m := domain.BookedDate{
		ID:        d.ID,
		Date:      d.Date,
		EventName: d.EventName,
		BookingID: d.BookingID,
		CreatedAt: d.CreatedAt,
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendar(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&m).Exec(ctx)
		return translateUniqueViolation(err)
	})
	if err != nil {
		return domain.BookedDate{}, err
	}
	return m, nil
}

func (r *BookingRepo) DeleteBookedDate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.BookedDate)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
