// Package cache keeps the booked-dates snapshot in Redis so the public
// booking page does not hit Postgres on every availability check.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

const DefaultKey = "venue:booked_dates"

type BookedDates struct {
	next store.BookedDateRepository
	rdb  redis.Cmdable
	key  string
	ttl  time.Duration
	log  *slog.Logger
}

type Options struct {
	Key string
	TTL time.Duration
}

func NewBookedDates(next store.BookedDateRepository, rdb redis.Cmdable, opts Options, log *slog.Logger) *BookedDates {
	if log == nil {
		log = slog.Default()
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Minute
	}
	return &BookedDates{
		next: next,
		rdb:  rdb,
		key:  opts.Key,
		ttl:  opts.TTL,
		log:  log.With(slog.String("component", "cache.booked_dates")),
	}
}

type cachedDate struct {
	ID        uuid.UUID           `json:"id"`
	Date      domain.CalendarDate `json:"date"`
	EventName string              `json:"event_name,omitempty"`
	BookingID *uuid.UUID          `json:"booking_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// ListBookedDates reads through the cache. Redis failures fall back to the
// underlying store.
func (c *BookedDates) ListBookedDates(ctx context.Context) ([]domain.BookedDate, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		rows, decodeErr := decodeDates(raw)
		if decodeErr == nil {
			return rows, nil
		}
		c.log.Warn("discarding undecodable snapshot", slog.Any("err", decodeErr))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("snapshot read failed", slog.Any("err", err))
	}

	rows, err := c.next.ListBookedDates(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeDates(rows)
	if err != nil {
		c.log.Warn("snapshot encode failed", slog.Any("err", err))
		return rows, nil
	}
	if err := c.rdb.Set(ctx, c.key, encoded, c.ttl).Err(); err != nil {
		c.log.Warn("snapshot write failed", slog.Any("err", err))
	}
	return rows, nil
}

func (c *BookedDates) CreateBookedDate(ctx context.Context, d domain.BookedDate) (domain.BookedDate, error) {
	created, err := c.next.CreateBookedDate(ctx, d)
	if err != nil {
		return domain.BookedDate{}, err
	}
	c.Invalidate(ctx)
	return created, nil
}

func (c *BookedDates) DeleteBookedDate(ctx context.Context, id uuid.UUID) error {
	if err := c.next.DeleteBookedDate(ctx, id); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

// Invalidate drops the snapshot. Callers that change booked dates through
// another path (booking status changes) call it after their write commits.
func (c *BookedDates) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.log.Warn("snapshot invalidate failed", slog.Any("err", err))
	}
}

func encodeDates(rows []domain.BookedDate) ([]byte, error) {
	out := make([]cachedDate, 0, len(rows))
	for _, r := range rows {
		out = append(out, cachedDate{
			ID:        r.ID,
			Date:      r.Date,
			EventName: r.EventName,
			BookingID: r.BookingID,
			CreatedAt: r.CreatedAt,
		})
	}
	return json.Marshal(out)
}

func decodeDates(raw []byte) ([]domain.BookedDate, error) {
	var in []cachedDate
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]domain.BookedDate, 0, len(in))
	for _, c := range in {
		out = append(out, domain.BookedDate{
			ID:        c.ID,
			Date:      c.Date,
			EventName: c.EventName,
			BookingID: c.BookingID,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

type ClientConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(ctx context.Context, cfg ClientConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
