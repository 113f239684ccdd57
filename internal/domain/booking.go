package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

var EventTypes = []string{
	"Wedding Reception",
	"Corporate Meeting",
	"Conference",
	"Birthday Party",
	"Anniversary Celebration",
	"Product Launch",
	"Charity Event",
	"Other",
}

func IsEventType(s string) bool {
	for _, t := range EventTypes {
		if t == s {
			return true
		}
	}
	return false
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID             uuid.UUID     `bun:"id,pk,type:uuid" json:"id"`
	Name           string        `bun:"name,notnull" json:"name"`
	Email          string        `bun:"email,notnull" json:"email"`
	Phone          string        `bun:"phone,notnull" json:"phone"`
	EventType      string        `bun:"event_type,notnull" json:"event_type"`
	PreferredDates []string      `bun:"preferred_dates,array,notnull" json:"preferred_dates"`
	Status         BookingStatus `bun:"status,notnull" json:"status"`
	CreatedAt      time.Time     `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt      time.Time     `bun:"updated_at,notnull" json:"updated_at"`
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.Status == "" {
			b.Status = BookingStatusPending
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}

// IsUpcoming reports whether a confirmed booking has any day on or after today.
func (b Booking) IsUpcoming(today CalendarDate) bool {
	if b.Status != BookingStatusConfirmed {
		return false
	}
	for _, s := range b.PreferredDates {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		if !d.Before(today) {
			return true
		}
	}
	return false
}

type BookedDate struct {
	bun.BaseModel `bun:"table:booked_dates"`

	ID        uuid.UUID    `bun:"id,pk,type:uuid" json:"id"`
	Date      CalendarDate `bun:"date,notnull,type:date" json:"date"`
	EventName string       `bun:"event_name" json:"event_name"`
	BookingID *uuid.UUID   `bun:"booking_id,type:uuid" json:"booking_id,omitempty"`
	CreatedAt time.Time    `bun:"created_at,notnull" json:"created_at"`
}

func (d *BookedDate) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); !ok {
		return nil
	}
	if d.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		d.ID = id
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return nil
}

func BookedDateSetOf(rows []BookedDate) BookedDateSet {
	dates := make([]CalendarDate, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	return NewBookedDateSet(dates...)
}
