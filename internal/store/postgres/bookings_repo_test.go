package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"venuebook/internal/domain"
	"venuebook/internal/store"
)

func TestBookedDatesFor(t *testing.T) {
	b := domain.Booking{
		ID:             uuid.MustParse("00000000-0000-0000-0000-000000000101"),
		Name:           "Ada",
		EventType:      "Wedding Reception",
		PreferredDates: []string{"2026-05-01", "bad", "2026-05-03"},
	}

	t.Run("default event name", func(t *testing.T) {
		out := bookedDatesFor(b, "")
		if len(out) != 2 {
			t.Fatalf("len(out) = %d, want 2", len(out))
		}
		if out[0].EventName != "Wedding Reception - Ada" {
			t.Fatalf("event name = %q", out[0].EventName)
		}
		if out[1].Date.String() != "2026-05-03" {
			t.Fatalf("second date = %s", out[1].Date)
		}
		if out[0].BookingID == nil || *out[0].BookingID != b.ID {
			t.Fatalf("booking id not linked")
		}
	})

	t.Run("explicit event name", func(t *testing.T) {
		out := bookedDatesFor(b, "Staff hold")
		if out[0].EventName != "Staff hold" {
			t.Fatalf("event name = %q", out[0].EventName)
		}
	})
}

func TestApplyPatch(t *testing.T) {
	b := domain.Booking{Name: "Ada", Email: "a@example.com", Phone: "1", EventType: "Other", PreferredDates: []string{"2026-01-01"}}
	name := "Grace"
	applyPatch(&b, store.BookingPatch{Name: &name, PreferredDates: []string{"2026-02-02"}})

	if b.Name != "Grace" || b.Email != "a@example.com" {
		t.Fatalf("patched booking = %+v", b)
	}
	if len(b.PreferredDates) != 1 || b.PreferredDates[0] != "2026-02-02" {
		t.Fatalf("dates = %v", b.PreferredDates)
	}
}

func TestTranslateUniqueViolation(t *testing.T) {
	if err := translateUniqueViolation(nil); err != nil {
		t.Fatalf("nil error translated to %v", err)
	}
	if err := translateUniqueViolation(&pgconn.PgError{Code: "23505"}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("unique violation = %v, want %v", err, store.ErrConflict)
	}
	other := &pgconn.PgError{Code: "23503"}
	if err := translateUniqueViolation(other); err != other {
		t.Fatalf("other error = %v, want passthrough", err)
	}
}
