package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if got != NewDate(2025, time.February, 28) {
		t.Fatalf("ParseDate = %+v", got)
	}

	for _, in := range []string{"", "2025-2-28", "2025-02-30", "28/02/2025", "2025-02-28T10:00:00Z"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) expected error", in)
		}
	}
}

func TestCalendarDate_IgnoresTimeOfDayAndZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	morning := DateOf(time.Date(2025, 6, 10, 0, 5, 0, 0, loc))
	night := DateOf(time.Date(2025, 6, 10, 23, 55, 0, 0, loc))
	if morning != night {
		t.Fatalf("dates differ: %s vs %s", morning, night)
	}
	if morning.String() != "2025-06-10" {
		t.Fatalf("String = %q", morning.String())
	}
}

func TestCalendarDate_AddDaysAndCompare(t *testing.T) {
	tests := []struct {
		from string
		days int
		want string
	}{
		{"2024-02-28", 1, "2024-02-29"},
		{"2025-02-28", 1, "2025-03-01"},
		{"2025-12-31", 1, "2026-01-01"},
		{"2025-01-01", -1, "2024-12-31"},
	}
	for _, tt := range tests {
		if got := d(tt.from).AddDays(tt.days); got != d(tt.want) {
			t.Fatalf("%s + %d = %s, want %s", tt.from, tt.days, got, tt.want)
		}
	}

	if !d("2025-06-10").Before(d("2025-06-11")) || !d("2026-01-01").After(d("2025-12-31")) {
		t.Fatalf("ordering is wrong")
	}
	if d("2025-06-10").Compare(d("2025-06-10")) != 0 {
		t.Fatalf("Compare of equal dates != 0")
	}
}

func TestCalendarDate_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Dates []CalendarDate `json:"dates"`
	}{Dates: ds("2025-06-10", "2025-07-01")})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(b) != `{"dates":["2025-06-10","2025-07-01"]}` {
		t.Fatalf("json = %s", b)
	}

	var out struct {
		Date CalendarDate `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2025-13-01"}`), &out); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}

func TestCalendarDate_Scan(t *testing.T) {
	var got CalendarDate
	if err := got.Scan(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time) error: %v", err)
	}
	if got != d("2025-06-10") {
		t.Fatalf("Scan(time) = %s", got)
	}
	if err := got.Scan([]byte("2025-07-01")); err != nil {
		t.Fatalf("Scan(bytes) error: %v", err)
	}
	if got != d("2025-07-01") {
		t.Fatalf("Scan(bytes) = %s", got)
	}
	if err := got.Scan(42); err == nil {
		t.Fatalf("Scan(int) expected error")
	}

	v, err := d("2025-06-10").Value()
	if err != nil || v != "2025-06-10" {
		t.Fatalf("Value = %v, %v", v, err)
	}
}
