package domain

import (
	"reflect"
	"testing"
	"time"
)

func d(s string) CalendarDate {
	date, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func ds(values ...string) []CalendarDate {
	out := make([]CalendarDate, 0, len(values))
	for _, v := range values {
		out = append(out, d(v))
	}
	return out
}

func TestCheckAvailability_Scenarios(t *testing.T) {
	today := d("2025-06-01")

	tests := []struct {
		name             string
		booked           []CalendarDate
		candidates       []CalendarDate
		wantAvailable    bool
		wantConflicts    []CalendarDate
		wantAlternatives []CalendarDate
	}{
		{
			name:             "single booked date suggests following days",
			booked:           ds("2025-06-10"),
			candidates:       ds("2025-06-10"),
			wantAvailable:    false,
			wantConflicts:    ds("2025-06-10"),
			wantAlternatives: ds("2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15"),
		},
		{
			name:             "alternatives skip booked days",
			booked:           ds("2025-06-10", "2025-06-11"),
			candidates:       ds("2025-06-10"),
			wantAvailable:    false,
			wantConflicts:    ds("2025-06-10"),
			wantAlternatives: ds("2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15", "2025-06-16"),
		},
		{
			name:             "nothing booked is available",
			booked:           nil,
			candidates:       ds("2025-07-01", "2025-07-02"),
			wantAvailable:    true,
			wantConflicts:    []CalendarDate{},
			wantAlternatives: []CalendarDate{},
		},
		{
			name:             "only the first candidate seeds alternatives",
			booked:           ds("2025-06-10"),
			candidates:       ds("2025-06-10", "2026-01-01"),
			wantAvailable:    false,
			wantConflicts:    ds("2025-06-10"),
			wantAlternatives: ds("2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15"),
		},
		{
			name:             "anchor seeds even when a later candidate conflicts",
			booked:           ds("2025-06-10"),
			candidates:       ds("2025-06-05", "2025-06-10"),
			wantAvailable:    false,
			wantConflicts:    ds("2025-06-10"),
			wantAlternatives: ds("2025-06-06", "2025-06-07", "2025-06-08", "2025-06-09", "2025-06-11"),
		},
		{
			name:             "every conflicting candidate is reported once",
			booked:           ds("2025-06-10", "2025-06-20"),
			candidates:       ds("2025-06-20", "2025-06-15", "2025-06-10", "2025-06-20"),
			wantAvailable:    false,
			wantConflicts:    ds("2025-06-20", "2025-06-10"),
			wantAlternatives: ds("2025-06-21", "2025-06-22", "2025-06-23", "2025-06-24", "2025-06-25"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAvailability(tt.candidates, NewBookedDateSet(tt.booked...), today)
			if got.Available != tt.wantAvailable {
				t.Fatalf("available = %v, want %v", got.Available, tt.wantAvailable)
			}
			if !reflect.DeepEqual(got.Conflicts, tt.wantConflicts) {
				t.Fatalf("conflicts = %v, want %v", got.Conflicts, tt.wantConflicts)
			}
			if !reflect.DeepEqual(got.Alternatives, tt.wantAlternatives) {
				t.Fatalf("alternatives = %v, want %v", got.Alternatives, tt.wantAlternatives)
			}
			if got.Exhausted {
				t.Fatalf("exhausted = true, want false")
			}
		})
	}
}

func TestCheckAvailability_EmptySelectionIsTriviallyAvailable(t *testing.T) {
	got := CheckAvailability(nil, NewBookedDateSet(d("2025-06-10")), d("2025-06-01"))
	if !got.Available {
		t.Fatalf("available = false, want true")
	}
	if len(got.Alternatives) != 0 || len(got.Conflicts) != 0 {
		t.Fatalf("report = %+v, want no conflicts or alternatives", got)
	}
}

func TestCheckAvailability_Idempotent(t *testing.T) {
	today := d("2025-06-01")
	booked := NewBookedDateSet(ds("2025-06-10", "2025-06-12")...)
	candidates := ds("2025-06-10", "2025-06-11")

	first := CheckAvailability(candidates, booked, today)
	second := CheckAvailability(candidates, booked, today)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ: %+v vs %+v", first, second)
	}
}

func TestGenerateAlternatives_TerminatesOnDenseCalendar(t *testing.T) {
	today := d("2025-06-01")
	day0 := today.AddDays(1)
	booked := make([]CalendarDate, 0, 400)
	for i := 0; i < 400; i++ {
		booked = append(booked, day0.AddDays(i))
	}
	set := NewBookedDateSet(booked...)

	alts := GenerateAlternatives(day0, set, today)
	if len(alts) != 0 {
		t.Fatalf("len(alternatives) = %d, want 0", len(alts))
	}

	report := CheckAvailability([]CalendarDate{day0}, set, today)
	if report.Available {
		t.Fatalf("available = true, want false")
	}
	if !report.Exhausted {
		t.Fatalf("exhausted = false, want true")
	}
}

func TestGenerateAlternatives_ShortHorizonReturnsFewer(t *testing.T) {
	c := Checker{HorizonDays: 3}
	alts := c.Alternatives(d("2025-06-10"), NewBookedDateSet(d("2025-06-12")), d("2025-06-01"))
	want := ds("2025-06-11", "2025-06-13")
	if !reflect.DeepEqual(alts, want) {
		t.Fatalf("alternatives = %v, want %v", alts, want)
	}

	report := c.Check(ds("2025-06-12"), NewBookedDateSet(d("2025-06-12")), d("2025-06-01"))
	if !report.Exhausted {
		t.Fatalf("exhausted = false, want true")
	}
}

func TestGenerateAlternatives_OnlyFutureDays(t *testing.T) {
	today := d("2025-06-01")
	alts := GenerateAlternatives(d("2025-05-20"), NewBookedDateSet(d("2025-06-03")), today)
	want := ds("2025-06-02", "2025-06-04", "2025-06-05", "2025-06-06", "2025-06-07")
	if !reflect.DeepEqual(alts, want) {
		t.Fatalf("alternatives = %v, want %v", alts, want)
	}
}

func TestGenerateAlternatives_Properties(t *testing.T) {
	today := d("2025-06-01")
	booked := NewBookedDateSet(ds("2025-06-02", "2025-06-04", "2025-06-05", "2025-06-09")...)

	for anchorOffset := -5; anchorOffset < 10; anchorOffset++ {
		anchor := today.AddDays(anchorOffset)
		alts := GenerateAlternatives(anchor, booked, today)
		if len(alts) != DefaultMaxAlternatives {
			t.Fatalf("anchor %s: len(alternatives) = %d, want %d", anchor, len(alts), DefaultMaxAlternatives)
		}
		for i, alt := range alts {
			if booked.Contains(alt) {
				t.Fatalf("anchor %s: alternative %s is booked", anchor, alt)
			}
			if !alt.After(today) || !alt.After(anchor) {
				t.Fatalf("anchor %s: alternative %s not after today and anchor", anchor, alt)
			}
			if i > 0 && !alt.After(alts[i-1]) {
				t.Fatalf("anchor %s: alternatives not strictly increasing: %v", anchor, alts)
			}
		}
	}
}

func TestChecker_MaxAlternatives(t *testing.T) {
	c := Checker{MaxAlternatives: 2}
	alts := c.Alternatives(d("2025-06-10"), BookedDateSet{}, d("2025-06-01"))
	if want := ds("2025-06-11", "2025-06-12"); !reflect.DeepEqual(alts, want) {
		t.Fatalf("alternatives = %v, want %v", alts, want)
	}
}

func TestToday_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	if got := Today(now, loc); got != d("2025-06-02") {
		t.Fatalf("Today = %s, want 2025-06-02", got)
	}
	if got := Today(now, nil); got != d("2025-06-01") {
		t.Fatalf("Today(nil) = %s, want 2025-06-01", got)
	}
}
