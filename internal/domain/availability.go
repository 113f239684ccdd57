package domain

const (
	DefaultMaxAlternatives = 5
	DefaultHorizonDays     = 365
)

// BookedDateSet is a read-only snapshot of reserved days.
type BookedDateSet struct {
	dates map[CalendarDate]struct{}
}

func NewBookedDateSet(dates ...CalendarDate) BookedDateSet {
	m := make(map[CalendarDate]struct{}, len(dates))
	for _, d := range dates {
		m[d] = struct{}{}
	}
	return BookedDateSet{dates: m}
}

func (s BookedDateSet) Contains(d CalendarDate) bool {
	_, ok := s.dates[d]
	return ok
}

func (s BookedDateSet) Len() int {
	return len(s.dates)
}

// Dates returns the booked days in chronological order.
func (s BookedDateSet) Dates() []CalendarDate {
	out := make([]CalendarDate, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	SortDates(out)
	return out
}

type ConflictReport struct {
	Available bool `json:"available"`
	// Conflicts lists the selected days that are already booked, in selection order.
	Conflicts []CalendarDate `json:"conflicts"`
	// Alternatives are seeded from the first selected day only.
	Alternatives []CalendarDate `json:"alternatives"`
	// Exhausted is set when the search horizon ran out before enough alternatives were found.
	Exhausted bool `json:"exhausted"`
}

// Checker flags conflicts between a selection and the booked snapshot and
// proposes free days after the anchor. Zero fields fall back to the defaults.
type Checker struct {
	MaxAlternatives int
	HorizonDays     int
}

func (c Checker) maxAlternatives() int {
	if c.MaxAlternatives <= 0 {
		return DefaultMaxAlternatives
	}
	return c.MaxAlternatives
}

func (c Checker) horizonDays() int {
	if c.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return c.HorizonDays
}

// Check reports whether none of the candidates are booked. An empty selection
// is trivially available; callers that need a definitive answer must guard it.
func (c Checker) Check(candidates []CalendarDate, booked BookedDateSet, today CalendarDate) ConflictReport {
	report := ConflictReport{
		Available:    true,
		Conflicts:    []CalendarDate{},
		Alternatives: []CalendarDate{},
	}
	if len(candidates) == 0 {
		return report
	}

	seen := make(map[CalendarDate]struct{}, len(candidates))
	for _, d := range candidates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		if booked.Contains(d) {
			report.Conflicts = append(report.Conflicts, d)
		}
	}
	if len(report.Conflicts) == 0 {
		return report
	}

	report.Available = false
	report.Alternatives = c.Alternatives(candidates[0], booked, today)
	report.Exhausted = len(report.Alternatives) < c.maxAlternatives()
	return report
}

// Alternatives scans forward one day at a time from the day after anchor and
// collects days that are free and strictly after today. The scan covers at
// most HorizonDays days; days on or before today are skipped without
// consuming the horizon.
func (c Checker) Alternatives(anchor CalendarDate, booked BookedDateSet, today CalendarDate) []CalendarDate {
	limit := c.maxAlternatives()
	start := anchor
	if start.Before(today) {
		start = today
	}

	out := make([]CalendarDate, 0, limit)
	day := start
	for i := 0; i < c.horizonDays() && len(out) < limit; i++ {
		day = day.AddDays(1)
		if booked.Contains(day) || !day.After(today) {
			continue
		}
		out = append(out, day)
	}
	return out
}

func CheckAvailability(candidates []CalendarDate, booked BookedDateSet, today CalendarDate) ConflictReport {
	return Checker{}.Check(candidates, booked, today)
}

func GenerateAlternatives(anchor CalendarDate, booked BookedDateSet, today CalendarDate) []CalendarDate {
	return Checker{}.Alternatives(anchor, booked, today)
}
