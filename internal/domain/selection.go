package domain

import "sort"

// Selection is the ordered, duplicate-free set of days a visitor picked for
// one booking. The first day added is the anchor for alternative suggestions.
type Selection struct {
	dates []CalendarDate
}

func NewSelection(dates ...CalendarDate) *Selection {
	s := &Selection{}
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add appends d and reports whether it was added. Adding a present day is a no-op.
func (s *Selection) Add(d CalendarDate) bool {
	if s.Contains(d) {
		return false
	}
	s.dates = append(s.dates, d)
	return true
}

func (s *Selection) Remove(d CalendarDate) bool {
	for i, existing := range s.dates {
		if existing == d {
			s.dates = append(s.dates[:i], s.dates[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) Contains(d CalendarDate) bool {
	for _, existing := range s.dates {
		if existing == d {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	return len(s.dates)
}

func (s *Selection) Anchor() (CalendarDate, bool) {
	if len(s.dates) == 0 {
		return CalendarDate{}, false
	}
	return s.dates[0], true
}

// Dates returns a copy in insertion order.
func (s *Selection) Dates() []CalendarDate {
	out := make([]CalendarDate, len(s.dates))
	copy(out, s.dates)
	return out
}

func SortDates(dates []CalendarDate) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
