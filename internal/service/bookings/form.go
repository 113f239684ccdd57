package bookings

import (
	"context"
	"errors"
	"strings"

	"venuebook/internal/domain"
)

type FormState int

const (
	StateEmpty FormState = iota
	StateSelecting
	StateAvailable
	StateConflicted
	StateSubmitting
	StateSubmitted
	StateSubmitFailed
)

func (s FormState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSelecting:
		return "selecting"
	case StateAvailable:
		return "available"
	case StateConflicted:
		return "conflicted"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateSubmitFailed:
		return "submit_failed"
	}
	return "unknown"
}

var (
	ErrNoDates       = errors.New("select at least one date")
	ErrDatesConflict = errors.New("selected dates are already booked")
	ErrMissingFields = errors.New("name, email, phone and event type are required")
	ErrFormClosed    = errors.New("booking form already submitted")
)

// SubmitError wraps the store failure of a submission. The form is back in
// the available state with its selection intact.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return "submit booking: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

type Contact struct {
	Name      string
	Email     string
	Phone     string
	EventType string
}

func (c Contact) complete() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Phone) != "" &&
		strings.TrimSpace(c.EventType) != ""
}

// Submission is what a form hands to the store once it is allowed to submit.
type Submission struct {
	Contact Contact
	Dates   []domain.CalendarDate
}

type SubmitFunc func(ctx context.Context, sub Submission) (domain.Booking, error)

// Form drives one visitor's booking request. Every change to the selection
// or to the booked snapshot recomputes the report against the whole selection.
type Form struct {
	checker   domain.Checker
	booked    domain.BookedDateSet
	today     domain.CalendarDate
	selection *domain.Selection
	contact   Contact
	report    domain.ConflictReport
	state     FormState
	observe   func(from, to FormState)
}

func NewForm(checker domain.Checker, booked domain.BookedDateSet, today domain.CalendarDate) *Form {
	return &Form{
		checker:   checker,
		booked:    booked,
		today:     today,
		selection: domain.NewSelection(),
		report:    checker.Check(nil, booked, today),
		state:     StateEmpty,
	}
}

func (f *Form) State() FormState {
	return f.state
}

func (f *Form) Report() domain.ConflictReport {
	return f.report
}

func (f *Form) Dates() []domain.CalendarDate {
	return f.selection.Dates()
}

func (f *Form) Contact() Contact {
	return f.contact
}

func (f *Form) SetContact(c Contact) {
	f.contact = c
}

// ObserveTransitions registers fn to be called on every state change,
// including the transient selecting and submit_failed states.
func (f *Form) ObserveTransitions(fn func(from, to FormState)) {
	f.observe = fn
}

func (f *Form) AddDate(d domain.CalendarDate) (domain.ConflictReport, error) {
	if f.closed() {
		return f.report, ErrFormClosed
	}
	if !f.selection.Add(d) {
		return f.report, nil
	}
	f.transition(StateSelecting)
	f.recompute()
	return f.report, nil
}

func (f *Form) RemoveDate(d domain.CalendarDate) (domain.ConflictReport, error) {
	if f.closed() {
		return f.report, ErrFormClosed
	}
	f.selection.Remove(d)
	f.recompute()
	return f.report, nil
}

// Refresh replaces the booked snapshot, for example after another visitor's
// booking was confirmed, and re-evaluates the current selection.
func (f *Form) Refresh(booked domain.BookedDateSet, today domain.CalendarDate) domain.ConflictReport {
	f.booked = booked
	f.today = today
	if !f.closed() {
		f.recompute()
	}
	return f.report
}

// Submit calls fn only when the selection is conflict-free and the contact
// details are complete. Rejections happen locally and leave the state as is.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) (domain.Booking, error) {
	switch f.state {
	case StateSubmitted:
		return domain.Booking{}, ErrFormClosed
	case StateEmpty:
		return domain.Booking{}, ErrNoDates
	case StateConflicted:
		return domain.Booking{}, ErrDatesConflict
	case StateSubmitting:
		return domain.Booking{}, errors.New("submission already in progress")
	}
	if !f.contact.complete() {
		return domain.Booking{}, ErrMissingFields
	}

	f.transition(StateSubmitting)
	b, err := fn(ctx, Submission{Contact: f.contact, Dates: f.selection.Dates()})
	if err != nil {
		f.transition(StateSubmitFailed)
		// the selection is kept so the visitor can retry
		f.transition(StateAvailable)
		return domain.Booking{}, &SubmitError{Err: err}
	}
	f.transition(StateSubmitted)
	return b, nil
}

func (f *Form) closed() bool {
	return f.state == StateSubmitted || f.state == StateSubmitting
}

func (f *Form) recompute() {
	dates := f.selection.Dates()
	f.report = f.checker.Check(dates, f.booked, f.today)
	switch {
	case len(dates) == 0:
		f.transition(StateEmpty)
	case f.report.Available:
		f.transition(StateAvailable)
	default:
		f.transition(StateConflicted)
	}
}

func (f *Form) transition(to FormState) {
	from := f.state
	if from == to {
		return
	}
	f.state = to
	if f.observe != nil {
		f.observe(from, to)
	}
}
