package documents

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"venuebook/internal/domain"
)

const (
	DefaultVenueName   = "Delight Convention Center"
	DefaultVenueRental = 5000
	DefaultServices    = 1500
	contentType        = "text/plain; charset=utf-8"
)

type Pricing struct {
	VenueRental int64
	Services    int64
}

func (p Pricing) Total() int64 {
	return p.VenueRental + p.Services
}

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

var quotationTmpl = template.Must(template.New("quotation").Parse(`{{.Venue}}
QUOTATION

Customer: {{.Customer}}
Event Type: {{.EventType}}
Event Dates: {{.Dates}}

Venue Rental: ${{.Pricing.VenueRental}}
Additional Services: ${{.Pricing.Services}}
Total Amount: ${{.Pricing.Total}}

Valid for 30 days from date of issue.
`))

var invoiceTmpl = template.Must(template.New("invoice").Parse(`{{.Venue}}
INVOICE

Invoice #: {{.InvoiceNumber}}
Customer: {{.Customer}}
Event Type: {{.EventType}}
Event Dates: {{.Dates}}

Venue Rental: ${{.Pricing.VenueRental}}
Additional Services: ${{.Pricing.Services}}
Total Amount: ${{.Pricing.Total}}

Payment due within 30 days.
`))

type Renderer struct {
	venue   string
	pricing Pricing
}

// NewRenderer falls back to the default venue name for a blank name and to
// the default prices for prices that are zero or negative.
func NewRenderer(venueName string, pricing Pricing) *Renderer {
	if strings.TrimSpace(venueName) == "" {
		venueName = DefaultVenueName
	}
	if pricing.VenueRental <= 0 {
		pricing.VenueRental = DefaultVenueRental
	}
	if pricing.Services <= 0 {
		pricing.Services = DefaultServices
	}
	return &Renderer{venue: strings.ToUpper(strings.TrimSpace(venueName)), pricing: pricing}
}

type docData struct {
	Venue         string
	InvoiceNumber string
	Customer      string
	EventType     string
	Dates         string
	Pricing       Pricing
}

func (r *Renderer) data(b domain.Booking) docData {
	return docData{
		Venue:     r.venue,
		Customer:  b.Name,
		EventType: b.EventType,
		Dates:     strings.Join(b.PreferredDates, ", "),
		Pricing:   r.pricing,
	}
}

func (r *Renderer) Quotation(b domain.Booking) (Document, error) {
	var buf bytes.Buffer
	if err := quotationTmpl.Execute(&buf, r.data(b)); err != nil {
		return Document{}, fmt.Errorf("render quotation: %w", err)
	}
	return Document{
		Filename:    "quotation-" + b.ID.String() + ".txt",
		ContentType: contentType,
		Body:        buf.Bytes(),
	}, nil
}

func (r *Renderer) Invoice(b domain.Booking) (Document, error) {
	d := r.data(b)
	d.InvoiceNumber = InvoiceNumber(b)

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, d); err != nil {
		return Document{}, fmt.Errorf("render invoice: %w", err)
	}
	return Document{
		Filename:    "invoice-" + d.InvoiceNumber + ".txt",
		ContentType: contentType,
		Body:        buf.Bytes(),
	}, nil
}

func InvoiceNumber(b domain.Booking) string {
	return "INV-" + b.ID.String()[:8]
}
