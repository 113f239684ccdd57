package store

import (
	"context"

	"github.com/google/uuid"

	"venuebook/internal/domain"
)

type BookingPatch struct {
	Name           *string
	Email          *string
	Phone          *string
	EventType      *string
	PreferredDates []string
}

type BookingRepository interface {
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)
	// CreateConfirmed stores a confirmed booking and reserves its dates in one transaction.
	CreateConfirmed(ctx context.Context, b domain.Booking, eventName string) (domain.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch BookingPatch) (domain.Booking, error)
	// UpdateStatus reserves the booking's dates when it becomes confirmed and
	// releases them when it leaves confirmed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookedDateRepository interface {
	ListBookedDates(ctx context.Context) ([]domain.BookedDate, error)
	CreateBookedDate(ctx context.Context, d domain.BookedDate) (domain.BookedDate, error)
	DeleteBookedDate(ctx context.Context, id uuid.UUID) error
}

type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (domain.AdminUser, error)
	CreateAdmin(ctx context.Context, a domain.AdminUser) (domain.AdminUser, error)
}

type GalleryRepository interface {
	ListGallery(ctx context.Context, category domain.GalleryCategory) ([]domain.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id int64) (domain.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, item domain.GalleryItem) (domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id int64) error
}

// CalendarTx is the set of writes that run under the venue calendar lock.
type CalendarTx interface {
	InsertBooking(ctx context.Context, b domain.Booking) (domain.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	UpdateBooking(ctx context.Context, b domain.Booking) error
	SetBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	ReserveDates(ctx context.Context, dates []domain.BookedDate) error
	ReleaseBookingDates(ctx context.Context, bookingID uuid.UUID) error
}
