package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"venuebook/internal/auth"
	"venuebook/internal/domain"
	"venuebook/internal/service/admin"
	"venuebook/internal/service/bookings"
	"venuebook/internal/service/documents"
	"venuebook/internal/service/gallery"
)

type bookingService interface {
	BookedDates(ctx context.Context) ([]domain.BookedDate, error)
	CheckAvailability(ctx context.Context, dates []string) (domain.ConflictReport, error)
	Submit(ctx context.Context, in bookings.SubmitInput) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Upcoming(ctx context.Context) ([]domain.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	Update(ctx context.Context, id uuid.UUID, in bookings.UpdateInput) (domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateConfirmed(ctx context.Context, in bookings.AdminBookingInput) (domain.Booking, error)
	ReserveDate(ctx context.Context, date, eventName string) (domain.BookedDate, error)
	ReleaseDate(ctx context.Context, id uuid.UUID) error
}

type adminService interface {
	Login(ctx context.Context, username, password string) (admin.Session, error)
	Authenticate(token string) (auth.Claims, error)
}

type galleryService interface {
	List(ctx context.Context, category string) ([]domain.GalleryItem, error)
	Create(ctx context.Context, in gallery.CreateInput) (domain.GalleryItem, error)
	Update(ctx context.Context, id int64, in gallery.UpdateInput) (domain.GalleryItem, error)
	Delete(ctx context.Context, id int64) error
}

type documentRenderer interface {
	Quotation(b domain.Booking) (documents.Document, error)
	Invoice(b domain.Booking) (documents.Document, error)
}

type Services struct {
	Bookings  bookingService
	Admin     adminService
	Gallery   galleryService
	Documents documentRenderer
}

type Options struct {
	CORSOrigins    []string
	RateLimit      rate.Limit
	RateBurst      int
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type handler struct {
	Services
	log *slog.Logger
}

func NewRouter(svc Services, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "http"))
	if opts.RateLimit <= 0 {
		opts.RateLimit = rate.Limit(1)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 5
	}

	h := &handler{Services: svc, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if opts.RequestTimeout > 0 {
		r.Use(requestTimeout(opts.RequestTimeout))
	}

	limiter := newIPRateLimiter(opts.RateLimit, opts.RateBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/booked-dates", h.listBookedDates)
		api.POST("/availability", h.checkAvailability)
		api.POST("/bookings", limiter.middleware(log), h.submitBooking)
		api.GET("/event-types", h.listEventTypes)
		api.GET("/gallery", h.listGallery)
		api.POST("/admin/login", limiter.middleware(log), h.login)
	}

	protected := api.Group("/admin")
	protected.Use(requireAdmin(svc.Admin, log))
	{
		protected.GET("/bookings", h.adminListBookings)
		protected.GET("/bookings/upcoming", h.adminUpcomingBookings)
		protected.POST("/bookings", h.adminCreateBooking)
		protected.GET("/bookings/:id", h.adminGetBooking)
		protected.PATCH("/bookings/:id", h.adminUpdateBooking)
		protected.DELETE("/bookings/:id", h.adminDeleteBooking)
		protected.PUT("/bookings/:id/status", h.adminUpdateStatus)
		protected.GET("/bookings/:id/quotation", h.adminQuotation)
		protected.GET("/bookings/:id/invoice", h.adminInvoice)

		protected.GET("/booked-dates", h.adminListBookedDates)
		protected.POST("/booked-dates", h.adminReserveDate)
		protected.DELETE("/booked-dates/:id", h.adminReleaseDate)

		protected.POST("/gallery", h.adminCreateGalleryItem)
		protected.PATCH("/gallery/:id", h.adminUpdateGalleryItem)
		protected.DELETE("/gallery/:id", h.adminDeleteGalleryItem)
	}

	return r
}
