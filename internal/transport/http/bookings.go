package httptransport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"venuebook/internal/domain"
	"venuebook/internal/service/bookings"
	"venuebook/internal/service/documents"
)

type datesRequest struct {
	Dates []string `json:"dates"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type reserveDateRequest struct {
	Date      string `json:"date"`
	EventName string `json:"event_name"`
}

func (h *handler) listBookedDates(c *gin.Context) {
	rows, err := h.Bookings.BookedDates(c.Request.Context())
	if err != nil {
		h.writeError(c, "list booked dates", err)
		return
	}
	dates := domain.FormatDates(domain.BookedDateSetOf(rows).Dates())
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *handler) checkAvailability(c *gin.Context) {
	var req datesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	report, err := h.Bookings.CheckAvailability(c.Request.Context(), req.Dates)
	if err != nil {
		h.writeError(c, "check availability", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) submitBooking(c *gin.Context) {
	var in bookings.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	in.IdempotencyKey = strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	b, err := h.Bookings.Submit(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "submit booking", err)
		return
	}
	h.log.Info("booking submitted",
		slog.String("booking_id", b.ID.String()),
		slog.String("event_type", b.EventType),
		slog.Int("dates", len(b.PreferredDates)),
	)
	c.JSON(http.StatusCreated, b)
}

func (h *handler) listEventTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"event_types": domain.EventTypes})
}

func (h *handler) adminListBookings(c *gin.Context) {
	list, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		h.writeError(c, "list bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *handler) adminUpcomingBookings(c *gin.Context) {
	list, err := h.Bookings.Upcoming(c.Request.Context())
	if err != nil {
		h.writeError(c, "list upcoming bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *handler) adminGetBooking(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) adminCreateBooking(c *gin.Context) {
	var in bookings.AdminBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	b, err := h.Bookings.CreateConfirmed(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "create confirmed booking", err)
		return
	}
	h.log.Info("confirmed booking created",
		slog.String("booking_id", b.ID.String()),
		slog.String("admin", adminName(c)),
	)
	c.JSON(http.StatusCreated, b)
}

func (h *handler) adminUpdateBooking(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var in bookings.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	b, err := h.Bookings.Update(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, "update booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) adminUpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	status := domain.BookingStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.writeError(c, "update booking status", err)
		return
	}
	h.log.Info("booking status updated",
		slog.String("booking_id", b.ID.String()),
		slog.String("status", string(b.Status)),
		slog.String("admin", adminName(c)),
	)
	c.JSON(http.StatusOK, b)
}

func (h *handler) adminDeleteBooking(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "delete booking", err)
		return
	}
	h.log.Info("booking deleted", slog.String("booking_id", id.String()), slog.String("admin", adminName(c)))
	c.Status(http.StatusNoContent)
}

func (h *handler) adminQuotation(c *gin.Context) {
	h.serveDocument(c, "quotation", h.Documents.Quotation)
}

func (h *handler) adminInvoice(c *gin.Context) {
	h.serveDocument(c, "invoice", h.Documents.Invoice)
}

func (h *handler) serveDocument(c *gin.Context, kind string, render func(domain.Booking) (documents.Document, error)) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get booking for "+kind, err)
		return
	}
	doc, err := render(b)
	if err != nil {
		h.writeError(c, "render "+kind, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *handler) adminListBookedDates(c *gin.Context) {
	rows, err := h.Bookings.BookedDates(c.Request.Context())
	if err != nil {
		h.writeError(c, "list booked dates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booked_dates": rows})
}

func (h *handler) adminReserveDate(c *gin.Context) {
	var req reserveDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	d, err := h.Bookings.ReserveDate(c.Request.Context(), req.Date, req.EventName)
	if err != nil {
		h.writeError(c, "reserve date", err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *handler) adminReleaseDate(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	if err := h.Bookings.ReleaseDate(c.Request.Context(), id); err != nil {
		h.writeError(c, "release date", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func uuidParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
