package httptransport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/service/admin"
	"venuebook/internal/service/bookings"
	"venuebook/internal/service/gallery"
	"venuebook/internal/store"
)

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// writeError maps service and store errors to responses. Unexpected errors
// are logged and reported as a generic 500.
func (h *handler) writeError(c *gin.Context, op string, err error) {
	var (
		bookingVErr *bookings.ValidationError
		galleryVErr *gallery.ValidationError
		adminVErr   *admin.ValidationError
		conflictErr *bookings.ConflictError
	)
	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":  conflictErr.Error(),
			"report": conflictErr.Report,
		})
	case errors.As(err, &bookingVErr), errors.As(err, &galleryVErr), errors.As(err, &adminVErr):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, admin.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorBody(err.Error()))
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, errorBody("date is already booked"))
	case errors.Is(err, store.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, errorBody("this request key was already used for a different booking"))
	default:
		h.log.Error(op+" failed", slog.String("path", c.FullPath()), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}
