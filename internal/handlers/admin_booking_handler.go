// internal/handlers/admin_booking_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/repositories/interfaces"
)

// AdminBookingHandler serves the operator-facing booking views.
type AdminBookingHandler struct {
	Bookings  interfaces.BookingRepositoryInterface
	Committer *booking.Committer
}

func NewAdminBookingHandler(bookings interfaces.BookingRepositoryInterface, committer *booking.Committer) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: bookings, Committer: committer}
}

// @Summary List bookings, optionally filtered by status
// @Router /admin/bookings [get]
func (h *AdminBookingHandler) List(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", bookings))
}

// @Summary Booking detail including transactions
// @Router /admin/bookings/{id} [get]
func (h *AdminBookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	bookingRecord, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, apierr.NotFound(apierr.ErrBookingNotFound))
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", bookingRecord))
}

// @Summary Cancel a booking
// @Router /admin/bookings/{id}/cancel [post]
func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	if err := h.Committer.Cancel(c.Request.Context(), id); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("booking cancelled", nil))
}
