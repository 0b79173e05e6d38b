// internal/handlers/booking_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/dto"
)

// BookingHandler confirms a stay, per §4.E.
type BookingHandler struct {
	Committer  *booking.Committer
	BusinessTZ *time.Location
}

func NewBookingHandler(committer *booking.Committer, businessTZ *time.Location) *BookingHandler {
	return &BookingHandler{Committer: committer, BusinessTZ: businessTZ}
}

// @Summary Confirm a booking
// @Router /book [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	checkIn, err := parseLocalDate(req.CheckIn, h.BusinessTZ)
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}
	checkOut, err := parseLocalDate(req.CheckOut, h.BusinessTZ)
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	var holdID *uuid.UUID
	if req.HoldID != "" {
		id, err := uuid.Parse(req.HoldID)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			return
		}
		holdID = &id
	}

	applyDiscounts := true
	if req.ApplyDiscounts != nil {
		applyDiscounts = *req.ApplyDiscounts
	}

	var totalOverride *decimal.Decimal
	if req.TotalOverride != nil {
		v := decimal.NewFromFloat(*req.TotalOverride)
		totalOverride = &v
	}

	commitReq := booking.CommitRequest{
		CabinIdentifier:    req.Cabin,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Adults:             req.Adults,
		Kids:               req.Kids,
		HoldID:             holdID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		Notes:              req.Notes,
		Addons:             toAddons(req.Addons),
		TotalPriceOverride: totalOverride,
		ApplyDiscounts:     applyDiscounts,
		CreatePayment:      req.CreatePayment,
	}

	result, err := h.Committer.Commit(c.Request.Context(), commitReq)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	message := "booking confirmed"
	if result.Warning != "" {
		message = result.Warning
	}
	c.JSON(http.StatusOK, apierr.Success(message, result.Booking))
}
