// internal/handlers/availability_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/availability"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/repositories/interfaces"
)

// AvailabilityHandler runs the cabin search described by §4.D.
type AvailabilityHandler struct {
	Cabins     interfaces.CabinRepositoryInterface
	Resolver   *availability.Resolver
	BusinessTZ *time.Location
}

func NewAvailabilityHandler(cabins interfaces.CabinRepositoryInterface, resolver *availability.Resolver, businessTZ *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{Cabins: cabins, Resolver: resolver, BusinessTZ: businessTZ}
}

// @Summary Search for free cabins in a date range
// @Router /availability [post]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req dto.AvailabilityRequest
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
	if !checkOut.After(checkIn) {
		apierr.Write(c, apierr.InvalidInput(apierr.ErrInvalidDateRange))
		return
	}

	ctx := c.Request.Context()
	cabins, err := h.Cabins.List(ctx)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	criteria := availability.SearchCriteria{
		CheckInUTC:     checkIn.UTC(),
		CheckOutUTC:    checkOut.UTC(),
		Adults:         req.Adults,
		Kids:           req.Kids,
		Area:           req.Area,
		WantedFeatures: req.Features,
	}

	free := h.Resolver.Search(ctx, cabins, criteria)
	c.JSON(http.StatusOK, apierr.Success("", gin.H{
		"cabins": free,
		"count":  len(free),
	}))
}
