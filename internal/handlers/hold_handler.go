// internal/handlers/hold_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/repositories/interfaces"
)

// HoldHandler creates, reads, and releases short-lived holds, per §4.C.
type HoldHandler struct {
	Holds      *hold.Manager
	Cabins     interfaces.CabinRepositoryInterface
	BusinessTZ *time.Location
}

func NewHoldHandler(holds *hold.Manager, cabins interfaces.CabinRepositoryInterface, businessTZ *time.Location) *HoldHandler {
	return &HoldHandler{Holds: holds, Cabins: cabins, BusinessTZ: businessTZ}
}

// @Summary Place a hold on a cabin and date range
// @Router /hold [post]
func (h *HoldHandler) Create(c *gin.Context) {
	var req dto.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	ctx := c.Request.Context()
	cabin, err := booking.ResolveCabin(ctx, h.Cabins, req.Cabin)
	if err != nil {
		apierr.Write(c, err)
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

	result, err := h.Holds.CreateHold(ctx, cabin.ID.String(), checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), nil, req.CustomerName)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", result))
}

// @Summary Read a hold
// @Router /hold/{holdId} [get]
func (h *HoldHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("holdId"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	result, err := h.Holds.GetHold(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", result))
}

// @Summary Release a hold
// @Router /hold/{holdId} [delete]
func (h *HoldHandler) Release(c *gin.Context) {
	id, err := uuid.Parse(c.Param("holdId"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	if err := h.Holds.ReleaseHold(c.Request.Context(), id); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("hold released", nil))
}
