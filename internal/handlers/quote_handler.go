// internal/handlers/quote_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/pricing"
	"cabinreserve/internal/repositories/interfaces"
)

// QuoteHandler prices a stay without reserving it, per §4.B.
type QuoteHandler struct {
	Cabins     interfaces.CabinRepositoryInterface
	Pricing    *pricing.Engine
	BusinessTZ *time.Location
}

func NewQuoteHandler(cabins interfaces.CabinRepositoryInterface, pricingEngine *pricing.Engine, businessTZ *time.Location) *QuoteHandler {
	return &QuoteHandler{Cabins: cabins, Pricing: pricingEngine, BusinessTZ: businessTZ}
}

func toAddons(in []dto.AddonInput) []pricing.Addon {
	addons := make([]pricing.Addon, 0, len(in))
	for _, a := range in {
		addons = append(addons, pricing.Addon{
			Name:  a.Name,
			Price: decimal.NewFromFloat(a.Price),
		})
	}
	return addons
}

// @Summary Price a stay
// @Router /quote [post]
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
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

	applyDiscounts := true
	if req.ApplyDiscounts != nil {
		applyDiscounts = *req.ApplyDiscounts
	}

	breakdown := h.Pricing.CalculateBreakdown(cabin, checkIn, checkOut, toAddons(req.Addons), applyDiscounts)
	c.JSON(http.StatusOK, apierr.Success("", breakdown))
}
