// internal/handlers/cabin_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/assets"
	"cabinreserve/internal/availability"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// CabinHandler serves the public catalog and per-cabin calendar views.
type CabinHandler struct {
	Cabins     interfaces.CabinRepositoryInterface
	Resolver   *availability.Resolver
	Images     *assets.CabinImages
	BusinessTZ *time.Location
}

func NewCabinHandler(cabins interfaces.CabinRepositoryInterface, resolver *availability.Resolver, images *assets.CabinImages, businessTZ *time.Location) *CabinHandler {
	return &CabinHandler{Cabins: cabins, Resolver: resolver, Images: images, BusinessTZ: businessTZ}
}

// cabinListing embeds the catalog record with its resolved photo URLs, since
// the gorm model only carries the stored image_refs fallback.
type cabinListing struct {
	*models.Cabin
	Images []string `json:"images"`
}

// @Summary List the cabin catalog
// @Router /cabins [get]
func (h *CabinHandler) List(c *gin.Context) {
	cabins, err := h.Cabins.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	listings := make([]cabinListing, 0, len(cabins))
	for _, cabin := range cabins {
		listings = append(listings, cabinListing{Cabin: cabin, Images: h.Images.Resolve(cabin)})
	}
	c.JSON(http.StatusOK, apierr.Success("", listings))
}

// @Summary Booked-dates view for a window
// @Router /cabin/calendar/{cabinId} [get]
func (h *CabinHandler) Calendar(c *gin.Context) {
	identifier := c.Param("cabinId")
	cabin, err := booking.ResolveCabin(c.Request.Context(), h.Cabins, identifier)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	now := time.Now().In(h.BusinessTZ)
	monthStart := now
	monthEnd := now.AddDate(0, 1, 0)

	if from := c.Query("from"); from != "" {
		parsed, err := parseLocalDate(from, h.BusinessTZ)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			return
		}
		monthStart = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.BusinessTZ)
	}
	if to := c.Query("to"); to != "" {
		parsed, err := parseLocalDate(to, h.BusinessTZ)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			return
		}
		monthEnd = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.BusinessTZ)
	} else if c.Query("from") != "" {
		monthEnd = monthStart.AddDate(0, 1, 0)
	}

	days, err := h.Resolver.MonthFreeDays(c.Request.Context(), cabin, monthStart, monthEnd)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", gin.H{
		"cabin_id": cabin.ID,
		"days":     days,
	}))
}
