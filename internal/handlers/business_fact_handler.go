// internal/handlers/business_fact_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// BusinessFactHandler maintains operator-authored knowledge the agent
// quotes verbatim (check-in time, wifi password, cancellation policy, ...).
type BusinessFactHandler struct {
	Facts interfaces.BusinessFactRepositoryInterface
}

func NewBusinessFactHandler(facts interfaces.BusinessFactRepositoryInterface) *BusinessFactHandler {
	return &BusinessFactHandler{Facts: facts}
}

// @Summary List business facts, optionally filtered by category
// @Router /admin/business-facts [get]
func (h *BusinessFactHandler) List(c *gin.Context) {
	facts, err := h.Facts.ListAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", facts))
}

// @Summary Create or replace a business fact
// @Router /admin/business-facts [post]
func (h *BusinessFactHandler) Upsert(c *gin.Context) {
	var req dto.BusinessFactUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	fact, err := h.Facts.Upsert(c.Request.Context(), &models.BusinessFact{
		FactKey:     req.Key,
		FactValue:   req.Value,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", fact))
}

// @Summary Deactivate a business fact
// @Router /admin/business-facts/{key} [delete]
func (h *BusinessFactHandler) Deactivate(c *gin.Context) {
	key := c.Param("key")
	if err := h.Facts.Deactivate(c.Request.Context(), key); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("business fact deactivated", nil))
}
