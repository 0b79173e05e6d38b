// internal/handlers/admin_hold_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/hold"
)

// AdminHoldHandler lists every currently active hold.
type AdminHoldHandler struct {
	Holds *hold.Manager
}

func NewAdminHoldHandler(holds *hold.Manager) *AdminHoldHandler {
	return &AdminHoldHandler{Holds: holds}
}

// @Summary List active holds
// @Router /admin/holds [get]
func (h *AdminHoldHandler) List(c *gin.Context) {
	holds, err := h.Holds.ListActiveHolds(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", holds))
}
