// internal/handlers/admin_audit_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/repositories/interfaces"
)

// AdminAuditHandler serves the append-only audit trail.
type AdminAuditHandler struct {
	Audit interfaces.AuditRepositoryInterface
}

func NewAdminAuditHandler(audit interfaces.AuditRepositoryInterface) *AdminAuditHandler {
	return &AdminAuditHandler{Audit: audit}
}

// @Summary List audit entries with optional table/record filters
// @Router /admin/audit [get]
func (h *AdminAuditHandler) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.Audit.List(c.Request.Context(), c.Query("table"), c.Query("record_id"), limit)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", entries))
}
