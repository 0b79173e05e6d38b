// internal/handlers/faq_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/repositories/interfaces"
)

// FAQHandler drives the operator FAQ review workflow.
type FAQHandler struct {
	FAQs interfaces.FAQRepositoryInterface
}

func NewFAQHandler(faqs interfaces.FAQRepositoryInterface) *FAQHandler {
	return &FAQHandler{FAQs: faqs}
}

// @Summary Pending FAQ suggestions
// @Router /admin/faq/pending [get]
func (h *FAQHandler) Pending(c *gin.Context) {
	faqs, err := h.FAQs.ListPending(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", faqs))
}

// @Summary All FAQs, approved and pending
// @Router /admin/faq/all [get]
func (h *FAQHandler) All(c *gin.Context) {
	faqs, err := h.FAQs.ListAll(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", faqs))
}

// @Summary Approve or reject a pending suggestion
// @Router /admin/faq/approve [post]
func (h *FAQHandler) Approve(c *gin.Context) {
	var req dto.FAQApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	faq, err := h.FAQs.Approve(c.Request.Context(), id, req.Approved, req.Question, req.Answer)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", faq))
}

// @Summary Update an FAQ's text
// @Router /admin/faq/{id} [put]
func (h *FAQHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	var req dto.FAQUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	faq, err := h.FAQs.Update(c.Request.Context(), id, req.Question, req.Answer)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("", faq))
}

// @Summary Delete an FAQ
// @Router /admin/faq/{id} [delete]
func (h *FAQHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	if err := h.FAQs.Delete(c.Request.Context(), id); err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("faq deleted", nil))
}
