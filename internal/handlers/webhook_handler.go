// internal/handlers/webhook_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/booking"
)

// WebhookHandler accepts payment gateway event notifications. The gateway
// name in the path is informational only; verification and event mapping
// are shared across providers.
type WebhookHandler struct {
	Committer *booking.Committer
	Secret    string
}

func NewWebhookHandler(committer *booking.Committer, secret string) *WebhookHandler {
	return &WebhookHandler{Committer: committer, Secret: secret}
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// @Summary Payment gateway event sink
// @Router /webhooks/{gateway} [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if err := booking.VerifyWebhookSignature(h.Secret, body, signature); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	var succeeded bool
	switch payload.Type {
	case booking.WebhookEventIntentSucceeded:
		succeeded = true
	case booking.WebhookEventIntentFailed:
		succeeded = false
	default:
		// Unrelated event types are acknowledged and ignored.
		c.JSON(http.StatusOK, apierr.Success("event ignored", nil))
		return
	}

	if err := h.Committer.ReconcilePaymentWebhook(c.Request.Context(), payload.Data.Object.ID, succeeded); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Event for a payment reference we never created a transaction
			// for (a different system, a stale retry): acknowledge and move
			// on rather than surfacing it as a failure.
			c.JSON(http.StatusOK, apierr.Success("event ignored", nil))
			return
		}
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, apierr.Success("event processed", nil))
}
