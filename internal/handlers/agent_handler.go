// internal/handlers/agent_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabinreserve/internal/agent"
	"cabinreserve/internal/apierr"
	"cabinreserve/internal/dto"
	"cabinreserve/internal/models"
)

// AgentHandler drives the conversational turn endpoint, §4.F.
type AgentHandler struct {
	Engine *agent.Engine
}

func NewAgentHandler(engine *agent.Engine) *AgentHandler {
	return &AgentHandler{Engine: engine}
}

var channelsByName = map[string]models.ConversationChannel{
	"web":      models.ChannelWeb,
	"whatsapp": models.ChannelWhatsApp,
	"voice":    models.ChannelVoice,
	"sms":      models.ChannelSMS,
}

// @Summary Handle one conversational turn
// @Router /agent/chat [post]
func (h *AgentHandler) Chat(c *gin.Context) {
	var req dto.AgentChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Write(c, apierr.InvalidInput(err))
		return
	}

	var conversationID *uuid.UUID
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			return
		}
		conversationID = &id
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			return
		}
		customerID = &id
	}

	channel := models.ChannelWeb
	if req.Channel != "" {
		if mapped, ok := channelsByName[req.Channel]; ok {
			channel = mapped
		}
	}

	result, err := h.Engine.HandleTurn(c.Request.Context(), agent.TurnRequest{
		ConversationID: conversationID,
		CustomerID:     customerID,
		Channel:        channel,
		Message:        req.Message,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, apierr.Success("", gin.H{
		"conversation_id": result.ConversationID,
		"reply":           result.Reply,
		"intent":          result.Intent,
		"confidence":      result.Confidence,
	}))
}
