package handlers

import (
	"net/http"

	"bookingagent/models"
	"bookingagent/services/agent"
	"bookingagent/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AgentHandler exposes the conversation loop over HTTP.
type AgentHandler struct {
	Orchestrator *agent.Orchestrator
	Logger       *zap.Logger
}

func NewAgentHandler(orchestrator *agent.Orchestrator, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{Orchestrator: orchestrator, Logger: logger}
}

// HandleChat runs one conversation turn: the user's utterance in, the
// messages produced by the loop out.
func (h *AgentHandler) HandleChat(c *gin.Context) {
	var req models.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = req.UserID
	}
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	resp, err := h.Orchestrator.HandleMessage(c.Request.Context(), conversationID, req.Text)
	if err != nil {
		h.Logger.Error("conversation turn failed",
			zap.String("conversationId", conversationID),
			zap.Error(err),
		)
		utils.JSONError(c, http.StatusInternalServerError, "Conversation turn failed", "Please try again.")
		return
	}

	c.JSON(http.StatusOK, resp)
}
