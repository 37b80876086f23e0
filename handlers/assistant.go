package handlers

import (
	"net/http"

	"campuspilot/models"
	ai "campuspilot/services/intelligence"
	"campuspilot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the chat assistant.
type AssistantHandler struct {
	Svc ai.AssistantService
}

func NewAssistantHandler(svc ai.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// Chat handles POST /api/assistant/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if req.UserID == "" {
		if uid, exists := c.Get("userID"); exists {
			if s, ok := uid.(string); ok {
				req.UserID = s
			}
		}
	}
	if req.Text == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "text is required")
		return
	}

	resp, err := h.Svc.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("assistant turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Assistant error", "Please try again later.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
