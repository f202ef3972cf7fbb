package handlers

import (
	"net/http"
	"strings"

	"curabot/models"
	"curabot/utils"

	"github.com/gin-gonic/gin"
)

type ChatbotHandler struct {
	Service ChatResponder
}

// RespondHandler handles POST /api/ai/chatbot. Failures inside the chatbot
// surface as apology text with status 200.
func (h *ChatbotHandler) RespondHandler(c *gin.Context) {
	var req models.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		utils.JSONError(c, http.StatusBadRequest, "User ID is required", "")
		return
	}
	c.JSON(http.StatusOK, h.Service.Respond(c.Request.Context(), req.UserID, req.Message))
}
