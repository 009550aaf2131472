package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/services"
)

// ChatController handles the end-user question-answering endpoint.
type ChatController struct {
	ragService services.RAGService
}

// NewChatController creates a ChatController with the injected service.
func NewChatController(service services.RAGService) *ChatController {
	return &ChatController{ragService: service}
}

// Ask is the handler for POST /api/v1/chat.
func (c *ChatController) Ask(ctx *gin.Context) {
	var req models.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := c.ragService.Ask(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if services.CheckPII(req.Question) {
		response.Warning = services.PIIWarning
	}
	ctx.JSON(http.StatusOK, response)
}
