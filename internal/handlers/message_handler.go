package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/services"
)

// MessageHandler serves the anonymous sender routes
type MessageHandler struct {
	messageService    services.MessageService
	suggestionService services.SuggestionService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService services.MessageService, suggestionService services.SuggestionService) *MessageHandler {
	return &MessageHandler{
		messageService:    messageService,
		suggestionService: suggestionService,
	}
}

// SendMessage handles POST /send-message. Any session on the request is ignored.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.messageService.SendMessage(c.Request.Context(), req.Username, req.Content); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: "Message sent successfully"})
}

// SuggestMessages handles POST /suggest-messages
func (h *MessageHandler) SuggestMessages(c *gin.Context) {
	suggestions, err := h.suggestionService.SuggestMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Suggestions: suggestions})
}
