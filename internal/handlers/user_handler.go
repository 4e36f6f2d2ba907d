package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/services"
	"github.com/ArowuTest/mystery-message-backend/internal/validation"
)

// UserHandler serves the signed-in owner's inbox routes
type UserHandler struct {
	acceptanceService services.AcceptanceService
	messageService    services.MessageService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(acceptanceService services.AcceptanceService, messageService services.MessageService) *UserHandler {
	return &UserHandler{
		acceptanceService: acceptanceService,
		messageService:    messageService,
	}
}

// SetAcceptMessages handles POST /accept-messages
func (h *UserHandler) SetAcceptMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.AcceptMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A non-boolean value fails decoding before the schema sees it.
		respondError(c, apperrors.Validation("", apperrors.FieldError{Field: "acceptMessages", Message: "acceptMessages must be a boolean"}))
		return
	}
	if err := validation.AsError(validation.AcceptMessages(req)); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.acceptanceService.SetAcceptance(c.Request.Context(), userID, *req.AcceptMessages)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success:     true,
		Message:     "Message acceptance status updated successfully",
		UpdatedUser: user,
	})
}

// GetAcceptMessages handles GET /accept-messages
func (h *UserHandler) GetAcceptMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	accepting, err := h.acceptanceService.GetAcceptance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success:             true,
		IsAcceptingMessages: &accepting,
	})
}

// GetMessages handles GET /get-messages
func (h *UserHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	messages, err := h.messageService.GetMessages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessagesResponse{
		Success:  true,
		Messages: messages,
	})
}

// DeleteMessage handles DELETE /delete-message/:messageId
func (h *UserHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), userID, c.Param("messageId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Message deleted"})
}
