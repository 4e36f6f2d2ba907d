package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/middleware"
)

// respondError translates any service error into the JSON error envelope
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// bindJSON decodes the body, reporting malformed JSON as a validation failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperrors.Wrap(apperrors.KindValidationFailed, "Invalid request body", err))
		return false
	}
	return true
}

// currentUser returns the session's user id or aborts with 401
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, apperrors.Unauthenticated("Not authenticated"))
		return primitive.NilObjectID, false
	}
	return id, true
}
