package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
)

func TestSetAcceptMessages_Success(t *testing.T) {
	userID := primitive.NewObjectID()
	var gotAccept bool
	handler := NewUserHandler(&mockAcceptanceService{
		setFunc: func(_ context.Context, id primitive.ObjectID, accept bool) (*models.User, error) {
			assert.Equal(t, userID, id)
			gotAccept = accept
			return &models.User{ID: id, Username: "alice", Password: "hash", IsAcceptingMessages: accept, Messages: []models.Message{}}, nil
		},
	}, &mockMessageService{})

	w, c := createTestContext(http.MethodPost, "/api/accept-messages", map[string]any{"acceptMessages": false})
	authenticate(c, userID)
	handler.SetAcceptMessages(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotAccept)
	body := decodeBody(w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Message acceptance status updated successfully", body["message"])
	updated := body["updatedUser"].(map[string]any)
	assert.Equal(t, false, updated["isAcceptingMessages"])
	assert.NotContains(t, updated, "password")
}

func TestSetAcceptMessages_InvalidBody(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{})

	for _, body := range []any{map[string]any{"acceptMessages": "yes"}, map[string]any{}, "not json"} {
		w, c := createTestContext(http.MethodPost, "/api/accept-messages", body)
		authenticate(c, primitive.NewObjectID())
		handler.SetAcceptMessages(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "acceptMessages must be a boolean", decodeBody(w)["message"])
	}
}

func TestSetAcceptMessages_Unauthenticated(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{})
	w, c := createTestContext(http.MethodPost, "/api/accept-messages", map[string]any{"acceptMessages": true})

	handler.SetAcceptMessages(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decodeBody(w)["message"])
}

func TestGetAcceptMessages(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{
		getFunc: func(context.Context, primitive.ObjectID) (bool, error) { return false, nil },
	}, &mockMessageService{})

	w, c := createTestContext(http.MethodGet, "/api/accept-messages", nil)
	authenticate(c, primitive.NewObjectID())
	handler.GetAcceptMessages(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["isAcceptingMessages"])
}

func TestGetAcceptMessages_NotFound(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{
		getFunc: func(context.Context, primitive.ObjectID) (bool, error) {
			return false, apperrors.NotFound("User not found")
		},
	}, &mockMessageService{})

	w, c := createTestContext(http.MethodGet, "/api/accept-messages", nil)
	authenticate(c, primitive.NewObjectID())
	handler.GetAcceptMessages(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeBody(w)["success"])
}

func TestGetMessages(t *testing.T) {
	now := time.Now().UTC()
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{
		getFunc: func(context.Context, primitive.ObjectID) ([]models.Message, error) {
			return []models.Message{
				{ID: primitive.NewObjectID(), Content: "newest message", CreatedAt: now},
				{ID: primitive.NewObjectID(), Content: "oldest message", CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	})

	w, c := createTestContext(http.MethodGet, "/api/get-messages", nil)
	authenticate(c, primitive.NewObjectID())
	handler.GetMessages(c)

	require.Equal(t, http.StatusOK, w.Code)
	messages := decodeBody(w)["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "newest message", messages[0].(map[string]any)["content"])
}

func TestGetMessages_EmptyInboxIsEmptyArray(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{
		getFunc: func(context.Context, primitive.ObjectID) ([]models.Message, error) {
			return []models.Message{}, nil
		},
	})

	w, c := createTestContext(http.MethodGet, "/api/get-messages", nil)
	authenticate(c, primitive.NewObjectID())
	handler.GetMessages(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"messages":[]}`, w.Body.String())
}

func TestGetMessages_StoreFailure(t *testing.T) {
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{
		getFunc: func(context.Context, primitive.ObjectID) ([]models.Message, error) {
			return nil, apperrors.Internal("Error retrieving messages", errors.New("socket closed"))
		},
	})

	w, c := createTestContext(http.MethodGet, "/api/get-messages", nil)
	authenticate(c, primitive.NewObjectID())
	handler.GetMessages(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "socket closed")
}

func TestDeleteMessage(t *testing.T) {
	messageID := primitive.NewObjectID().Hex()
	handler := NewUserHandler(&mockAcceptanceService{}, &mockMessageService{
		deleteFunc: func(_ context.Context, _ primitive.ObjectID, id string) error {
			if id != messageID {
				return apperrors.NotFound("Message not found or already deleted")
			}
			return nil
		},
	})

	w, c := createTestContext(http.MethodDelete, "/api/delete-message/"+messageID, nil)
	c.AddParam("messageId", messageID)
	authenticate(c, primitive.NewObjectID())
	handler.DeleteMessage(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Message deleted", decodeBody(w)["message"])

	w, c = createTestContext(http.MethodDelete, "/api/delete-message/other", nil)
	c.AddParam("messageId", "other")
	authenticate(c, primitive.NewObjectID())
	handler.DeleteMessage(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
