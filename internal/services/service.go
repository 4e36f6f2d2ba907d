package services

import (
	"context"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AcceptanceService defines the owner's message acceptance toggle
type AcceptanceService interface {
	// SetAcceptance sets the flag and returns the updated user
	SetAcceptance(ctx context.Context, userID primitive.ObjectID, accept bool) (*models.User, error)

	// GetAcceptance reports whether the user currently accepts messages
	GetAcceptance(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// MessageService defines anonymous message intake and owner retrieval
type MessageService interface {
	// SendMessage appends an anonymous message to the named recipient
	SendMessage(ctx context.Context, username, content string) error

	// GetMessages returns the owner's messages, newest first
	GetMessages(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error)

	// DeleteMessage removes one of the owner's messages by its hex id
	DeleteMessage(ctx context.Context, userID primitive.ObjectID, messageID string) error
}

// AuthService defines account registration and session operations
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error)
	VerifyCode(ctx context.Context, req models.VerifyCodeRequest) error
	CheckUsernameUnique(ctx context.Context, username string) error
	SignIn(ctx context.Context, req models.SignInRequest) (*SignInResult, error)
	SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// SuggestionService proposes conversation starters for senders
type SuggestionService interface {
	SuggestMessages(ctx context.Context) ([]string, error)
}

// SignInResult is returned by a successful sign-in
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.SessionUser
}

// SessionUserFrom projects a stored user onto the session view
func SessionUserFrom(u *models.User) models.SessionUser {
	return models.SessionUser{
		ID:                  u.ID.Hex(),
		Username:            u.Username,
		IsVerified:          u.IsVerified,
		IsAcceptingMessages: u.IsAcceptingMessages,
	}
}
