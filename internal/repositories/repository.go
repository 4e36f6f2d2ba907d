package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches a lookup
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when a unique index (username, email) is violated
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository defines the interface for user record operations.
// Every method touches exactly one user document.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindVerifiedByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id primitive.ObjectID) error

	// SetAcceptingMessages atomically sets the flag and returns the updated user
	SetAcceptingMessages(ctx context.Context, id primitive.ObjectID, accepting bool) (*models.User, error)

	// AppendMessageIfAccepting atomically pushes msg onto the recipient's messages
	// only when the recipient exists and accepts messages. It reports whether a
	// document was updated.
	AppendMessageIfAccepting(ctx context.Context, username string, msg models.Message) (bool, error)

	// FindMessagesSorted returns the user's messages newest first
	FindMessagesSorted(ctx context.Context, id primitive.ObjectID) ([]models.Message, error)

	// DeleteMessage pulls one message by id and reports whether it existed
	DeleteMessage(ctx context.Context, userID, messageID primitive.ObjectID) (bool, error)

	// EnsureIndexes creates the unique username and email indexes
	EnsureIndexes(ctx context.Context) error
}

// SessionRevocationStore records revoked session token ids until they expire
type SessionRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
