// Package memory provides process-local repository implementations used for
// local development (Store.Driver=memory) and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository keeps users in a map guarded by a mutex. Returned users are
// copies, callers never share state with the store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *UserRepository) EnsureIndexes(context.Context) error { return nil }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Messages == nil {
		user.Messages = []models.Message{}
	}
	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findFirst(func(u *models.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findFirst(func(u *models.User) bool { return u.Email == email })
}

func (r *UserRepository) FindVerifiedByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findFirst(func(u *models.User) bool { return u.Username == username && u.IsVerified })
}

func (r *UserRepository) findFirst(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Password = user.Password
	stored.VerifyCode = user.VerifyCode
	stored.VerifyCodeExpiry = user.VerifyCodeExpiry
	stored.IsVerified = user.IsVerified
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.IsVerified = true
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SetAcceptingMessages(ctx context.Context, id primitive.ObjectID, accepting bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u.IsAcceptingMessages = accepting
	u.UpdatedAt = time.Now()
	return clone(u), nil
}

func (r *UserRepository) AppendMessageIfAccepting(ctx context.Context, username string, msg models.Message) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username && u.IsAcceptingMessages {
			u.Messages = append(u.Messages, msg)
			u.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) FindMessagesSorted(ctx context.Context, id primitive.ObjectID) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return []models.Message{}, nil
	}
	msgs := make([]models.Message, len(u.Messages))
	copy(msgs, u.Messages)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *UserRepository) DeleteMessage(ctx context.Context, userID, messageID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	for i, m := range u.Messages {
		if m.ID == messageID {
			u.Messages = append(u.Messages[:i], u.Messages[i+1:]...)
			u.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.Messages = make([]models.Message, len(u.Messages))
	copy(c.Messages, u.Messages)
	return &c
}
