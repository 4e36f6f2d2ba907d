package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories/memory"
)

var errStoreDown = errors.New("store unavailable")

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func seedUser(t *testing.T, repo repositories.UserRepository, username string, accepting bool) *models.User {
	t.Helper()
	u := &models.User{
		Username:            username,
		Email:               username + "@example.com",
		IsVerified:          true,
		IsAcceptingMessages: accepting,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// faultyRepo fails every store call it overrides.
type faultyRepo struct {
	*memory.UserRepository
	err error
}

func (r *faultyRepo) FindByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return nil, r.err
}

func (r *faultyRepo) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, r.err
}

func (r *faultyRepo) FindVerifiedByUsername(context.Context, string) (*models.User, error) {
	return nil, r.err
}

func (r *faultyRepo) SetAcceptingMessages(context.Context, primitive.ObjectID, bool) (*models.User, error) {
	return nil, r.err
}

func (r *faultyRepo) AppendMessageIfAccepting(context.Context, string, models.Message) (bool, error) {
	return false, r.err
}

func (r *faultyRepo) FindMessagesSorted(context.Context, primitive.ObjectID) ([]models.Message, error) {
	return nil, r.err
}

func (r *faultyRepo) DeleteMessage(context.Context, primitive.ObjectID, primitive.ObjectID) (bool, error) {
	return false, r.err
}
