package services

import (
	"context"
	"errors"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type acceptanceService struct {
	userRepo repositories.UserRepository
}

// NewAcceptanceService creates a new AcceptanceService implementation
func NewAcceptanceService(userRepo repositories.UserRepository) AcceptanceService {
	return &acceptanceService{userRepo: userRepo}
}

func (s *acceptanceService) SetAcceptance(ctx context.Context, userID primitive.ObjectID, accept bool) (*models.User, error) {
	user, err := s.userRepo.SetAcceptingMessages(ctx, userID, accept)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Unable to find user to update message acceptance status")
		}
		return nil, apperrors.Internal("Error updating message acceptance status", err)
	}
	return user, nil
}

func (s *acceptanceService) GetAcceptance(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperrors.NotFound("User not found")
		}
		return false, apperrors.Internal("Error retrieving message acceptance status", err)
	}
	return user.IsAcceptingMessages, nil
}
