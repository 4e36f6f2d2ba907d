package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/metrics"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/internal/validation"
)

type messageService struct {
	userRepo repositories.UserRepository
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewMessageService creates a new MessageService implementation
func NewMessageService(userRepo repositories.UserRepository, logger logrus.FieldLogger) MessageService {
	return &messageService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// SendMessage appends in one conditional update, so a recipient that stops
// accepting can never receive a message written after the flag flipped.
func (s *messageService) SendMessage(ctx context.Context, username, content string) error {
	if err := validation.AsError(validation.SendMessage(models.SendMessageRequest{Username: username, Content: content})); err != nil {
		metrics.MessageIntake(metrics.ResultInvalid)
		return err
	}

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		Content:   content,
		CreatedAt: s.now(),
	}

	appended, err := s.userRepo.AppendMessageIfAccepting(ctx, username, msg)
	if err != nil {
		metrics.MessageIntake(metrics.ResultStoreFailed)
		return apperrors.Internal("Error adding message", err)
	}
	if appended {
		metrics.MessageIntake(metrics.ResultAccepted)
		s.logger.WithField("recipient", username).Debug("message delivered")
		return nil
	}

	// Nothing matched: the recipient is missing or has closed their inbox.
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.MessageIntake(metrics.ResultNotFound)
			return apperrors.NotFound("User not found")
		}
		metrics.MessageIntake(metrics.ResultStoreFailed)
		return apperrors.Internal("Error adding message", err)
	}
	metrics.MessageIntake(metrics.ResultRejected)
	return apperrors.Forbidden("User is not accepting messages")
}

func (s *messageService) GetMessages(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	messages, err := s.userRepo.FindMessagesSorted(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Error retrieving messages", err)
	}
	if len(messages) > 0 {
		return messages, nil
	}

	// The aggregation yields nothing both for an empty inbox and an unknown user.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Error retrieving messages", err)
	}
	return []models.Message{}, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, userID primitive.ObjectID, messageID string) error {
	id, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return apperrors.Validation("Invalid message id", apperrors.FieldError{Field: "messageId", Message: "Invalid message id"})
	}

	deleted, err := s.userRepo.DeleteMessage(ctx, userID, id)
	if err != nil {
		return apperrors.Internal("Error deleting message", err)
	}
	if !deleted {
		return apperrors.NotFound("Message not found or already deleted")
	}
	return nil
}
