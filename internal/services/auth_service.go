package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/internal/validation"
	"github.com/ArowuTest/mystery-message-backend/pkg/jwt"
	"github.com/ArowuTest/mystery-message-backend/pkg/mailer"
)

// VerifyCodeTTL is how long an emailed verification code stays valid
const VerifyCodeTTL = time.Hour

type authService struct {
	userRepo    repositories.UserRepository
	revocations repositories.SessionRevocationStore
	tokens      *jwt.TokenService
	mail        mailer.Mailer
	logger      logrus.FieldLogger

	now        func() time.Time
	newCode    func() (string, error)
	bcryptCost int
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(
	userRepo repositories.UserRepository,
	revocations repositories.SessionRevocationStore,
	tokens *jwt.TokenService,
	mail mailer.Mailer,
	logger logrus.FieldLogger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		revocations: revocations,
		tokens:      tokens,
		mail:        mail,
		logger:      logger,
		now:         time.Now,
		newCode:     generateVerifyCode,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// SignUp registers a new account or refreshes the credentials of an
// unverified one, then emails a verification code.
func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	if err := validation.AsError(validation.SignUp(req)); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindVerifiedByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Conflict("Username is already taken")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Internal("Error registering user", err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, apperrors.Internal("Error registering user", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Error registering user", err)
	}
	expiry := s.now().Add(VerifyCodeTTL)

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && user.IsVerified:
		return nil, apperrors.Conflict("User already exists with this email")
	case err == nil:
		// No verified account holds req.Username (checked above), so the pending account takes it.
		user.Username = req.Username
		user.Password = string(hash)
		user.VerifyCode = code
		user.VerifyCodeExpiry = expiry
		if err := s.userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return nil, apperrors.Conflict("Username is already taken")
			}
			return nil, apperrors.Internal("Error registering user", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{
			Username:            req.Username,
			Email:               req.Email,
			Password:            string(hash),
			VerifyCode:          code,
			VerifyCodeExpiry:    expiry,
			IsVerified:          false,
			IsAcceptingMessages: true,
			Messages:            []models.Message{},
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				// An unverified sign-up with another email still holds the username.
				return nil, apperrors.Conflict("Username is already taken")
			}
			return nil, apperrors.Internal("Error registering user", err)
		}
	default:
		return nil, apperrors.Internal("Error registering user", err)
	}

	email, err := mailer.VerificationEmail(user.Email, user.Username, code)
	if err != nil {
		return nil, apperrors.Internal("Failed to send verification email", err)
	}
	if _, err := s.mail.Send(ctx, email); err != nil {
		return nil, apperrors.Internal("Failed to send verification email", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "username": user.Username}).Info("user registered, verification pending")
	return user, nil
}

func (s *authService) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) error {
	if err := validation.AsError(validation.VerifyCode(req)); err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("Error verifying user", err)
	}

	codeMatches := user.VerifyCode != "" && user.VerifyCode == req.Code
	notExpired := s.now().Before(user.VerifyCodeExpiry)

	switch {
	case codeMatches && notExpired:
		if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
			return apperrors.Internal("Error verifying user", err)
		}
		s.logger.WithField("user_id", user.ID.Hex()).Info("account verified")
		return nil
	case !notExpired:
		return apperrors.Validation("Verification code has expired, please sign up again to get a new code")
	default:
		return apperrors.Validation("Incorrect verification code")
	}
}

func (s *authService) CheckUsernameUnique(ctx context.Context, username string) error {
	if err := validation.AsError(validation.Username(username)); err != nil {
		return err
	}

	_, err := s.userRepo.FindVerifiedByUsername(ctx, username)
	if err == nil {
		return apperrors.Conflict("Username is already taken")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return apperrors.Internal("Error checking username", err)
	}
	return nil
}

// SignIn checks the password before the verification state so an unverified
// account is not disclosed to someone without its password.
func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) (*SignInResult, error) {
	if err := validation.AsError(validation.SignIn(req)); err != nil {
		return nil, err
	}

	user, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Incorrect credentials")
		}
		return nil, apperrors.Internal("Error signing in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthenticated("Incorrect credentials")
	}
	if !user.IsVerified {
		return nil, apperrors.Unauthenticated("Please verify your account before logging in")
	}

	token, claims, err := s.tokens.Issue(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, apperrors.Internal("Error signing in", err)
	}

	return &SignInResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      SessionUserFrom(user),
	}, nil
}

func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, identifier)
	if err == nil || !errors.Is(err, repositories.ErrNotFound) {
		return user, err
	}
	return s.userRepo.FindByUsername(ctx, identifier)
}

// SignOut revokes the token id for whatever lifetime the token has left
func (s *authService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperrors.Unauthenticated("Not authenticated")
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, tokenID, ttl); err != nil {
		return apperrors.Internal("Error signing out", err)
	}
	return nil
}

// generateVerifyCode returns a uniformly random 6-digit code
func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verify code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
