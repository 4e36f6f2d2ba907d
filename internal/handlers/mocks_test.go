package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/middleware"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/services"
)

var errNotImplemented = errors.New("not implemented")

type mockAcceptanceService struct {
	setFunc func(ctx context.Context, userID primitive.ObjectID, accept bool) (*models.User, error)
	getFunc func(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

func (m *mockAcceptanceService) SetAcceptance(ctx context.Context, userID primitive.ObjectID, accept bool) (*models.User, error) {
	if m.setFunc != nil {
		return m.setFunc(ctx, userID, accept)
	}
	return nil, errNotImplemented
}

func (m *mockAcceptanceService) GetAcceptance(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return false, errNotImplemented
}

type mockMessageService struct {
	sendFunc   func(ctx context.Context, username, content string) error
	getFunc    func(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error)
	deleteFunc func(ctx context.Context, userID primitive.ObjectID, messageID string) error
}

func (m *mockMessageService) SendMessage(ctx context.Context, username, content string) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, username, content)
	}
	return errNotImplemented
}

func (m *mockMessageService) GetMessages(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockMessageService) DeleteMessage(ctx context.Context, userID primitive.ObjectID, messageID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, messageID)
	}
	return errNotImplemented
}

type mockSuggestionService struct {
	suggestFunc func(ctx context.Context) ([]string, error)
}

func (m *mockSuggestionService) SuggestMessages(ctx context.Context) ([]string, error) {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx)
	}
	return nil, errNotImplemented
}

type mockAuthService struct {
	signUpFunc        func(ctx context.Context, req models.SignUpRequest) (*models.User, error)
	verifyCodeFunc    func(ctx context.Context, req models.VerifyCodeRequest) error
	checkUsernameFunc func(ctx context.Context, username string) error
	signInFunc        func(ctx context.Context, req models.SignInRequest) (*services.SignInResult, error)
	signOutFunc       func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (m *mockAuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) error {
	if m.verifyCodeFunc != nil {
		return m.verifyCodeFunc(ctx, req)
	}
	return errNotImplemented
}

func (m *mockAuthService) CheckUsernameUnique(ctx context.Context, username string) error {
	if m.checkUsernameFunc != nil {
		return m.checkUsernameFunc(ctx, username)
	}
	return errNotImplemented
}

func (m *mockAuthService) SignIn(ctx context.Context, req models.SignInRequest) (*services.SignInResult, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, tokenID, expiresAt)
	}
	return errNotImplemented
}

func createTestContext(method, path string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(b)
	}

	c.Request = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

// authenticate puts a session on the context the way SessionAuthMiddleware does
func authenticate(c *gin.Context, userID primitive.ObjectID) {
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.TokenIDKey, "jti-test")
	c.Set(middleware.TokenExpiresAtKey, time.Now().Add(time.Hour))
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}
