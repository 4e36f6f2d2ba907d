package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/mystery-message-backend/internal/middleware"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/services"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authService   services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// SignUp handles POST /sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.authService.SignUp(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: "User registered successfully. Please verify your account.",
	})
}

// VerifyCode handles POST /verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyCode(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Account verified successfully"})
}

// CheckUsernameUnique handles GET /check-username-unique?username=
func (h *AuthHandler) CheckUsernameUnique(c *gin.Context) {
	if err := h.authService.CheckUsernameUnique(c.Request.Context(), c.Query("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Username is unique"})
}

// SignIn handles POST /sign-in. The token is returned in the body and set as an HttpOnly cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, result.Token, maxAge, "/", "", h.secureCookies, true)

	user := result.User
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   result.Token,
		User:    &user,
	})
}

// SignOut handles POST /sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	tokenID, expiresAt := middleware.CurrentSession(c)
	if err := h.authService.SignOut(c.Request.Context(), tokenID, expiresAt); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Signed out successfully"})
}
