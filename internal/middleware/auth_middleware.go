package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/pkg/jwt"
)

const (
	// SessionCookieName carries the session token for browser clients
	SessionCookieName = "session_token"

	UserIDKey         = "userID"
	UsernameKey       = "username"
	TokenIDKey        = "tokenID"
	TokenExpiresAtKey = "tokenExpiresAt"

	bearerSchema = "Bearer "
)

// SessionAuthMiddleware resolves the session from the Authorization header or
// the session cookie and rejects the request with 401 when there is none.
func SessionAuthMiddleware(tokens *jwt.TokenService, revocations repositories.SessionRevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			AbortWithError(c, apperrors.Unauthenticated("Not authenticated"))
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				AbortWithError(c, apperrors.Wrap(apperrors.KindAuthenticationRequired, "Session has expired", err))
				return
			}
			AbortWithError(c, apperrors.Wrap(apperrors.KindAuthenticationRequired, "Not authenticated", err))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			AbortWithError(c, apperrors.Wrap(apperrors.KindAuthenticationRequired, "Not authenticated", err))
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			AbortWithError(c, apperrors.Internal("Unable to verify session", err))
			return
		}
		if revoked {
			AbortWithError(c, apperrors.Unauthenticated("Not authenticated"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, claims.Username)
		c.Set(TokenIDKey, claims.ID)
		c.Set(TokenExpiresAtKey, claims.ExpiresAt.Time)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerSchema) {
		return strings.TrimSpace(header[len(bearerSchema):])
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// CurrentSession returns the token id and expiry of the authenticated session
func CurrentSession(c *gin.Context) (string, time.Time) {
	return c.GetString(TokenIDKey), c.GetTime(TokenExpiresAtKey)
}
