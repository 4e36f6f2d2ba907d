package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/mystery-message-backend/internal/config"
	"github.com/ArowuTest/mystery-message-backend/internal/handlers"
	"github.com/ArowuTest/mystery-message-backend/internal/metrics"
	"github.com/ArowuTest/mystery-message-backend/internal/middleware"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/internal/services"
	"github.com/ArowuTest/mystery-message-backend/pkg/jwt"
	"github.com/ArowuTest/mystery-message-backend/pkg/mailer"
)

// Backends are the stores and outbound collaborators the API is built on
type Backends struct {
	Users        repositories.UserRepository
	Revocations  repositories.SessionRevocationStore
	Mailer       mailer.Mailer
	TextGen      services.TextGenerator
	HealthChecks map[string]handlers.HealthCheck
}

// HandlerDependencies holds everything SetupRouter mounts
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	MessageHandler *handlers.MessageHandler
	HealthHandler  *handlers.HealthHandler
	Tokens         *jwt.TokenService
	Revocations    repositories.SessionRevocationStore
	RateLimiter    *middleware.RateLimiter
	Logger         logrus.FieldLogger
}

// NewHandlerDependencies wires services and handlers on top of the backends
func NewHandlerDependencies(cfg *config.Config, b Backends, logger logrus.FieldLogger) HandlerDependencies {
	tokens := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	acceptanceService := services.NewAcceptanceService(b.Users)
	messageService := services.NewMessageService(b.Users, logger)
	authService := services.NewAuthService(b.Users, b.Revocations, tokens, b.Mailer, logger)
	suggestionService := services.NewSuggestionService(b.TextGen)

	return HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService, cfg.Server.SecureCookies),
		UserHandler:    handlers.NewUserHandler(acceptanceService, messageService),
		MessageHandler: handlers.NewMessageHandler(messageService, suggestionService),
		HealthHandler:  handlers.NewHealthHandler(b.HealthChecks),
		Tokens:         tokens,
		Revocations:    b.Revocations,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Logger:         logger,
	}
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		deps.Logger.WithError(err).Warn("invalid trusted proxies, using the socket peer address")
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))
	router.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := deps.RateLimiter.Middleware()
	session := middleware.SessionAuthMiddleware(deps.Tokens, deps.Revocations)

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", deps.HealthHandler.Health)

		public.POST("/send-message", limited, deps.MessageHandler.SendMessage)
		public.POST("/suggest-messages", limited, deps.MessageHandler.SuggestMessages)

		public.POST("/sign-up", limited, deps.AuthHandler.SignUp)
		public.POST("/verify-code", limited, deps.AuthHandler.VerifyCode)
		public.POST("/sign-in", limited, deps.AuthHandler.SignIn)
		public.GET("/check-username-unique", deps.AuthHandler.CheckUsernameUnique)
	}

	// Owner routes
	protected := router.Group("/api")
	protected.Use(session)
	{
		protected.POST("/accept-messages", deps.UserHandler.SetAcceptMessages)
		protected.GET("/accept-messages", deps.UserHandler.GetAcceptMessages)
		protected.GET("/get-messages", deps.UserHandler.GetMessages)
		protected.DELETE("/delete-message/:messageId", deps.UserHandler.DeleteMessage)
		protected.POST("/sign-out", deps.AuthHandler.SignOut)
	}

	return router
}
