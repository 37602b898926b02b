package http

import (
	"github.com/place222/social-backend/internal/delivery/http/handler"
	"github.com/place222/social-backend/internal/delivery/http/middleware"
	"github.com/place222/social-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type Router struct {
	healthHandler     *handler.HealthHandler
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	matchingHandler   *handler.MatchingHandler
	authMiddleware    *middleware.AuthMiddleware
	log               *logger.Logger
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	matchingHandler *handler.MatchingHandler,
	authMiddleware *middleware.AuthMiddleware,
	log *logger.Logger,
) *Router {
	return &Router{
		healthHandler:     healthHandler,
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		matchingHandler:   matchingHandler,
		authMiddleware:    authMiddleware,
		log:               log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.log))

	router.GET("/health", r.healthHandler.Health)
	router.HEAD("/health", r.healthHandler.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		social := v1.Group("/social")
		social.Use(r.authMiddleware.RequireAuth())
		{
			onboarding := social.Group("/onboarding")
			{
				onboarding.GET("/questions", r.onboardingHandler.GetQuestions)
				onboarding.POST("/responses", r.onboardingHandler.SubmitResponses)
			}

			matching := social.Group("/matching")
			{
				matching.POST("", r.matchingHandler.GenerateMatches)
				matching.GET("", r.matchingHandler.ListMatches)
				matching.PUT("/:match_id/status", r.matchingHandler.UpdateMatchStatus)
			}
		}
	}

	return router
}
