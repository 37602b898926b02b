package handler

import (
	"net/http"

	"github.com/place222/social-backend/internal/usecase/onboarding"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUseCase: onboardingUseCase}
}

// GetQuestions handles GET /v1/social/onboarding/questions
func (h *OnboardingHandler) GetQuestions(c *gin.Context) {
	lang := c.DefaultQuery("lang", "en")

	result, err := h.onboardingUseCase.GetQuestions(c.Request.Context(), lang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SubmitResponses handles POST /v1/social/onboarding/responses
func (h *OnboardingHandler) SubmitResponses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req onboarding.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Responses are required"})
		return
	}

	result, err := h.onboardingUseCase.SubmitResponses(c.Request.Context(), userID.(string), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save responses"})
		return
	}

	c.JSON(http.StatusOK, result)
}
