package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/usecase/matching"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase *matching.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{matchingUseCase: matchingUseCase}
}

// GenerateMatches handles POST /v1/social/matching
func (h *MatchingHandler) GenerateMatches(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.matchingUseCase.GenerateMatches(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, domain.ErrProfileIncomplete) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please complete your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMatches handles GET /v1/social/matching
func (h *MatchingHandler) ListMatches(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.matchingUseCase.ListMatches(c.Request.Context(), userID.(string), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateStatusRequest is the status mutation payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateMatchStatus handles PUT /v1/social/matching/:match_id/status
func (h *MatchingHandler) UpdateMatchStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match_id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	match, err := h.matchingUseCase.UpdateMatchStatus(c.Request.Context(), userID.(string), matchID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMatchStatus):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		case errors.Is(err, domain.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
		case errors.Is(err, domain.ErrNotMatchParticipant):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a participant of this match"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update match"})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}
