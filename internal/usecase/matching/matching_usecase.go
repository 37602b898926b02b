package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/infrastructure/wingman"
	"github.com/place222/social-backend/internal/logger"
	engine "github.com/place222/social-backend/internal/matching"
	"github.com/place222/social-backend/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50

	// Generation returns the top slice of the ranked list; the rest is
	// persisted but only retrievable through the list endpoint.
	generateResponseLimit = 10
)

type MatchingUseCase struct {
	ranker      *engine.Ranker
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	wingman     *wingman.Client
	log         *logger.Logger
}

func NewMatchingUseCase(
	ranker *engine.Ranker,
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	wingmanClient *wingman.Client,
	log *logger.Logger,
) *MatchingUseCase {
	return &MatchingUseCase{
		ranker:      ranker,
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		wingman:     wingmanClient,
		log:         log,
	}
}

// GenerateMatchesResponse is the result of one generation run.
type GenerateMatchesResponse struct {
	Message      string                  `json:"message"`
	MatchesCount int                     `json:"matches_count"`
	Matches      []domain.MatchCandidate `json:"matches"`
}

// MatchedUser is the counterpart's display profile in a match listing.
type MatchedUser struct {
	ID           string  `json:"id"`
	DisplayName  *string `json:"display_name"`
	Bio          *string `json:"bio"`
	LocationCity *string `json:"location_city"`
}

// MatchResponse is one row of a match listing.
type MatchResponse struct {
	ID                 int          `json:"id"`
	MatchedUser        *MatchedUser `json:"matched_user"`
	CompatibilityScore float64      `json:"compatibility_score"`
	MatchReasons       []string     `json:"match_reasons"`
	Status             string       `json:"status"`
}

// ListMatchesResponse is a page of stored matches.
type ListMatchesResponse struct {
	Matches []*MatchResponse `json:"matches"`
	HasMore bool             `json:"has_more"`
}

// GenerateMatches scores every eligible candidate for userID, persists the
// filtered set and returns the top matches. Persistence is all-or-nothing:
// the upserts run in one transaction and the first failure fails the whole
// call without resetting anything already stored.
func (uc *MatchingUseCase) GenerateMatches(ctx context.Context, userID string) (*GenerateMatchesResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, domain.ErrProfileIncomplete
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.ProfileCompleted {
		return nil, domain.ErrProfileIncomplete
	}

	candidates, err := uc.ranker.Rank(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	if err := uc.matchRepo.UpsertBatch(ctx, userID, candidates); err != nil {
		return nil, fmt.Errorf("failed to persist matches: %w", err)
	}

	uc.log.With(logger.Fields{
		"user_id":       userID,
		"matches_count": len(candidates),
	}).Info("matches generated")

	if uc.wingman != nil && len(candidates) > 0 {
		go uc.enrichTopMatch(userID, candidates[0])
	}

	top := candidates
	if len(top) > generateResponseLimit {
		top = top[:generateResponseLimit]
	}

	return &GenerateMatchesResponse{
		Message:      "Matches generated successfully",
		MatchesCount: len(candidates),
		Matches:      top,
	}, nil
}

// enrichTopMatch asks the wingman for a one-line explanation of the highest
// scoring match. Best effort: runs detached from the request, never fails
// generation.
func (uc *MatchingUseCase) enrichTopMatch(userID string, candidate domain.MatchCandidate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	match, err := uc.matchRepo.GetByUsers(ctx, userID, candidate.UserID)
	if err != nil {
		uc.log.WithError(err).Warn("wingman: failed to load match for enrichment")
		return
	}

	profileA, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return
	}
	profileB, err := uc.profileRepo.GetByUserID(ctx, candidate.UserID)
	if err != nil {
		return
	}

	explanation, err := uc.wingman.GenerateMatchExplanation(ctx, profileA, profileB, candidate.MatchReasons)
	if err != nil {
		uc.log.WithError(err).Warn("wingman: explanation generation failed")
		return
	}

	if err := uc.matchRepo.UpdateExplanation(ctx, match.ID, explanation); err != nil {
		uc.log.WithError(err).Warn("wingman: failed to store explanation")
	}
}

// ListMatches pages over stored matches involving userID, blocked ones
// excluded, best score first.
func (uc *MatchingUseCase) ListMatches(ctx context.Context, userID string, limit, offset int) (*ListMatchesResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := uc.matchRepo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	matches := make([]*MatchResponse, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, &MatchResponse{
			ID: row.ID,
			MatchedUser: &MatchedUser{
				ID:           row.MatchedUserID,
				DisplayName:  row.DisplayName,
				Bio:          row.Bio,
				LocationCity: row.LocationCity,
			},
			CompatibilityScore: row.CompatibilityScore,
			MatchReasons:       row.MatchReasons,
			Status:             row.Status,
		})
	}

	return &ListMatchesResponse{
		Matches: matches,
		HasMore: hasMore,
	}, nil
}

// UpdateMatchStatus lets a match participant accept, decline or block the
// match. Generation never touches status, so this is the only mutation path.
func (uc *MatchingUseCase) UpdateMatchStatus(ctx context.Context, userID string, matchID int, status string) (*domain.Match, error) {
	if !domain.ValidMatchStatus(status) {
		return nil, domain.ErrInvalidMatchStatus
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotMatchParticipant
	}

	if err := uc.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return nil, err
	}
	match.Status = status
	return match, nil
}
