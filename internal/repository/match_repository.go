package repository

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
)

// MatchWithProfile is one row of a user's match listing: the match record
// joined with the counterpart's display profile.
type MatchWithProfile struct {
	ID                 int      `db:"id"`
	MatchedUserID      string   `db:"matched_user_id"`
	DisplayName        *string  `db:"display_name"`
	Bio                *string  `db:"bio"`
	LocationCity       *string  `db:"location_city"`
	CompatibilityScore float64  `db:"compatibility_score"`
	MatchReasons       []string `db:"-"`
	Status             string   `db:"status"`
}

type MatchRepository interface {
	// UpsertBatch persists one generation run's candidates for userID in a
	// single transaction: insert on first sight, refresh score/reasons and
	// updated_at on conflict with the canonical (low, high) key. Status and
	// created_at are never touched. The first failure rolls the whole batch
	// back.
	UpsertBatch(ctx context.Context, userID string, candidates []domain.MatchCandidate) error

	GetByID(ctx context.Context, id int) (*domain.Match, error)

	// ListForUser pages over matches involving userID with status other
	// than blocked, ordered by compatibility score then recency. Returns up
	// to limit+1 rows so the caller can compute has_more exactly.
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*MatchWithProfile, error)

	UpdateStatus(ctx context.Context, id int, status string) error

	// UpdateExplanation stores the wingman's one-line match explanation.
	UpdateExplanation(ctx context.Context, id int, explanation string) error

	// GetByUsers looks a match up by its canonical pair key.
	GetByUsers(ctx context.Context, userIDA, userIDB string) (*domain.Match, error)
}
