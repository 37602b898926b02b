package repository

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
)

// ProfileUpsert carries the onboarding profile payload. Nil fields keep the
// stored value (COALESCE semantics).
type ProfileUpsert struct {
	UserID            string
	DisplayName       *string
	Bio               *string
	LocationCity      *string
	LocationLat       *float64
	LocationLng       *float64
	MaxDistanceKm     *int
	AgeRangeMin       *int
	AgeRangeMax       *int
	PreferredLanguage *string
}

type ProfileRepository interface {
	// Upsert creates or updates the profile and marks it completed.
	Upsert(ctx context.Context, upsert *ProfileUpsert) error

	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)

	// ListCompletedUserIDs enumerates every user with a completed profile,
	// excluding the given user.
	ListCompletedUserIDs(ctx context.Context, excludeUserID string) ([]string, error)
}
