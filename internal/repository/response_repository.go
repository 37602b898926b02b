package repository

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
)

type ResponseRepository interface {
	// Upsert inserts or updates a (user_id, question_id) response.
	Upsert(ctx context.Context, response *domain.Response) error

	// GetResponseMap returns the user's answered questions joined with each
	// question's category and weight, keyed by question ID. Empty map when
	// the user has not answered anything.
	GetResponseMap(ctx context.Context, userID string) (domain.ResponseMap, error)
}
