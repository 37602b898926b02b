package repository

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
)

type QuestionRepository interface {
	// List returns every onboarding question ordered by category then id.
	List(ctx context.Context) ([]*domain.Question, error)
}
