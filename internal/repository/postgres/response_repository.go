package postgres

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type responseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) repository.ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Upsert(ctx context.Context, response *domain.Response) error {
	query := `
		INSERT INTO social_responses (user_id, question_id, response_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			response_value = EXCLUDED.response_value,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		response.UserID, response.QuestionID, response.ResponseValue,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)
}

func (r *responseRepository) GetResponseMap(ctx context.Context, userID string) (domain.ResponseMap, error) {
	query := `
		SELECT sr.question_id, sr.response_value, sq.category, sq.weight
		FROM social_responses sr
		JOIN social_questions sq ON sr.question_id = sq.id
		WHERE sr.user_id = $1
	`
	var answered []domain.AnsweredQuestion
	if err := r.db.SelectContext(ctx, &answered, query, userID); err != nil {
		return nil, err
	}

	responses := make(domain.ResponseMap, len(answered))
	for _, a := range answered {
		responses[a.QuestionID] = a
	}
	return responses, nil
}
