package postgres

import (
	"context"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type questionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) List(ctx context.Context) ([]*domain.Question, error) {
	query := `
		SELECT id, category, question_text_en, question_text_es,
		       question_type, options, weight, is_required, created_at
		FROM social_questions
		ORDER BY category, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var q domain.Question
		err := rows.Scan(
			&q.ID, &q.Category, &q.QuestionTextEN, &q.QuestionTextES,
			&q.QuestionType, pq.Array(&q.Options), &q.Weight, &q.IsRequired, &q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}
