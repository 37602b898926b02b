package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) UpsertBatch(ctx context.Context, userID string, candidates []domain.MatchCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO social_matches (user_id_low, user_id_high, compatibility_score, match_reasons)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id_low, user_id_high) DO UPDATE SET
			compatibility_score = EXCLUDED.compatibility_score,
			match_reasons = EXCLUDED.match_reasons,
			updated_at = CURRENT_TIMESTAMP
	`
	for _, candidate := range candidates {
		low, high := domain.CanonicalPair(userID, candidate.UserID)
		_, err := tx.ExecContext(ctx, query,
			low, high, candidate.CompatibilityScore, pq.Array(candidate.MatchReasons),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert match (%s, %s): %w", low, high, err)
		}
	}

	return tx.Commit()
}

const matchColumns = `
	id, user_id_low, user_id_high, compatibility_score, match_reasons,
	status, explanation, created_at, updated_at
`

func (r *matchRepository) scanMatch(row *sql.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.UserIDLow, &m.UserIDHigh, &m.CompatibilityScore,
		pq.Array(&m.MatchReasons), &m.Status, &m.Explanation,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM social_matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *matchRepository) GetByUsers(ctx context.Context, userIDA, userIDB string) (*domain.Match, error) {
	low, high := domain.CanonicalPair(userIDA, userIDB)
	query := `SELECT ` + matchColumns + ` FROM social_matches WHERE user_id_low = $1 AND user_id_high = $2`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, low, high))
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*repository.MatchWithProfile, error) {
	// One extra row lets the caller compute has_more without a count query.
	query := `
		SELECT
			sm.id, sm.compatibility_score, sm.match_reasons, sm.status,
			CASE
				WHEN sm.user_id_low = $1 THEN sm.user_id_high
				ELSE sm.user_id_low
			END AS matched_user_id,
			sp.display_name, sp.bio, sp.location_city
		FROM social_matches sm
		JOIN social_profiles sp ON sp.user_id = (
			CASE
				WHEN sm.user_id_low = $1 THEN sm.user_id_high
				ELSE sm.user_id_low
			END
		)
		WHERE (sm.user_id_low = $1 OR sm.user_id_high = $1)
		AND sm.status != 'blocked'
		ORDER BY sm.compatibility_score DESC, sm.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit+1, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*repository.MatchWithProfile
	for rows.Next() {
		var m repository.MatchWithProfile
		err := rows.Scan(
			&m.ID, &m.CompatibilityScore, pq.Array(&m.MatchReasons), &m.Status,
			&m.MatchedUserID, &m.DisplayName, &m.Bio, &m.LocationCity,
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE social_matches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) UpdateExplanation(ctx context.Context, id int, explanation string) error {
	query := `UPDATE social_matches SET explanation = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, explanation, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
