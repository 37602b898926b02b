package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, upsert *repository.ProfileUpsert) error {
	query := `
		INSERT INTO social_profiles (
			user_id, display_name, bio, location_city, location_lat, location_lng,
			max_distance_km, age_range_min, age_range_max, preferred_language, profile_completed
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			COALESCE($7, 50), $8, $9, COALESCE($10, 'en'), true
		)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = COALESCE(EXCLUDED.display_name, social_profiles.display_name),
			bio = COALESCE(EXCLUDED.bio, social_profiles.bio),
			location_city = COALESCE(EXCLUDED.location_city, social_profiles.location_city),
			location_lat = COALESCE(EXCLUDED.location_lat, social_profiles.location_lat),
			location_lng = COALESCE(EXCLUDED.location_lng, social_profiles.location_lng),
			max_distance_km = COALESCE($7, social_profiles.max_distance_km),
			age_range_min = COALESCE(EXCLUDED.age_range_min, social_profiles.age_range_min),
			age_range_max = COALESCE(EXCLUDED.age_range_max, social_profiles.age_range_max),
			preferred_language = COALESCE($10, social_profiles.preferred_language),
			profile_completed = true,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		upsert.UserID, upsert.DisplayName, upsert.Bio, upsert.LocationCity,
		upsert.LocationLat, upsert.LocationLng, upsert.MaxDistanceKm,
		upsert.AgeRangeMin, upsert.AgeRangeMax, upsert.PreferredLanguage,
	)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM social_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListCompletedUserIDs(ctx context.Context, excludeUserID string) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM social_profiles
		WHERE user_id != $1 AND profile_completed = true
	`
	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, query, excludeUserID); err != nil {
		return nil, err
	}
	return userIDs, nil
}
