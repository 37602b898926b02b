package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/logger"
	"github.com/place222/social-backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Store is a read-through cache in front of the response and profile
// repositories. The candidate scan during match generation reads the same
// users over and over; caching keeps the scan off the database for the hot
// window. Cache failures degrade to direct reads.
type Store struct {
	client    *redis.Client
	responses repository.ResponseRepository
	profiles  repository.ProfileRepository
	ttl       time.Duration
	log       *logger.Logger
}

func NewStore(client *redis.Client, responses repository.ResponseRepository, profiles repository.ProfileRepository, log *logger.Logger) *Store {
	return &Store{
		client:    client,
		responses: responses,
		profiles:  profiles,
		ttl:       defaultTTL,
		log:       log,
	}
}

func responsesKey(userID string) string {
	return "social:responses:" + userID
}

func profileKey(userID string) string {
	return "social:profile:" + userID
}

// GetResponseMap returns the user's answered-question map, cached.
func (s *Store) GetResponseMap(ctx context.Context, userID string) (domain.ResponseMap, error) {
	key := responsesKey(userID)
	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var responses domain.ResponseMap
		if err := json.Unmarshal(data, &responses); err == nil {
			return responses, nil
		}
	} else if err != redis.Nil {
		s.log.WithError(err).Debug("redis read failed, falling back to database")
	}

	responses, err := s.responses.GetResponseMap(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, responses)
	return responses, nil
}

// GetByUserID returns the user's profile, cached. Missing profiles are not
// cached.
func (s *Store) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	key := profileKey(userID)
	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var profile domain.Profile
		if err := json.Unmarshal(data, &profile); err == nil {
			return &profile, nil
		}
	} else if err != redis.Nil {
		s.log.WithError(err).Debug("redis read failed, falling back to database")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, profile)
	return profile, nil
}

// ListCompletedUserIDs is a pool-wide scan; it always hits the database.
func (s *Store) ListCompletedUserIDs(ctx context.Context, excludeUserID string) ([]string, error) {
	return s.profiles.ListCompletedUserIDs(ctx, excludeUserID)
}

// Invalidate drops the cached entries for a user. Called after onboarding
// writes so the next generation run sees fresh data.
func (s *Store) Invalidate(ctx context.Context, userID string) {
	if err := s.client.Del(ctx, responsesKey(userID), profileKey(userID)).Err(); err != nil {
		s.log.WithError(err).Warn(fmt.Sprintf("failed to invalidate cache for user %s", userID))
	}
}

func (s *Store) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.WithError(err).Debug("redis write failed")
	}
}
