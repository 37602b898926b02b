package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/place222/social-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	responses map[string]domain.ResponseMap
	profiles  map[string]*domain.Profile
	failFor   string
}

func (f *fakeSource) GetResponseMap(ctx context.Context, userID string) (domain.ResponseMap, error) {
	if userID == f.failFor {
		return nil, errors.New("store unavailable")
	}
	return f.responses[userID], nil
}

func (f *fakeSource) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeSource) ListCompletedUserIDs(ctx context.Context, excludeUserID string) ([]string, error) {
	ids := make([]string, 0, len(f.profiles))
	for id, profile := range f.profiles {
		if id != excludeUserID && profile.ProfileCompleted {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func answered(id int, value string) domain.AnsweredQuestion {
	return domain.AnsweredQuestion{QuestionID: id, Value: value, Category: "interests", Weight: 1.0}
}

func TestRankTargetWithoutProfile(t *testing.T) {
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice": {1: answered(1, "Hiking")},
		},
		profiles: map[string]*domain.Profile{},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRankTargetWithIncompleteProfile(t *testing.T) {
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice": {1: answered(1, "Hiking")},
		},
		profiles: map[string]*domain.Profile{
			"alice": {UserID: "alice", PreferredLanguage: "en"},
		},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRankTargetWithoutResponses(t *testing.T) {
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{},
		profiles: map[string]*domain.Profile{
			"alice": {UserID: "alice", PreferredLanguage: "en", ProfileCompleted: true},
		},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRankExcludesExactThresholdScore(t *testing.T) {
	// Overlap of 3 options out of a union of 10 gives a Jaccard similarity of
	// exactly 0.3. With a single weight-1.0 question, differing languages, and
	// no coordinates, the pair score lands exactly on the threshold and must
	// be excluded.
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice": {1: answered(1, "a,b,c,d,e,f")},
			"edge":  {1: answered(1, "a,b,c,g,h,i,j")},
			"bob":   {1: answered(1, "a,b,c,d,e,f")},
		},
		profiles: map[string]*domain.Profile{
			"alice": {UserID: "alice", PreferredLanguage: "en", ProfileCompleted: true},
			"edge":  {UserID: "edge", PreferredLanguage: "es", ProfileCompleted: true},
			"bob":   {UserID: "bob", PreferredLanguage: "es", ProfileCompleted: true},
		},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "bob", candidates[0].UserID)
	assert.InDelta(t, 1.0, candidates[0].CompatibilityScore, 1e-9)
}

func TestRankSkipsCandidatesWithMissingData(t *testing.T) {
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice": {1: answered(1, "Hiking")},
			"bob":   {1: answered(1, "Hiking")},
		},
		profiles: map[string]*domain.Profile{
			"alice":        {UserID: "alice", PreferredLanguage: "en", ProfileCompleted: true},
			"bob":          {UserID: "bob", PreferredLanguage: "en", ProfileCompleted: true},
			"no-responses": {UserID: "no-responses", PreferredLanguage: "en", ProfileCompleted: true},
		},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "bob", candidates[0].UserID)
}

func TestRankFailsOnCandidateStoreError(t *testing.T) {
	// A store failure while loading a candidate must surface, not shrink the
	// match pool.
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice":  {1: answered(1, "Hiking")},
			"bob":    {1: answered(1, "Hiking")},
			"broken": {1: answered(1, "Hiking")},
		},
		profiles: map[string]*domain.Profile{
			"alice":  {UserID: "alice", PreferredLanguage: "en", ProfileCompleted: true},
			"bob":    {UserID: "bob", PreferredLanguage: "en", ProfileCompleted: true},
			"broken": {UserID: "broken", PreferredLanguage: "en", ProfileCompleted: true},
		},
		failFor: "broken",
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken")
	assert.Nil(t, candidates)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	src := &fakeSource{
		responses: map[string]domain.ResponseMap{
			"alice": {1: answered(1, "Hiking,Reading")},
			// Exact match plus same language.
			"best": {1: answered(1, "Hiking,Reading")},
			// Partial overlap, same language.
			"mid": {1: answered(1, "Hiking,Cooking")},
			// Partial overlap, different language.
			"low": {1: answered(1, "Hiking,Cooking")},
		},
		profiles: map[string]*domain.Profile{
			"alice": {UserID: "alice", PreferredLanguage: "en", ProfileCompleted: true},
			"best":  {UserID: "best", PreferredLanguage: "en", ProfileCompleted: true},
			"mid":   {UserID: "mid", PreferredLanguage: "en", ProfileCompleted: true},
			"low":   {UserID: "low", PreferredLanguage: "es", ProfileCompleted: true},
		},
	}

	candidates, err := NewRanker(src, src).Rank(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	ids := []string{candidates[0].UserID, candidates[1].UserID, candidates[2].UserID}
	assert.Equal(t, []string{"best", "mid", "low"}, ids)
}

func TestFairnessFilterPassesSmallLists(t *testing.T) {
	candidates := make([]domain.MatchCandidate, 10)
	for i := range candidates {
		candidates[i] = domain.MatchCandidate{UserID: fmt.Sprintf("u%d", i)}
	}

	assert.Equal(t, candidates, fairnessFilter(candidates))
}

func TestFairnessFilterSamplesLargeLists(t *testing.T) {
	candidates := make([]domain.MatchCandidate, 50)
	for i := range candidates {
		candidates[i] = domain.MatchCandidate{
			UserID:             fmt.Sprintf("u%d", i),
			CompatibilityScore: 1.0 - float64(i)*0.01,
		}
	}

	filtered := fairnessFilter(candidates)

	require.Len(t, filtered, 20)
	for i, candidate := range filtered {
		assert.Equal(t, fmt.Sprintf("u%d", i*2), candidate.UserID)
	}
	for i := 1; i < len(filtered); i++ {
		assert.Less(t, filtered[i].CompatibilityScore, filtered[i-1].CompatibilityScore)
	}
}

func TestFairnessFilterStepOneBelowTwenty(t *testing.T) {
	candidates := make([]domain.MatchCandidate, 15)
	for i := range candidates {
		candidates[i] = domain.MatchCandidate{UserID: fmt.Sprintf("u%d", i)}
	}

	filtered := fairnessFilter(candidates)

	// 15/20 truncates to zero, so the step clamps to 1 and the first 15
	// candidates all survive.
	assert.Equal(t, candidates, filtered)
}
