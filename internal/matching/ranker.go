package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/place222/social-backend/internal/domain"
)

const (
	// MinScoreThreshold is the hard minimum; a pair scoring exactly the
	// threshold is excluded.
	MinScoreThreshold = 0.3

	// rankLimit caps the sorted list before the fairness filter runs.
	rankLimit = 50

	scoreWorkers = 4
)

// ResponseSource reads a user's answered-question map from the store.
type ResponseSource interface {
	GetResponseMap(ctx context.Context, userID string) (domain.ResponseMap, error)
}

// ProfileSource reads profiles and enumerates eligible users.
type ProfileSource interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListCompletedUserIDs(ctx context.Context, excludeUserID string) ([]string, error)
}

// Ranker scores every eligible candidate against a target user and returns
// the fairness-filtered list, best first.
type Ranker struct {
	responses ResponseSource
	profiles  ProfileSource
}

func NewRanker(responses ResponseSource, profiles ProfileSource) *Ranker {
	return &Ranker{
		responses: responses,
		profiles:  profiles,
	}
}

// Rank computes match candidates for userID. A target with no responses, no
// profile, or an incomplete profile yields an empty list, not an error.
// Candidates with missing data are skipped silently; a store failure while
// loading a candidate fails the whole run.
func (r *Ranker) Rank(ctx context.Context, userID string) ([]domain.MatchCandidate, error) {
	targetResponses, targetProfile, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(targetResponses) == 0 || targetProfile == nil || !targetProfile.ProfileCompleted {
		return nil, nil
	}

	candidateIDs, err := r.profiles.ListCompletedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := r.scoreCandidates(ctx, targetResponses, targetProfile, candidateIDs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompatibilityScore > candidates[j].CompatibilityScore
	})
	if len(candidates) > rankLimit {
		candidates = candidates[:rankLimit]
	}

	return fairnessFilter(candidates), nil
}

// scoreCandidates fans candidate scoring out to a fixed worker pool. Each
// candidate's computation is read-only and independent; results are
// collected before sorting. Candidates with no responses or no profile are
// skipped; the first store error aborts the run so a failing store cannot
// masquerade as an empty match pool.
func (r *Ranker) scoreCandidates(ctx context.Context, targetResponses domain.ResponseMap, targetProfile *domain.Profile, candidateIDs []string) ([]domain.MatchCandidate, error) {
	jobs := make(chan string)
	var mu sync.Mutex
	var candidates []domain.MatchCandidate
	var loadErr error

	var wg sync.WaitGroup
	for i := 0; i < scoreWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidateID := range jobs {
				responses, profile, err := r.load(ctx, candidateID)
				if err != nil {
					mu.Lock()
					if loadErr == nil {
						loadErr = fmt.Errorf("failed to load candidate %s: %w", candidateID, err)
					}
					mu.Unlock()
					continue
				}
				if len(responses) == 0 || profile == nil {
					continue
				}

				score, reasons := Score(targetResponses, targetProfile, responses, profile)
				if score <= MinScoreThreshold {
					continue
				}

				mu.Lock()
				candidates = append(candidates, domain.MatchCandidate{
					UserID:             candidateID,
					CompatibilityScore: score,
					MatchReasons:       reasons,
				})
				mu.Unlock()
			}
		}()
	}

	for _, id := range candidateIDs {
		select {
		case jobs <- id:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return candidates, loadErr
		}
	}
	close(jobs)
	wg.Wait()

	return candidates, loadErr
}

func (r *Ranker) load(ctx context.Context, userID string) (domain.ResponseMap, *domain.Profile, error) {
	responses, err := r.responses.GetResponseMap(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := r.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return responses, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return responses, profile, nil
}

// fairnessFilter down-samples a score-ordered candidate list to trade
// top-score optimality for spread across the score range. Small lists pass
// through; larger ones are sampled at every step-th index, capped at 20.
// The result is a subsequence, so descending order is preserved.
func fairnessFilter(candidates []domain.MatchCandidate) []domain.MatchCandidate {
	if len(candidates) <= 10 {
		return candidates
	}

	step := len(candidates) / 20
	if step < 1 {
		step = 1
	}

	filtered := make([]domain.MatchCandidate, 0, 20)
	for i := 0; i < len(candidates); i += step {
		filtered = append(filtered, candidates[i])
		if len(filtered) >= 20 {
			break
		}
	}
	return filtered
}
