package domain

import "time"

// Match statuses. Only the status endpoints mutate status; match generation
// never touches it.
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusDeclined = "declined"
	MatchStatusBlocked  = "blocked"
)

// ValidMatchStatus reports whether s is one of the known match statuses.
func ValidMatchStatus(s string) bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusDeclined, MatchStatusBlocked:
		return true
	}
	return false
}

// Match is a persisted pairwise match. The pair key is canonical:
// UserIDLow < UserIDHigh under lexicographic comparison, so a match between
// A and B is stored as exactly one row regardless of who generated it.
type Match struct {
	ID                 int       `json:"id" db:"id"`
	UserIDLow          string    `json:"user_id_low" db:"user_id_low"`
	UserIDHigh         string    `json:"user_id_high" db:"user_id_high"`
	CompatibilityScore float64   `json:"compatibility_score" db:"compatibility_score"`
	MatchReasons       []string  `json:"match_reasons" db:"match_reasons"`
	Status             string    `json:"status" db:"status"`
	Explanation        *string   `json:"explanation" db:"explanation"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.UserIDLow == userID || m.UserIDHigh == userID
}

func (m *Match) OtherUserID(userID string) (string, bool) {
	if m.UserIDLow == userID {
		return m.UserIDHigh, true
	}
	if m.UserIDHigh == userID {
		return m.UserIDLow, true
	}
	return "", false
}

// CanonicalPair orders two user IDs lexicographically. Every match write
// path must go through this so the (low, high) key stays canonical.
func CanonicalPair(a, b string) (low, high string) {
	if a > b {
		return b, a
	}
	return a, b
}

// MatchCandidate is a scored candidate produced by the ranker. It is
// returned to the caller but never persisted directly.
type MatchCandidate struct {
	UserID             string   `json:"user_id"`
	CompatibilityScore float64  `json:"compatibility_score"`
	MatchReasons       []string `json:"match_reasons"`
}
