package domain

import "time"

const (
	DefaultMaxDistanceKm     = 50
	DefaultPreferredLanguage = "en"
)

// Profile is a user's social profile. A user cannot be scored or matched
// until ProfileCompleted is true.
type Profile struct {
	ID                int       `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	DisplayName       *string   `json:"display_name" db:"display_name"`
	Bio               *string   `json:"bio" db:"bio"`
	LocationCity      *string   `json:"location_city" db:"location_city"`
	LocationLat       *float64  `json:"location_lat" db:"location_lat"`
	LocationLng       *float64  `json:"location_lng" db:"location_lng"`
	MaxDistanceKm     int       `json:"max_distance_km" db:"max_distance_km"`
	AgeRangeMin       *int      `json:"age_range_min" db:"age_range_min"`
	AgeRangeMax       *int      `json:"age_range_max" db:"age_range_max"`
	PreferredLanguage string    `json:"preferred_language" db:"preferred_language"`
	ProfileCompleted  bool      `json:"profile_completed" db:"profile_completed"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasLocation reports whether both coordinates are present.
func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLng != nil
}

// EffectiveMaxDistanceKm returns the distance preference, defaulting to 50km.
func (p *Profile) EffectiveMaxDistanceKm() float64 {
	if p.MaxDistanceKm <= 0 {
		return DefaultMaxDistanceKm
	}
	return float64(p.MaxDistanceKm)
}
