package domain

import "time"

// ExperienceLevel describes how established an artist is. It feeds the
// catalogue size fallback when no peer data is available.
type ExperienceLevel string

// Experience levels, least to most established.
const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Valid reports whether e is a known experience level.
func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

// Artist represents a creator whose artworks and catalogues live on this server.
type Artist struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Bio        string          `json:"bio,omitempty"`
	Experience ExperienceLevel `json:"experience"`
}
