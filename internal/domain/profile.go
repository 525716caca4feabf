package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// ProficiencyMap maps an offered skill to its proficiency level.
// Stored as JSONB.
type ProficiencyMap map[string]Proficiency

// Value implements the driver.Valuer interface for ProficiencyMap
func (m ProficiencyMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for ProficiencyMap
func (m *ProficiencyMap) Scan(value interface{}) error {
	if value == nil {
		*m = ProficiencyMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, m)
}

// Allowed exchange durations in minutes.
var ExchangeDurations = []int{30, 60, 90, 120}

const DefaultExchangeDuration = 60

type Profile struct {
	ID                    int            `json:"id" db:"id"`
	UserID                int            `json:"user_id" db:"user_id"`
	FullName              string         `json:"full_name" db:"full_name"`
	Bio                   *string        `json:"bio" db:"bio"`
	Location              *string        `json:"location" db:"location"`
	AgeGroup              *string        `json:"age_group" db:"age_group"`
	SkillsOffered         []string       `json:"skills_offered" db:"skills_offered"`
	SkillsWanted          []string       `json:"skills_wanted" db:"skills_wanted"`
	SkillsProficiency     ProficiencyMap `json:"skills_proficiency" db:"skills_proficiency"`
	CredibilityScore      int            `json:"credibility_score" db:"credibility_score"`
	Credits               int            `json:"credits" db:"credits"`
	SkillExchangeDuration int            `json:"skill_exchange_duration" db:"skill_exchange_duration"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
}

// Normalize enforces the profile invariants at the boundary so internal
// logic never sees duplicate skills, orphan proficiency keys, or
// out-of-range scores.
func (p *Profile) Normalize() {
	p.SkillsOffered = dedupeSkills(p.SkillsOffered)
	p.SkillsWanted = dedupeSkills(p.SkillsWanted)

	offered := make(map[string]struct{}, len(p.SkillsOffered))
	for _, s := range p.SkillsOffered {
		offered[s] = struct{}{}
	}

	// Every proficiency key must name an offered skill.
	if p.SkillsProficiency == nil {
		p.SkillsProficiency = ProficiencyMap{}
	}
	for skill, level := range p.SkillsProficiency {
		if _, ok := offered[skill]; !ok || !level.Valid() {
			delete(p.SkillsProficiency, skill)
		}
	}

	if p.CredibilityScore < 0 {
		p.CredibilityScore = 0
	}
	if p.CredibilityScore > 100 {
		p.CredibilityScore = 100
	}
	if p.Credits < 0 {
		p.Credits = 0
	}

	valid := false
	for _, d := range ExchangeDurations {
		if p.SkillExchangeDuration == d {
			valid = true
			break
		}
	}
	if !valid {
		p.SkillExchangeDuration = DefaultExchangeDuration
	}
}

// HasSkills reports whether the profile lists at least one skill in
// either direction. Profiles without skills are invisible to discovery.
func (p *Profile) HasSkills() bool {
	return len(p.SkillsOffered) > 0 || len(p.SkillsWanted) > 0
}

// IsBanned reports the platform's ban signal: a credibility score of zero.
func (p *Profile) IsBanned() bool {
	return p.CredibilityScore == 0
}

func dedupeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}
	seen := make(map[string]struct{}, len(skills))
	out := skills[:0]
	for _, s := range skills {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
