package matching

import (
	"sort"
	"strings"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
)

// MutualBonus is added when both sides can teach the other something.
const MutualBonus = 5

// Candidate is an immutable scoring snapshot for one profile. It is
// recomputed on every queue build and never persisted.
type Candidate struct {
	Profile            *domain.Profile `json:"profile"`
	SkillsICanTeach    []string        `json:"matching_skills_i_can_teach"`
	SkillsTheyCanTeach []string        `json:"matching_skills_they_can_teach"`
	Score              int             `json:"match_score"`
}

// IsPerfect reports a mutual match: both intersections nonempty.
func (c *Candidate) IsPerfect() bool {
	return len(c.SkillsICanTeach) > 0 && len(c.SkillsTheyCanTeach) > 0
}

// ScoreCandidate computes the match record for one profile, or nil when
// neither side has anything to teach the other.
func ScoreCandidate(myOffered, myWanted []string, profile *domain.Profile) *Candidate {
	if profile == nil || (len(profile.SkillsOffered) == 0 && len(profile.SkillsWanted) == 0) {
		return nil
	}

	iCanTeach := intersect(myOffered, profile.SkillsWanted)
	theyCanTeach := intersect(profile.SkillsOffered, myWanted)
	if len(iCanTeach) == 0 && len(theyCanTeach) == 0 {
		return nil
	}

	score := len(iCanTeach) + len(theyCanTeach)
	if len(iCanTeach) > 0 && len(theyCanTeach) > 0 {
		score += MutualBonus
	}

	return &Candidate{
		Profile:            profile,
		SkillsICanTeach:    iCanTeach,
		SkillsTheyCanTeach: theyCanTeach,
		Score:              score,
	}
}

// BuildQueue scores every profile and returns candidates sorted by score
// descending. The sort is stable so equal scores keep input order.
func BuildQueue(myOffered, myWanted []string, profiles []*domain.Profile) []*Candidate {
	queue := make([]*Candidate, 0, len(profiles))
	for _, p := range profiles {
		if c := ScoreCandidate(myOffered, myWanted, p); c != nil {
			queue = append(queue, c)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Score > queue[j].Score
	})

	return queue
}

// intersect returns entries of teachable present in wanted, compared
// case-insensitively. Output keeps the teaching side's original casing.
func intersect(teachable, wanted []string) []string {
	if len(teachable) == 0 || len(wanted) == 0 {
		return nil
	}

	wantedSet := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		wantedSet[strings.ToLower(w)] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{}, len(teachable))
	for _, t := range teachable {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		if _, ok := wantedSet[key]; ok {
			out = append(out, t)
			seen[key] = struct{}{}
		}
	}
	return out
}
