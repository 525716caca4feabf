package matching

import (
	"testing"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
)

func profileWith(userID int, offered, wanted []string) *domain.Profile {
	return &domain.Profile{
		UserID:        userID,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
	}
}

func TestScoreCandidateMutualMatch(t *testing.T) {
	candidate := profileWith(2, []string{"Yoga"}, []string{"guitar"})

	c := ScoreCandidate([]string{"Guitar"}, []string{"Yoga"}, candidate)
	if c == nil {
		t.Fatal("expected a candidate")
	}
	if len(c.SkillsICanTeach) != 1 || c.SkillsICanTeach[0] != "Guitar" {
		t.Errorf("SkillsICanTeach = %v, want [Guitar]", c.SkillsICanTeach)
	}
	if len(c.SkillsTheyCanTeach) != 1 || c.SkillsTheyCanTeach[0] != "Yoga" {
		t.Errorf("SkillsTheyCanTeach = %v, want [Yoga]", c.SkillsTheyCanTeach)
	}
	if c.Score != 7 {
		t.Errorf("Score = %d, want 7 (1+1+5)", c.Score)
	}
	if !c.IsPerfect() {
		t.Error("expected perfect match")
	}
}

func TestScoreCandidateOneWay(t *testing.T) {
	candidate := profileWith(2, []string{"Cooking"}, nil)

	c := ScoreCandidate([]string{"Guitar"}, []string{"cooking"}, candidate)
	if c == nil {
		t.Fatal("expected a candidate")
	}
	if c.Score != 1 {
		t.Errorf("Score = %d, want 1 (no mutual bonus)", c.Score)
	}
	if c.IsPerfect() {
		t.Error("one-way match must not be perfect")
	}
}

func TestScoreCandidateNoOverlap(t *testing.T) {
	candidate := profileWith(2, []string{"Mahjong"}, []string{"Tai Chi"})

	if c := ScoreCandidate([]string{"Guitar"}, []string{"Yoga"}, candidate); c != nil {
		t.Errorf("expected nil candidate, got score %d", c.Score)
	}
}

func TestScoreCandidateEmptySkills(t *testing.T) {
	if c := ScoreCandidate([]string{"Guitar"}, []string{"Yoga"}, profileWith(2, nil, nil)); c != nil {
		t.Error("candidate with no skills at all must be skipped")
	}
}

func TestScoreCandidateDeduplicatesIntersection(t *testing.T) {
	// Same skill listed with different casing on the teaching side
	// counts once.
	c := ScoreCandidate([]string{"Guitar", "guitar"}, nil, profileWith(2, nil, []string{"GUITAR"}))
	if c == nil {
		t.Fatal("expected a candidate")
	}
	if len(c.SkillsICanTeach) != 1 {
		t.Errorf("SkillsICanTeach = %v, want single entry", c.SkillsICanTeach)
	}
	if c.Score != 1 {
		t.Errorf("Score = %d, want 1", c.Score)
	}
}

func TestBuildQueueSortedDescendingStable(t *testing.T) {
	profiles := []*domain.Profile{
		profileWith(2, []string{"Cooking"}, nil),                     // score 1
		profileWith(3, []string{"Yoga"}, []string{"Guitar"}),         // score 7
		profileWith(4, []string{"Sewing"}, nil),                      // score 1, ties with user 2
		profileWith(5, []string{"Mahjong"}, []string{"Calligraphy"}), // excluded
	}

	queue := BuildQueue([]string{"Guitar"}, []string{"Cooking", "Yoga", "Sewing"}, profiles)
	if len(queue) != 3 {
		t.Fatalf("queue length = %d, want 3", len(queue))
	}

	for i := 1; i < len(queue); i++ {
		if queue[i-1].Score < queue[i].Score {
			t.Errorf("queue not sorted descending at %d: %d < %d", i, queue[i-1].Score, queue[i].Score)
		}
	}

	if queue[0].Profile.UserID != 3 {
		t.Errorf("top candidate = user %d, want 3", queue[0].Profile.UserID)
	}
	// Stable tie-break: user 2 came before user 4 in the input.
	if queue[1].Profile.UserID != 2 || queue[2].Profile.UserID != 4 {
		t.Errorf("tie order = %d,%d, want 2,4", queue[1].Profile.UserID, queue[2].Profile.UserID)
	}
}

func TestBuildQueueInclusionRule(t *testing.T) {
	// Included iff at least one case-insensitive intersection is nonempty.
	cases := []struct {
		name     string
		offered  []string
		wanted   []string
		cOffered []string
		cWanted  []string
		include  bool
	}{
		{"i can teach only", []string{"Guitar"}, nil, nil, []string{"guitar"}, true},
		{"they can teach only", nil, []string{"yoga"}, []string{"Yoga"}, nil, true},
		{"both", []string{"Guitar"}, []string{"Yoga"}, []string{"Yoga"}, []string{"Guitar"}, true},
		{"neither", []string{"Guitar"}, []string{"Yoga"}, []string{"Chess"}, []string{"Chess"}, false},
		{"caller empty", nil, nil, []string{"Yoga"}, []string{"Guitar"}, false},
	}

	for _, tc := range cases {
		queue := BuildQueue(tc.offered, tc.wanted, []*domain.Profile{profileWith(9, tc.cOffered, tc.cWanted)})
		got := len(queue) == 1
		if got != tc.include {
			t.Errorf("%s: included = %v, want %v", tc.name, got, tc.include)
		}
	}
}
