package services

import (
	"testing"
	"time"

	"farmniti/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestMission() *models.Mission {
	return &models.Mission{
		ID: primitive.NewObjectID(),
		Title: models.LocalizedText{
			En: "Start composting",
			Hi: "कम्पोस्टिंग शुरू करें",
		},
		Category:   "organic",
		Difficulty: "easy",
		Season:     "all",
		Status:     models.StatusActive,
		Rewards: models.MissionRewards{
			XP:         50,
			GreenCoins: 30,
			Badge:      "Compost Master",
		},
	}
}

func newTestFarmer() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ravi",
		Role:  models.RoleFarmer,
		Level: 1,
	}
}

func TestStartMission(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	if err := StartMission(mission, user, now); err != nil {
		t.Fatalf("StartMission failed: %v", err)
	}

	if len(mission.Participants) != 1 {
		t.Errorf("Expected 1 participant, got %d", len(mission.Participants))
	}
	if mission.Participants[0].Status != models.ParticipantActive {
		t.Errorf("Expected participant status active, got %s", mission.Participants[0].Status)
	}
	if len(user.ActiveMissions) != 1 {
		t.Errorf("Expected 1 active mission on user, got %d", len(user.ActiveMissions))
	}
	if user.ActiveMissions[0].Mission != mission.ID {
		t.Errorf("Active mission id mismatch")
	}
}

func TestStartMissionTwiceFails(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	if err := StartMission(mission, user, now); err != nil {
		t.Fatalf("First start failed: %v", err)
	}

	err := StartMission(mission, user, now)
	if err != ErrAlreadyActive {
		t.Errorf("Expected ErrAlreadyActive, got %v", err)
	}
	if len(mission.Participants) != 1 {
		t.Errorf("Second start must not add a participant entry, got %d", len(mission.Participants))
	}
	if len(user.ActiveMissions) != 1 {
		t.Errorf("Second start must not add an active mission entry, got %d", len(user.ActiveMissions))
	}
}

func TestStartAgainAfterCompletion(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	StartMission(mission, user, now)
	if _, err := CompleteMission(mission, user, models.Proof{Type: "image", URL: "https://example.com/p.jpg"}, now); err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}

	// A completed attempt no longer blocks a fresh start
	if err := StartMission(mission, user, now); err != nil {
		t.Errorf("Expected restart after completion to succeed, got %v", err)
	}
	if len(mission.Participants) != 2 {
		t.Errorf("Expected 2 participant entries, got %d", len(mission.Participants))
	}
}

func TestCompleteMissionGrantsRewards(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	StartMission(mission, user, now)

	proof := models.Proof{Type: "image", URL: "https://example.com/compost.jpg", Description: "My compost pit"}
	rewards, err := CompleteMission(mission, user, proof, now)
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}

	if rewards.XP != 50 || rewards.GreenCoins != 30 {
		t.Errorf("Unexpected rewards returned: %+v", rewards)
	}
	if user.XP != 50 {
		t.Errorf("Expected xp=50, got %d", user.XP)
	}
	if user.Level != 1 {
		t.Errorf("Expected level=1 at 50 xp, got %d", user.Level)
	}
	if user.GreenCoins != 30 {
		t.Errorf("Expected greenCoins=30, got %d", user.GreenCoins)
	}
	if len(user.Badges) != 1 || user.Badges[0].Name != "Compost Master" {
		t.Errorf("Expected one Compost Master badge, got %+v", user.Badges)
	}
	if len(user.ActiveMissions) != 0 {
		t.Errorf("Expected active missions cleared, got %d", len(user.ActiveMissions))
	}
	if len(user.CompletedMissions) != 1 || user.CompletedMissions[0] != mission.ID {
		t.Errorf("Expected mission id in completed missions")
	}

	p := mission.Participants[0]
	if p.Status != models.ParticipantCompleted {
		t.Errorf("Expected participant completed, got %s", p.Status)
	}
	if p.CompletedAt == nil {
		t.Errorf("Expected completedAt to be set")
	}
	if p.Proof == nil || p.Proof.URL != proof.URL {
		t.Errorf("Expected proof recorded, got %+v", p.Proof)
	}
}

func TestCompleteMissionNotStarted(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()

	_, err := CompleteMission(mission, user, models.Proof{}, time.Now())
	if err != ErrNotStarted {
		t.Errorf("Expected ErrNotStarted, got %v", err)
	}
	if user.XP != 0 || user.GreenCoins != 0 || len(user.Badges) != 0 {
		t.Errorf("Failed completion must not mutate the user: xp=%d coins=%d badges=%d",
			user.XP, user.GreenCoins, len(user.Badges))
	}
}

func TestCompleteMissionTwiceFails(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	StartMission(mission, user, now)
	CompleteMission(mission, user, models.Proof{}, now)

	_, err := CompleteMission(mission, user, models.Proof{}, now)
	if err != ErrNotStarted {
		t.Errorf("Expected ErrNotStarted on second completion, got %v", err)
	}
	if user.XP != 50 {
		t.Errorf("Second completion must not grant xp again, got %d", user.XP)
	}
}

// Badge awards are append-only with no de-duplication; re-earning the same
// badge through a second attempt adds a second entry.
func TestBadgeAwardsAreNotDeduplicated(t *testing.T) {
	mission := newTestMission()
	user := newTestFarmer()
	now := time.Now()

	StartMission(mission, user, now)
	CompleteMission(mission, user, models.Proof{}, now)
	StartMission(mission, user, now)
	CompleteMission(mission, user, models.Proof{}, now)

	if len(user.Badges) != 2 {
		t.Errorf("Expected duplicate badge entries to accumulate, got %d", len(user.Badges))
	}
	if len(user.CompletedMissions) != 2 {
		t.Errorf("Expected completed missions to accumulate without de-dup, got %d", len(user.CompletedMissions))
	}
	if user.XP != 100 {
		t.Errorf("Expected xp=100 after two completions, got %d", user.XP)
	}
	if user.Level != 2 {
		t.Errorf("Expected level=2 at 100 xp, got %d", user.Level)
	}
}

func TestCompleteMissionNoBadge(t *testing.T) {
	mission := newTestMission()
	mission.Rewards.Badge = ""
	user := newTestFarmer()
	now := time.Now()

	StartMission(mission, user, now)
	CompleteMission(mission, user, models.Proof{}, now)

	if len(user.Badges) != 0 {
		t.Errorf("Expected no badge without a reward badge name, got %d", len(user.Badges))
	}
}

func TestLevelDerivation(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{250, 3},
		{999, 10},
		{1000, 11},
	}
	for _, c := range cases {
		u := &models.User{XP: c.xp}
		if got := u.CalculateLevel(); got != c.level {
			t.Errorf("level(%d) = %d, want %d", c.xp, got, c.level)
		}
	}

	// Level is monotonic non-decreasing in xp
	prev := 0
	for xp := 0; xp <= 2000; xp++ {
		u := &models.User{XP: xp}
		level := u.CalculateLevel()
		if level < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}
