package services

import (
	"time"

	"farmniti/models"
)

// The mission lifecycle for a (user, mission) pair is
// not-started -> active -> completed. There is no abandon transition; an
// attempt left active stays active until completed. The functions here mutate
// the in-memory documents only; callers persist both inside one transaction.

// StartMission records a new attempt on the mission and on the user.
// Fails with ErrAlreadyActive if the user already has an active attempt.
func StartMission(mission *models.Mission, user *models.User, now time.Time) error {
	if mission.ActiveParticipant(user.ID) != -1 {
		return ErrAlreadyActive
	}

	mission.Participants = append(mission.Participants, models.Participant{
		User:      user.ID,
		StartedAt: now,
		Status:    models.ParticipantActive,
	})
	user.ActiveMissions = append(user.ActiveMissions, models.ActiveMission{
		Mission:   mission.ID,
		StartedAt: now,
	})
	return nil
}

// CompleteMission transitions the user's active attempt to completed, records
// the proof, and grants the mission's reward bundle. Fails with ErrNotStarted
// if no active attempt exists, leaving both documents untouched.
//
// Completed mission ids and badges are appended without de-duplication,
// matching the platform's append-only audit behavior.
func CompleteMission(mission *models.Mission, user *models.User, proof models.Proof, now time.Time) (models.MissionRewards, error) {
	idx := mission.ActiveParticipant(user.ID)
	if idx == -1 {
		return models.MissionRewards{}, ErrNotStarted
	}

	mission.Participants[idx].Status = models.ParticipantCompleted
	mission.Participants[idx].CompletedAt = &now
	mission.Participants[idx].Proof = &proof

	// Drop the user's active entry for this mission
	remaining := user.ActiveMissions[:0]
	for _, am := range user.ActiveMissions {
		if am.Mission != mission.ID {
			remaining = append(remaining, am)
		}
	}
	user.ActiveMissions = remaining

	user.CompletedMissions = append(user.CompletedMissions, mission.ID)

	user.AddXP(mission.Rewards.XP)
	user.GreenCoins += mission.Rewards.GreenCoins

	if mission.Rewards.Badge != "" {
		user.Badges = append(user.Badges, models.Badge{
			Name:     mission.Rewards.Badge,
			Icon:     "🏆",
			EarnedAt: now,
		})
	}

	return mission.Rewards, nil
}
