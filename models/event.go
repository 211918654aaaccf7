package models

import "time"

// PlatformEvent is pushed to connected clients over WebSocket when a user's
// gamification state changes
type PlatformEvent struct {
	Type       string    `json:"type"` // "mission_completed", "badge_earned", "reward_redeemed"
	UserID     string    `json:"userId"`
	MissionID  string    `json:"missionId,omitempty"`
	RewardID   string    `json:"rewardId,omitempty"`
	BadgeName  string    `json:"badgeName,omitempty"`
	XP         int       `json:"xp,omitempty"`
	GreenCoins int       `json:"greenCoins,omitempty"`
	NewLevel   int       `json:"newLevel,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
