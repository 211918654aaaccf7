package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity status; soft deletes archive a record instead of removing it so
// participant and redemption history stays resolvable.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Participant status values
const (
	ParticipantActive    = "active"
	ParticipantCompleted = "completed"
	ParticipantFailed    = "failed"
)

// LocalizedText holds the required bilingual copy for user-facing strings
type LocalizedText struct {
	En string `bson:"en" json:"en" binding:"required"`
	Hi string `bson:"hi" json:"hi" binding:"required"`
}

// MissionRewards is the reward bundle granted on completion. Zero values are
// legal; a mission may grant coins without XP or the other way around.
type MissionRewards struct {
	XP         int    `bson:"xp" json:"xp" binding:"gte=0"`
	GreenCoins int    `bson:"greenCoins" json:"greenCoins" binding:"gte=0"`
	Badge      string `bson:"badge,omitempty" json:"badge,omitempty"`
}

// Proof is the evidence a farmer submits when completing a mission
type Proof struct {
	Type        string `bson:"type,omitempty" json:"type,omitempty"` // "image" or "video"
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Participant records one user's attempt at a mission. Entries are appended
// on start and updated in place on completion, never removed.
type Participant struct {
	User        primitive.ObjectID `bson:"user" json:"user"`
	StartedAt   time.Time          `bson:"startedAt" json:"startedAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Proof       *Proof             `bson:"proof,omitempty" json:"proof,omitempty"`
}

// Duration is an advisory estimate shown on mission cards
type Duration struct {
	Value int    `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string `bson:"unit,omitempty" json:"unit,omitempty"` // hours, days, weeks
}

// Mission defines a farming task with bilingual copy and a reward bundle
type Mission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        LocalizedText      `bson:"title" json:"title" binding:"required"`
	Description  LocalizedText      `bson:"description" json:"description" binding:"required"`
	Category     string             `bson:"category" json:"category" binding:"required,oneof=soil water crops organic community weather"`
	Difficulty   string             `bson:"difficulty" json:"difficulty" binding:"required,oneof=easy medium hard"`
	Season       string             `bson:"season,omitempty" json:"season,omitempty" binding:"omitempty,oneof=kharif rabi zaid all"`
	Crop         string             `bson:"crop,omitempty" json:"crop,omitempty"`
	Duration     *Duration          `bson:"duration,omitempty" json:"duration,omitempty"`
	Rewards      MissionRewards     `bson:"rewards" json:"rewards"`
	Steps        []LocalizedText    `bson:"steps,omitempty" json:"steps,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Status       string             `bson:"status" json:"status"`
	Participants []Participant      `bson:"participants" json:"participants"`
	CreatedBy    primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	Version      int64              `bson:"version" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// ActiveParticipant returns the index of the user's active participant entry,
// or -1. A user has at most one active entry per mission.
func (m *Mission) ActiveParticipant(userID primitive.ObjectID) int {
	for i, p := range m.Participants {
		if p.User == userID && p.Status == ParticipantActive {
			return i
		}
	}
	return -1
}
