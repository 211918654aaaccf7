package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleFarmer    = "farmer"
	RoleAuthority = "authority"
)

// Badge is one earned badge on a user. Awards are append-only and not
// de-duplicated; the history keeps every grant.
type Badge struct {
	Name     string    `bson:"name" json:"name"`
	Icon     string    `bson:"icon" json:"icon"`
	EarnedAt time.Time `bson:"earnedAt" json:"earnedAt"`
}

// ActiveMission tracks one mission a user is currently attempting
type ActiveMission struct {
	Mission   primitive.ObjectID `bson:"mission" json:"mission"`
	StartedAt time.Time          `bson:"startedAt" json:"startedAt"`
}

// User defines a platform user (farmer or authority)
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Phone    string             `bson:"phone" json:"phone"`
	Role     string             `bson:"role" json:"role"`
	Village  string             `bson:"village,omitempty" json:"village,omitempty"`
	District string             `bson:"district,omitempty" json:"district,omitempty"`
	State    string             `bson:"state,omitempty" json:"state,omitempty"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	// Gamification fields
	XP         int     `bson:"xp" json:"xp"`
	Level      int     `bson:"level" json:"level"`
	GreenCoins int     `bson:"greenCoins" json:"greenCoins"`
	Badges     []Badge `bson:"badges" json:"badges"`

	// Mission tracking
	CompletedMissions []primitive.ObjectID `bson:"completedMissions" json:"completedMissions"`
	ActiveMissions    []ActiveMission      `bson:"activeMissions" json:"activeMissions"`

	PreferredLanguage string `bson:"preferredLanguage" json:"preferredLanguage"`

	// Optimistic concurrency guard; bumped on every replace
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CalculateLevel derives the level from cumulative XP. Purely a function of
// XP, so recomputation is idempotent and never lowers the level while XP is
// monotonic.
func (u *User) CalculateLevel() int {
	u.Level = u.XP/100 + 1
	return u.Level
}

// AddXP adds XP and recomputes the level
func (u *User) AddXP(amount int) {
	u.XP += amount
	u.CalculateLevel()
}
