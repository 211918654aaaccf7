package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnlimitedStock is the sentinel for rewards with no stock limit
const UnlimitedStock = -1

// Redemption fulfillment status values
const (
	RedemptionPending   = "pending"
	RedemptionDelivered = "delivered"
	RedemptionCancelled = "cancelled"
)

// Redemption records one exchange of coins for a reward. The fulfillment
// status is bookkeeping only; changing it never reverses the coin debit.
type Redemption struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	RedeemedAt time.Time          `bson:"redeemedAt" json:"redeemedAt"`
	Status     string             `bson:"status" json:"status"`
}

// Reward is a redeemable item in the coin store
type Reward struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       LocalizedText      `bson:"title" json:"title" binding:"required"`
	Description LocalizedText      `bson:"description" json:"description" binding:"required"`
	Type        string             `bson:"type" json:"type" binding:"required,oneof=certificate coupon badge physical"`
	Cost        int                `bson:"cost" json:"cost" binding:"required,gt=0"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      string             `bson:"status" json:"status"`
	Redemptions []Redemption       `bson:"redemptions" json:"redemptions"`
	Version     int64              `bson:"version" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// InStock reports whether the reward can still be redeemed
func (r *Reward) InStock() bool {
	return r.Stock == UnlimitedStock || r.Stock > 0
}

// UserRedemptions returns only the redemption entries belonging to userID
func (r *Reward) UserRedemptions(userID primitive.ObjectID) []Redemption {
	var out []Redemption
	for _, red := range r.Redemptions {
		if red.User == userID {
			out = append(out, red)
		}
	}
	return out
}
