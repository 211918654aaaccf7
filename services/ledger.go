package services

import (
	"time"

	"farmniti/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedeemReward checks balance and stock, debits the user, appends a pending
// redemption, and decrements finite stock. Mutates in-memory documents only;
// the caller persists user and reward inside one transaction. On any error
// neither document is changed.
func RedeemReward(reward *models.Reward, user *models.User, now time.Time) (*models.Redemption, error) {
	if reward.Status != models.StatusActive {
		return nil, ErrRewardInactive
	}
	if user.GreenCoins < reward.Cost {
		return nil, &InsufficientBalanceError{Required: reward.Cost, Available: user.GreenCoins}
	}
	if !reward.InStock() {
		return nil, ErrOutOfStock
	}

	user.GreenCoins -= reward.Cost

	redemption := models.Redemption{
		ID:         primitive.NewObjectID(),
		User:       user.ID,
		RedeemedAt: now,
		Status:     models.RedemptionPending,
	}
	reward.Redemptions = append(reward.Redemptions, redemption)

	if reward.Stock != models.UnlimitedStock {
		reward.Stock--
	}

	return &redemption, nil
}

// UpdateRedemptionStatus moves one redemption entry between fulfillment
// states. It is bookkeeping only: cancelling never refunds the coin debit.
// The HTTP layer performs this transition atomically with a positional
// Mongo update; this function applies the same transition to in-memory
// documents.
func UpdateRedemptionStatus(reward *models.Reward, redemptionID primitive.ObjectID, status string) (*models.Redemption, bool) {
	for i := range reward.Redemptions {
		if reward.Redemptions[i].ID == redemptionID {
			reward.Redemptions[i].Status = status
			return &reward.Redemptions[i], true
		}
	}
	return nil, false
}

// ValidRedemptionStatus reports whether s is a recognized fulfillment state
func ValidRedemptionStatus(s string) bool {
	switch s {
	case models.RedemptionPending, models.RedemptionDelivered, models.RedemptionCancelled:
		return true
	}
	return false
}
