package services

import (
	"errors"
	"testing"
	"time"

	"farmniti/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestReward(cost, stock int) *models.Reward {
	return &models.Reward{
		ID: primitive.NewObjectID(),
		Title: models.LocalizedText{
			En: "Organic Certificate",
			Hi: "जैविक प्रमाणपत्र",
		},
		Type:   "certificate",
		Cost:   cost,
		Stock:  stock,
		Status: models.StatusActive,
	}
}

func TestRedeemReward(t *testing.T) {
	reward := newTestReward(50, 1)
	user := newTestFarmer()
	user.GreenCoins = 100

	redemption, err := RedeemReward(reward, user, time.Now())
	if err != nil {
		t.Fatalf("RedeemReward failed: %v", err)
	}

	if user.GreenCoins != 50 {
		t.Errorf("Expected 50 coins remaining, got %d", user.GreenCoins)
	}
	if reward.Stock != 0 {
		t.Errorf("Expected stock=0 after redeeming, got %d", reward.Stock)
	}
	if len(reward.Redemptions) != 1 {
		t.Fatalf("Expected exactly one redemption record, got %d", len(reward.Redemptions))
	}
	if redemption.Status != models.RedemptionPending {
		t.Errorf("Expected pending status, got %s", redemption.Status)
	}
	if redemption.User != user.ID {
		t.Errorf("Redemption user mismatch")
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	reward := newTestReward(50, 5)
	user := newTestFarmer()
	user.GreenCoins = 20

	_, err := RedeemReward(reward, user, time.Now())

	var balErr *InsufficientBalanceError
	if !errors.As(err, &balErr) {
		t.Fatalf("Expected InsufficientBalanceError, got %v", err)
	}
	if balErr.Required != 50 || balErr.Available != 20 {
		t.Errorf("Expected required=50 available=20, got %+v", balErr)
	}
	if user.GreenCoins != 20 {
		t.Errorf("Failed redemption must not debit coins, got %d", user.GreenCoins)
	}
	if reward.Stock != 5 {
		t.Errorf("Failed redemption must not touch stock, got %d", reward.Stock)
	}
	if len(reward.Redemptions) != 0 {
		t.Errorf("Failed redemption must not append a record, got %d", len(reward.Redemptions))
	}
}

func TestRedeemOutOfStock(t *testing.T) {
	reward := newTestReward(50, 1)

	userA := newTestFarmer()
	userA.GreenCoins = 100
	if _, err := RedeemReward(reward, userA, time.Now()); err != nil {
		t.Fatalf("First redemption failed: %v", err)
	}
	if reward.Stock != 0 || userA.GreenCoins != 50 {
		t.Fatalf("Expected stock=0 and 50 coins left, got stock=%d coins=%d", reward.Stock, userA.GreenCoins)
	}

	userB := newTestFarmer()
	userB.GreenCoins = 100
	_, err := RedeemReward(reward, userB, time.Now())
	if err != ErrOutOfStock {
		t.Errorf("Expected ErrOutOfStock, got %v", err)
	}
	if userB.GreenCoins != 100 {
		t.Errorf("Out-of-stock redemption must not debit coins, got %d", userB.GreenCoins)
	}
}

func TestRedeemUnlimitedStock(t *testing.T) {
	reward := newTestReward(10, models.UnlimitedStock)
	user := newTestFarmer()
	user.GreenCoins = 100

	for i := 0; i < 5; i++ {
		if _, err := RedeemReward(reward, user, time.Now()); err != nil {
			t.Fatalf("Redemption %d failed: %v", i+1, err)
		}
	}

	if reward.Stock != models.UnlimitedStock {
		t.Errorf("Unlimited stock must never decrement, got %d", reward.Stock)
	}
	if len(reward.Redemptions) != 5 {
		t.Errorf("Expected 5 redemption records, got %d", len(reward.Redemptions))
	}
	if user.GreenCoins != 50 {
		t.Errorf("Expected 50 coins after 5 redemptions, got %d", user.GreenCoins)
	}
}

func TestRedeemArchivedReward(t *testing.T) {
	reward := newTestReward(10, 5)
	reward.Status = models.StatusArchived
	user := newTestFarmer()
	user.GreenCoins = 100

	_, err := RedeemReward(reward, user, time.Now())
	if err != ErrRewardInactive {
		t.Errorf("Expected ErrRewardInactive, got %v", err)
	}
	if user.GreenCoins != 100 || len(reward.Redemptions) != 0 {
		t.Errorf("Archived reward redemption must not mutate state")
	}
}

func TestUpdateRedemptionStatus(t *testing.T) {
	reward := newTestReward(10, 5)
	user := newTestFarmer()
	user.GreenCoins = 100

	redemption, _ := RedeemReward(reward, user, time.Now())
	coinsAfterRedeem := user.GreenCoins

	updated, ok := UpdateRedemptionStatus(reward, redemption.ID, models.RedemptionCancelled)
	if !ok {
		t.Fatalf("Expected redemption to be found")
	}
	if updated.Status != models.RedemptionCancelled {
		t.Errorf("Expected cancelled status, got %s", updated.Status)
	}

	// Cancelling is bookkeeping only: no coin refund, no stock restore
	if user.GreenCoins != coinsAfterRedeem {
		t.Errorf("Cancellation must not refund coins")
	}
	if reward.Stock != 4 {
		t.Errorf("Cancellation must not restore stock, got %d", reward.Stock)
	}

	if _, ok := UpdateRedemptionStatus(reward, primitive.NewObjectID(), models.RedemptionDelivered); ok {
		t.Errorf("Expected unknown redemption id to report not found")
	}
}

func TestValidRedemptionStatus(t *testing.T) {
	for _, s := range []string{"pending", "delivered", "cancelled"} {
		if !ValidRedemptionStatus(s) {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "shipped", "PENDING"} {
		if ValidRedemptionStatus(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestUserRedemptionsFilter(t *testing.T) {
	reward := newTestReward(10, models.UnlimitedStock)

	userA := newTestFarmer()
	userA.GreenCoins = 50
	userB := newTestFarmer()
	userB.GreenCoins = 50

	RedeemReward(reward, userA, time.Now())
	RedeemReward(reward, userB, time.Now())
	RedeemReward(reward, userA, time.Now())

	mine := reward.UserRedemptions(userA.ID)
	if len(mine) != 2 {
		t.Fatalf("Expected 2 redemptions for userA, got %d", len(mine))
	}
	for _, r := range mine {
		if r.User != userA.ID {
			t.Errorf("Filter leaked another user's redemption")
		}
	}
}
