package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmniti/db"
	"farmniti/models"
	"farmniti/services"
	"farmniti/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllRewards lists active rewards ordered by ascending cost
func GetAllRewards(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "cost", Value: 1}})
	cursor, err := db.GetCollection("rewards").Find(ctx, bson.M{"status": models.StatusActive}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch rewards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	rewards := []models.Reward{}
	if err := cursor.All(ctx, &rewards); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(rewards), "rewards": rewards})
}

// GetRewardByID returns a single reward
func GetRewardByID(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var reward models.Reward
	err = db.GetCollection("rewards").FindOne(ctx, bson.M{"_id": rewardID}).Decode(&reward)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reward not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reward": reward})
}

// CreateRewardRequest is the reward creation payload. Stock is a pointer so
// an omitted stock defaults to unlimited while an explicit 0 stays 0.
type CreateRewardRequest struct {
	Title       models.LocalizedText `json:"title" binding:"required"`
	Description models.LocalizedText `json:"description" binding:"required"`
	Type        string               `json:"type" binding:"required,oneof=certificate coupon badge physical"`
	Cost        int                  `json:"cost" binding:"required,gt=0"`
	Image       string               `json:"image"`
	Stock       *int                 `json:"stock" binding:"omitempty,gte=-1"`
}

// CreateReward adds a reward to the store (authority only)
func CreateReward(c *gin.Context) {
	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	stock := models.UnlimitedStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	reward := models.Reward{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Cost:        req.Cost,
		Image:       req.Image,
		Stock:       stock,
		Status:      models.StatusActive,
		Redemptions: []models.Redemption{},
		Version:     1,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.GetCollection("rewards").InsertOne(ctx, reward); err != nil {
		log.Printf("Failed to create reward: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "reward": reward})
}

// UpdateRewardRequest is the reward update payload. Optional fields are
// pointers so an omitted field never overwrites the stored value; Stock in
// particular must not collapse to 0 when left out.
type UpdateRewardRequest struct {
	Title       models.LocalizedText `json:"title" binding:"required"`
	Description models.LocalizedText `json:"description" binding:"required"`
	Type        string               `json:"type" binding:"required,oneof=certificate coupon badge physical"`
	Cost        int                  `json:"cost" binding:"required,gt=0"`
	Image       *string              `json:"image"`
	Stock       *int                 `json:"stock" binding:"omitempty,gte=-1"`
}

func (r *UpdateRewardRequest) setDocument() bson.M {
	set := bson.M{
		"title":       r.Title,
		"description": r.Description,
		"type":        r.Type,
		"cost":        r.Cost,
	}
	if r.Image != nil {
		set["image"] = *r.Image
	}
	if r.Stock != nil {
		set["stock"] = *r.Stock
	}
	return set
}

// UpdateReward updates reward fields (authority only)
func UpdateReward(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward ID"})
		return
	}

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	update := bson.M{
		"$set": req.setDocument(),
		"$inc": bson.M{"version": 1},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := db.GetCollection("rewards").FindOneAndUpdate(
		ctx,
		bson.M{"_id": rewardID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var reward models.Reward
	if err := result.Decode(&reward); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reward": reward})
}

// DeleteReward archives a reward instead of removing it, preserving the
// redemption history
func DeleteReward(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.GetCollection("rewards").UpdateOne(
		ctx,
		bson.M{"_id": rewardID},
		bson.M{"$set": bson.M{"status": models.StatusArchived}, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reward not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reward deleted successfully"})
}

// RedeemReward exchanges coins for a reward. User debit, redemption append,
// and stock decrement persist in one transaction.
func RedeemReward(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward ID"})
		return
	}
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reward models.Reward
	err = db.GetCollection("rewards").FindOne(ctx, bson.M{"_id": rewardID}).Decode(&reward)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondDomainError(c, services.ErrRewardNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	err = db.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		respondDomainError(c, services.ErrUserNotFound)
		return
	}

	rewardVersion, userVersion := reward.Version, user.Version

	if _, err := services.RedeemReward(&reward, &user, time.Now()); err != nil {
		respondDomainError(c, err)
		return
	}

	reward.Version = rewardVersion + 1
	user.Version = userVersion + 1

	err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := db.ReplaceVersioned(sc, "users", user.ID, userVersion, user); err != nil {
			return nil, err
		}
		if err := db.ReplaceVersioned(sc, "rewards", reward.ID, rewardVersion, reward); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	websocket.BroadcastPlatformEvent(models.PlatformEvent{
		Type:       "reward_redeemed",
		UserID:     user.ID.Hex(),
		RewardID:   reward.ID.Hex(),
		GreenCoins: -reward.Cost,
		Timestamp:  time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Reward redeemed successfully!",
		"remainingCoins": user.GreenCoins,
		"reward": gin.H{
			"title": reward.Title,
			"type":  reward.Type,
		},
	})
}

// GetUserRedemptions returns only the caller's redemption entries per reward
func GetUserRedemptions(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.GetCollection("rewards").Find(ctx, bson.M{"redemptions.user": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var rewards []models.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	type redeemedReward struct {
		ID          primitive.ObjectID  `json:"id"`
		Title       models.LocalizedText `json:"title"`
		Description models.LocalizedText `json:"description"`
		Type        string              `json:"type"`
		Cost        int                 `json:"cost"`
		Image       string              `json:"image,omitempty"`
		Redemptions []models.Redemption `json:"redemptions"`
	}

	userRewards := []redeemedReward{}
	for _, reward := range rewards {
		userRewards = append(userRewards, redeemedReward{
			ID:          reward.ID,
			Title:       reward.Title,
			Description: reward.Description,
			Type:        reward.Type,
			Cost:        reward.Cost,
			Image:       reward.Image,
			Redemptions: reward.UserRedemptions(userID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(userRewards), "rewards": userRewards})
}

// GetAllRedemptions flattens every redemption across rewards for the
// authority dashboard
func GetAllRedemptions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection("rewards").Find(ctx, bson.M{"redemptions.0": bson.M{"$exists": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var rewards []models.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Resolve user names for the dashboard in one query
	userIDSet := map[primitive.ObjectID]bool{}
	for _, reward := range rewards {
		for _, r := range reward.Redemptions {
			userIDSet[r.User] = true
		}
	}
	userIDs := make([]primitive.ObjectID, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	usersByID := map[primitive.ObjectID]models.User{}
	if len(userIDs) > 0 {
		userCursor, err := db.GetCollection("users").Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err == nil {
			var users []models.User
			if err := userCursor.All(ctx, &users); err == nil {
				for _, u := range users {
					usersByID[u.ID] = u
				}
			}
			userCursor.Close(ctx)
		}
	}

	type redemptionRow struct {
		RedemptionID primitive.ObjectID  `json:"redemptionId"`
		RewardID     primitive.ObjectID  `json:"rewardId"`
		RewardTitle  models.LocalizedText `json:"rewardTitle"`
		RewardType   string              `json:"rewardType"`
		UserID       primitive.ObjectID  `json:"userId"`
		UserName     string              `json:"userName,omitempty"`
		Village      string              `json:"village,omitempty"`
		District     string              `json:"district,omitempty"`
		RedeemedAt   time.Time           `json:"redeemedAt"`
		Status       string              `json:"status"`
	}

	redemptions := []redemptionRow{}
	for _, reward := range rewards {
		for _, r := range reward.Redemptions {
			row := redemptionRow{
				RedemptionID: r.ID,
				RewardID:     reward.ID,
				RewardTitle:  reward.Title,
				RewardType:   reward.Type,
				UserID:       r.User,
				RedeemedAt:   r.RedeemedAt,
				Status:       r.Status,
			}
			if u, ok := usersByID[r.User]; ok {
				row.UserName = u.Name
				row.Village = u.Village
				row.District = u.District
			}
			redemptions = append(redemptions, row)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(redemptions), "redemptions": redemptions})
}

// UpdateRedemptionStatus moves a redemption between fulfillment states
// (authority only). Cancelling does not refund the coin debit.
func UpdateRedemptionStatus(c *gin.Context) {
	rewardID, err := primitive.ObjectIDFromHex(c.Param("rewardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward ID"})
		return
	}
	redemptionID, err := primitive.ObjectIDFromHex(c.Param("redemptionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid redemption ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !services.ValidRedemptionStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := db.GetCollection("rewards").FindOneAndUpdate(
		ctx,
		bson.M{"_id": rewardID, "redemptions._id": redemptionID},
		bson.M{
			"$set": bson.M{"redemptions.$.status": req.Status},
			"$inc": bson.M{"version": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var reward models.Reward
	if err := result.Decode(&reward); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Redemption not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var updated *models.Redemption
	for i := range reward.Redemptions {
		if reward.Redemptions[i].ID == redemptionID {
			updated = &reward.Redemptions[i]
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Redemption status updated", "redemption": updated})
}
