package controllers

import (
	"context"
	"errors"
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

// CompleteMissionRequest carries the proof submitted on completion. The proof
// file is already uploaded; only its URL travels here.
type CompleteMissionRequest struct {
	ProofURL    string `json:"proofUrl" binding:"required"`
	ProofType   string `json:"proofType" binding:"required,oneof=image video"`
	Description string `json:"description"`
}

// GetAllMissions lists active missions, newest first, with optional
// season/category/difficulty filters
func GetAllMissions(c *gin.Context) {
	filter := bson.M{"status": models.StatusActive}
	if season := c.Query("season"); season != "" {
		filter["season"] = season
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		filter["difficulty"] = difficulty
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("missions").Find(ctx, filter, findOptions)
	if err != nil {
		log.Printf("Failed to fetch missions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	missions := []models.Mission{}
	if err := cursor.All(ctx, &missions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(missions), "missions": missions})
}

// GetMissionByID returns a single mission, archived ones included so
// historical participant records stay reachable
func GetMissionByID(c *gin.Context) {
	missionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid mission ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mission models.Mission
	err = db.GetCollection("missions").FindOne(ctx, bson.M{"_id": missionID}).Decode(&mission)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Mission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mission": mission})
}

// CreateMission creates a mission (authority only)
func CreateMission(c *gin.Context) {
	var mission models.Mission
	if err := c.ShouldBindJSON(&mission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)

	mission.ID = primitive.NewObjectID()
	if mission.Season == "" {
		mission.Season = "all"
	}
	mission.Status = models.StatusActive
	mission.Participants = []models.Participant{}
	mission.CreatedBy = userID
	mission.Version = 1
	mission.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.GetCollection("missions").InsertOne(ctx, mission); err != nil {
		log.Printf("Failed to create mission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "mission": mission})
}

// UpdateMissionRequest is the mission update payload. Optional fields are
// pointers so an omitted field leaves the stored value untouched instead of
// blanking it.
type UpdateMissionRequest struct {
	Title       models.LocalizedText   `json:"title" binding:"required"`
	Description models.LocalizedText   `json:"description" binding:"required"`
	Category    string                 `json:"category" binding:"required,oneof=soil water crops organic community weather"`
	Difficulty  string                 `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Season      *string                `json:"season" binding:"omitempty,oneof=kharif rabi zaid all"`
	Crop        *string                `json:"crop"`
	Duration    *models.Duration       `json:"duration"`
	Rewards     *models.MissionRewards `json:"rewards"`
	Steps       []models.LocalizedText `json:"steps"`
	Image       *string                `json:"image"`
}

func (r *UpdateMissionRequest) setDocument() bson.M {
	set := bson.M{
		"title":       r.Title,
		"description": r.Description,
		"category":    r.Category,
		"difficulty":  r.Difficulty,
	}
	if r.Season != nil {
		set["season"] = *r.Season
	}
	if r.Crop != nil {
		set["crop"] = *r.Crop
	}
	if r.Duration != nil {
		set["duration"] = r.Duration
	}
	if r.Rewards != nil {
		set["rewards"] = r.Rewards
	}
	if r.Steps != nil {
		set["steps"] = r.Steps
	}
	if r.Image != nil {
		set["image"] = *r.Image
	}
	return set
}

// UpdateMission updates mission fields (authority only)
func UpdateMission(c *gin.Context) {
	missionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid mission ID"})
		return
	}

	var req UpdateMissionRequest
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

	result := db.GetCollection("missions").FindOneAndUpdate(
		ctx,
		bson.M{"_id": missionID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mission models.Mission
	if err := result.Decode(&mission); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Mission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mission": mission})
}

// DeleteMission archives a mission instead of removing it, preserving the
// participant history
func DeleteMission(c *gin.Context) {
	missionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid mission ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.GetCollection("missions").UpdateOne(
		ctx,
		bson.M{"_id": missionID},
		bson.M{"$set": bson.M{"status": models.StatusArchived}, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Mission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mission deleted successfully"})
}

// StartMission begins a mission attempt for the calling farmer
func StartMission(c *gin.Context) {
	missionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid mission ID"})
		return
	}
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mission, user, err := loadMissionAndUser(ctx, missionID, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	missionVersion, userVersion := mission.Version, user.Version

	if err := services.StartMission(mission, user, time.Now()); err != nil {
		respondDomainError(c, err)
		return
	}

	mission.Version = missionVersion + 1
	user.Version = userVersion + 1

	err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := db.ReplaceVersioned(sc, "missions", mission.ID, missionVersion, mission); err != nil {
			return nil, err
		}
		if err := db.ReplaceVersioned(sc, "users", user.ID, userVersion, user); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mission started", "mission": mission})
}

// CompleteMission finishes an active attempt, records the proof, and grants
// the reward bundle. Mission and user are persisted in one transaction.
func CompleteMission(c *gin.Context) {
	missionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid mission ID"})
		return
	}
	userID := c.MustGet("userID").(primitive.ObjectID)

	var req CompleteMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mission, user, err := loadMissionAndUser(ctx, missionID, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	missionVersion, userVersion := mission.Version, user.Version

	proof := models.Proof{Type: req.ProofType, URL: req.ProofURL, Description: req.Description}
	rewards, err := services.CompleteMission(mission, user, proof, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	mission.Version = missionVersion + 1
	user.Version = userVersion + 1

	err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := db.ReplaceVersioned(sc, "missions", mission.ID, missionVersion, mission); err != nil {
			return nil, err
		}
		if err := db.ReplaceVersioned(sc, "users", user.ID, userVersion, user); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	websocket.BroadcastPlatformEvent(models.PlatformEvent{
		Type:       "mission_completed",
		UserID:     user.ID.Hex(),
		MissionID:  mission.ID.Hex(),
		XP:         rewards.XP,
		GreenCoins: rewards.GreenCoins,
		NewLevel:   user.Level,
		Timestamp:  time.Now(),
	})
	if rewards.Badge != "" {
		websocket.BroadcastPlatformEvent(models.PlatformEvent{
			Type:      "badge_earned",
			UserID:    user.ID.Hex(),
			BadgeName: rewards.Badge,
			Timestamp: time.Now(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mission completed!",
		"rewards": rewards,
		"user": gin.H{
			"xp":         user.XP,
			"level":      user.Level,
			"greenCoins": user.GreenCoins,
		},
	})
}

func loadMissionAndUser(ctx context.Context, missionID, userID primitive.ObjectID) (*models.Mission, *models.User, error) {
	var mission models.Mission
	err := db.GetCollection("missions").FindOne(ctx, bson.M{"_id": missionID}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, services.ErrMissionNotFound
		}
		return nil, nil, err
	}

	var user models.User
	err = db.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, services.ErrUserNotFound
		}
		return nil, nil, err
	}

	return &mission, &user, nil
}

// respondDomainError maps service errors onto the 4xx taxonomy
func respondDomainError(c *gin.Context, err error) {
	var balErr *services.InsufficientBalanceError
	switch {
	case errors.Is(err, services.ErrMissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Mission not found"})
	case errors.Is(err, services.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reward not found"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	case errors.Is(err, services.ErrAlreadyActive):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mission already started"})
	case errors.Is(err, services.ErrNotStarted):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mission not started"})
	case errors.Is(err, services.ErrRewardInactive):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reward is no longer available"})
	case errors.Is(err, services.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reward out of stock"})
	case errors.As(err, &balErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"message":   "Insufficient Green Coins",
			"required":  balErr.Required,
			"available": balErr.Available,
		})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}

// respondStorageError maps persistence failures; version conflicts ask the
// caller to retry
func respondStorageError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrVersionConflict) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Conflicting update, please retry"})
		return
	}
	log.Printf("Storage error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
}
