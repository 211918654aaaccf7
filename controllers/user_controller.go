package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmniti/db"
	"farmniti/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Village           string `json:"village"`
	District          string `json:"district"`
	State             string `json:"state"`
	PreferredLanguage string `json:"preferredLanguage" binding:"omitempty,oneof=en hi"`
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile updates the authenticated user's editable fields
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Village != "" {
		set["village"] = req.Village
	}
	if req.District != "" {
		set["district"] = req.District
	}
	if req.State != "" {
		set["state"] = req.State
	}
	if req.PreferredLanguage != "" {
		set["preferredLanguage"] = req.PreferredLanguage
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := db.GetCollection("users").FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := result.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetLeaderboard returns the top farmers by XP
func GetLeaderboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "xp", Value: -1}}).
		SetLimit(100).
		SetProjection(bson.M{
			"name": 1, "village": 1, "district": 1, "state": 1,
			"xp": 1, "level": 1, "greenCoins": 1, "badges": 1, "avatar": 1,
		})

	cursor, err := db.GetCollection("users").Find(ctx, bson.M{"role": models.RoleFarmer}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	farmers := []models.User{}
	if err := cursor.All(ctx, &farmers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "farmers": farmers})
}

// GetFarmers lists all farmer accounts for the authority dashboard
func GetFarmers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection("users").Find(ctx, bson.M{"role": models.RoleFarmer}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	farmers := []models.User{}
	if err := cursor.All(ctx, &farmers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(farmers), "farmers": farmers})
}
