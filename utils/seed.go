package utils

import (
	"context"
	"log"
	"time"

	"farmniti/db"
	"farmniti/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData inserts sample users, missions, and rewards when the database
// is empty. Safe to call on every startup.
func SeedDemoData() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection("users")
	count, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Seed password hash failed: %v", err)
		return
	}

	now := time.Now()
	authority := models.User{
		ID:                primitive.NewObjectID(),
		Name:              "Krishi Adhikari",
		Email:             "authority@demo.com",
		Password:          string(hashed),
		Phone:             "9876543210",
		Role:              models.RoleAuthority,
		District:          "Pune",
		State:             "Maharashtra",
		Level:             1,
		PreferredLanguage: "en",
		Version:           1,
		CreatedAt:         now,
	}
	farmer := models.User{
		ID:                primitive.NewObjectID(),
		Name:              "Ramesh Kumar",
		Email:             "farmer@demo.com",
		Password:          string(hashed),
		Phone:             "9876543211",
		Role:              models.RoleFarmer,
		Village:           "Khardipada",
		District:          "Nashik",
		State:             "Maharashtra",
		XP:                250,
		Level:             3,
		GreenCoins:        150,
		PreferredLanguage: "hi",
		Version:           1,
		CreatedAt:         now,
	}
	for _, u := range []models.User{authority, farmer} {
		if _, err := users.InsertOne(ctx, u); err != nil {
			log.Printf("Seed user insert failed: %v", err)
		}
	}

	missions := []models.Mission{
		{
			ID:          primitive.NewObjectID(),
			Title:       models.LocalizedText{En: "Organic Composting", Hi: "जैविक खाद बनाना"},
			Description: models.LocalizedText{En: "Create organic compost using farm waste and kitchen scraps", Hi: "खेत के कचरे और रसोई के स्क्रैप का उपयोग करके जैविक खाद बनाएं"},
			Category:    "organic",
			Difficulty:  "easy",
			Season:      "all",
			Duration:    &models.Duration{Value: 7, Unit: "days"},
			Rewards:     models.MissionRewards{XP: 50, GreenCoins: 30, Badge: "Compost Master"},
			Status:      models.StatusActive,
			CreatedBy:   authority.ID,
			Version:     1,
			CreatedAt:   now,
		},
		{
			ID:          primitive.NewObjectID(),
			Title:       models.LocalizedText{En: "Drip Irrigation Setup", Hi: "ड्रिप सिंचाई सेटअप"},
			Description: models.LocalizedText{En: "Install drip irrigation system to save water and improve crop yield", Hi: "पानी बचाने और फसल की उपज बढ़ाने के लिए ड्रिप सिंचाई प्रणाली स्थापित करें"},
			Category:    "water",
			Difficulty:  "medium",
			Season:      "all",
			Duration:    &models.Duration{Value: 3, Unit: "days"},
			Rewards:     models.MissionRewards{XP: 100, GreenCoins: 75, Badge: "Water Saver"},
			Status:      models.StatusActive,
			CreatedBy:   authority.ID,
			Version:     1,
			CreatedAt:   now,
		},
		{
			ID:          primitive.NewObjectID(),
			Title:       models.LocalizedText{En: "Soil Health Testing", Hi: "मिट्टी स्वास्थ्य परीक्षण"},
			Description: models.LocalizedText{En: "Test your soil for pH, NPK levels, and organic matter content", Hi: "अपनी मिट्टी का pH, NPK स्तर और जैविक पदार्थ सामग्री के लिए परीक्षण करें"},
			Category:    "soil",
			Difficulty:  "easy",
			Season:      "all",
			Duration:    &models.Duration{Value: 1, Unit: "days"},
			Rewards:     models.MissionRewards{XP: 40, GreenCoins: 25},
			Status:      models.StatusActive,
			CreatedBy:   authority.ID,
			Version:     1,
			CreatedAt:   now,
		},
	}
	missionColl := db.GetCollection("missions")
	for _, m := range missions {
		if _, err := missionColl.InsertOne(ctx, m); err != nil {
			log.Printf("Seed mission insert failed: %v", err)
		}
	}

	rewards := []models.Reward{
		{
			ID:          primitive.NewObjectID(),
			Title:       models.LocalizedText{En: "Organic Farming Certificate", Hi: "जैविक खेती प्रमाणपत्र"},
			Description: models.LocalizedText{En: "Government recognized certificate for sustainable practices", Hi: "टिकाऊ प्रथाओं के लिए सरकारी मान्यता प्राप्त प्रमाणपत्र"},
			Type:        "certificate",
			Cost:        100,
			Stock:       models.UnlimitedStock,
			Status:      models.StatusActive,
			Version:     1,
			CreatedAt:   now,
		},
		{
			ID:          primitive.NewObjectID(),
			Title:       models.LocalizedText{En: "Seed Store Coupon", Hi: "बीज भंडार कूपन"},
			Description: models.LocalizedText{En: "10% off at partner seed stores", Hi: "साझेदार बीज भंडारों पर 10% की छूट"},
			Type:        "coupon",
			Cost:        50,
			Stock:       20,
			Status:      models.StatusActive,
			Version:     1,
			CreatedAt:   now,
		},
	}
	rewardColl := db.GetCollection("rewards")
	for _, r := range rewards {
		if _, err := rewardColl.InsertOne(ctx, r); err != nil {
			log.Printf("Seed reward insert failed: %v", err)
		}
	}

	log.Println("Seeded demo users, missions, and rewards")
}
