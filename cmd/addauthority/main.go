package main

import (
	"context"
	"flag"
	"log"
	"time"

	"farmniti/config"
	"farmniti/db"
	"farmniti/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Creates an authority account. Public signup only issues farmer accounts,
// so authority users are provisioned from the command line.
func main() {
	name := flag.String("name", "", "Full name")
	email := flag.String("email", "", "Email address")
	password := flag.String("password", "", "Password")
	phone := flag.String("phone", "", "Phone number")
	district := flag.String("district", "", "District")
	state := flag.String("state", "", "State")
	configPath := flag.String("config", "./config/config.yml", "Config file path")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("name, email, and password are required")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection("users")

	var existing models.User
	err = users.FindOne(ctx, bson.M{"email": *email}).Decode(&existing)
	if err == nil {
		log.Fatalf("User with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:                primitive.NewObjectID(),
		Name:              *name,
		Email:             *email,
		Password:          string(hashed),
		Phone:             *phone,
		Role:              models.RoleAuthority,
		District:          *district,
		State:             *state,
		Level:             1,
		PreferredLanguage: "en",
		Version:           1,
		CreatedAt:         time.Now(),
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Fatalf("Failed to create authority user: %v", err)
	}

	log.Printf("Authority account created: %s (%s)", *name, *email)
}
