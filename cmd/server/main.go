package main

import (
	"log"
	"net/http"
	"strconv"

	"farmniti/config"
	"farmniti/controllers"
	"farmniti/db"
	"farmniti/middlewares"
	"farmniti/routes"
	"farmniti/services"
	"farmniti/utils"
	"farmniti/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	utils.InitJWT(cfg.JWT.Secret)
	controllers.InitControllers(cfg)

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	if err := services.InitCropDoctorService(cfg); err != nil {
		log.Printf("Crop doctor service unavailable: %v", err)
	}

	utils.SeedDemoData()

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	frontend := cfg.Server.FrontendURL
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "FarmNiti API is running"})
	})

	public := router.Group("/api")
	auth := router.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	routes.SetupAuthRoutes(public, auth)
	routes.SetupUserRoutes(public, auth)
	routes.SetupMissionRoutes(public, auth)
	routes.SetupRewardRoutes(public, auth)
	routes.SetupSocialRoutes(public, auth)
	routes.SetupCropDoctorRoutes(auth)

	// Live gamification events; token arrives via query parameter
	router.GET("/api/ws", websocket.EventsHandler)

	return router
}
