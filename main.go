package main

import (
	"log"
	"net/http"
	"os"

	"academy/config"
	_ "academy/docs"
	"academy/jobs"
	middlewares "academy/middleware"
	"academy/models"
	"academy/routes"
	"academy/services"
	"academy/services/logger"
	"academy/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(&models.User{}, &models.CheckInRecord{}); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

// @title Academy API
// @version 1.0
// @description API de check-in e controle de frequência da academia.
// @BasePath /api/v1
func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: não foi possível carregar o arquivo .env, usando variáveis de ambiente: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	router.Use(middlewares.SessionMiddleware())
	router.Use(middlewares.ErrorHandler())

	migrateTables()

	deactivationService := services.NewDeactivationService(services.DeactivationServiceOptions{
		Store:    services.NewGormStudentStore(config.DB),
		Logger:   logger.NewDefaultLogger(logger.InfoLevel),
		Notifier: notification.NewMelodyService(m),
	})
	jobs.SetStudentDeactivator(services.NewDeactivationAdapter(deactivationService))

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m, deactivationService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
