package main

import (
	"context"
	"log"

	"kishi-backend/controller"
	"kishi-backend/models"
	"kishi-backend/utils"
	"kishi-backend/utils/logger"
	"kishi-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title Kishi Consulting Backend API
// @version 1.0
// @description Form-submission backend for the Kishi Consulting website.
// @description Handles contact inquiries and newsletter signups over DynamoDB,
// @description with best-effort email notification through SES.
// @description
// @description Administrative listing and status-update endpoints expect the
// @description configured admin key in the X-Admin-Key header.

// @contact.name Kishi Consulting
// @contact.email support@kishiconsulting.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s v%s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	// Start infrastructure worker in background
	infraWorker, err := worker.NewService(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create infrastructure worker: %v", err)
	}
	if err := infraWorker.StartInBackground(); err != nil {
		appLogger.Fatalf("Failed to start infrastructure worker: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
