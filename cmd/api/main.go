package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"guestdex-backend/pkg/logger"
)

func main() {
	// .env is for local development; production uses real environment
	// variables and has no .env file.
	envLoaded := godotenv.Load() == nil

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if !envLoaded {
		logger.Debug("no .env file found, using system environment")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
