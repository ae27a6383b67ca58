package main

import (
	"os"
	"venuebook/api"
	"venuebook/db"
	"venuebook/service/security"
	"venuebook/service/uploader"
	"venuebook/util"
)

// @title        Venuebook API
// @version      1.0
// @description  Venue booking marketplace: admin, venue owner and end-user APIs.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// Load config
	config := util.LoadConfig(".env")

	// Connect to database
	queries := db.NewQueries()
	if err := queries.ConnectDB(config.DBConn); err != nil {
		util.LOGGER.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}

	// Run database migration
	if err := queries.AutoMigration(); err != nil {
		util.LOGGER.Error("Error running auto migration", "error", err)
		os.Exit(1)
	}

	// Create dependencies for server
	jwtService := security.NewJWTService([]byte(config.SecretKey), config.TokenExpiration)
	uploadService := uploader.NewUploader(config.UploadDir)

	// Start server
	server := api.NewServer(queries, jwtService, uploadService, config)
	if err := server.Start(); err != nil {
		util.LOGGER.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
