package main

import (
	"os"

	"github.com/rahuldey/uniroutine/internal/pkg/logger"
	"github.com/rahuldey/uniroutine/internal/server"
)

// @title UniRoutine API
// @version 1.0
// @description API for managing university class routines, departments, courses, faculties and rooms

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token; also accepted as the accessToken cookie

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
