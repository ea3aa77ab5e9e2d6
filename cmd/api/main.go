package main

import (
	"flag"
	"os"

	"github.com/teilnahme/teilnahme/internal/config"
	"github.com/teilnahme/teilnahme/internal/pkg/logger"
	"github.com/teilnahme/teilnahme/internal/server"
)

// @title Teilnahme API
// @version 1.0
// @description Attendance tracking for students, subjects and classrooms

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
