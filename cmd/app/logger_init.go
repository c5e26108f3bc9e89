package main

import (
	"github.com/osse101/AdventureBot_Go/internal/config"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info is only useful in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.DefaultConfig()
	loggerConfig.Level = cfg.LogLevel
	loggerConfig.Format = cfg.LogFormat
	loggerConfig.Environment = cfg.Environment
	loggerConfig.AddSource = addSource

	logger.Init(loggerConfig)
}
