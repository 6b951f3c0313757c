package main

import (
	"log"

	"classci/adapters/api"
	"classci/adapters/rng"
	"classci/app"
	"classci/internal"
	"classci/internal/config"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	if appConfig.Paths.PlotDir != "" {
		logger.Info("plots will be written to %s", appConfig.Paths.PlotDir)
	}

	service := app.NewIntervalService(appConfig.Estimation, rng.NewAdapter(), nil, logger)
	server := api.NewServer(service, appConfig, logger)

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		logger.Error("server stopped: %v", err)
		log.Fatal(err)
	}
}
