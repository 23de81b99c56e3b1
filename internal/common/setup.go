package common

import (
	"context"
	"log"
	"strings"

	"sales-tracker-go/internal/database"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/postback"
	"sales-tracker-go/internal/report"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService *database.Service
	Pipeline  *postback.Pipeline
	Reports   *report.Engine
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	pipeline := postback.NewPipeline(postback.PipelineConfig{
		Sales:      dbService.Sales(),
		Attendants: dbService.Attendants(),
		Campaigns:  dbService.Campaigns(),
	})

	reports := report.NewEngine(report.EngineConfig{
		Sales:      dbService.Sales(),
		Attendants: dbService.Attendants(),
		Campaigns:  dbService.Campaigns(),
		Settings:   dbService.Settings(),
	})

	return &Services{
		DbService: dbService,
		Pipeline:  pipeline,
		Reports:   reports,
	}, nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
