package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"sales-tracker-go/internal/common"
	"sales-tracker-go/internal/config"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/postback"
	"sales-tracker-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seedRegistry inserts attendants and campaigns, skipping codes that are
// already registered so the command can be re-run safely.
func seedRegistry(ctx context.Context, services *common.Services, seed *common.SeedConfig) {
	for _, entry := range seed.Attendants {
		attendant := models.Attendant{
			Code:        entry.Code,
			Name:        entry.Name,
			MonthlyCost: entry.MonthlyCost,
		}
		if err := services.DbService.Attendants().Create(ctx, attendant); err != nil {
			if errors.Is(err, store.ErrDuplicateCode) {
				zap.L().Info("Attendant already exists, skipping", zap.String("code", entry.Code))
				continue
			}
			zap.L().Fatal("Failed to create attendant", zap.String("code", entry.Code), zap.Error(err))
		}
		zap.L().Info("Created attendant", zap.String("code", entry.Code), zap.String("name", entry.Name))
	}

	for _, entry := range seed.Campaigns {
		campaign := models.Campaign{
			Code: entry.Code,
			Name: entry.Name,
			Cost: entry.Cost,
		}
		if err := services.DbService.Campaigns().Create(ctx, campaign); err != nil {
			if errors.Is(err, store.ErrDuplicateCode) {
				zap.L().Info("Campaign already exists, skipping", zap.String("code", entry.Code))
				continue
			}
			zap.L().Fatal("Failed to create campaign", zap.String("code", entry.Code), zap.Error(err))
		}
		zap.L().Info("Created campaign", zap.String("code", entry.Code), zap.String("name", entry.Name))
	}
}

// seedSales routes each sample sale through the ingestion pipeline so
// attribution behaves exactly as it does for live postbacks.
func seedSales(ctx context.Context, services *common.Services, seed *common.SeedConfig) {
	var ingested, failed int
	for _, entry := range seed.Sales {
		transactionId := entry.TransactionId
		if transactionId == "" {
			transactionId = uuid.New().String()
		}

		timestamp := time.Now().AddDate(0, 0, -entry.DaysAgo).Format(period.DateTimeLayout)
		event := postback.Event{
			TransactionId:   transactionId,
			StatusCode:      entry.StatusCode,
			StatusText:      entry.StatusText,
			ClientEmail:     entry.ClientEmail,
			ClientName:      entry.ClientName,
			ProductName:     entry.ProductName,
			TotalValueCents: entry.TotalValueCents,
			CreatedAt:       timestamp,
			UpdatedAt:       timestamp,
		}

		if _, err := services.Pipeline.Ingest(ctx, event); err != nil {
			failed++
			zap.L().Error("Failed to ingest sample sale",
				zap.String("transaction_id", transactionId), zap.Error(err))
			continue
		}
		ingested++
	}

	if failed > 0 {
		zap.L().Warn("Seeding completed with some failures",
			zap.Int("ingested", ingested), zap.Int("failed", failed))
	} else {
		zap.L().Info("Seeding completed successfully", zap.Int("ingested", ingested))
	}
}

func main() {
	defaultSeed := os.Getenv("SEED_FILE")
	if defaultSeed == "" {
		defaultSeed = "seed.yaml"
	}
	seedFile := flag.String("file", defaultSeed, "Path to the seed fixture file")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	seed, err := common.LoadSeedConfig(*seedFile)
	if err != nil {
		zap.L().Fatal("Failed to load seed file", zap.Error(err))
	}

	if seed.Settings != nil {
		settings := models.Settings{
			UserName:          seed.Settings.UserName,
			UserEmail:         seed.Settings.UserEmail,
			MonthlyInvestment: seed.Settings.MonthlyInvestment,
		}
		if err := services.DbService.Settings().Save(ctx, settings); err != nil {
			zap.L().Fatal("Failed to save settings", zap.Error(err))
		}
		zap.L().Info("Saved settings", zap.String("user_name", settings.UserName))
	}

	seedRegistry(ctx, services, seed)
	seedSales(ctx, services, seed)
}
