package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *SettingsService must satisfy store.SettingsStore.
var _ store.SettingsStore = (*SettingsService)(nil)

type SettingsService struct {
	db *sql.DB
}

// Get returns the singleton settings row. An absent row is not an error:
// it reads as the zero-value defaults (investment 0).
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	var investmentText string
	err := s.db.QueryRowContext(ctx, queryGetSettings).
		Scan(&settings.UserName, &settings.UserEmail, &investmentText)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Settings{MonthlyInvestment: decimal.Zero}, nil
		}
		zap.L().Error("Failed to query settings", zap.Error(err))
		return nil, fmt.Errorf("unable to query settings: %w", err)
	}

	settings.MonthlyInvestment, err = decimal.NewFromString(investmentText)
	if err != nil {
		return nil, fmt.Errorf("unable to parse monthly investment %q: %w", investmentText, err)
	}
	return &settings, nil
}

func (s *SettingsService) Save(ctx context.Context, settings models.Settings) error {
	_, err := s.db.ExecContext(ctx, querySaveSettings,
		settings.UserName, settings.UserEmail, settings.MonthlyInvestment.String())
	if err != nil {
		zap.L().Error("Failed to save settings", zap.Error(err))
		return fmt.Errorf("unable to save settings: %w", err)
	}

	zap.L().Info("Settings saved",
		zap.String("user_name", settings.UserName),
		zap.String("monthly_investment", settings.MonthlyInvestment.String()))
	return nil
}
