package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *CampaignService must satisfy store.CampaignStore.
var _ store.CampaignStore = (*CampaignService)(nil)

type CampaignService struct {
	db *sql.DB
}

func (s *CampaignService) FindByCode(ctx context.Context, code string) (*models.Campaign, error) {
	var campaign models.Campaign
	var costText string
	err := s.db.QueryRowContext(ctx, queryGetCampaignByCode, strings.ToLower(code)).
		Scan(&campaign.Code, &campaign.Name, &costText)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign %s: %w", code, store.ErrNotFound)
		}
		zap.L().Error("Failed to query campaign", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("unable to query campaign: %w", err)
	}

	campaign.Cost, err = decimal.NewFromString(costText)
	if err != nil {
		return nil, fmt.Errorf("unable to parse campaign cost %q: %w", costText, err)
	}
	return &campaign, nil
}

// ListAll returns every registered campaign except the reserved
// undefined entry, ordered by name.
func (s *CampaignService) ListAll(ctx context.Context) ([]models.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, queryListCampaigns)
	if err != nil {
		zap.L().Error("Failed to query campaigns", zap.Error(err))
		return nil, fmt.Errorf("unable to query campaigns: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var campaigns []models.Campaign
	for rows.Next() {
		var campaign models.Campaign
		var costText string
		if err := rows.Scan(&campaign.Code, &campaign.Name, &costText); err != nil {
			zap.L().Error("Failed to scan campaign row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan campaign row: %w", err)
		}
		if campaign.Code == models.UndefinedCampaign.Code {
			continue
		}
		campaign.Cost, err = decimal.NewFromString(costText)
		if err != nil {
			return nil, fmt.Errorf("unable to parse campaign cost %q: %w", costText, err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}
	return campaigns, nil
}

func (s *CampaignService) Create(ctx context.Context, campaign models.Campaign) error {
	_, err := s.db.ExecContext(ctx, queryInsertCampaign,
		campaign.Code, campaign.Name, campaign.Cost.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("campaign %s: %w", campaign.Code, store.ErrDuplicateCode)
		}
		zap.L().Error("Failed to create campaign", zap.String("code", campaign.Code), zap.Error(err))
		return fmt.Errorf("unable to create campaign: %w", err)
	}

	zap.L().Info("Campaign created",
		zap.String("code", campaign.Code), zap.String("name", campaign.Name))
	return nil
}

func (s *CampaignService) Update(ctx context.Context, code string, campaign models.Campaign) error {
	result, err := s.db.ExecContext(ctx, queryUpdateCampaign,
		campaign.Code, campaign.Name, campaign.Cost.String(), strings.ToLower(code))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("campaign %s: %w", campaign.Code, store.ErrDuplicateCode)
		}
		zap.L().Error("Failed to update campaign", zap.String("code", code), zap.Error(err))
		return fmt.Errorf("unable to update campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campaign %s: %w", code, store.ErrNotFound)
	}
	return nil
}

func (s *CampaignService) Delete(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteCampaign, strings.ToLower(code))
	if err != nil {
		zap.L().Error("Failed to delete campaign", zap.String("code", code), zap.Error(err))
		return fmt.Errorf("unable to delete campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campaign %s: %w", code, store.ErrNotFound)
	}
	return nil
}
