/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"sales-tracker-go/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Service owns the SQLite connection and hands out the per-aggregate
// stores backed by it.
type Service struct {
	db         *sql.DB
	sales      *SaleService
	attendants *AttendantService
	campaigns  *CampaignService
	settings   *SettingsService
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := newService(db)
	if err := service.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func newService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		sales:      &SaleService{db: db},
		attendants: &AttendantService{db: db},
		campaigns:  &CampaignService{db: db},
		settings:   &SettingsService{db: db},
	}
}

func (s *Service) Sales() *SaleService           { return s.sales }
func (s *Service) Attendants() *AttendantService { return s.attendants }
func (s *Service) Campaigns() *CampaignService   { return s.campaigns }
func (s *Service) Settings() *SettingsService    { return s.settings }

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	-- Sales: one row per provider transaction id, last write wins
	CREATE TABLE IF NOT EXISTS sales (
		transaction_id TEXT PRIMARY KEY,
		status_code INTEGER,
		status_text TEXT,
		client_email TEXT,
		client_name TEXT,
		client_document TEXT,
		client_phone TEXT,
		product_name TEXT,
		total_value_cents INTEGER,
		created_at TEXT,
		updated_at TEXT,
		raw_payload TEXT,
		attendant_code TEXT,
		attendant_name TEXT,
		campaign_code TEXT,
		campaign_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);
	CREATE INDEX IF NOT EXISTS idx_sales_updated_at ON sales(updated_at);
	CREATE INDEX IF NOT EXISTS idx_sales_attendant_code ON sales(attendant_code);
	CREATE INDEX IF NOT EXISTS idx_sales_campaign_code ON sales(campaign_code);

	-- Registries; monetary columns stored as decimal text
	CREATE TABLE IF NOT EXISTS attendants (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		monthly_cost TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS campaigns (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		cost TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		user_name TEXT NOT NULL DEFAULT '',
		user_email TEXT NOT NULL DEFAULT '',
		monthly_investment TEXT NOT NULL DEFAULT '0'
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// The reserved attribution entries always exist so that every sale
	// resolves to a registry row.
	sentinels := `
	INSERT OR IGNORE INTO attendants (code, name, monthly_cost) VALUES (?, ?, '0');
	`
	if _, err := s.db.Exec(sentinels, models.UnassignedAttendant.Code, models.UnassignedAttendant.Name); err != nil {
		return fmt.Errorf("unable to seed reserved attendant: %w", err)
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO campaigns (code, name, cost) VALUES (?, ?, '0')`,
		models.UndefinedCampaign.Code, models.UndefinedCampaign.Name); err != nil {
		return fmt.Errorf("unable to seed reserved campaign: %w", err)
	}

	return nil
}
