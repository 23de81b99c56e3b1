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

package api

import (
	"context"
	"fmt"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/postback"
	"sales-tracker-go/internal/report"
	"sales-tracker-go/internal/store"
)

// ServerConfig wires the HTTP layer's collaborators. The handlers only
// know the store contracts, so tests can swap backends freely.
type ServerConfig struct {
	Server     models.ServerConfig
	Pipeline   *postback.Pipeline
	Reports    *report.Engine
	Sales      store.SaleStore
	Attendants store.AttendantStore
	Campaigns  store.CampaignStore
	Settings   store.SettingsStore
}

type Server struct {
	cfg        models.ServerConfig
	pipeline   *postback.Pipeline
	reports    *report.Engine
	sales      store.SaleStore
	attendants store.AttendantStore
	campaigns  store.CampaignStore
	settings   store.SettingsStore
}

func NewServer(cfg ServerConfig) *Server {
	return &Server{
		cfg:        cfg.Server,
		pipeline:   cfg.Pipeline,
		reports:    cfg.Reports,
		sales:      cfg.Sales,
		attendants: cfg.Attendants,
		campaigns:  cfg.Campaigns,
		settings:   cfg.Settings,
	}
}

func (s *Server) HealthCheck(ctx context.Context) error {
	if _, err := s.settings.Get(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
