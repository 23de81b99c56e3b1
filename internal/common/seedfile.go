package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type SeedAttendant struct {
	Code        string          `yaml:"code"`
	Name        string          `yaml:"name"`
	MonthlyCost decimal.Decimal `yaml:"monthly_cost"`
}

type SeedCampaign struct {
	Code string          `yaml:"code"`
	Name string          `yaml:"name"`
	Cost decimal.Decimal `yaml:"cost"`
}

type SeedSale struct {
	TransactionId   string `yaml:"transaction_id"`
	StatusCode      *int   `yaml:"status_code"`
	StatusText      string `yaml:"status_text"`
	ClientEmail     string `yaml:"client_email"`
	ClientName      string `yaml:"client_name"`
	ProductName     string `yaml:"product_name"`
	TotalValueCents *int64 `yaml:"total_value_cents"`
	DaysAgo         int    `yaml:"days_ago"`
}

type SeedSettings struct {
	UserName          string          `yaml:"user_name"`
	UserEmail         string          `yaml:"user_email"`
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment"`
}

type SeedConfig struct {
	Settings   *SeedSettings   `yaml:"settings"`
	Attendants []SeedAttendant `yaml:"attendants"`
	Campaigns  []SeedCampaign  `yaml:"campaigns"`
	Sales      []SeedSale      `yaml:"sales"`
}

// LoadSeedConfig reads a seed fixture file for populating a fresh
// database with demo data.
func LoadSeedConfig(seedFile string) (*SeedConfig, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, attendant := range config.Attendants {
		if attendant.Code == "" {
			return nil, fmt.Errorf("attendant at index %d missing code", i)
		}
		if attendant.Name == "" {
			return nil, fmt.Errorf("attendant at index %d missing name", i)
		}
	}
	for i, campaign := range config.Campaigns {
		if campaign.Code == "" {
			return nil, fmt.Errorf("campaign at index %d missing code", i)
		}
		if campaign.Name == "" {
			return nil, fmt.Errorf("campaign at index %d missing name", i)
		}
	}

	return &config, nil
}
