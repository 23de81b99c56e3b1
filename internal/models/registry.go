package models

import "github.com/shopspring/decimal"

// Attendant is a salesperson registry entry. MonthlyCost is the cost
// baseline used when a report is scoped to this attendant.
type Attendant struct {
	Code        string          `db:"code" json:"code"`
	Name        string          `db:"name" json:"name"`
	MonthlyCost decimal.Decimal `db:"monthly_cost" json:"monthly_cost"`
}

// Campaign is a marketing-campaign registry entry. Cost is the investment
// baseline for the campaign's ROI.
type Campaign struct {
	Code string          `db:"code" json:"code"`
	Name string          `db:"name" json:"name"`
	Cost decimal.Decimal `db:"cost" json:"cost"`
}

// Settings is the singleton configuration record.
type Settings struct {
	UserName          string          `db:"user_name" json:"user_name"`
	UserEmail         string          `db:"user_email" json:"user_email"`
	MonthlyInvestment decimal.Decimal `db:"monthly_investment" json:"monthly_investment"`
}

// Reserved registry entries. Every sale resolves to a registered code or to
// one of these, so attribution is never empty. Both rows are seeded at
// schema init and cannot be deleted.
var (
	UnassignedAttendant = Attendant{Code: "unassigned", Name: "Unassigned"}
	UndefinedCampaign   = Campaign{Code: "undefined", Name: "Undefined campaign"}
)
