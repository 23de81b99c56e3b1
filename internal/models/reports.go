package models

import "github.com/shopspring/decimal"

// SummaryReport holds the funnel totals for one reporting window.
// Receivable is scheduled minus paid and is deliberately not clamped at
// zero: over-collection beyond what was scheduled in the window shows up
// as a negative amount still owed.
type SummaryReport struct {
	Scheduled  decimal.Decimal `json:"scheduled"`
	Paid       decimal.Decimal `json:"paid"`
	Receivable decimal.Decimal `json:"receivable"`
	Failed     decimal.Decimal `json:"failed"`
	Investment decimal.Decimal `json:"investment"`
	Profit     decimal.Decimal `json:"profit"`
	Roi        decimal.Decimal `json:"roi"`

	// Chart series in the order the dashboard renders them.
	FunnelChart      []decimal.Decimal `json:"funnel_chart"`
	CompositionChart []decimal.Decimal `json:"composition_chart"`
}

// AttendantRank is one row of the attendant ranking, ordered by paid total.
type AttendantRank struct {
	Rank           int             `json:"rank"`
	AttendantCode  string          `json:"attendant_code"`
	AttendantName  string          `json:"attendant_name"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	ScheduledCount int             `json:"scheduled_count"`
	FailedCount    int             `json:"failed_count"`
}

// CampaignReportEntry is one row of the campaign profitability report.
type CampaignReportEntry struct {
	CampaignCode string          `json:"campaign_code"`
	CampaignName string          `json:"campaign_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Roi          decimal.Decimal `json:"roi"`
	SalesCount   int             `json:"sales_count"`
}
