// Package report turns a filtered sale set into the dashboard reports:
// funnel summary, attendant ranking and campaign profitability. Every
// report is recomputed from the full filtered set on each call; nothing
// is maintained incrementally.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sales-tracker-go/internal/attribution"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/money"
	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/status"
	"sales-tracker-go/internal/store"

	"github.com/shopspring/decimal"
)

// EngineConfig wires the engine's collaborators.
type EngineConfig struct {
	Sales      store.SaleStore
	Attendants store.AttendantStore
	Campaigns  store.CampaignStore
	Settings   store.SettingsStore
}

type Engine struct {
	sales      store.SaleStore
	attendants store.AttendantStore
	campaigns  store.CampaignStore
	settings   store.SettingsStore
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		sales:      cfg.Sales,
		attendants: cfg.Attendants,
		campaigns:  cfg.Campaigns,
		settings:   cfg.Settings,
	}
}

// Query is a resolved reporting window with an optional attendant scope.
type Query struct {
	Range         period.Range
	AttendantCode string
}

// BuildSummary computes the funnel summary for the window. When scoped to
// a registered attendant the cost baseline is that attendant's monthly
// cost; otherwise it is the global monthly investment setting.
func (e *Engine) BuildSummary(ctx context.Context, q Query) (*models.SummaryReport, error) {
	code := attribution.NormalizeCode(q.AttendantCode)

	sales, err := e.sales.QueryByDateRange(ctx, q.Range.StartString(), q.Range.EndString(), code)
	if err != nil {
		return nil, fmt.Errorf("unable to load sales for summary: %w", err)
	}

	baseline, err := e.costBaseline(ctx, code)
	if err != nil {
		return nil, err
	}

	summary := ComputeSummary(sales, baseline)
	return &summary, nil
}

// BuildAttendantRanking ranks attendants by paid total within the window.
func (e *Engine) BuildAttendantRanking(ctx context.Context, rng period.Range) ([]models.AttendantRank, error) {
	sales, err := e.sales.QueryByDateRange(ctx, rng.StartString(), rng.EndString(), "")
	if err != nil {
		return nil, fmt.Errorf("unable to load sales for attendant ranking: %w", err)
	}

	registry, err := e.attendants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load attendant registry: %w", err)
	}

	return RankAttendants(sales, registry), nil
}

// BuildCampaignReport computes revenue, profit and ROI per campaign
// within the window.
func (e *Engine) BuildCampaignReport(ctx context.Context, rng period.Range) ([]models.CampaignReportEntry, error) {
	sales, err := e.sales.QueryByDateRange(ctx, rng.StartString(), rng.EndString(), "")
	if err != nil {
		return nil, fmt.Errorf("unable to load sales for campaign report: %w", err)
	}

	registry, err := e.campaigns.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load campaign registry: %w", err)
	}

	return RankCampaigns(sales, registry), nil
}

func (e *Engine) costBaseline(ctx context.Context, attendantCode string) (decimal.Decimal, error) {
	if attendantCode == "" || attendantCode == models.UnassignedAttendant.Code {
		settings, err := e.settings.Get(ctx)
		if err != nil {
			return decimal.Zero, fmt.Errorf("unable to load settings for summary: %w", err)
		}
		return settings.MonthlyInvestment, nil
	}

	attendant, err := e.attendants.FindByCode(ctx, attendantCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Unknown attendant scope reads as a zero cost baseline, not
			// an error; the window may legitimately be empty too.
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("unable to load attendant cost: %w", err)
	}
	return attendant.MonthlyCost, nil
}

// ComputeSummary aggregates an already filtered sale set against a cost
// baseline. Sums are carried in integer cents and rounded only at the
// end. Receivable is scheduled minus paid without clamping: paying more
// than was scheduled inside the window yields a negative receivable.
func ComputeSummary(sales []models.Sale, costBaseline decimal.Decimal) models.SummaryReport {
	var scheduledCents, paidCents, failedCents int64
	for _, sale := range sales {
		var cents int64
		if sale.TotalValueCents != nil {
			cents = *sale.TotalValueCents
		}
		switch status.Classify(sale.StatusText, sale.StatusCode) {
		case status.Scheduled:
			scheduledCents += cents
		case status.Paid:
			paidCents += cents
		case status.Failed:
			failedCents += cents
		}
	}

	scheduled := money.Round(money.FromCents(scheduledCents))
	paid := money.Round(money.FromCents(paidCents))
	receivable := money.Round(money.FromCents(scheduledCents - paidCents))
	failed := money.Round(money.FromCents(failedCents))

	investment := money.Round(costBaseline)
	profit := money.Round(money.FromCents(paidCents).Sub(investment))
	roi := decimal.Zero
	if investment.IsPositive() {
		roi = money.Round(profit.Div(investment).Mul(decimal.NewFromInt(100)))
	}

	return models.SummaryReport{
		Scheduled:        scheduled,
		Paid:             paid,
		Receivable:       receivable,
		Failed:           failed,
		Investment:       investment,
		Profit:           profit,
		Roi:              roi,
		FunnelChart:      []decimal.Decimal{scheduled, paid, receivable, failed},
		CompositionChart: []decimal.Decimal{paid, receivable, failed},
	}
}

type attendantStats struct {
	code           string
	name           string
	paidCents      int64
	scheduledCount int
	failedCount    int
}

// RankAttendants groups the sales by attendant code, sums paid value and
// counts scheduled and failed sales per attendant, then ranks by paid
// total. Attendants with no paid value are dropped; ties keep their
// first-seen order, so ranks are a dense 1..N sequence.
func RankAttendants(sales []models.Sale, registry []models.Attendant) []models.AttendantRank {
	registeredNames := make(map[string]string, len(registry))
	for _, attendant := range registry {
		registeredNames[attendant.Code] = attendant.Name
	}

	var order []string
	groups := make(map[string]*attendantStats)

	for _, sale := range sales {
		code := attribution.NormalizeCode(sale.AttendantCode)
		if code == "" {
			code = models.UnassignedAttendant.Code
		}

		name := registeredNames[code]
		if name == "" {
			name = sale.AttendantName
		}
		if name == "" {
			name = models.UnassignedAttendant.Name
		}

		entry, ok := groups[code]
		if !ok {
			entry = &attendantStats{code: code}
			groups[code] = entry
			order = append(order, code)
		}
		entry.name = name

		switch status.Classify(sale.StatusText, sale.StatusCode) {
		case status.Paid:
			if sale.TotalValueCents != nil {
				entry.paidCents += *sale.TotalValueCents
			}
		case status.Scheduled:
			entry.scheduledCount++
		case status.Failed:
			entry.failedCount++
		}
	}

	qualified := make([]*attendantStats, 0, len(order))
	for _, code := range order {
		if groups[code].paidCents > 0 {
			qualified = append(qualified, groups[code])
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].paidCents > qualified[j].paidCents
	})

	ranking := make([]models.AttendantRank, len(qualified))
	for i, entry := range qualified {
		ranking[i] = models.AttendantRank{
			Rank:           i + 1,
			AttendantCode:  entry.code,
			AttendantName:  entry.name,
			TotalPaid:      money.Round(money.FromCents(entry.paidCents)),
			ScheduledCount: entry.scheduledCount,
			FailedCount:    entry.failedCount,
		}
	}
	return ranking
}

type campaignStats struct {
	code         string
	name         string
	cost         decimal.Decimal
	revenueCents int64
	salesCount   int
}

// RankCampaigns groups paid sales by campaign code, joined against the
// registry for display name and cost. Registered campaigns with a cost
// appear even without revenue in the window; entries with neither
// revenue nor cost are dropped. Ordered by revenue, descending.
func RankCampaigns(sales []models.Sale, registry []models.Campaign) []models.CampaignReportEntry {
	var order []string
	groups := make(map[string]*campaignStats)

	add := func(code, name string, cost decimal.Decimal) *campaignStats {
		entry, ok := groups[code]
		if !ok {
			entry = &campaignStats{code: code, name: name, cost: cost}
			groups[code] = entry
			order = append(order, code)
		}
		return entry
	}

	for _, campaign := range registry {
		add(campaign.Code, campaign.Name, campaign.Cost)
	}

	for _, sale := range sales {
		code := attribution.NormalizeCode(sale.CampaignCode)
		if code == "" {
			code = models.UndefinedCampaign.Code
		}

		name := sale.CampaignName
		if code == models.UndefinedCampaign.Code && name == "" {
			name = models.UndefinedCampaign.Name
		}

		entry := add(code, name, decimal.Zero)
		if entry.name == "" {
			entry.name = name
		}

		if status.Classify(sale.StatusText, sale.StatusCode) == status.Paid {
			if sale.TotalValueCents != nil {
				entry.revenueCents += *sale.TotalValueCents
			}
			entry.salesCount++
		}
	}

	qualified := make([]*campaignStats, 0, len(order))
	for _, code := range order {
		entry := groups[code]
		if entry.revenueCents == 0 && entry.cost.IsZero() {
			continue
		}
		qualified = append(qualified, entry)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].revenueCents > qualified[j].revenueCents
	})

	result := make([]models.CampaignReportEntry, len(qualified))
	for i, entry := range qualified {
		revenue := money.Round(money.FromCents(entry.revenueCents))
		cost := money.Round(entry.cost)
		profit := money.Round(money.FromCents(entry.revenueCents).Sub(cost))
		roi := decimal.Zero
		if cost.IsPositive() {
			roi = money.Round(profit.Div(cost).Mul(decimal.NewFromInt(100)))
		}
		result[i] = models.CampaignReportEntry{
			CampaignCode: entry.code,
			CampaignName: entry.name,
			Revenue:      revenue,
			Cost:         cost,
			Profit:       profit,
			Roi:          roi,
			SalesCount:   entry.salesCount,
		}
	}
	return result
}
