package report

import (
	"testing"

	"sales-tracker-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(v int64) *int64 { return &v }

func sale(statusText string, totalCents int64, attendantCode, campaignCode string) models.Sale {
	return models.Sale{
		StatusText:      statusText,
		TotalValueCents: cents(totalCents),
		AttendantCode:   attendantCode,
		CampaignCode:    campaignCode,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeSummary_Funnel(t *testing.T) {
	sales := []models.Sale{
		sale("Agendado", 100000, "joao", ""),
		sale("Pago", 30000, "joao", ""),
		sale("Frustrado", 20000, "mari", ""),
	}

	summary := ComputeSummary(sales, dec("200"))

	assert.True(t, summary.Scheduled.Equal(dec("1000")), "scheduled %s", summary.Scheduled)
	assert.True(t, summary.Paid.Equal(dec("300")), "paid %s", summary.Paid)
	assert.True(t, summary.Receivable.Equal(dec("700")), "receivable %s", summary.Receivable)
	assert.True(t, summary.Failed.Equal(dec("200")), "failed %s", summary.Failed)
	assert.True(t, summary.Investment.Equal(dec("200")), "investment %s", summary.Investment)
	assert.True(t, summary.Profit.Equal(dec("100")), "profit %s", summary.Profit)
	assert.True(t, summary.Roi.Equal(dec("50")), "roi %s", summary.Roi)

	require.Len(t, summary.FunnelChart, 4)
	assert.True(t, summary.FunnelChart[2].Equal(summary.Receivable))
	require.Len(t, summary.CompositionChart, 3)
}

func TestComputeSummary_NegativeReceivable(t *testing.T) {
	// More paid than scheduled inside the window: receivable goes
	// negative, not zero.
	sales := []models.Sale{
		sale("Agendado", 10000, "", ""),
		sale("Pago", 50000, "", ""),
	}

	summary := ComputeSummary(sales, decimal.Zero)
	assert.True(t, summary.Receivable.Equal(dec("-400")), "receivable %s", summary.Receivable)
}

func TestComputeSummary_ZeroBaselineRoi(t *testing.T) {
	sales := []models.Sale{sale("Pago", 50000, "", "")}

	summary := ComputeSummary(sales, decimal.Zero)
	assert.True(t, summary.Roi.IsZero(), "roi %s", summary.Roi)
	assert.True(t, summary.Profit.Equal(dec("500")))

	summary = ComputeSummary(sales, dec("-10"))
	assert.True(t, summary.Roi.IsZero(), "negative baseline roi %s", summary.Roi)
}

func TestComputeSummary_IgnoresUnknownAndNilValues(t *testing.T) {
	noValue := models.Sale{StatusText: "Pago"}
	sales := []models.Sale{
		noValue,
		sale("algum status novo", 99900, "", ""),
		sale("Em cobranca", 10000, "", ""),
	}

	summary := ComputeSummary(sales, decimal.Zero)
	assert.True(t, summary.Scheduled.IsZero())
	assert.True(t, summary.Paid.IsZero())
	assert.True(t, summary.Failed.IsZero())
}

func TestRankAttendants(t *testing.T) {
	registry := []models.Attendant{
		{Code: "joao", Name: "Joao Silva"},
		{Code: "mari", Name: "Mariana Costa"},
	}
	sales := []models.Sale{
		sale("Pago", 30000, "mari", ""),
		sale("Pago", 50000, "joao", ""),
		sale("Agendado", 20000, "joao", ""),
		sale("Frustrado", 10000, "joao", ""),
		sale("Agendado", 5000, "zero", ""),
	}

	ranking := RankAttendants(sales, registry)

	require.Len(t, ranking, 2, "attendants without paid value are dropped")
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, "joao", ranking[0].AttendantCode)
	assert.Equal(t, "Joao Silva", ranking[0].AttendantName)
	assert.True(t, ranking[0].TotalPaid.Equal(dec("500")))
	assert.Equal(t, 1, ranking[0].ScheduledCount)
	assert.Equal(t, 1, ranking[0].FailedCount)

	assert.Equal(t, 2, ranking[1].Rank)
	assert.Equal(t, "mari", ranking[1].AttendantCode)
}

func TestRankAttendants_TiesKeepFirstSeenOrder(t *testing.T) {
	sales := []models.Sale{
		sale("Pago", 10000, "aaaa", ""),
		sale("Pago", 10000, "bbbb", ""),
	}

	ranking := RankAttendants(sales, nil)
	require.Len(t, ranking, 2)
	assert.Equal(t, "aaaa", ranking[0].AttendantCode)
	assert.Equal(t, "bbbb", ranking[1].AttendantCode)
	assert.Equal(t, []int{1, 2}, []int{ranking[0].Rank, ranking[1].Rank})
}

func TestRankAttendants_UnassignedBucket(t *testing.T) {
	sales := []models.Sale{
		{StatusText: "Pago", TotalValueCents: cents(10000)},
	}

	ranking := RankAttendants(sales, nil)
	require.Len(t, ranking, 1)
	assert.Equal(t, models.UnassignedAttendant.Code, ranking[0].AttendantCode)
	assert.Equal(t, models.UnassignedAttendant.Name, ranking[0].AttendantName)
}

func TestRankCampaigns(t *testing.T) {
	registry := []models.Campaign{
		{Code: "verao", Name: "Summer launch", Cost: dec("600")},
		{Code: "inativa", Name: "Dormant", Cost: decimal.Zero},
	}
	sales := []models.Sale{
		sale("Pago", 90000, "", "verao"),
		sale("Pago", 30000, "", "verao"),
		sale("Agendado", 50000, "", "verao"),
		sale("Pago", 20000, "", "organico"),
	}

	entries := RankCampaigns(sales, registry)

	// "inativa" has neither revenue nor cost and is dropped.
	require.Len(t, entries, 2)

	assert.Equal(t, "verao", entries[0].CampaignCode)
	assert.True(t, entries[0].Revenue.Equal(dec("1200")), "revenue %s", entries[0].Revenue)
	assert.Equal(t, 2, entries[0].SalesCount, "only paid sales count")
	assert.True(t, entries[0].Profit.Equal(dec("600")))
	assert.True(t, entries[0].Roi.Equal(dec("100")))

	assert.Equal(t, "organico", entries[1].CampaignCode)
	assert.True(t, entries[1].Cost.IsZero())
	assert.True(t, entries[1].Roi.IsZero(), "zero-cost campaign has zero roi")
}

func TestRankCampaigns_CostOnlyCampaignAppears(t *testing.T) {
	registry := []models.Campaign{
		{Code: "blackfri", Name: "Black Friday", Cost: dec("900")},
	}

	entries := RankCampaigns(nil, registry)
	require.Len(t, entries, 1)
	assert.Equal(t, "blackfri", entries[0].CampaignCode)
	assert.True(t, entries[0].Revenue.IsZero())
	assert.True(t, entries[0].Profit.Equal(dec("-900")))
	assert.True(t, entries[0].Roi.Equal(dec("-100")))
}

func TestRankCampaigns_UndefinedBucket(t *testing.T) {
	sales := []models.Sale{
		{StatusText: "Pago", TotalValueCents: cents(10000), CampaignCode: models.UndefinedCampaign.Code},
	}

	entries := RankCampaigns(sales, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, models.UndefinedCampaign.Code, entries[0].CampaignCode)
	assert.Equal(t, models.UndefinedCampaign.Name, entries[0].CampaignName)
}
