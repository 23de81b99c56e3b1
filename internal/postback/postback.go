// Package postback ingests inbound payment-provider notifications:
// validation, best-effort attendant and campaign attribution, and an
// idempotent last-write-wins upsert keyed by transaction id.
package postback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-tracker-go/internal/attribution"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/store"

	"go.uber.org/zap"
)

// ErrMissingTransactionId rejects events without the natural key; nothing
// is persisted for them.
var ErrMissingTransactionId = errors.New("transaction_id is required")

// Event is the inbound provider notification payload.
type Event struct {
	TransactionId   string `json:"transaction_id"`
	StatusCode      *int   `json:"status_code"`
	StatusText      string `json:"status_text"`
	ClientEmail     string `json:"client_email"`
	ClientName      string `json:"client_name"`
	ClientDocument  string `json:"client_document"`
	ClientPhone     string `json:"client_phone"`
	ProductName     string `json:"product_name"`
	TotalValueCents *int64 `json:"total_value_cents"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`

	// Raw is the original request body, retained verbatim for audit.
	Raw json.RawMessage `json:"-"`
}

// PipelineConfig wires the pipeline's collaborators.
type PipelineConfig struct {
	Sales      store.SaleStore
	Attendants store.AttendantStore
	Campaigns  store.CampaignStore

	// Now is the clock used for missing event timestamps; defaults to
	// time.Now.
	Now func() time.Time
}

type Pipeline struct {
	sales      store.SaleStore
	attendants store.AttendantStore
	campaigns  store.CampaignStore
	now        func() time.Time
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		sales:      cfg.Sales,
		attendants: cfg.Attendants,
		campaigns:  cfg.Campaigns,
		now:        now,
	}
}

// Ingest validates and stores one provider event. Attribution is best
// effort: a failed attendant or campaign lookup degrades to the reserved
// registry entries instead of rejecting an otherwise valid event. Only a
// missing transaction id or a persistence failure fails the call.
func (p *Pipeline) Ingest(ctx context.Context, event Event) (*models.Sale, error) {
	transactionId := strings.TrimSpace(event.TransactionId)
	if transactionId == "" {
		return nil, ErrMissingTransactionId
	}

	attendant := p.resolveAttendant(ctx, event.ClientEmail)
	campaignCode, campaignName := p.resolveCampaign(ctx, event.ClientEmail)

	now := p.now().Format(period.DateTimeLayout)
	createdAt := event.CreatedAt
	if createdAt == "" {
		createdAt = now
	}
	updatedAt := event.UpdatedAt
	if updatedAt == "" {
		updatedAt = now
	}

	raw := event.Raw
	if len(raw) == 0 {
		encoded, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("unable to encode raw payload: %w", err)
		}
		raw = encoded
	}

	sale := models.Sale{
		TransactionId:   transactionId,
		StatusCode:      event.StatusCode,
		StatusText:      event.StatusText,
		ClientEmail:     event.ClientEmail,
		ClientName:      event.ClientName,
		ClientDocument:  event.ClientDocument,
		ClientPhone:     event.ClientPhone,
		ProductName:     event.ProductName,
		TotalValueCents: event.TotalValueCents,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		RawPayload:      string(raw),
		AttendantCode:   attendant.Code,
		AttendantName:   attendant.Name,
		CampaignCode:    campaignCode,
		CampaignName:    campaignName,
	}

	stored, err := p.sales.Upsert(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("unable to store sale: %w", err)
	}

	zap.L().Info("Postback ingested",
		zap.String("transaction_id", stored.TransactionId),
		zap.String("attendant_code", stored.AttendantCode),
		zap.String("campaign_code", stored.CampaignCode))
	return stored, nil
}

func (p *Pipeline) resolveAttendant(ctx context.Context, email string) models.Attendant {
	candidates := attribution.CandidateCodes(email)
	attendant, err := attribution.ResolveAttendant(ctx, candidates, p.attendants)
	if err != nil {
		// A registry outage must not drop the event; keep the derived
		// email-prefix code unconfirmed and continue.
		zap.L().Warn("Attendant lookup failed, keeping unconfirmed prefix code",
			zap.Strings("candidates", candidates), zap.Error(err))
		if len(candidates) > 0 {
			return models.Attendant{Code: candidates[0]}
		}
		return models.UnassignedAttendant
	}
	if attendant == nil {
		return models.UnassignedAttendant
	}
	return *attendant
}

func (p *Pipeline) resolveCampaign(ctx context.Context, email string) (code, name string) {
	tag := attribution.CampaignTag(email)
	if tag == "" {
		return models.UndefinedCampaign.Code, ""
	}

	campaign, err := p.campaigns.FindByCode(ctx, tag)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Warn("Campaign lookup failed, keeping unresolved code",
				zap.String("campaign_code", tag), zap.Error(err))
		}
		// Unregistered campaign codes are still recorded; the display
		// name just stays empty.
		return tag, ""
	}
	return campaign.Code, campaign.Name
}
