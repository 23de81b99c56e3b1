package store

import (
	"context"
	"errors"

	"sales-tracker-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("code already exists")
)

// SaleFilter narrows List results. Zero values mean "no filter"; Search
// matches case-insensitively against contact email, name, document,
// transaction id and product name.
type SaleFilter struct {
	Status        string
	AttendantCode string
	Search        string
}

// SaleStore persists inbound sales and serves the report queries.
type SaleStore interface {
	// Upsert stores the sale, overwriting every mutable field when the
	// transaction id already exists. The write is a single atomic
	// conditional insert so that concurrent events for the same id can
	// never double-insert.
	Upsert(ctx context.Context, sale models.Sale) (*models.Sale, error)

	// QueryByDateRange returns the sales whose effective date falls in
	// [start, end], optionally limited to one attendant code. Timestamps
	// use the stored "YYYY-MM-DD HH:MM:SS" format.
	QueryByDateRange(ctx context.Context, start, end, attendantCode string) ([]models.Sale, error)

	List(ctx context.Context, filter SaleFilter) ([]models.Sale, error)
	FindByTransactionId(ctx context.Context, transactionId string) (*models.Sale, error)
	UpdateStatus(ctx context.Context, transactionId string, statusCode int, statusText, updatedAt string) (*models.Sale, error)
	AssignAttendant(ctx context.Context, transactionId string, attendant models.Attendant) (*models.Sale, error)
}

// AttendantStore is the salesperson registry. Codes are matched
// case-insensitively.
type AttendantStore interface {
	FindByCode(ctx context.Context, code string) (*models.Attendant, error)
	ListAll(ctx context.Context) ([]models.Attendant, error)
	Create(ctx context.Context, attendant models.Attendant) error
	Update(ctx context.Context, code string, attendant models.Attendant) error
	Delete(ctx context.Context, code string) error
}

// CampaignStore is the marketing-campaign registry, same shape as the
// attendant registry.
type CampaignStore interface {
	FindByCode(ctx context.Context, code string) (*models.Campaign, error)
	ListAll(ctx context.Context) ([]models.Campaign, error)
	Create(ctx context.Context, campaign models.Campaign) error
	Update(ctx context.Context, code string, campaign models.Campaign) error
	Delete(ctx context.Context, code string) error
}

// SettingsStore holds the singleton settings record. Get never fails on
// an absent row; it returns zero-value defaults instead.
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}
