package models

// Sale is one payment-provider notification, keyed by its transaction id.
// The provider may resend the same transaction id any number of times; the
// latest payload always wins. Optional fields use pointers so an absent
// value survives the round trip through storage.
type Sale struct {
	TransactionId   string `db:"transaction_id" json:"transaction_id"`
	StatusCode      *int   `db:"status_code" json:"status_code"`
	StatusText      string `db:"status_text" json:"status_text"`
	ClientEmail     string `db:"client_email" json:"client_email"`
	ClientName      string `db:"client_name" json:"client_name"`
	ClientDocument  string `db:"client_document" json:"client_document"`
	ClientPhone     string `db:"client_phone" json:"client_phone"`
	ProductName     string `db:"product_name" json:"product_name"`
	TotalValueCents *int64 `db:"total_value_cents" json:"total_value_cents"`
	CreatedAt       string `db:"created_at" json:"created_at"`
	UpdatedAt       string `db:"updated_at" json:"updated_at"`
	RawPayload      string `db:"raw_payload" json:"-"`
	AttendantCode   string `db:"attendant_code" json:"attendant_code"`
	AttendantName   string `db:"attendant_name" json:"attendant_name"`
	CampaignCode    string `db:"campaign_code" json:"campaign_code"`
	CampaignName    string `db:"campaign_name" json:"campaign_name"`
}

// EffectiveDate is the timestamp reporting windows filter on: the last
// status change if known, otherwise the first sighting.
func (s Sale) EffectiveDate() string {
	if s.UpdatedAt != "" {
		return s.UpdatedAt
	}
	return s.CreatedAt
}
