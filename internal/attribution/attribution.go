// Package attribution derives the salesperson and campaign a sale
// belongs to from the free-text contact fields of the inbound event.
package attribution

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"
)

var (
	// Attendant codes are 4 alphanumerics by convention; a handful of
	// historical codes are 5 characters because they carry a separator.
	attendantCodePattern = regexp.MustCompile(`^[a-z0-9]{4}$`)
	campaignCodePattern  = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
)

// NormalizeCode lowercases and trims a registry code. Returns "" for
// blank input.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsValidAttendantCode reports whether code is exactly 4 alphanumeric
// characters (already normalized).
func IsValidAttendantCode(code string) bool {
	return attendantCodePattern.MatchString(code)
}

// IsValidCampaignCode reports whether code is 1 to 10 alphanumeric
// characters (already normalized).
func IsValidCampaignCode(code string) bool {
	return campaignCodePattern.MatchString(code)
}

// CandidateCodes builds the ordered attendant-code candidates from a
// contact email. The first 5 characters of the normalized email are tried
// before the first 4, longest first, duplicates removed.
func CandidateCodes(email string) []string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil
	}

	var candidates []string
	add := func(candidate string) {
		candidate = NormalizeCode(candidate)
		if candidate == "" {
			return
		}
		for _, existing := range candidates {
			if existing == candidate {
				return
			}
		}
		candidates = append(candidates, candidate)
	}

	if len(normalized) >= 5 {
		add(normalized[:5])
	}
	if len(normalized) >= 4 {
		add(normalized[:4])
	}

	return candidates
}

// CampaignTag extracts the campaign code embedded in the email local part
// as a plus tag ("ana+promo10@x.com" -> "promo10"). Returns "" when the
// tag is absent or not a valid campaign code; malformed tags never block
// ingestion.
func CampaignTag(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return ""
	}

	local := normalized
	if at := strings.Index(normalized, "@"); at >= 0 {
		local = normalized[:at]
	}

	plus := strings.Index(local, "+")
	if plus < 0 {
		return ""
	}

	tag := local[plus+1:]
	if !IsValidCampaignCode(tag) {
		return ""
	}
	return tag
}

// ResolveAttendant tries each candidate code in order against the
// registry and returns the first registered attendant. A nil result with
// a nil error means no candidate is registered; a non-nil error is an
// actual storage failure, not a miss.
func ResolveAttendant(ctx context.Context, candidates []string, registry store.AttendantStore) (*models.Attendant, error) {
	for _, candidate := range candidates {
		attendant, err := registry.FindByCode(ctx, candidate)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return attendant, nil
	}
	return nil, nil
}
