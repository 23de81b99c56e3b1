package attribution

import (
	"context"
	"errors"
	"testing"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateCodes(t *testing.T) {
	cases := []struct {
		email string
		want  []string
	}{
		{"joaocliente@example.com", []string{"joaoc", "joao"}},
		{"  MARIcliente@Example.com ", []string{"maric", "mari"}},
		{"ab@x.com", []string{}},
		{"abcd@x.com", []string{"abcd@", "abcd"}},
		{"", []string{}},
		{"aaaaa", []string{"aaaaa", "aaaa"}},
	}

	for _, tc := range cases {
		got := CandidateCodes(tc.email)
		if len(tc.want) == 0 {
			assert.Empty(t, got, "email %q", tc.email)
			continue
		}
		assert.Equal(t, tc.want, got, "email %q", tc.email)
	}
}

func TestCampaignTag(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"ana+promo10@example.com", "promo10"},
		{"ana+VERAO@example.com", "verao"},
		{"ana@example.com", ""},
		{"ana+@example.com", ""},
		{"ana+this-is-way-too-long@example.com", ""},
		{"ana+bad tag@example.com", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CampaignTag(tc.email), "email %q", tc.email)
	}
}

func TestCodeValidation(t *testing.T) {
	assert.True(t, IsValidAttendantCode("joao"))
	assert.True(t, IsValidAttendantCode("a1b2"))
	assert.False(t, IsValidAttendantCode("joa"))
	assert.False(t, IsValidAttendantCode("joaoc"))
	assert.False(t, IsValidAttendantCode("JOAO"))
	assert.False(t, IsValidAttendantCode(""))

	assert.True(t, IsValidCampaignCode("a"))
	assert.True(t, IsValidCampaignCode("promo10"))
	assert.True(t, IsValidCampaignCode("abcdefghij"))
	assert.False(t, IsValidCampaignCode("abcdefghijk"))
	assert.False(t, IsValidCampaignCode("with space"))
	assert.False(t, IsValidCampaignCode(""))
}

// fakeRegistry serves a fixed code set and can simulate an outage.
type fakeRegistry struct {
	known map[string]models.Attendant
	err   error
}

func (f *fakeRegistry) FindByCode(ctx context.Context, code string) (*models.Attendant, error) {
	if f.err != nil {
		return nil, f.err
	}
	attendant, ok := f.known[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &attendant, nil
}

func (f *fakeRegistry) ListAll(ctx context.Context) ([]models.Attendant, error) { return nil, nil }
func (f *fakeRegistry) Create(ctx context.Context, a models.Attendant) error    { return nil }
func (f *fakeRegistry) Update(ctx context.Context, code string, a models.Attendant) error {
	return nil
}
func (f *fakeRegistry) Delete(ctx context.Context, code string) error { return nil }

func TestResolveAttendant_PrefersLongerCandidate(t *testing.T) {
	registry := &fakeRegistry{known: map[string]models.Attendant{
		"joaoc": {Code: "joaoc", Name: "Joao C"},
		"joao":  {Code: "joao", Name: "Joao"},
	}}

	attendant, err := ResolveAttendant(context.Background(), []string{"joaoc", "joao"}, registry)
	require.NoError(t, err)
	require.NotNil(t, attendant)
	assert.Equal(t, "joaoc", attendant.Code)
}

func TestResolveAttendant_FallsThroughMisses(t *testing.T) {
	registry := &fakeRegistry{known: map[string]models.Attendant{
		"joao": {Code: "joao", Name: "Joao"},
	}}

	attendant, err := ResolveAttendant(context.Background(), []string{"joaoc", "joao"}, registry)
	require.NoError(t, err)
	require.NotNil(t, attendant)
	assert.Equal(t, "joao", attendant.Code)
}

func TestResolveAttendant_NoMatch(t *testing.T) {
	registry := &fakeRegistry{known: map[string]models.Attendant{}}

	attendant, err := ResolveAttendant(context.Background(), []string{"abcd"}, registry)
	require.NoError(t, err)
	assert.Nil(t, attendant)
}

func TestResolveAttendant_StorageFailureSurfaces(t *testing.T) {
	boom := errors.New("disk on fire")
	registry := &fakeRegistry{err: boom}

	_, err := ResolveAttendant(context.Background(), []string{"abcd"}, registry)
	assert.ErrorIs(t, err, boom)
}
