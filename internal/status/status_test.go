package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassify_TextKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Class
	}{
		{"Pago", Paid},
		{"Compra Aprovada", Paid},
		{"pagamento pago via pix", Paid},
		{"Agendado", Scheduled},
		{"Aguardando pagamento", Scheduled},
		{"Pendente", Scheduled},
		{"Frustrado", Failed},
		{"Cancelado", Failed},
		{"Reembolsado", Failed},
		{"Em cobranca", InCollection},
		{"Recorrencia ativa", InCollection},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text, nil), "text %q", tc.text)
	}
}

func TestClassify_TextOutranksCode(t *testing.T) {
	// Code 5 says failed, but the provider's text says paid; text wins.
	assert.Equal(t, Paid, Classify("Pago", intPtr(5)))
	assert.Equal(t, Failed, Classify("Cancelado", intPtr(3)))
}

func TestClassify_CodeFallback(t *testing.T) {
	cases := []struct {
		code int
		want Class
	}{
		{3, Paid},
		{2, Scheduled},
		{5, Failed},
		{4, InCollection},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify("", intPtr(tc.code)), "code %d", tc.code)
	}
}

func TestClassify_Unknown(t *testing.T) {
	assert.Equal(t, Unknown, Classify("", nil))
	assert.Equal(t, Unknown, Classify("status inedito", nil))
	assert.Equal(t, Unknown, Classify("", intPtr(99)))
}
