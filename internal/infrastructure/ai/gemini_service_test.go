package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json puro", `{"action":"add"}`, `{"action":"add"}`},
		{"fence json", "```json\n{\"action\":\"add\"}\n```", `{"action":"add"}`},
		{"fence genérico", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"espacios alrededor", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripCodeFences(tc.input))
		})
	}
}

func TestDecodeIntentPayload(t *testing.T) {
	raw := `{
		"action": "remove",
		"items": [{"name": "solar panels", "quantity": 3, "unit": "pieces", "notes": ""}],
		"searchQuery": "",
		"confidence": 0.95,
		"originalMessage": "ignored"
	}`

	parsed, err := decodeIntentPayload(raw, "Sold 3 solar panels")
	require.NoError(t, err)
	assert.Equal(t, entity.ActionRemove, parsed.Action)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "solar panels", parsed.Items[0].Name)
	assert.Equal(t, "3", parsed.Items[0].Quantity.String())
	assert.Equal(t, "pieces", parsed.Items[0].Unit)
	assert.InDelta(t, 0.95, parsed.Confidence, 1e-9)
	assert.Equal(t, "Sold 3 solar panels", parsed.OriginalMessage,
		"el mensaje original lo fija el caller, no el modelo")
}

func TestDecodeIntentPayload_AccionDesconocidaColapsaAUnknown(t *testing.T) {
	parsed, err := decodeIntentPayload(`{"action":"explode","confidence":0.9}`, "boom")
	require.NoError(t, err)
	assert.Equal(t, entity.ActionUnknown, parsed.Action,
		"acciones fuera del enum cerrado colapsan a unknown")
}

func TestDecodeIntentPayload_ConfianzaRecortada(t *testing.T) {
	parsed, err := decodeIntentPayload(`{"action":"add","confidence":3.5}`, "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, parsed.Confidence)

	parsed, err = decodeIntentPayload(`{"action":"add","confidence":-2}`, "x")
	require.NoError(t, err)
	assert.Zero(t, parsed.Confidence)
}

func TestDecodeIntentPayload_JSONInvalido(t *testing.T) {
	_, err := decodeIntentPayload("the model hallucinated prose", "x")
	assert.Error(t, err, "prosa en vez de JSON debe volver como error (el caller degrada)")
}

func TestDecodeIntentPayload_ConFences(t *testing.T) {
	raw := "```json\n{\"action\":\"list\",\"confidence\":0.8}\n```"
	parsed, err := decodeIntentPayload(raw, "what's in stock?")
	require.NoError(t, err)
	assert.Equal(t, entity.ActionList, parsed.Action)
}
