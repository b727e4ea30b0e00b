package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/backroom/internal/domain/intent"
)

func TestStandardizeItemName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"minúsculas", "Coke Bottles", "coke bottles"},
		{"acentos plegados", "Almacén Café", "almacen cafe"},
		{"espacios colapsados", "  solar   panels  ", "solar panels"},
		{"caracteres especiales fuera", "screws (5mm)!", "screws 5mm"},
		{"guiones conservados", "Anti-Freeze", "anti-freeze"},
		{"dígitos conservados", "Tornillos 3x20", "tornillos 3x20"},
		{"vacío", "   ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, intent.StandardizeItemName(tc.input))
		})
	}
}

func TestStandardizeItemName_Idempotente(t *testing.T) {
	// La forma canónica de una forma canónica es ella misma: la clave del
	// ledger no cambia al re-normalizar.
	inputs := []string{"Coke Bottles", "Almacén", "anti-freeze 3x20"}
	for _, in := range inputs {
		once := intent.StandardizeItemName(in)
		assert.Equal(t, once, intent.StandardizeItemName(once))
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12", "12"},
		{"12.5", "12.5"},
		{"12 kg", "12"},
		{"~50 units", "50"},
		{"nada", "0"},
		{"", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, intent.ParseQuantity(tc.input).String())
		})
	}
}
