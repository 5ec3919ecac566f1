package importexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceTree_NumerosComoCadena(t *testing.T) {
	tree := map[string]any{
		"price":    "12,50",
		"quantity": "3",
		"name":     "Harina T55",
	}
	out := CoerceTree(tree).(map[string]any)
	assert.Equal(t, 12.5, out["price"])
	assert.Equal(t, 3.0, out["quantity"])
	assert.Equal(t, "Harina T55", out["name"])
}

func TestCoerceTree_Booleanos(t *testing.T) {
	tree := map[string]any{
		"isTvaSubject":     "true",
		"needsPriceReview": "no",
		"isLocked":         "oui",
	}
	out := CoerceTree(tree).(map[string]any)
	assert.Equal(t, true, out["isTvaSubject"])
	assert.Equal(t, false, out["needsPriceReview"])
	assert.Equal(t, true, out["isLocked"])
}

func TestCoerceTree_UnidadesSoloEnCampoUnit(t *testing.T) {
	tree := map[string]any{
		"unit": "Pièce",
		"name": "KG", // un nombre que parece unidad no se toca
	}
	out := CoerceTree(tree).(map[string]any)
	assert.Equal(t, "piece", out["unit"])
	assert.Equal(t, "KG", out["name"])
}

func TestCoerceTree_IDNumericoSigueSiendoCadena(t *testing.T) {
	tree := map[string]any{
		"id":    "123",
		"month": "2025-03",
		"name":  "2024",
	}
	out := CoerceTree(tree).(map[string]any)
	assert.Equal(t, "123", out["id"], "la coerción va por clave, no por pinta")
	assert.Equal(t, "2025-03", out["month"])
	assert.Equal(t, "2024", out["name"])
}

func TestCoerceTree_BooleanoComoNumero(t *testing.T) {
	tree := map[string]any{"isLocked": 1.0, "quantity": 1.0}
	out := CoerceTree(tree).(map[string]any)
	assert.Equal(t, true, out["isLocked"])
	assert.Equal(t, 1.0, out["quantity"], "las claves numéricas no se tocan")
}

func TestCoerceTree_Anidado(t *testing.T) {
	tree := map[string]any{
		"ingredients": []any{
			map[string]any{"unit": "litre", "price": "2,10"},
			map[string]any{"unit": "grammes", "quantity": "500"},
		},
	}
	out := CoerceTree(tree).(map[string]any)
	items := out["ingredients"].([]any)
	first := items[0].(map[string]any)
	second := items[1].(map[string]any)
	assert.Equal(t, "l", first["unit"])
	assert.Equal(t, 2.1, first["price"])
	assert.Equal(t, "g", second["unit"])
	assert.Equal(t, 500.0, second["quantity"])
}

func TestCoerceTree_NoMutaElArbolDeEntrada(t *testing.T) {
	tree := map[string]any{"price": "1,5"}
	_ = CoerceTree(tree)
	assert.Equal(t, "1,5", tree["price"])
}

func TestCanonicalUnitName_Alias(t *testing.T) {
	cases := map[string]string{
		"Pièce":   "piece",
		"  KG  ":  "kg",
		"litre":   "l",
		"grammes": "g",
		"uds":     "piece",
		"ml":      "ml",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalUnitName(in), "alias %q", in)
	}
}

func TestCanonicalUnitName_DesconocidaPasaPlegada(t *testing.T) {
	// Lo desconocido no se inventa: pasa en minúsculas sin acentos y la
	// normalización de entidades decide el fallback.
	assert.Equal(t, "cajon", CanonicalUnitName("CAJÓN"))
}
