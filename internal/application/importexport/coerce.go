package importexport

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Los respaldos exportados por versiones viejas (o editados a mano) traen
// números como cadenas ("12,50"), booleanos como "true"/"si"/1 y nombres de
// unidad escritos de cualquier manera ("Pièce", "KG", "litre"). La coerción
// repara el árbol JSON genérico ANTES de decodificarlo a las formas crudas,
// para que el pipeline de normalización trabaje sobre tipos correctos.
//
// La coerción va dirigida por clave: un id o un nombre que parezca número
// ("123") debe seguir siendo cadena.

var numericKeys = keySet(
	"price", "quantity", "costPerBaseUnit", "helperVatRate", "tvaRate", "vatRate",
	"taxRate", "defaultTvaRate", "hourlyRate", "targetMonthlySalary", "amount",
	"batchYield", "lossPercentage",
	"laborTimeMinutes", "packagingCost", "deliveryCost", "lossRate", "unsoldEstimate",
	"targetMargin", "standardPrice", "estimatedMonthlySales",
	"unitPrice", "quantitySold", "quantityUnsold", "startQuantity", "endQuantity",
	"actualIngredientSpend", "costMode",
	"revenueTTC", "revenueHT", "tvaCollected", "foodCost", "socialCharges",
	"grossMargin", "actualFixedCostTotal", "netResult",
)

var boolKeys = keySet(
	"isTvaSubject", "needsPriceReview", "includeLaborInCost",
	"packagingUsedOnUnsold", "applyLossToPackaging",
	"includePendingOrders", "isLocked",
)

func keySet(keys ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// CoerceTree repara tipos en un árbol JSON decodificado a any. Devuelve un
// árbol nuevo; el de entrada no se toca.
func CoerceTree(v any) any {
	return coerceValue("", v)
}

func coerceValue(key string, v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = coerceValue(k, child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			// Las listas heredan la clave del campo (líneas de receta,
			// ventas...): sus elementos son objetos, la clave no les aplica.
			out[i] = coerceValue(key, child)
		}
		return out
	case string:
		return coerceScalar(key, t)
	case float64:
		if _, ok := boolKeys[key]; ok {
			return t != 0
		}
		return t
	default:
		return v
	}
}

// coerceScalar repara una cadena según la clave del campo; si no se puede,
// la devuelve intacta. Los decimales con coma ("12,50") se aceptan.
func coerceScalar(key, s string) any {
	if key == "unit" {
		return CanonicalUnitName(s)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	if _, ok := boolKeys[key]; ok {
		switch strings.ToLower(trimmed) {
		case "true", "si", "sí", "oui", "yes", "1":
			return true
		case "false", "no", "non", "0":
			return false
		}
		return s
	}
	if _, ok := numericKeys[key]; ok {
		numeric := strings.ReplaceAll(trimmed, ",", ".")
		if d, err := decimal.NewFromString(numeric); err == nil {
			f, _ := d.Float64()
			return f
		}
	}
	return s
}

// Alias de nombre de unidad ya sin acentos y en minúsculas.
var unitAliases = map[string]string{
	"g": "g", "gr": "g", "gramo": "g", "gramos": "g", "gramme": "g", "grammes": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilo": "kg", "kilos": "kg", "kilogramo": "kg", "kilogramos": "kg", "kilogramme": "kg", "kilogram": "kg",
	"ml": "ml", "mililitro": "ml", "mililitros": "ml", "millilitre": "ml", "milliliter": "ml",
	"l": "l", "lt": "l", "litro": "l", "litros": "l", "litre": "l", "litres": "l", "liter": "l", "liters": "l",
	"piece": "piece", "pieces": "piece", "pieza": "piece", "piezas": "piece",
	"unidad": "piece", "unidades": "piece", "unite": "piece", "unites": "piece", "unit": "piece", "units": "piece",
	"pc": "piece", "pcs": "piece", "u": "piece", "ud": "piece", "uds": "piece",
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalUnitName lleva un nombre de unidad libre ("Pièce", " KG ", "litre")
// a su forma canónica. Los nombres desconocidos pasan tal cual: la
// normalización de entidades decidirá el fallback.
func CanonicalUnitName(name string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(name))
	}
	if canon, ok := unitAliases[folded]; ok {
		return canon
	}
	return folded
}
