package entity

// Ingredient materia prima con su stock actual.
// Price es el costo HT (sin TVA) de UNA unidad de stock (1 kg, 1 l, 1 pieza).
// CostPerBaseUnit es derivado de Price y Unit (ver domain/costing); nunca es
// fuente de verdad independiente: se recalcula en cada normalización.
type Ingredient struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Unit            Unit    `json:"unit"`
	Price           float64 `json:"price"`
	Quantity        float64 `json:"quantity"` // stock actual, en unidades de stock
	CostPerBaseUnit float64 `json:"costPerBaseUnit"`

	// HelperVatRate tasa de TVA usada para recuperar el precio HT de un registro
	// legado TTC; solo sirve de prefill en la UI, los motores no la leen.
	HelperVatRate *float64 `json:"helperVatRate,omitempty"`
	// NeedsPriceReview marcado cuando el precio fue corregido de TTC a HT
	// durante una migración y merece revisión manual.
	NeedsPriceReview bool `json:"needsPriceReview,omitempty"`
}
