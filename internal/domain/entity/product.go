package entity

// Product producto vendible, ligado a una receta.
// Invariantes (garantizados por normalize): PackagingCost, UnsoldEstimate,
// TargetMargin, EstimatedMonthlySales >= 0; LossRate en [0,100).
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RecipeID string `json:"recipeId"`
	Category string `json:"category"`

	LaborTimeMinutes float64 `json:"laborTimeMinutes"`
	PackagingCost    float64 `json:"packagingCost"`
	DeliveryCost     float64 `json:"deliveryCost"`
	// LossRate pérdida de fabricación en %; infla los costos variables vía el
	// multiplicador 1/(1-LossRate/100). A >= 100 el multiplicador no está
	// definido y el motor propaga NaN en lugar de recortar.
	LossRate              float64 `json:"lossRate"`
	UnsoldEstimate        float64 `json:"unsoldEstimate"`
	PackagingUsedOnUnsold bool    `json:"packagingUsedOnUnsold"`
	ApplyLossToPackaging  bool    `json:"applyLossToPackaging"`

	TargetMargin          float64  `json:"targetMargin"`
	StandardPrice         *float64 `json:"standardPrice,omitempty"` // precio de venta fijado a mano, HT
	EstimatedMonthlySales float64  `json:"estimatedMonthlySales"`
	// TvaRate tasa de TVA propia del producto; si es nil se usa la tasa por
	// defecto de GlobalSettings para derivar el precio TTC.
	TvaRate *float64 `json:"tvaRate,omitempty"`
}
