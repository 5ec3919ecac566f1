package dto

import "github.com/tu-usuario/costeo-pro/internal/domain/stockledger"

// ProductionRequest petición de registrar un lote de producción.
type ProductionRequest struct {
	Date          string  `json:"date"` // "YYYY-MM-DD"; vacío = hoy
	ProductID     string  `json:"productId"`
	Quantity      float64 `json:"quantity"`
	SourceOrderID string  `json:"sourceOrderId,omitempty"`
}

// ProductionResponse resultado del registro: el lote creado, los consumos
// aplicados y los avisos. Los faltantes advierten, no bloquean.
type ProductionResponse struct {
	BatchID            string                        `json:"batchId"`
	Usages             []stockledger.IngredientUsage `json:"usages"`
	Shortages          []stockledger.Shortage        `json:"shortages,omitempty"`
	MissingProducts    []string                      `json:"missingProducts,omitempty"`
	MissingRecipes     []string                      `json:"missingRecipes,omitempty"`
	MissingIngredients []string                      `json:"missingIngredients,omitempty"`
}
