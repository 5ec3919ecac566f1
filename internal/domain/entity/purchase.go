package entity

// Purchase una compra de ingrediente: Price es el total HT pagado por el lote
// (no un precio unitario). Las fechas se guardan como "YYYY-MM-DD".
type Purchase struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"` // en unidades de stock del ingrediente
	Price        float64 `json:"price"`
}

// ProductionBatch un evento de fabricación: consume stock de ingredientes en
// proporción a la receta del producto (ver domain/stockledger).
type ProductionBatch struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	ProductID     string  `json:"productId"`
	Quantity      float64 `json:"quantity"` // unidades producidas, > 0
	SourceOrderID string  `json:"sourceOrderId,omitempty"`
}
