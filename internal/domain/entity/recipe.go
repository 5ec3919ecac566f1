package entity

// RecipeIngredient línea de receta: cantidad en unidades BASE (g, ml, pieza)
// del ingrediente referenciado. Una referencia colgante (ingrediente borrado)
// se tolera: los motores la omiten.
type RecipeIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
}

// Recipe receta de producción por lote.
// Invariantes (garantizados por normalize): BatchYield > 0, LossPercentage en [0,100).
type Recipe struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
	BatchYield     float64            `json:"batchYield"`     // unidades producidas por lote
	LossPercentage float64            `json:"lossPercentage"` // pérdida de materia en preparación
}
