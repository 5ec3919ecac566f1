// Package costing implementa la conversión de compras a costo por unidad base
// y el costeo de materia de recetas (servicios de dominio, funciones puras).
//
// Todo el paquete trabaja en float64 a propósito: el contrato de error del
// motor es propagar NaN ante datos fuera de dominio (tasas >= 100%, rendimiento
// de lote <= 0), no lanzar errores ni recortar valores.
package costing

import (
	"math"

	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// CostPerBaseUnit convierte una compra (precio HT, cantidad, unidad) en costo
// por unidad base (g, ml o pieza). Con cantidad <= 0 o no finita devuelve 0.
// Esta función es la única fuente de verdad del costo de un ingrediente: debe
// re-ejecutarse cada vez que cambian Price o Unit, nunca parchearse aparte.
func CostPerBaseUnit(price, quantity float64, unit entity.Unit) float64 {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0
	}
	return price / quantity / unit.BaseFactor()
}

// RecipeBatchCost costo de materia de UN lote de la receta: suma de
// cantidad_línea x costPerBaseUnit del ingrediente, escalada por
// (1 + LossPercentage/100) para la materia perdida en preparación.
//
// Una línea que referencia un ingrediente inexistente se omite (tolerancia
// deliberada a referencias obsoletas tras borrar un ingrediente).
// Con LossPercentage >= 100 el multiplicador no está definido: devuelve NaN
// para que el llamador trate la receta como inválida en vez de propagar un
// número verosímil pero incorrecto.
func RecipeBatchCost(recipe entity.Recipe, ingredients []entity.Ingredient) float64 {
	if recipe.LossPercentage >= 100 {
		return math.NaN()
	}
	byID := make(map[string]float64, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing.CostPerBaseUnit
	}
	var sum float64
	for _, line := range recipe.Ingredients {
		cost, ok := byID[line.IngredientID]
		if !ok {
			continue
		}
		sum += line.Quantity * cost
	}
	return sum * (1 + recipe.LossPercentage/100)
}

// RecipeUnitCost costo de materia por unidad producida: costo del lote entre
// BatchYield. Con BatchYield <= 0 (o no finito) devuelve NaN.
func RecipeUnitCost(recipe entity.Recipe, ingredients []entity.Ingredient) float64 {
	if recipe.BatchYield <= 0 || math.IsNaN(recipe.BatchYield) || math.IsInf(recipe.BatchYield, 0) {
		return math.NaN()
	}
	return RecipeBatchCost(recipe, ingredients) / recipe.BatchYield
}
