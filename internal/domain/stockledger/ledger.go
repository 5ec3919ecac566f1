// Package stockledger traduce solicitudes de producción en consumos (o
// restauraciones) de stock por ingrediente. Es el único componente del núcleo
// con efecto de mutación explícito, y aun así devuelve una colección nueva en
// lugar de mutar la del llamador.
package stockledger

import (
	"math"
	"sort"

	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/pricing"
)

// Los consumos se redondean a 6 decimales para que la deriva de punto
// flotante no se acumule a través de ciclos repetidos consumir/restaurar.
const quantityEpsilonDecimals = 1e6

// Epsilon de comparación al detectar faltantes de stock.
const shortageEpsilon = 1e-9

// Modo de aplicación de consumos sobre el stock.
type Mode string

const (
	ModeConsume Mode = "consume" // resta el consumo (piso en cero)
	ModeRestore Mode = "restore" // devuelve el consumo (al borrar un lote de producción)
)

// ProductionRequest solicitud de fabricar Quantity unidades de un producto.
type ProductionRequest struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// IngredientUsage consumo agregado de un ingrediente, en unidades de STOCK
// (no unidades base: las recetas en g/ml se convierten dividiendo por 1000
// para ingredientes a granel).
type IngredientUsage struct {
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
}

// UsageResult consumos por ingrediente más los conjuntos de referencias
// faltantes. Las referencias colgantes no abortan el cálculo: el llamador
// decide si un resultado parcial le sirve.
type UsageResult struct {
	Usages             []IngredientUsage `json:"usages"`
	MissingProducts    []string          `json:"missingProducts,omitempty"`
	MissingRecipes     []string          `json:"missingRecipes,omitempty"`
	MissingIngredients []string          `json:"missingIngredients,omitempty"`
}

// Shortage faltante de stock para un consumo requerido.
type Shortage struct {
	IngredientID string  `json:"ingredientId"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Missing      float64 `json:"missing"`
}

// RoundQuantity redondea una cantidad al epsilon fijo del libro (6 decimales).
func RoundQuantity(q float64) float64 {
	return math.Round(q*quantityEpsilonDecimals) / quantityEpsilonDecimals
}

// ComputeProductionIngredientUsage explota un conjunto de solicitudes de
// producción en consumos por ingrediente: para cada (producto, cantidad)
// resuelve producto -> receta, calcula ratio = cantidad/BatchYield, aplica el
// multiplicador de pérdida de fabricación del producto a cada línea de la
// receta y convierte las cantidades de unidades base a unidades de stock.
// Los consumos se acumulan a través de todas las solicitudes.
func ComputeProductionIngredientUsage(
	requests []ProductionRequest,
	products []entity.Product,
	recipes []entity.Recipe,
	ingredients []entity.Ingredient,
) UsageResult {
	productByID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	recipeByID := make(map[string]entity.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}
	ingredientByID := make(map[string]entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.ID] = ing
	}

	var missingProducts, missingRecipes, missingIngredients RefSet
	usageByID := make(map[string]float64)

	for _, req := range requests {
		product, ok := productByID[req.ProductID]
		if !ok {
			missingProducts.Add(req.ProductID)
			continue
		}
		recipe, ok := recipeByID[product.RecipeID]
		if !ok {
			missingRecipes.Add(product.RecipeID)
			continue
		}
		ratio := req.Quantity / recipe.BatchYield
		lossMult := pricing.LossMultiplier(product.LossRate)
		for _, line := range recipe.Ingredients {
			ing, ok := ingredientByID[line.IngredientID]
			if !ok {
				missingIngredients.Add(line.IngredientID)
				continue
			}
			usageByID[ing.ID] += line.Quantity * ratio * lossMult / ing.Unit.BaseFactor()
		}
	}

	usages := make([]IngredientUsage, 0, len(usageByID))
	for id, q := range usageByID {
		usages = append(usages, IngredientUsage{IngredientID: id, Quantity: RoundQuantity(q)})
	}
	sort.Slice(usages, func(i, j int) bool { return usages[i].IngredientID < usages[j].IngredientID })

	return UsageResult{
		Usages:             usages,
		MissingProducts:    missingProducts.IDs(),
		MissingRecipes:     missingRecipes.IDs(),
		MissingIngredients: missingIngredients.IDs(),
	}
}

// StockShortages emite un faltante por cada consumo que el stock disponible
// (+ epsilon) no alcanza a cubrir. Sirve para advertir, no para bloquear la
// producción.
func StockShortages(ingredients []entity.Ingredient, usages []IngredientUsage) []Shortage {
	available := make(map[string]float64, len(ingredients))
	for _, ing := range ingredients {
		available[ing.ID] = ing.Quantity
	}
	var shortages []Shortage
	for _, u := range usages {
		avail := available[u.IngredientID]
		if avail+shortageEpsilon < u.Quantity {
			shortages = append(shortages, Shortage{
				IngredientID: u.IngredientID,
				Required:     u.Quantity,
				Available:    avail,
				Missing:      u.Quantity - avail,
			})
		}
	}
	return shortages
}

// ApplyIngredientUsage devuelve una colección NUEVA de ingredientes con los
// consumos aplicados. ModeConsume resta (el stock nunca baja de cero);
// ModeRestore suma de vuelta, para revertir el efecto de un lote de
// producción borrado. Este es el único lugar donde se ajusta Quantity; el
// resto del núcleo solo lo lee.
func ApplyIngredientUsage(ingredients []entity.Ingredient, usages []IngredientUsage, mode Mode) []entity.Ingredient {
	usageByID := make(map[string]float64, len(usages))
	for _, u := range usages {
		usageByID[u.IngredientID] = u.Quantity
	}
	out := make([]entity.Ingredient, len(ingredients))
	copy(out, ingredients)
	for i := range out {
		u, ok := usageByID[out[i].ID]
		if !ok {
			continue
		}
		switch mode {
		case ModeRestore:
			out[i].Quantity = RoundQuantity(out[i].Quantity + u)
		default:
			out[i].Quantity = RoundQuantity(math.Max(0, out[i].Quantity-u))
		}
	}
	return out
}
