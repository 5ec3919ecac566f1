// Package report implementa el motor de reconciliación mensual: agrega las
// líneas de venta y de invendidos de un mes en ingresos (TTC/HT/TVA), costo
// materia según el modo elegido, empaques, cargas sociales, margen bruto y
// resultado neto; y congela esos totales en una foto inmutable.
//
// El motor distingue siempre "calcular totales frescos para mostrar" de "leer
// la historia persistida": las líneas de un reporte bloqueado jamás se
// regeneran desde el estado vivo del catálogo o de los pedidos.
package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/pricing"
)

// Input entradas del cálculo mensual. Los importes "actuales" (gasto real de
// ingredientes, costos fijos reales) los captura el usuario; el costo por
// variación de inventario se deriva de los conteos del reporte.
type Input struct {
	SaleLines              []entity.SaleLine
	UnsoldLines            []entity.UnsoldLine
	Products               []entity.Product
	Recipes                []entity.Recipe
	Ingredients            []entity.Ingredient
	Settings               entity.GlobalSettings
	CostMode               entity.CostMode
	ActualFixedCosts       []entity.FixedCostItem
	ActualIngredientSpend  float64
	InventoryVariationCost float64
}

// Totals totales calculados de un mes. RevenueTTC es lo cobrado; RevenueHT es
// neto de TVA según el régimen de cada línea.
type Totals struct {
	RevenueTTC           float64 `json:"revenueTTC"`
	RevenueHT            float64 `json:"revenueHT"`
	TvaCollected         float64 `json:"tvaCollected"`
	FoodCost             float64 `json:"foodCost"`
	PackagingCost        float64 `json:"packagingCost"`
	SocialCharges        float64 `json:"socialCharges"`
	GrossMargin          float64 `json:"grossMargin"`
	ActualFixedCostTotal float64 `json:"actualFixedCostTotal"`
	NetResult            float64 `json:"netResult"`
}

// ComputeTotals agrega un mes completo. Puro y determinista: mismas entradas,
// mismos totales.
func ComputeTotals(in Input) Totals {
	var t Totals

	// Ingresos. El tratamiento TVA se decide línea por línea: la foto
	// IsTvaSubject de la línea manda si existe; si no, cae al ajuste global
	// ACTUAL. Así reabrir un reporte histórico bajo un régimen TVA cambiado
	// no reescribe retroactivamente lo que se cobró.
	for _, line := range in.SaleLines {
		ttc := line.Quantity * line.UnitPrice
		subject := in.Settings.IsTvaSubject
		if line.IsTvaSubject != nil {
			subject = *line.IsTvaSubject
		}
		ht := ttc
		if subject {
			ht = ttc / (1 + in.Settings.DefaultTvaRate/100)
		}
		t.RevenueTTC += ttc
		t.RevenueHT += ht
		t.TvaCollected += ttc - ht
	}

	// Cantidades vendidas+invendidas por producto, para costo materia y empaque.
	soldByProduct := make(map[string]float64)
	unsoldByProduct := make(map[string]float64)
	for _, line := range in.SaleLines {
		soldByProduct[line.ProductID] += line.Quantity
	}
	for _, line := range in.UnsoldLines {
		unsoldByProduct[line.ProductID] += line.Quantity
	}

	recipeByID := make(map[string]entity.Recipe, len(in.Recipes))
	for _, r := range in.Recipes {
		recipeByID[r.ID] = r
	}

	// Costo materia: el modo elegido selecciona UNA de las tres alternativas,
	// nunca se suman entre sí.
	switch in.CostMode {
	case entity.CostModeActualSpend:
		t.FoodCost = in.ActualIngredientSpend
	case entity.CostModeInventoryVariation:
		t.FoodCost = in.InventoryVariationCost
	default:
		t.FoodCost = calculatedFoodCost(in.Products, recipeByID, in.Ingredients, soldByProduct, unsoldByProduct)
	}

	// Empaques: unidades vendidas, más invendidas si el producto también
	// empaca lo que no vende; la pérdida de fabricación aplica solo si el
	// producto lo declara.
	for _, p := range in.Products {
		units := soldByProduct[p.ID]
		if p.PackagingUsedOnUnsold {
			units += unsoldByProduct[p.ID]
		}
		if units == 0 {
			continue
		}
		cost := units * p.PackagingCost
		if p.ApplyLossToPackaging {
			cost *= pricing.LossMultiplier(p.LossRate)
		}
		t.PackagingCost += cost
	}

	t.SocialCharges = t.RevenueHT * in.Settings.TaxRate / 100

	for _, fc := range in.ActualFixedCosts {
		t.ActualFixedCostTotal += fc.Amount
	}

	t.GrossMargin = t.RevenueHT - (t.FoodCost + t.PackagingCost + t.SocialCharges)
	t.NetResult = t.GrossMargin - t.ActualFixedCostTotal
	return t
}

// calculatedFoodCost costo materia teórico: por producto, costo unitario de
// receta x multiplicador de pérdida x (vendido + invendido). Productos sin
// receta se omiten.
func calculatedFoodCost(
	products []entity.Product,
	recipeByID map[string]entity.Recipe,
	ingredients []entity.Ingredient,
	soldByProduct, unsoldByProduct map[string]float64,
) float64 {
	var total float64
	for _, p := range products {
		qty := soldByProduct[p.ID] + unsoldByProduct[p.ID]
		if qty == 0 {
			continue
		}
		recipe, ok := recipeByID[p.RecipeID]
		if !ok {
			continue
		}
		unitCost := costing.RecipeUnitCost(recipe, ingredients)
		total += unitCost * pricing.LossMultiplier(p.LossRate) * qty
	}
	return total
}

// InventoryVariationCost valoriza la variación de inventario del mes:
// (conteo inicial - conteo final) x precio de stock del ingrediente, sumado
// sobre los conteos. Los ingredientes borrados se omiten.
func InventoryVariationCost(entries []entity.InventoryEntry, ingredients []entity.Ingredient) float64 {
	priceByID := make(map[string]float64, len(ingredients))
	for _, ing := range ingredients {
		priceByID[ing.ID] = ing.Price
	}
	var total float64
	for _, e := range entries {
		price, ok := priceByID[e.IngredientID]
		if !ok {
			continue
		}
		total += (e.StartQuantity - e.EndQuantity) * price
	}
	return total
}

// Freeze copia los totales más el modo de costo en una foto inmutable para
// almacenamiento permanente. A partir de ahí el reporte se relee tal cual.
func Freeze(t Totals, mode entity.CostMode, at time.Time) entity.FrozenTotals {
	return entity.FrozenTotals{
		RevenueTTC:           t.RevenueTTC,
		RevenueHT:            t.RevenueHT,
		TvaCollected:         t.TvaCollected,
		FoodCost:             t.FoodCost,
		PackagingCost:        t.PackagingCost,
		SocialCharges:        t.SocialCharges,
		GrossMargin:          t.GrossMargin,
		ActualFixedCostTotal: t.ActualFixedCostTotal,
		NetResult:            t.NetResult,
		CostMode:             mode,
		FrozenAt:             at.UTC().Format(time.RFC3339),
	}
}

// ShouldIncludeOrder decide si un pedido entra en la agregación del mes: los
// completados siempre, los cancelados nunca, los pendientes solo si el toggle
// explícito está activo.
func ShouldIncludeOrder(order entity.Order, includePending bool) bool {
	switch order.Status {
	case entity.OrderStatusCancelled:
		return false
	case entity.OrderStatusPending:
		return includePending
	default:
		return true
	}
}

// SeedSaleLines genera las líneas de venta semilla de un mes recién abierto
// (aún no guardado) a partir de los pedidos del mes. Las líneas del mismo
// producto al mismo precio se funden. Cada línea nace con la foto del régimen
// TVA vigente al momento de sembrar.
func SeedSaleLines(orders []entity.Order, month string, settings entity.GlobalSettings, includePending bool) []entity.SaleLine {
	type key struct {
		productID string
		unitPrice float64
	}
	index := make(map[key]int)
	var lines []entity.SaleLine
	for _, order := range orders {
		if !strings.HasPrefix(order.Date, month) || !ShouldIncludeOrder(order, includePending) {
			continue
		}
		for _, item := range order.Items {
			k := key{productID: item.ProductID, unitPrice: item.Price}
			if i, ok := index[k]; ok {
				lines[i].Quantity += item.Quantity
				continue
			}
			subject := settings.IsTvaSubject
			lines = append(lines, entity.SaleLine{
				ID:           uuid.New().String(),
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				UnitPrice:    item.Price,
				IsTvaSubject: &subject,
			})
			index[k] = len(lines) - 1
		}
	}
	return lines
}
