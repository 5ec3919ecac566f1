// Package normalize implementa el pipeline de normalización/migración: acepta
// registros de forma desconocida o parcial (formas actuales, legadas o a
// medio formar) y produce entidades que satisfacen todos los invariantes de
// los motores de cálculo. Se aplica a TODA entidad antes de usarla.
//
// Todos los normalizadores son idempotentes: aplicarlos dos veces sobre su
// propia salida es un no-op. Ninguno lanza error ante una forma rara: los
// campos ausentes reciben defaults y los valores fuera de dominio se reparan.
package normalize

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

// nonNeg repara un numérico con invariante >= 0: ausente, no finito o
// negativo se vuelve 0.
func nonNeg(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0
	}
	return *v
}

// rate repara una tasa con invariante [0,100): fuera de dominio se vuelve 0.
func rate(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 || *v >= 100 {
		return 0
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// idOr devuelve el ID existente o sintetiza uno estable para filas que no lo
// traen (solo las filas legadas carecen de ID; tras la primera pasada el ID
// persiste y la normalización vuelve a ser un no-op).
func idOr(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// Unit interpreta el nombre de unidad persistido; lo desconocido cae a pieza.
// El alias agresivo de nombres importados vive en la capa de import/export,
// no aquí: este paso solo canonicaliza formas ya primitivas.
func Unit(raw string) entity.Unit {
	u := entity.Unit(strings.ToLower(strings.TrimSpace(raw)))
	if u.IsValid() {
		return u
	}
	return entity.UnitPiece
}

// ── Settings ─────────────────────────────────────────────────────────────────

// Settings normaliza los ajustes globales: deriva la estrategia de precios
// (migrando el par legado pricingMode/includeLaborInCost), acota las tasas a
// [0,100) y da defaults a colecciones y booleanos.
func Settings(raw *RawSettings) entity.GlobalSettings {
	if raw == nil {
		raw = &RawSettings{}
	}
	strategy := entity.PricingStrategyMargin
	switch {
	case raw.PricingStrategy != nil && (*raw.PricingStrategy == entity.PricingStrategyMargin || *raw.PricingStrategy == entity.PricingStrategySalary):
		strategy = *raw.PricingStrategy
	case raw.PricingMode != nil && *raw.PricingMode == entity.PricingStrategySalary:
		// Migración del par legado; IncludeLaborInCost se descarta (la mano
		// de obra siempre integra el costo completo en el modelo actual).
		strategy = entity.PricingStrategySalary
	}

	fixedCosts := make([]entity.FixedCostItem, 0, len(raw.FixedCosts))
	for _, fc := range raw.FixedCosts {
		fixedCosts = append(fixedCosts, entity.FixedCostItem{
			ID:     idOr(fc.ID),
			Label:  fc.Label,
			Amount: nonNeg(fc.Amount),
		})
	}

	return entity.GlobalSettings{
		TaxRate:             rate(raw.TaxRate),
		IsTvaSubject:        boolOr(raw.IsTvaSubject, false),
		DefaultTvaRate:      rate(raw.DefaultTvaRate),
		HourlyRate:          nonNeg(raw.HourlyRate),
		FixedCosts:          fixedCosts,
		PricingStrategy:     strategy,
		TargetMonthlySalary: nonNeg(raw.TargetMonthlySalary),
	}
}

// ── Ingredient / Purchase ────────────────────────────────────────────────────

// legacyHTPrice recupera el precio HT de un registro legado con base TTC:
// si el registro trae la base "ttc" con su tasa y el negocio está sujeto a
// TVA, divide por (1+tasa/100). Devuelve el precio corregido y la tasa usada
// (nil si no hubo corrección).
func legacyHTPrice(price float64, basis *string, tvaRate *float64, settings entity.GlobalSettings) (float64, *float64) {
	if basis == nil || strings.ToLower(*basis) != "ttc" || tvaRate == nil || !settings.IsTvaSubject {
		return price, nil
	}
	r := rate(tvaRate)
	corrected := price / (1 + r/100)
	return corrected, &r
}

// Ingredient normaliza un ingrediente. El precio legado TTC se reduce a HT y
// se marca NeedsPriceReview, preservando la tasa como HelperVatRate para
// prefill de la UI. CostPerBaseUnit se recalcula SIEMPRE desde el precio
// corregido: el valor almacenado nunca es de confianza.
func Ingredient(raw RawIngredient, settings entity.GlobalSettings) entity.Ingredient {
	unit := Unit(raw.Unit)
	price := nonNeg(raw.Price)

	helper := raw.HelperVatRate
	review := boolOr(raw.NeedsPriceReview, false)
	if corrected, usedRate := legacyHTPrice(price, raw.PriceBasis, raw.TvaRate, settings); usedRate != nil {
		price = corrected
		review = true
		helper = usedRate
	}

	return entity.Ingredient{
		ID:               idOr(raw.ID),
		Name:             raw.Name,
		Unit:             unit,
		Price:            price,
		Quantity:         nonNeg(raw.Quantity),
		CostPerBaseUnit:  costing.CostPerBaseUnit(price, 1, unit),
		HelperVatRate:    helper,
		NeedsPriceReview: review,
	}
}

// Purchase normaliza una compra: misma corrección de base TTC legada que el
// ingrediente, reducida a un precio HT puro.
func Purchase(raw RawPurchase, settings entity.GlobalSettings) entity.Purchase {
	price := nonNeg(raw.Price)
	if corrected, usedRate := legacyHTPrice(price, raw.PriceBasis, raw.TvaRate, settings); usedRate != nil {
		price = corrected
	}
	return entity.Purchase{
		ID:           idOr(raw.ID),
		Date:         raw.Date,
		IngredientID: raw.IngredientID,
		Quantity:     nonNeg(raw.Quantity),
		Price:        price,
	}
}

// ── Recipe / Product ─────────────────────────────────────────────────────────

// Recipe normaliza una receta: BatchYield inválido cae a 1, LossPercentage
// fuera de [0,100) cae a 0, líneas con defaults.
func Recipe(raw RawRecipe) entity.Recipe {
	yield := 1.0
	if raw.BatchYield != nil && !math.IsNaN(*raw.BatchYield) && !math.IsInf(*raw.BatchYield, 0) && *raw.BatchYield > 0 {
		yield = *raw.BatchYield
	}
	lines := make([]entity.RecipeIngredient, 0, len(raw.Ingredients))
	for _, l := range raw.Ingredients {
		lines = append(lines, entity.RecipeIngredient{
			IngredientID: l.IngredientID,
			Quantity:     nonNeg(l.Quantity),
		})
	}
	return entity.Recipe{
		ID:             idOr(raw.ID),
		Name:           raw.Name,
		Ingredients:    lines,
		BatchYield:     yield,
		LossPercentage: rate(raw.LossPercentage),
	}
}

// Product normaliza un producto: default a todo campo opcional, descarta el
// override de TVA obsoleto (VatRate legado) y conserva StandardPrice solo si
// es finito.
func Product(raw RawProduct) entity.Product {
	var standard *float64
	if raw.StandardPrice != nil && !math.IsNaN(*raw.StandardPrice) && !math.IsInf(*raw.StandardPrice, 0) {
		v := *raw.StandardPrice
		standard = &v
	}
	var tva *float64
	if raw.TvaRate != nil {
		v := rate(raw.TvaRate)
		tva = &v
	}
	return entity.Product{
		ID:                    idOr(raw.ID),
		Name:                  raw.Name,
		RecipeID:              raw.RecipeID,
		Category:              raw.Category,
		LaborTimeMinutes:      nonNeg(raw.LaborTimeMinutes),
		PackagingCost:         nonNeg(raw.PackagingCost),
		DeliveryCost:          nonNeg(raw.DeliveryCost),
		LossRate:              rate(raw.LossRate),
		UnsoldEstimate:        nonNeg(raw.UnsoldEstimate),
		PackagingUsedOnUnsold: boolOr(raw.PackagingUsedOnUnsold, false),
		ApplyLossToPackaging:  boolOr(raw.ApplyLossToPackaging, false),
		TargetMargin:          nonNeg(raw.TargetMargin),
		StandardPrice:         standard,
		EstimatedMonthlySales: nonNeg(raw.EstimatedMonthlySales),
		TvaRate:               tva,
	}
}

// ── Order ────────────────────────────────────────────────────────────────────

// Order normaliza un pedido: un estado desconocido cae a pendiente y las
// líneas sin cantidad positiva se descartan.
func Order(raw RawOrder) entity.Order {
	status := raw.Status
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		status = entity.OrderStatusPending
	}
	items := make([]entity.OrderItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		qty := nonNeg(it.Quantity)
		if qty <= 0 {
			// Una línea sin cantidad no es un pedido de nada.
			continue
		}
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  qty,
			Price:     nonNeg(it.Price),
		})
	}
	return entity.Order{
		ID:           idOr(raw.ID),
		Date:         raw.Date,
		CustomerName: raw.CustomerName,
		Status:       status,
		TvaRate:      rate(raw.TvaRate),
		Items:        items,
	}
}

// ── MonthlyReport ────────────────────────────────────────────────────────────

// Report normaliza un reporte mensual: migra la forma legada de líneas
// combinadas venta/invendido a líneas separadas (los invendidos del mismo
// producto se suman a través de todas las filas legadas), sintetiza IDs
// estables para filas que no traen uno y preserva los totales congelados si
// existen.
func Report(raw RawReport) entity.MonthlyReport {
	saleLines := make([]entity.SaleLine, 0, len(raw.SaleLines)+len(raw.Lines))
	for _, l := range raw.SaleLines {
		saleLines = append(saleLines, entity.SaleLine{
			ID:           idOr(l.ID),
			ProductID:    l.ProductID,
			Quantity:     nonNeg(l.Quantity),
			UnitPrice:    nonNeg(l.UnitPrice),
			IsTvaSubject: l.IsTvaSubject,
		})
	}
	unsoldLines := make([]entity.UnsoldLine, 0, len(raw.UnsoldLines))
	for _, l := range raw.UnsoldLines {
		unsoldLines = append(unsoldLines, entity.UnsoldLine{
			ID:        idOr(l.ID),
			ProductID: l.ProductID,
			Quantity:  nonNeg(l.Quantity),
		})
	}

	// Migración de la forma legada combinada.
	if len(raw.Lines) > 0 {
		unsoldByProduct := make(map[string]float64)
		var productOrder []string
		for _, l := range raw.Lines {
			if l.QuantitySold != nil {
				saleLines = append(saleLines, entity.SaleLine{
					ID:           uuid.New().String(),
					ProductID:    l.ProductID,
					Quantity:     nonNeg(l.QuantitySold),
					UnitPrice:    nonNeg(l.UnitPrice),
					IsTvaSubject: l.IsTvaSubject,
				})
			}
			if unsold := nonNeg(l.QuantityUnsold); unsold > 0 {
				if _, seen := unsoldByProduct[l.ProductID]; !seen {
					productOrder = append(productOrder, l.ProductID)
				}
				unsoldByProduct[l.ProductID] += unsold
			}
		}
		for _, pid := range productOrder {
			unsoldLines = append(unsoldLines, entity.UnsoldLine{
				ID:        uuid.New().String(),
				ProductID: pid,
				Quantity:  unsoldByProduct[pid],
			})
		}
	}

	actualFixed := make([]entity.FixedCostItem, 0, len(raw.ActualFixedCosts))
	for _, fc := range raw.ActualFixedCosts {
		actualFixed = append(actualFixed, entity.FixedCostItem{
			ID:     idOr(fc.ID),
			Label:  fc.Label,
			Amount: nonNeg(fc.Amount),
		})
	}

	entries := make([]entity.InventoryEntry, 0, len(raw.InventoryEntries))
	for _, e := range raw.InventoryEntries {
		entries = append(entries, entity.InventoryEntry{
			IngredientID:  e.IngredientID,
			StartQuantity: nonNeg(e.StartQuantity),
			EndQuantity:   nonNeg(e.EndQuantity),
		})
	}

	return entity.MonthlyReport{
		ID:                    idOr(raw.ID),
		Month:                 raw.Month,
		SaleLines:             saleLines,
		UnsoldLines:           unsoldLines,
		ActualFixedCosts:      actualFixed,
		ActualIngredientSpend: nonNeg(raw.ActualIngredientSpend),
		InventoryEntries:      entries,
		CostMode:              costMode(raw.CostMode),
		IncludePendingOrders:  boolOr(raw.IncludePendingOrders, false),
		IsLocked:              boolOr(raw.IsLocked, false),
		Totals:                frozenTotals(raw.Totals),
	}
}

// costMode valida el selector de modo de costo; cualquier valor fuera de los
// tres modos conocidos cae al calculado. La misma regla aplica al reporte y a
// su foto congelada.
func costMode(raw *int) entity.CostMode {
	if raw != nil {
		switch entity.CostMode(*raw) {
		case entity.CostModeActualSpend:
			return entity.CostModeActualSpend
		case entity.CostModeInventoryVariation:
			return entity.CostModeInventoryVariation
		}
	}
	return entity.CostModeCalculated
}

func frozenTotals(raw *RawFrozenTotals) *entity.FrozenTotals {
	if raw == nil {
		return nil
	}
	num := func(v *float64) float64 {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return 0
		}
		return *v
	}
	return &entity.FrozenTotals{
		RevenueTTC:           num(raw.RevenueTTC),
		RevenueHT:            num(raw.RevenueHT),
		TvaCollected:         num(raw.TvaCollected),
		FoodCost:             num(raw.FoodCost),
		PackagingCost:        num(raw.PackagingCost),
		SocialCharges:        num(raw.SocialCharges),
		GrossMargin:          num(raw.GrossMargin),
		ActualFixedCostTotal: num(raw.ActualFixedCostTotal),
		NetResult:            num(raw.NetResult),
		CostMode:             costMode(raw.CostMode),
		FrozenAt:             raw.FrozenAt,
	}
}

// ── ProductionBatch / Dataset ────────────────────────────────────────────────

// ProductionBatch normaliza un lote de producción.
func ProductionBatch(raw RawProductionBatch) entity.ProductionBatch {
	return entity.ProductionBatch{
		ID:            idOr(raw.ID),
		Date:          raw.Date,
		ProductID:     raw.ProductID,
		Quantity:      nonNeg(raw.Quantity),
		SourceOrderID: raw.SourceOrderID,
	}
}

// Dataset compone todos los normalizadores sobre el conjunto completo y
// recalcula los campos derivados (costo por unidad base), de modo que ningún
// componente aguas abajo vea datos a medio migrar. Los ajustes se normalizan
// primero: la corrección TTC de ingredientes y compras depende de ellos.
func Dataset(raw RawDataset) entity.Dataset {
	settings := Settings(raw.Settings)

	ds := entity.Dataset{
		Ingredients:       make([]entity.Ingredient, 0, len(raw.Ingredients)),
		Recipes:           make([]entity.Recipe, 0, len(raw.Recipes)),
		Products:          make([]entity.Product, 0, len(raw.Products)),
		Purchases:         make([]entity.Purchase, 0, len(raw.Purchases)),
		ProductionBatches: make([]entity.ProductionBatch, 0, len(raw.ProductionBatches)),
		Orders:            make([]entity.Order, 0, len(raw.Orders)),
		Reports:           make([]entity.MonthlyReport, 0, len(raw.Reports)),
		Settings:          settings,
	}
	for _, r := range raw.Ingredients {
		ds.Ingredients = append(ds.Ingredients, Ingredient(r, settings))
	}
	for _, r := range raw.Recipes {
		ds.Recipes = append(ds.Recipes, Recipe(r))
	}
	for _, r := range raw.Products {
		ds.Products = append(ds.Products, Product(r))
	}
	for _, r := range raw.Purchases {
		ds.Purchases = append(ds.Purchases, Purchase(r, settings))
	}
	for _, r := range raw.ProductionBatches {
		ds.ProductionBatches = append(ds.ProductionBatches, ProductionBatch(r))
	}
	for _, r := range raw.Orders {
		ds.Orders = append(ds.Orders, Order(r))
	}
	for _, r := range raw.Reports {
		ds.Reports = append(ds.Reports, Report(r))
	}
	return ds
}
