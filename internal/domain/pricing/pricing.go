// Package pricing implementa el motor económico de producto: costo completo,
// precio de equilibrio y precios recomendados por margen o por salario
// objetivo, con conciencia de cargas sociales y TVA.
//
// El motor es una calculadora, no un validador: no recorta entradas fuera de
// rango (costos negativos, tasas >= 100%). Ante dominio inválido propaga NaN
// para que el defecto sea visible en el precio final, nunca un número
// verosímil pero incorrecto. Rechazar esos registros antes de llegar aquí es
// responsabilidad de la validación aguas arriba.
package pricing

import (
	"math"

	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// Breakdown desglose completo del costo y los precios de un producto.
// Todos los montos son HT salvo RecommendedPriceTTC.
type Breakdown struct {
	UnitMaterialCost      float64 `json:"unitMaterialCost"`
	LaborCost             float64 `json:"laborCost"`
	AllocatedFixedCost    float64 `json:"allocatedFixedCost"`
	VariableCostsWithLoss float64 `json:"variableCostsWithLoss"`
	UnsoldAllocation      float64 `json:"unsoldAllocation"`
	FullCost              float64 `json:"fullCost"`
	MinPriceBreakeven     float64 `json:"minPriceBreakeven"`
	RecommendedPriceHT    float64 `json:"recommendedPriceHT"`
	RecommendedPriceTTC   float64 `json:"recommendedPriceTTC"`
	AppliedTvaRate        float64 `json:"appliedTvaRate"`
}

// LossMultiplier multiplicador de pérdida de fabricación: 1/(1-rate/100).
// Infla la cantidad de insumos para cubrir merma/desperdicio. Con rate >= 100
// no está definido y devuelve NaN (nunca se recorta en silencio). Lo reutiliza
// también el libro de stock al explotar la producción en consumos.
func LossMultiplier(lossRate float64) float64 {
	if lossRate >= 100 {
		return math.NaN()
	}
	return 1 / (1 - lossRate/100)
}

// taxDivisor divisor 1 - taxRate/100 para pasar de costo a precio que absorbe
// las cargas sociales. A >= 100 devuelve NaN.
func taxDivisor(taxRate float64) float64 {
	if taxRate >= 100 {
		return math.NaN()
	}
	return 1 - taxRate/100
}

// AllocatedFixedCost reparte los costos fijos mensuales entre todo el catálogo
// a prorrata del volumen mensual estimado. Con volumen total cero no se asigna
// nada (0, no es un fallo); un volumen estimado no finito en cualquier
// producto propaga NaN para señalar datos inválidos aguas arriba.
func AllocatedFixedCost(settings entity.GlobalSettings, catalog []entity.Product) float64 {
	var totalFixed float64
	for _, fc := range settings.FixedCosts {
		totalFixed += fc.Amount
	}
	totalVolume, ok := catalogVolume(catalog)
	if !ok {
		return math.NaN()
	}
	if totalVolume == 0 {
		return 0
	}
	return totalFixed / totalVolume
}

// catalogVolume suma las ventas mensuales estimadas del catálogo. Un total no
// finito (NaN o Inf en cualquier producto) se reporta como inválido: dividir
// por Inf daría un 0 verosímil que enmascara el dato corrupto.
func catalogVolume(catalog []entity.Product) (float64, bool) {
	var total float64
	for _, p := range catalog {
		total += p.EstimatedMonthlySales
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, false
	}
	return total, true
}

// Compute calcula el desglose económico completo de un producto.
// recipe puede ser nil (referencia colgante): la materia cuenta como 0, en
// línea con la tolerancia por omisión del costeo de recetas.
// catalog es el catálogo completo, necesario para la asignación de costos
// fijos y el reparto salarial.
func Compute(
	product entity.Product,
	recipe *entity.Recipe,
	ingredients []entity.Ingredient,
	settings entity.GlobalSettings,
	catalog []entity.Product,
) Breakdown {
	var unitMaterialCost float64
	if recipe != nil {
		unitMaterialCost = costing.RecipeUnitCost(*recipe, ingredients)
	}

	laborCost := (product.LaborTimeMinutes / 60) * settings.HourlyRate
	allocatedFixed := AllocatedFixedCost(settings, catalog)

	lossMult := LossMultiplier(product.LossRate)
	variableWithLoss := (unitMaterialCost + product.PackagingCost + product.DeliveryCost) * lossMult

	unsoldAllocation := unsoldAllocationPerSoldUnit(product, unitMaterialCost, lossMult)

	fullCost := variableWithLoss + laborCost + allocatedFixed + unsoldAllocation

	div := taxDivisor(settings.TaxRate)
	breakeven := fullCost / div

	var recommendedHT float64
	switch settings.PricingStrategy {
	case entity.PricingStrategySalary:
		recommendedHT = (fullCost + salaryPerUnit(settings, catalog)) / div
	default:
		recommendedHT = (fullCost + product.TargetMargin) / div
	}

	tvaRate := 0.0
	recommendedTTC := recommendedHT
	if settings.IsTvaSubject {
		tvaRate = settings.DefaultTvaRate
		if product.TvaRate != nil {
			tvaRate = *product.TvaRate
		}
		recommendedTTC = recommendedHT * (1 + tvaRate/100)
	}

	return Breakdown{
		UnitMaterialCost:      unitMaterialCost,
		LaborCost:             laborCost,
		AllocatedFixedCost:    allocatedFixed,
		VariableCostsWithLoss: variableWithLoss,
		UnsoldAllocation:      unsoldAllocation,
		FullCost:              fullCost,
		MinPriceBreakeven:     breakeven,
		RecommendedPriceHT:    recommendedHT,
		RecommendedPriceTTC:   recommendedTTC,
		AppliedTvaRate:        tvaRate,
	}
}

// unsoldAllocationPerSoldUnit reparte el costo de las unidades invendidas
// estimadas entre las unidades vendidas estimadas. Un invendido cuesta su
// materia (con pérdida) más su empaque si el producto también empaca lo que
// no vende (la pérdida aplica al empaque solo si el producto lo declara).
// Con ventas estimadas cero no se asigna nada.
func unsoldAllocationPerSoldUnit(product entity.Product, unitMaterialCost, lossMult float64) float64 {
	if product.EstimatedMonthlySales == 0 || product.UnsoldEstimate == 0 {
		return 0
	}
	perUnsold := unitMaterialCost * lossMult
	if product.PackagingUsedOnUnsold {
		pkg := product.PackagingCost
		if product.ApplyLossToPackaging {
			pkg *= lossMult
		}
		perUnsold += pkg
	}
	return product.UnsoldEstimate * perUnsold / product.EstimatedMonthlySales
}

// salaryPerUnit cuota salarial por unidad vendida: el salario mensual objetivo
// repartido entre el volumen mensual estimado del catálogo. El reparto
// ponderado por participación de ventas de cada producto, dividido por sus
// propias ventas, se reduce a esta cuota uniforme. Con volumen total cero la
// cuota es 0 (el precio recomendado cae al equilibrio), espejo de la regla de
// asignación de costos fijos.
func salaryPerUnit(settings entity.GlobalSettings, catalog []entity.Product) float64 {
	totalVolume, ok := catalogVolume(catalog)
	if !ok {
		return math.NaN()
	}
	if totalVolume == 0 {
		return 0
	}
	return settings.TargetMonthlySalary / totalVolume
}
