package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/report"
)

func b(v bool) *bool { return &v }

// Caso TVA de la especificación del reporte: 10 unidades a 11 TTC con tasa
// por defecto 10% -> HT 100, TVA recaudada 10.
func TestComputeTotals_IngresosConTVA(t *testing.T) {
	in := report.Input{
		SaleLines: []entity.SaleLine{
			{ProductID: "p1", Quantity: 10, UnitPrice: 11, IsTvaSubject: b(true)},
		},
		Settings: entity.GlobalSettings{DefaultTvaRate: 10},
	}

	totals := report.ComputeTotals(in)

	assert.InDelta(t, 110, totals.RevenueTTC, 1e-9)
	assert.InDelta(t, 100, totals.RevenueHT, 1e-9)
	assert.InDelta(t, 10, totals.TvaCollected, 1e-9)
}

// Cada línea se convierte según SU propia foto de régimen TVA, sin importar
// el ajuste global actual.
func TestComputeTotals_LineasMixtasDeTVA(t *testing.T) {
	in := report.Input{
		SaleLines: []entity.SaleLine{
			{ProductID: "p1", Quantity: 1, UnitPrice: 110, IsTvaSubject: b(true)},
			{ProductID: "p2", Quantity: 1, UnitPrice: 110, IsTvaSubject: b(false)},
		},
		// El ajuste global dice lo contrario de ambas fotos: no debe mandar.
		Settings: entity.GlobalSettings{IsTvaSubject: false, DefaultTvaRate: 10},
	}

	totals := report.ComputeTotals(in)

	assert.InDelta(t, 220, totals.RevenueTTC, 1e-9)
	assert.InDelta(t, 100+110, totals.RevenueHT, 1e-9)
	assert.InDelta(t, 10, totals.TvaCollected, 1e-9)
}

// Sin foto en la línea se cae al ajuste global ACTUAL.
func TestComputeTotals_SinFotoCaeAlAjusteGlobal(t *testing.T) {
	in := report.Input{
		SaleLines: []entity.SaleLine{{ProductID: "p1", Quantity: 1, UnitPrice: 110}},
		Settings:  entity.GlobalSettings{IsTvaSubject: true, DefaultTvaRate: 10},
	}
	totals := report.ComputeTotals(in)
	assert.InDelta(t, 100, totals.RevenueHT, 1e-9)

	in.Settings.IsTvaSubject = false
	totals = report.ComputeTotals(in)
	assert.InDelta(t, 110, totals.RevenueHT, 1e-9)
}

func reconcileFixture() report.Input {
	return report.Input{
		SaleLines: []entity.SaleLine{
			{ProductID: "tarta", Quantity: 10, UnitPrice: 5, IsTvaSubject: b(false)},
		},
		UnsoldLines: []entity.UnsoldLine{
			{ProductID: "tarta", Quantity: 2},
		},
		Products: []entity.Product{
			{ID: "tarta", RecipeID: "r1"},
		},
		Recipes: []entity.Recipe{
			{
				ID:          "r1",
				BatchYield:  10,
				Ingredients: []entity.RecipeIngredient{{IngredientID: "i1", Quantity: 100}},
			},
		},
		Ingredients: []entity.Ingredient{{ID: "i1", CostPerBaseUnit: 0.01}},
		Settings:    entity.GlobalSettings{},
		// Tres cifras distintas para verificar la exclusividad del selector.
		ActualIngredientSpend:  77,
		InventoryVariationCost: 55,
	}
}

// El selector de modo de costo elige exactamente UNA de las tres cifras de
// costo materia, sin aporte de las otras dos.
func TestComputeTotals_ModosDeCostoExcluyentes(t *testing.T) {
	in := reconcileFixture()

	// Modo 0: teórico por recetas. (10 vendidas + 2 invendidas) x 0.1 = 1.2
	in.CostMode = entity.CostModeCalculated
	assert.InDelta(t, 1.2, report.ComputeTotals(in).FoodCost, 1e-9)

	// Modo 1: gasto real capturado a mano.
	in.CostMode = entity.CostModeActualSpend
	assert.Equal(t, 77.0, report.ComputeTotals(in).FoodCost)

	// Modo 2: variación de inventario valorizada.
	in.CostMode = entity.CostModeInventoryVariation
	assert.Equal(t, 55.0, report.ComputeTotals(in).FoodCost)
}

// El costo teórico aplica el multiplicador de pérdida de fabricación del
// producto sobre el costo unitario de receta.
func TestComputeTotals_CostoTeoricoConPerdida(t *testing.T) {
	in := reconcileFixture()
	in.Products[0].LossRate = 20 // x1.25

	assert.InDelta(t, 1.2*1.25, report.ComputeTotals(in).FoodCost, 1e-9)
}

func TestComputeTotals_Empaques(t *testing.T) {
	in := reconcileFixture()
	in.Products[0].PackagingCost = 0.5

	// Solo vendidas: 10 x 0.5
	assert.InDelta(t, 5.0, report.ComputeTotals(in).PackagingCost, 1e-9)

	// También los invendidos llevan empaque.
	in.Products[0].PackagingUsedOnUnsold = true
	assert.InDelta(t, 6.0, report.ComputeTotals(in).PackagingCost, 1e-9)

	// Y la pérdida de fabricación aplica al empaque solo si se declara.
	in.Products[0].ApplyLossToPackaging = true
	in.Products[0].LossRate = 20
	assert.InDelta(t, 6.0*1.25, report.ComputeTotals(in).PackagingCost, 1e-9)
}

// Cargas sociales sobre el CA HT, margen bruto y resultado neto.
func TestComputeTotals_MargenYResultadoNeto(t *testing.T) {
	in := reconcileFixture()
	in.Settings.TaxRate = 10
	in.ActualFixedCosts = []entity.FixedCostItem{{Amount: 20}, {Amount: 5}}
	in.CostMode = entity.CostModeActualSpend
	in.ActualIngredientSpend = 10

	totals := report.ComputeTotals(in)

	// CA HT = 50; cargas = 5; margen = 50 - (10 + 0 + 5) = 35; neto = 35 - 25
	assert.InDelta(t, 50, totals.RevenueHT, 1e-9)
	assert.InDelta(t, 5, totals.SocialCharges, 1e-9)
	assert.InDelta(t, 35, totals.GrossMargin, 1e-9)
	assert.InDelta(t, 25, totals.ActualFixedCostTotal, 1e-9)
	assert.InDelta(t, 10, totals.NetResult, 1e-9)
}

func TestInventoryVariationCost(t *testing.T) {
	ingredients := []entity.Ingredient{
		{ID: "harina", Price: 2},  // por kg
		{ID: "huevo", Price: 0.3}, // por pieza
	}
	entries := []entity.InventoryEntry{
		{IngredientID: "harina", StartQuantity: 10, EndQuantity: 6},
		{IngredientID: "huevo", StartQuantity: 30, EndQuantity: 40}, // reposición: variación negativa
		{IngredientID: "borrado", StartQuantity: 5, EndQuantity: 0}, // ingrediente borrado: se omite
	}

	// 4 x 2 + (-10) x 0.3 = 8 - 3 = 5
	assert.InDelta(t, 5.0, report.InventoryVariationCost(entries, ingredients), 1e-9)
}

// Congelar copia los totales y el modo en una foto inmutable.
func TestFreeze(t *testing.T) {
	totals := report.Totals{
		RevenueTTC:   110,
		RevenueHT:    100,
		TvaCollected: 10,
		FoodCost:     30,
		GrossMargin:  60,
		NetResult:    40,
	}
	at := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)

	frozen := report.Freeze(totals, entity.CostModeActualSpend, at)

	assert.Equal(t, 110.0, frozen.RevenueTTC)
	assert.Equal(t, 100.0, frozen.RevenueHT)
	assert.Equal(t, 30.0, frozen.FoodCost)
	assert.Equal(t, entity.CostModeActualSpend, frozen.CostMode)
	assert.Equal(t, "2025-06-30T23:59:00Z", frozen.FrozenAt)
}

// Completado siempre cuenta, cancelado nunca, pendiente solo con el toggle.
func TestShouldIncludeOrder(t *testing.T) {
	assert.True(t, report.ShouldIncludeOrder(entity.Order{Status: entity.OrderStatusCompleted}, false))
	assert.False(t, report.ShouldIncludeOrder(entity.Order{Status: entity.OrderStatusCancelled}, true))
	assert.False(t, report.ShouldIncludeOrder(entity.Order{Status: entity.OrderStatusPending}, false))
	assert.True(t, report.ShouldIncludeOrder(entity.Order{Status: entity.OrderStatusPending}, true))
}

func TestSeedSaleLines(t *testing.T) {
	orders := []entity.Order{
		{
			ID: "o1", Date: "2025-06-03", Status: entity.OrderStatusCompleted,
			Items: []entity.OrderItem{
				{ProductID: "tarta", Quantity: 2, Price: 5},
				{ProductID: "flan", Quantity: 1, Price: 3},
			},
		},
		{
			ID: "o2", Date: "2025-06-20", Status: entity.OrderStatusCompleted,
			Items: []entity.OrderItem{
				{ProductID: "tarta", Quantity: 3, Price: 5}, // mismo producto y precio: se funde
			},
		},
		{
			ID: "o3", Date: "2025-07-01", Status: entity.OrderStatusCompleted,
			Items: []entity.OrderItem{{ProductID: "tarta", Quantity: 9, Price: 5}}, // otro mes
		},
		{
			ID: "o4", Date: "2025-06-10", Status: entity.OrderStatusPending,
			Items: []entity.OrderItem{{ProductID: "flan", Quantity: 7, Price: 3}},
		},
	}
	settings := entity.GlobalSettings{IsTvaSubject: true}

	lines := report.SeedSaleLines(orders, "2025-06", settings, false)

	require.Len(t, lines, 2)
	assert.Equal(t, "tarta", lines[0].ProductID)
	assert.Equal(t, 5.0, lines[0].Quantity)
	assert.NotEmpty(t, lines[0].ID)
	// Cada línea nace con la foto del régimen vigente al sembrar.
	require.NotNil(t, lines[0].IsTvaSubject)
	assert.True(t, *lines[0].IsTvaSubject)

	// Con el toggle de pendientes el pedido o4 entra y se funde con la línea
	// de flan existente (mismo producto, mismo precio).
	lines = report.SeedSaleLines(orders, "2025-06", settings, true)
	require.Len(t, lines, 2)
	assert.Equal(t, "flan", lines[1].ProductID)
	assert.Equal(t, 8.0, lines[1].Quantity)
}
