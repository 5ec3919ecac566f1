package normalize_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
)

func f(v float64) *float64 { return &v }
func bp(v bool) *bool      { return &v }
func sp(v string) *string  { return &v }

// reencode pasa una entidad normalizada de vuelta por JSON a su forma cruda,
// simulando un ciclo persistir/recargar.
func reencode(t *testing.T, in, out any) {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// ── Settings ─────────────────────────────────────────────────────────────────

func TestSettings_Defaults(t *testing.T) {
	s := normalize.Settings(nil)

	assert.Equal(t, entity.PricingStrategyMargin, s.PricingStrategy)
	assert.NotNil(t, s.FixedCosts)
	assert.Empty(t, s.FixedCosts)
	assert.False(t, s.IsTvaSubject)
	assert.Zero(t, s.TaxRate)
}

// Las tasas se acotan a [0,100): lo fuera de dominio se repara a 0.
func TestSettings_AcotaTasas(t *testing.T) {
	for _, v := range []float64{-5, 100, 250, math.NaN(), math.Inf(1)} {
		s := normalize.Settings(&normalize.RawSettings{TaxRate: f(v), DefaultTvaRate: f(v)})
		assert.Zero(t, s.TaxRate, "taxRate %v", v)
		assert.Zero(t, s.DefaultTvaRate, "defaultTvaRate %v", v)
	}
	s := normalize.Settings(&normalize.RawSettings{TaxRate: f(12.8)})
	assert.Equal(t, 12.8, s.TaxRate)
}

// Migración del par legado pricingMode/includeLaborInCost.
func TestSettings_MigraEstrategiaLegada(t *testing.T) {
	s := normalize.Settings(&normalize.RawSettings{
		PricingMode:        sp("salary"),
		IncludeLaborInCost: bp(false), // se descarta
	})
	assert.Equal(t, entity.PricingStrategySalary, s.PricingStrategy)

	// La forma actual manda sobre la legada.
	s = normalize.Settings(&normalize.RawSettings{
		PricingStrategy: sp("margin"),
		PricingMode:     sp("salary"),
	})
	assert.Equal(t, entity.PricingStrategyMargin, s.PricingStrategy)
}

// ── Ingredient ───────────────────────────────────────────────────────────────

// Un ingrediente legado con precio TTC se reduce a HT, se marca para revisión
// y conserva la tasa como prefill; el costo por unidad base se recalcula
// desde el precio corregido.
func TestIngredient_MigraPrecioTTC(t *testing.T) {
	settings := entity.GlobalSettings{IsTvaSubject: true}
	raw := normalize.RawIngredient{
		ID:         "i1",
		Unit:       "kg",
		Price:      f(12),
		PriceBasis: sp("ttc"),
		TvaRate:    f(20),
	}

	ing := normalize.Ingredient(raw, settings)

	assert.InDelta(t, 10, ing.Price, 1e-9)
	assert.True(t, ing.NeedsPriceReview)
	require.NotNil(t, ing.HelperVatRate)
	assert.Equal(t, 20.0, *ing.HelperVatRate)
	assert.InDelta(t, 0.01, ing.CostPerBaseUnit, 1e-9)
}

// Sin régimen TVA el precio legado se conserva tal cual.
func TestIngredient_SinRegimenNoCorrige(t *testing.T) {
	raw := normalize.RawIngredient{ID: "i1", Unit: "kg", Price: f(12), PriceBasis: sp("ttc"), TvaRate: f(20)}

	ing := normalize.Ingredient(raw, entity.GlobalSettings{IsTvaSubject: false})

	assert.Equal(t, 12.0, ing.Price)
	assert.False(t, ing.NeedsPriceReview)
	assert.Nil(t, ing.HelperVatRate)
}

// El costPerBaseUnit almacenado jamás es de confianza: se recalcula siempre.
func TestIngredient_RecalculaCostoDerivado(t *testing.T) {
	raw := normalize.RawIngredient{
		ID:              "i1",
		Unit:            "l",
		Price:           f(3),
		CostPerBaseUnit: f(999), // corrupto
	}
	ing := normalize.Ingredient(raw, entity.GlobalSettings{})
	assert.InDelta(t, 0.003, ing.CostPerBaseUnit, 1e-12)
}

func TestIngredient_UnidadDesconocidaCaeAPieza(t *testing.T) {
	ing := normalize.Ingredient(normalize.RawIngredient{ID: "i1", Unit: "cajas"}, entity.GlobalSettings{})
	assert.Equal(t, entity.UnitPiece, ing.Unit)

	ing = normalize.Ingredient(normalize.RawIngredient{ID: "i1", Unit: " KG "}, entity.GlobalSettings{})
	assert.Equal(t, entity.UnitKilogram, ing.Unit)
}

// ── Purchase ─────────────────────────────────────────────────────────────────

func TestPurchase_MigraPrecioTTC(t *testing.T) {
	settings := entity.GlobalSettings{IsTvaSubject: true}
	raw := normalize.RawPurchase{ID: "c1", IngredientID: "i1", Quantity: f(2), Price: f(11), PriceBasis: sp("ttc"), TvaRate: f(10)}

	p := normalize.Purchase(raw, settings)

	assert.InDelta(t, 10, p.Price, 1e-9)
	assert.Equal(t, 2.0, p.Quantity)
}

// ── Recipe / Product ─────────────────────────────────────────────────────────

func TestRecipe_ReparaInvariantes(t *testing.T) {
	r := normalize.Recipe(normalize.RawRecipe{ID: "r1", BatchYield: f(-3), LossPercentage: f(100)})
	assert.Equal(t, 1.0, r.BatchYield)
	assert.Zero(t, r.LossPercentage)
	assert.NotNil(t, r.Ingredients)

	r = normalize.Recipe(normalize.RawRecipe{ID: "r1", BatchYield: f(12), LossPercentage: f(8)})
	assert.Equal(t, 12.0, r.BatchYield)
	assert.Equal(t, 8.0, r.LossPercentage)
}

func TestProduct_DefaultsYDescartes(t *testing.T) {
	raw := normalize.RawProduct{
		ID:            "p1",
		VatRate:       f(19), // override obsoleto: se descarta
		StandardPrice: f(math.NaN()),
	}

	p := normalize.Product(raw)

	assert.Nil(t, p.TvaRate)
	assert.Nil(t, p.StandardPrice, "un precio no finito no se conserva")
	assert.Zero(t, p.LossRate)
	assert.False(t, p.PackagingUsedOnUnsold)
}

func TestProduct_ConservaStandardPriceFinito(t *testing.T) {
	p := normalize.Product(normalize.RawProduct{ID: "p1", StandardPrice: f(4.5), TvaRate: f(5.5)})
	require.NotNil(t, p.StandardPrice)
	assert.Equal(t, 4.5, *p.StandardPrice)
	require.NotNil(t, p.TvaRate)
	assert.Equal(t, 5.5, *p.TvaRate)
}

// ── Report ───────────────────────────────────────────────────────────────────

// La forma legada combinada venta/invendido se separa: una línea de venta por
// fila legada y los invendidos del mismo producto sumados en una sola línea.
func TestReport_MigraLineasCombinadas(t *testing.T) {
	raw := normalize.RawReport{
		Month: "2024-11",
		Lines: []normalize.RawCombinedLine{
			{ProductID: "tarta", QuantitySold: f(10), QuantityUnsold: f(2), UnitPrice: f(5), IsTvaSubject: bp(true)},
			{ProductID: "tarta", QuantitySold: f(4), QuantityUnsold: f(1), UnitPrice: f(6)},
			{ProductID: "flan", QuantitySold: f(3), UnitPrice: f(3)},
		},
	}

	r := normalize.Report(raw)

	require.Len(t, r.SaleLines, 3)
	assert.Equal(t, 10.0, r.SaleLines[0].Quantity)
	assert.NotEmpty(t, r.SaleLines[0].ID, "las filas sin ID reciben uno sintetizado")
	require.NotNil(t, r.SaleLines[0].IsTvaSubject)
	assert.True(t, *r.SaleLines[0].IsTvaSubject)

	require.Len(t, r.UnsoldLines, 1)
	assert.Equal(t, "tarta", r.UnsoldLines[0].ProductID)
	assert.Equal(t, 3.0, r.UnsoldLines[0].Quantity) // 2 + 1 sumados
}

func TestReport_PreservaTotalesCongelados(t *testing.T) {
	mode := 1
	raw := normalize.RawReport{
		ID:       "rep1",
		Month:    "2024-11",
		IsLocked: bp(true),
		Totals: &normalize.RawFrozenTotals{
			RevenueHT: f(100),
			NetResult: f(40),
			CostMode:  &mode,
			FrozenAt:  "2024-12-01T00:00:00Z",
		},
	}

	r := normalize.Report(raw)

	assert.True(t, r.IsLocked)
	require.NotNil(t, r.Totals)
	assert.Equal(t, 100.0, r.Totals.RevenueHT)
	assert.Equal(t, 40.0, r.Totals.NetResult)
	assert.Equal(t, entity.CostModeActualSpend, r.Totals.CostMode)
	assert.Equal(t, "2024-12-01T00:00:00Z", r.Totals.FrozenAt)
}

func TestReport_ModoDeCostoDesconocidoCaeACalculado(t *testing.T) {
	mode := 9
	r := normalize.Report(normalize.RawReport{Month: "2024-11", CostMode: &mode})
	assert.Equal(t, entity.CostModeCalculated, r.CostMode)
}

// La foto congelada aplica la misma validación de modo que el reporte vivo.
func TestReport_ModoCongeladoFueraDeRangoCaeACalculado(t *testing.T) {
	mode := 9
	r := normalize.Report(normalize.RawReport{
		Month:    "2024-11",
		IsLocked: bp(true),
		Totals: &normalize.RawFrozenTotals{
			RevenueHT: f(100),
			CostMode:  &mode,
			FrozenAt:  "2024-12-01T00:00:00Z",
		},
	})

	require.NotNil(t, r.Totals)
	assert.Equal(t, entity.CostModeCalculated, r.Totals.CostMode)
}

// ── Order ────────────────────────────────────────────────────────────────────

func TestOrder_DescartaLineasSinCantidad(t *testing.T) {
	o := normalize.Order(normalize.RawOrder{
		ID:     "o1",
		Status: "pending",
		Items: []normalize.RawOrderItem{
			{ProductID: "tarta", Quantity: f(2), Price: f(15)},
			{ProductID: "croissant", Quantity: f(0), Price: f(3)},
			{ProductID: "baguette", Quantity: f(-1), Price: f(1)},
			{ProductID: "brioche", Price: f(4)},
		},
	})

	require.Len(t, o.Items, 1)
	assert.Equal(t, "tarta", o.Items[0].ProductID)
	assert.Equal(t, 2.0, o.Items[0].Quantity)
}

func TestOrder_EstadoDesconocidoCaeAPendiente(t *testing.T) {
	o := normalize.Order(normalize.RawOrder{ID: "o1", Status: "shipped"})
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

// ── Idempotencia ─────────────────────────────────────────────────────────────

// Propiedad central del pipeline: normalizar dos veces es normalizar una vez,
// para cada tipo de entidad, pasando por un ciclo JSON como hace la
// persistencia real.
func TestNormalize_Idempotencia(t *testing.T) {
	settingsRaw := &normalize.RawSettings{
		TaxRate:        f(12),
		IsTvaSubject:   bp(true),
		DefaultTvaRate: f(20),
		PricingMode:    sp("salary"),
		FixedCosts:     []normalize.RawFixedCost{{Label: "alquiler", Amount: f(800)}},
	}
	settings := normalize.Settings(settingsRaw)

	t.Run("settings", func(t *testing.T) {
		var again normalize.RawSettings
		reencode(t, settings, &again)
		assert.Equal(t, settings, normalize.Settings(&again))
	})

	t.Run("ingredient", func(t *testing.T) {
		ing := normalize.Ingredient(normalize.RawIngredient{
			ID: "i1", Name: "harina", Unit: "kg", Price: f(12),
			PriceBasis: sp("ttc"), TvaRate: f(20),
		}, settings)
		var again normalize.RawIngredient
		reencode(t, ing, &again)
		assert.Equal(t, ing, normalize.Ingredient(again, settings))
	})

	t.Run("purchase", func(t *testing.T) {
		p := normalize.Purchase(normalize.RawPurchase{
			ID: "c1", Date: "2025-01-10", IngredientID: "i1",
			Quantity: f(3), Price: f(33), PriceBasis: sp("ttc"), TvaRate: f(10),
		}, settings)
		var again normalize.RawPurchase
		reencode(t, p, &again)
		assert.Equal(t, p, normalize.Purchase(again, settings))
	})

	t.Run("recipe", func(t *testing.T) {
		r := normalize.Recipe(normalize.RawRecipe{
			ID: "r1", BatchYield: f(10), LossPercentage: f(5),
			Ingredients: []normalize.RawRecipeIngredient{{IngredientID: "i1", Quantity: f(500)}},
		})
		var again normalize.RawRecipe
		reencode(t, r, &again)
		assert.Equal(t, r, normalize.Recipe(again))
	})

	t.Run("product", func(t *testing.T) {
		p := normalize.Product(normalize.RawProduct{
			ID: "p1", Name: "tarta", RecipeID: "r1",
			PackagingCost: f(0.5), LossRate: f(10), StandardPrice: f(4.5), TvaRate: f(5.5),
		})
		var again normalize.RawProduct
		reencode(t, p, &again)
		assert.Equal(t, p, normalize.Product(again))
	})

	t.Run("report", func(t *testing.T) {
		r := normalize.Report(normalize.RawReport{
			Month: "2024-11",
			Lines: []normalize.RawCombinedLine{
				{ProductID: "tarta", QuantitySold: f(10), QuantityUnsold: f(2), UnitPrice: f(5)},
			},
		})
		var again normalize.RawReport
		reencode(t, r, &again)
		assert.Equal(t, r, normalize.Report(again))
	})

	t.Run("dataset", func(t *testing.T) {
		ds := normalize.Dataset(normalize.RawDataset{
			Settings:    settingsRaw,
			Ingredients: []normalize.RawIngredient{{ID: "i1", Unit: "kg", Price: f(10)}},
			Recipes:     []normalize.RawRecipe{{ID: "r1", BatchYield: f(10)}},
			Products:    []normalize.RawProduct{{ID: "p1", RecipeID: "r1"}},
			Orders:      []normalize.RawOrder{{ID: "o1", Status: "completed"}},
		})
		var again normalize.RawDataset
		reencode(t, ds, &again)
		assert.Equal(t, ds, normalize.Dataset(again))
	})
}
