package stockledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/stockledger"
)

func fixture() ([]entity.Product, []entity.Recipe, []entity.Ingredient) {
	products := []entity.Product{
		{ID: "tarta", RecipeID: "r-tarta"},
		{ID: "flan", RecipeID: "r-flan", LossRate: 20},
	}
	recipes := []entity.Recipe{
		{
			ID:         "r-tarta",
			BatchYield: 10,
			Ingredients: []entity.RecipeIngredient{
				{IngredientID: "harina", Quantity: 500}, // g
				{IngredientID: "huevo", Quantity: 2},    // piezas
			},
		},
		{
			ID:         "r-flan",
			BatchYield: 4,
			Ingredients: []entity.RecipeIngredient{
				{IngredientID: "leche", Quantity: 1000}, // ml
			},
		},
	}
	ingredients := []entity.Ingredient{
		{ID: "harina", Unit: entity.UnitKilogram, Quantity: 5},
		{ID: "huevo", Unit: entity.UnitPiece, Quantity: 30},
		{ID: "leche", Unit: entity.UnitLiter, Quantity: 2},
	}
	return products, recipes, ingredients
}

func usageFor(t *testing.T, usages []stockledger.IngredientUsage, id string) float64 {
	t.Helper()
	for _, u := range usages {
		if u.IngredientID == id {
			return u.Quantity
		}
	}
	t.Fatalf("no hay consumo para %s", id)
	return 0
}

// La explotación de producción convierte las cantidades de receta (unidades
// base) en unidades de stock, con ratio cantidad/rendimiento y el
// multiplicador de pérdida del producto.
func TestComputeProductionIngredientUsage(t *testing.T) {
	products, recipes, ingredients := fixture()

	res := stockledger.ComputeProductionIngredientUsage(
		[]stockledger.ProductionRequest{
			{ProductID: "tarta", Quantity: 5}, // ratio 0.5
			{ProductID: "flan", Quantity: 8},  // ratio 2, pérdida 20% -> x1.25
		},
		products, recipes, ingredients,
	)

	require.Empty(t, res.MissingProducts)
	require.Empty(t, res.MissingRecipes)
	require.Empty(t, res.MissingIngredients)

	// 500 g x 0.5 = 250 g = 0.25 kg
	assert.InDelta(t, 0.25, usageFor(t, res.Usages, "harina"), 1e-9)
	// 2 piezas x 0.5 = 1
	assert.InDelta(t, 1.0, usageFor(t, res.Usages, "huevo"), 1e-9)
	// 1000 ml x 2 x 1.25 = 2500 ml = 2.5 l
	assert.InDelta(t, 2.5, usageFor(t, res.Usages, "leche"), 1e-9)
}

// Los consumos del mismo ingrediente se acumulan a través de las solicitudes
// y se redondean al epsilon fijo de 6 decimales.
func TestComputeProductionIngredientUsage_AcumulaYRedondea(t *testing.T) {
	products, recipes, ingredients := fixture()

	res := stockledger.ComputeProductionIngredientUsage(
		[]stockledger.ProductionRequest{
			{ProductID: "tarta", Quantity: 1},
			{ProductID: "tarta", Quantity: 2},
		},
		products, recipes, ingredients,
	)

	// 500 g x (0.1 + 0.2) = 150 g = 0.15 kg
	assert.Equal(t, 0.15, usageFor(t, res.Usages, "harina"))
}

// Las referencias colgantes no abortan el cálculo: se recogen en conjuntos
// "faltantes" deduplicados y el resto del resultado sigue siendo utilizable.
func TestComputeProductionIngredientUsage_ReferenciasFaltantes(t *testing.T) {
	products, recipes, _ := fixture()
	products = append(products, entity.Product{ID: "sin-receta", RecipeID: "r-borrada"})

	res := stockledger.ComputeProductionIngredientUsage(
		[]stockledger.ProductionRequest{
			{ProductID: "fantasma", Quantity: 1},
			{ProductID: "fantasma", Quantity: 2},
			{ProductID: "sin-receta", Quantity: 1},
			{ProductID: "tarta", Quantity: 10},
		},
		products, recipes, nil, // sin ingredientes: todos faltan
	)

	assert.Equal(t, []string{"fantasma"}, res.MissingProducts)
	assert.Equal(t, []string{"r-borrada"}, res.MissingRecipes)
	assert.ElementsMatch(t, []string{"harina", "huevo"}, res.MissingIngredients)
	assert.Empty(t, res.Usages)
}

// Un faltante se reporta exactamente cuando disponible + 1e-9 < requerido,
// con Missing == requerido - disponible.
func TestStockShortages(t *testing.T) {
	ingredients := []entity.Ingredient{
		{ID: "harina", Quantity: 1},
		{ID: "huevo", Quantity: 10},
	}
	usages := []stockledger.IngredientUsage{
		{IngredientID: "harina", Quantity: 2.5},
		{IngredientID: "huevo", Quantity: 10}, // justo alcanza
	}

	shortages := stockledger.StockShortages(ingredients, usages)

	require.Len(t, shortages, 1)
	assert.Equal(t, "harina", shortages[0].IngredientID)
	assert.Equal(t, 2.5, shortages[0].Required)
	assert.Equal(t, 1.0, shortages[0].Available)
	assert.InDelta(t, 1.5, shortages[0].Missing, 1e-12)
}

func TestStockShortages_ElEpsilonToleraRuidoDeFlotantes(t *testing.T) {
	ingredients := []entity.Ingredient{{ID: "harina", Quantity: 0.3}}
	// 0.1+0.2 > 0.3 en flotantes; el epsilon lo absorbe.
	usages := []stockledger.IngredientUsage{{IngredientID: "harina", Quantity: 0.1 + 0.2}}

	assert.Empty(t, stockledger.StockShortages(ingredients, usages))
}

// Consumir resta con piso en cero y devuelve una colección nueva: la original
// no se toca.
func TestApplyIngredientUsage_Consume(t *testing.T) {
	ingredients := []entity.Ingredient{
		{ID: "harina", Quantity: 5},
		{ID: "huevo", Quantity: 1},
		{ID: "leche", Quantity: 2},
	}
	usages := []stockledger.IngredientUsage{
		{IngredientID: "harina", Quantity: 1.5},
		{IngredientID: "huevo", Quantity: 3}, // más de lo disponible
	}

	out := stockledger.ApplyIngredientUsage(ingredients, usages, stockledger.ModeConsume)

	assert.Equal(t, 3.5, out[0].Quantity)
	assert.Zero(t, out[1].Quantity) // el stock nunca queda negativo
	assert.Equal(t, 2.0, out[2].Quantity)
	assert.Equal(t, 5.0, ingredients[0].Quantity, "la colección original no debe mutarse")
}

// Consumir y restaurar son inversos (dentro del epsilon de redondeo): borrar
// un lote de producción revierte exactamente su efecto.
func TestApplyIngredientUsage_ConsumirRestaurarEsInverso(t *testing.T) {
	ingredients := []entity.Ingredient{
		{ID: "harina", Quantity: 5.123456},
		{ID: "leche", Quantity: 2},
	}
	usages := []stockledger.IngredientUsage{
		{IngredientID: "harina", Quantity: 1.000001},
		{IngredientID: "leche", Quantity: 0.333333},
	}

	consumed := stockledger.ApplyIngredientUsage(ingredients, usages, stockledger.ModeConsume)
	restored := stockledger.ApplyIngredientUsage(consumed, usages, stockledger.ModeRestore)

	for i := range ingredients {
		assert.InDelta(t, ingredients[i].Quantity, restored[i].Quantity, 1e-6, "ingrediente %s", ingredients[i].ID)
	}
}
