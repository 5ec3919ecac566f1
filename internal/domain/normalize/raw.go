package normalize

// Formas crudas de los registros tal como pudieron persistirse en cualquier
// versión histórica. Cada Raw* es la unión etiquetada de la forma actual y de
// los campos legados que su migración consume; los opcionales son punteros
// para distinguir "ausente" de "cero". Solo este paquete conoce estas formas:
// los motores reciben exclusivamente entidades ya normalizadas.

// RawFixedCost costo fijo, forma actual o parcial.
type RawFixedCost struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Amount *float64 `json:"amount"`
}

// RawSettings ajustes globales. Campos legados: PricingMode e
// IncludeLaborInCost (pareja reemplazada por PricingStrategy).
type RawSettings struct {
	TaxRate             *float64       `json:"taxRate"`
	IsTvaSubject        *bool          `json:"isTvaSubject"`
	DefaultTvaRate      *float64       `json:"defaultTvaRate"`
	HourlyRate          *float64       `json:"hourlyRate"`
	FixedCosts          []RawFixedCost `json:"fixedCosts"`
	PricingStrategy     *string        `json:"pricingStrategy"`
	TargetMonthlySalary *float64       `json:"targetMonthlySalary"`

	// Legado (pre-estrategia). IncludeLaborInCost se descarta: la mano de
	// obra siempre entra al costo completo en el modelo actual.
	PricingMode        *string `json:"pricingMode"`
	IncludeLaborInCost *bool   `json:"includeLaborInCost"`
}

// RawIngredient ingrediente. Campos legados: PriceBasis ("ht"|"ttc") y
// TvaRate, de cuando el precio se guardaba con TVA incluida.
type RawIngredient struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Unit             string   `json:"unit"`
	Price            *float64 `json:"price"`
	Quantity         *float64 `json:"quantity"`
	CostPerBaseUnit  *float64 `json:"costPerBaseUnit"` // se ignora: siempre se recalcula
	HelperVatRate    *float64 `json:"helperVatRate"`
	NeedsPriceReview *bool    `json:"needsPriceReview"`

	// Legado.
	PriceBasis *string  `json:"priceBasis"`
	TvaRate    *float64 `json:"tvaRate"`
}

// RawPurchase compra. Misma corrección de base TTC legada que el ingrediente.
type RawPurchase struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	IngredientID string   `json:"ingredientId"`
	Quantity     *float64 `json:"quantity"`
	Price        *float64 `json:"price"`

	// Legado.
	PriceBasis *string  `json:"priceBasis"`
	TvaRate    *float64 `json:"tvaRate"`
}

// RawRecipeIngredient línea de receta.
type RawRecipeIngredient struct {
	IngredientID string   `json:"ingredientId"`
	Quantity     *float64 `json:"quantity"`
}

// RawRecipe receta.
type RawRecipe struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Ingredients    []RawRecipeIngredient `json:"ingredients"`
	BatchYield     *float64              `json:"batchYield"`
	LossPercentage *float64              `json:"lossPercentage"`
}

// RawProduct producto. Campo legado: VatRate, un override de TVA por producto
// de cuando la TVA no se modelaba globalmente; se descarta en favor de
// TvaRate + DefaultTvaRate.
type RawProduct struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	RecipeID              string   `json:"recipeId"`
	Category              string   `json:"category"`
	LaborTimeMinutes      *float64 `json:"laborTimeMinutes"`
	PackagingCost         *float64 `json:"packagingCost"`
	DeliveryCost          *float64 `json:"deliveryCost"`
	LossRate              *float64 `json:"lossRate"`
	UnsoldEstimate        *float64 `json:"unsoldEstimate"`
	PackagingUsedOnUnsold *bool    `json:"packagingUsedOnUnsold"`
	ApplyLossToPackaging  *bool    `json:"applyLossToPackaging"`
	TargetMargin          *float64 `json:"targetMargin"`
	StandardPrice         *float64 `json:"standardPrice"`
	EstimatedMonthlySales *float64 `json:"estimatedMonthlySales"`
	TvaRate               *float64 `json:"tvaRate"`

	// Legado, descartado.
	VatRate *float64 `json:"vatRate"`
}

// RawOrderItem línea de pedido.
type RawOrderItem struct {
	ProductID string   `json:"productId"`
	Quantity  *float64 `json:"quantity"`
	Price     *float64 `json:"price"`
}

// RawOrder pedido.
type RawOrder struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"`
	CustomerName string         `json:"customerName"`
	Status       string         `json:"status"`
	TvaRate      *float64       `json:"tvaRate"`
	Items        []RawOrderItem `json:"items"`
}

// RawSaleLine línea de venta, forma actual.
type RawSaleLine struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"productId"`
	Quantity     *float64 `json:"quantity"`
	UnitPrice    *float64 `json:"unitPrice"`
	IsTvaSubject *bool    `json:"isTvaSubject"`
}

// RawUnsoldLine línea de invendidos, forma actual.
type RawUnsoldLine struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Quantity  *float64 `json:"quantity"`
}

// RawCombinedLine forma legada de línea de reporte: venta e invendidos juntos
// en una sola fila. La migración la separa en SaleLine + UnsoldLine (los
// invendidos del mismo producto se suman a través de todas las filas).
type RawCombinedLine struct {
	ProductID      string   `json:"productId"`
	QuantitySold   *float64 `json:"quantitySold"`
	QuantityUnsold *float64 `json:"quantityUnsold"`
	UnitPrice      *float64 `json:"unitPrice"`
	IsTvaSubject   *bool    `json:"isTvaSubject"`
}

// RawInventoryEntry conteo de inventario.
type RawInventoryEntry struct {
	IngredientID  string   `json:"ingredientId"`
	StartQuantity *float64 `json:"startQuantity"`
	EndQuantity   *float64 `json:"endQuantity"`
}

// RawFrozenTotals totales congelados; se preservan tal cual si existen.
type RawFrozenTotals struct {
	RevenueTTC           *float64 `json:"revenueTTC"`
	RevenueHT            *float64 `json:"revenueHT"`
	TvaCollected         *float64 `json:"tvaCollected"`
	FoodCost             *float64 `json:"foodCost"`
	PackagingCost        *float64 `json:"packagingCost"`
	SocialCharges        *float64 `json:"socialCharges"`
	GrossMargin          *float64 `json:"grossMargin"`
	ActualFixedCostTotal *float64 `json:"actualFixedCostTotal"`
	NetResult            *float64 `json:"netResult"`
	CostMode             *int     `json:"costMode"`
	FrozenAt             string   `json:"frozenAt"`
}

// RawReport reporte mensual, forma actual o legada (Lines combinadas).
type RawReport struct {
	ID                    string              `json:"id"`
	Month                 string              `json:"month"`
	SaleLines             []RawSaleLine       `json:"saleLines"`
	UnsoldLines           []RawUnsoldLine     `json:"unsoldLines"`
	ActualFixedCosts      []RawFixedCost      `json:"actualFixedCosts"`
	ActualIngredientSpend *float64            `json:"actualIngredientSpend"`
	InventoryEntries      []RawInventoryEntry `json:"inventoryEntries"`
	CostMode              *int                `json:"costMode"`
	IncludePendingOrders  *bool               `json:"includePendingOrders"`
	IsLocked              *bool               `json:"isLocked"`
	Totals                *RawFrozenTotals    `json:"totals"`

	// Legado: líneas combinadas venta+invendido.
	Lines []RawCombinedLine `json:"lines"`
}

// RawProductionBatch lote de producción.
type RawProductionBatch struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	ProductID     string   `json:"productId"`
	Quantity      *float64 `json:"quantity"`
	SourceOrderID string   `json:"sourceOrderId"`
}

// RawDataset el conjunto de datos completo en forma cruda.
type RawDataset struct {
	Ingredients       []RawIngredient      `json:"ingredients"`
	Recipes           []RawRecipe          `json:"recipes"`
	Products          []RawProduct         `json:"products"`
	Purchases         []RawPurchase        `json:"purchases"`
	ProductionBatches []RawProductionBatch `json:"productionBatches"`
	Orders            []RawOrder           `json:"orders"`
	Reports           []RawReport          `json:"reports"`
	Settings          *RawSettings         `json:"settings"`
}
