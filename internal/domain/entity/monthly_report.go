package entity

// CostMode selector del costo materia del mes. Los tres modos son alternativas
// excluyentes para la misma línea "costo materia", nunca se suman.
type CostMode int

const (
	CostModeCalculated         CostMode = 0 // costo teórico por recetas
	CostModeActualSpend        CostMode = 1 // gasto real de ingredientes capturado a mano
	CostModeInventoryVariation CostMode = 2 // variación de inventario valorizada
)

// SaleLine unidades vendidas de un producto en el mes.
// IsTvaSubject es una foto (snapshot) del régimen TVA al momento de guardar la
// línea: si está presente manda sobre el ajuste global actual, para que
// reabrir un reporte histórico bajo un régimen cambiado no reescriba lo que
// realmente se cobró.
type SaleLine struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"` // TTC si la línea está sujeta a TVA
	IsTvaSubject *bool   `json:"isTvaSubject,omitempty"`
}

// UnsoldLine unidades producidas y no vendidas de un producto en el mes.
type UnsoldLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// InventoryEntry conteo de inventario de un ingrediente (inicio y fin de mes),
// en unidades de stock.
type InventoryEntry struct {
	IngredientID  string  `json:"ingredientId"`
	StartQuantity float64 `json:"startQuantity"`
	EndQuantity   float64 `json:"endQuantity"`
}

// FrozenTotals totales congelados de un reporte mensual. Una vez guardados son
// inmutables: se releen tal cual, nunca se recalculan desde el catálogo vivo.
type FrozenTotals struct {
	RevenueTTC           float64  `json:"revenueTTC"`
	RevenueHT            float64  `json:"revenueHT"`
	TvaCollected         float64  `json:"tvaCollected"`
	FoodCost             float64  `json:"foodCost"`
	PackagingCost        float64  `json:"packagingCost"`
	SocialCharges        float64  `json:"socialCharges"`
	GrossMargin          float64  `json:"grossMargin"`
	ActualFixedCostTotal float64  `json:"actualFixedCostTotal"`
	NetResult            float64  `json:"netResult"`
	CostMode             CostMode `json:"costMode"`
	FrozenAt             string   `json:"frozenAt"` // RFC 3339
}

// MonthlyReport reconciliación de un mes ("YYYY-MM").
// Cuando IsLocked es true las líneas ya no se regeneran desde pedidos/catálogo;
// solo se agregan líneas nuevas por acción explícita del usuario.
type MonthlyReport struct {
	ID                    string          `json:"id"`
	Month                 string          `json:"month"`
	SaleLines             []SaleLine      `json:"saleLines"`
	UnsoldLines           []UnsoldLine    `json:"unsoldLines"`
	ActualFixedCosts      []FixedCostItem `json:"actualFixedCosts"`
	ActualIngredientSpend float64         `json:"actualIngredientSpend"`
	InventoryEntries      []InventoryEntry `json:"inventoryEntries"`
	CostMode              CostMode        `json:"costMode"`
	IncludePendingOrders  bool            `json:"includePendingOrders"`
	IsLocked              bool            `json:"isLocked"`
	Totals                *FrozenTotals   `json:"totals,omitempty"`
}
