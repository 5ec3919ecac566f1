package entity

// Estrategias de precio recomendado.
const (
	PricingStrategyMargin = "margin"
	PricingStrategySalary = "salary"
)

// FixedCostItem un costo fijo mensual (alquiler, seguro, ...).
type FixedCostItem struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"` // >= 0
}

// GlobalSettings parámetros globales del negocio.
// TaxRate (cargas sociales) y DefaultTvaRate se normalizan a [0,100).
type GlobalSettings struct {
	TaxRate             float64         `json:"taxRate"`      // cargas sociales sobre el CA HT, en %
	IsTvaSubject        bool            `json:"isTvaSubject"` // régimen TVA activo
	DefaultTvaRate      float64         `json:"defaultTvaRate"`
	HourlyRate          float64         `json:"hourlyRate"` // costo horario de mano de obra
	FixedCosts          []FixedCostItem `json:"fixedCosts"`
	PricingStrategy     string          `json:"pricingStrategy"` // margin | salary
	TargetMonthlySalary float64         `json:"targetMonthlySalary"`
}
