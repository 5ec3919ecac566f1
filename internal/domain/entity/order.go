package entity

// Estados de un pedido. Un pedido completado siempre cuenta en la agregación
// mensual, uno cancelado nunca, uno pendiente solo bajo petición explícita.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem línea de pedido. Price es el precio unitario cobrado (TTC si el
// pedido está sujeto a TVA).
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"` // > 0
	Price     float64 `json:"price"`    // >= 0
}

// Order compromiso de un cliente. TvaRate es una tasa única para todo el pedido.
type Order struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"` // "YYYY-MM-DD"
	CustomerName string      `json:"customerName,omitempty"`
	Status       string      `json:"status"`
	TvaRate      float64     `json:"tvaRate"`
	Items        []OrderItem `json:"items"`
}
