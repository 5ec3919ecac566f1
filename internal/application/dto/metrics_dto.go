package dto

import "github.com/tu-usuario/costeo-pro/internal/domain/pricing"

// ProductMetrics desglose económico de un producto, listo para la UI.
// StandardPrice se repite aquí para que la UI compare el precio fijado a mano
// contra el recomendado sin otra consulta.
type ProductMetrics struct {
	ProductID     string            `json:"productId"`
	ProductName   string            `json:"productName"`
	StandardPrice *float64          `json:"standardPrice,omitempty"`
	Breakdown     pricing.Breakdown `json:"breakdown"`
}
