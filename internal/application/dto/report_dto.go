package dto

import (
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/report"
)

// ReportView vista de un mes. Para un reporte bloqueado Frozen trae la foto
// persistida y Fresh va vacío; para uno abierto Fresh trae los totales
// recalculados al vuelo. Las dos cosas nunca se mezclan.
type ReportView struct {
	Report *entity.MonthlyReport `json:"report"`
	Fresh  *report.Totals        `json:"fresh,omitempty"`
	Frozen *entity.FrozenTotals  `json:"frozen,omitempty"`
	// Seeded indica que las líneas vienen sembradas desde los pedidos del
	// mes (reporte aún no guardado).
	Seeded bool `json:"seeded,omitempty"`
}
