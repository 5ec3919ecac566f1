// Package pdf genera el resumen mensual imprimible del negocio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Mes + estado (abierto/❄)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Producto | Cant | P.Unit TTC | Total TTC     │
//	│  TABLA INVENDIDOS: Producto | Cant                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: TTC / HT / TVA / materia / empaque / cargas        │
//	│           margen bruto / costos fijos / RESULTADO NETO       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"math"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el PDF del reporte mensual usando Maroto v2.
type MarotoReportGenerator struct {
	BusinessName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(businessName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{BusinessName: businessName}
}

// GenerateMonthlyReportPDF genera el PDF y devuelve sus bytes. totals son los
// totales a imprimir: frescos para un mes abierto, los congelados para uno
// bloqueado (el llamador decide; aquí no se recalcula nada).
func (g *MarotoReportGenerator) GenerateMonthlyReportPDF(
	rep *entity.MonthlyReport,
	totals report.Totals,
	productNames map[string]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte mensual "+rep.Month, true).
		WithAuthor(g.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.BusinessName, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("VENTAS"))
	m.AddRows(salesHeaderRow())
	for _, r := range salesRows(rep.SaleLines, productNames) {
		m.AddRows(r)
	}

	if len(rep.UnsoldLines) > 0 {
		m.AddRows(sectionTitleRow("INVENDIDOS"))
		for _, r := range unsoldRows(rep.UnsoldLines, productNames) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(totals) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(businessName string, rep *entity.MonthlyReport) core.Row {
	estado := "ABIERTO"
	if rep.IsLocked {
		estado = "CONGELADO"
		if rep.Totals != nil {
			estado += " el " + rep.Totals.FrozenAt
		}
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte mensual", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(rep.Month, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(estado, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		})),
	)
}

func salesHeaderRow() core.Row {
	cell := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray,
		}))
	}
	return row.New(6).Add(
		cell(6, "Producto", align.Left),
		cell(2, "Cant.", align.Right),
		cell(2, "P.Unit TTC", align.Right),
		cell(2, "Total TTC", align.Right),
	)
}

func salesRows(lines []entity.SaleLine, names map[string]string) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(productName(names, l.ProductID), props.Text{Size: 8})),
			col.New(2).Add(text.New(formatQty(l.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(formatMoney(l.Quantity*l.UnitPrice), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func unsoldRows(lines []entity.UnsoldLine, names map[string]string) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(productName(names, l.ProductID), props.Text{Size: 8})),
			col.New(2).Add(text.New(formatQty(l.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(4),
		))
	}
	return rows
}

func totalsRows(t report.Totals) []core.Row {
	entry := func(label string, v float64, bold bool) core.Row {
		style := fontstyle.Normal
		size := 8.5
		if bold {
			style = fontstyle.Bold
			size = 10
		}
		return row.New(5).Add(
			col.New(8).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Right, Right: 2})),
			col.New(4).Add(text.New(formatMoney(v), props.Text{Size: size, Style: style, Align: align.Right})),
		)
	}
	return []core.Row{
		entry("Ingresos TTC", t.RevenueTTC, false),
		entry("Ingresos HT", t.RevenueHT, false),
		entry("TVA recaudada", t.TvaCollected, false),
		entry("Costo materia", t.FoodCost, false),
		entry("Empaques", t.PackagingCost, false),
		entry("Cargas sociales", t.SocialCharges, false),
		entry("Margen bruto", t.GrossMargin, false),
		entry("Costos fijos reales", t.ActualFixedCostTotal, false),
		entry("RESULTADO NETO", t.NetResult, true),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func productName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatQty(v float64) string {
	// La conversión a int64 solo es confiable dentro del rango entero exacto
	// de float64.
	if math.Abs(v) < 1<<53 && v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
