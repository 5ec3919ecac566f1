package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/usecase"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
	"github.com/tu-usuario/costeo-pro/internal/domain/report"
	"github.com/tu-usuario/costeo-pro/internal/infrastructure/pdf"
)

// ReportHandler maneja la reconciliación mensual y su PDF.
type ReportHandler struct {
	uc        *usecase.ReportUseCase
	catalogUC *usecase.CatalogUseCase
	pdfGen    *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase, catalogUC *usecase.CatalogUseCase, pdfGen *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, catalogUC: catalogUC, pdfGen: pdfGen}
}

// View devuelve la vista del mes: congelada, fresca o sembrada.
func (h *ReportHandler) View(c *fiber.Ctx) error {
	view, err := h.uc.View(c.Context(), c.Params("month"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(view)
}

// Save guarda el borrador del mes. 409 si el reporte está bloqueado.
func (h *ReportHandler) Save(c *fiber.Ctx) error {
	var raw normalize.RawReport
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	raw.Month = c.Params("month")
	rep, err := h.uc.Save(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(rep)
}

// Freeze congela los totales del mes y bloquea el reporte.
func (h *ReportHandler) Freeze(c *fiber.Ctx) error {
	rep, err := h.uc.Freeze(c.Context(), c.Params("month"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(rep)
}

// Unfreeze desbloquea el mes y descarta la foto congelada.
func (h *ReportHandler) Unfreeze(c *fiber.Ctx) error {
	rep, err := h.uc.Unfreeze(c.Context(), c.Params("month"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(rep)
}

// AppendSaleLine agrega una venta tardía al mes, bloqueado o no.
func (h *ReportHandler) AppendSaleLine(c *fiber.Ctx) error {
	var line entity.SaleLine
	if err := c.BodyParser(&line); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.AppendSaleLine(c.Context(), c.Params("month"), line)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(rep)
}

// PDF genera el resumen imprimible del mes. Para un mes bloqueado imprime la
// foto congelada; para uno abierto, los totales frescos.
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	view, err := h.uc.View(c.Context(), c.Params("month"))
	if err != nil {
		return mapError(c, err)
	}
	var totals report.Totals
	switch {
	case view.Frozen != nil:
		totals = totalsFromFrozen(*view.Frozen)
	case view.Fresh != nil:
		totals = *view.Fresh
	}

	ds, err := h.catalogUC.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	names := make(map[string]string, len(ds.Products))
	for _, p := range ds.Products {
		names[p.ID] = p.Name
	}

	doc, err := h.pdfGen.GenerateMonthlyReportPDF(view.Report, totals, names)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-`+view.Report.Month+`.pdf"`)
	return c.Send(doc)
}

func totalsFromFrozen(f entity.FrozenTotals) report.Totals {
	return report.Totals{
		RevenueTTC:           f.RevenueTTC,
		RevenueHT:            f.RevenueHT,
		TvaCollected:         f.TvaCollected,
		FoodCost:             f.FoodCost,
		PackagingCost:        f.PackagingCost,
		SocialCharges:        f.SocialCharges,
		GrossMargin:          f.GrossMargin,
		ActualFixedCostTotal: f.ActualFixedCostTotal,
		NetResult:            f.NetResult,
	}
}
