package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
	"github.com/tu-usuario/costeo-pro/internal/domain/report"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// ReportUseCase orquesta la reconciliación mensual. La regla de oro: un
// reporte bloqueado se RELEE (líneas y totales congelados tal cual fueron
// guardados); un reporte abierto se RECALCULA al vuelo; y un mes sin reporte
// se presenta sembrado desde los pedidos, sin persistir nada hasta que el
// usuario guarde.
type ReportUseCase struct {
	repo repository.DatasetRepository
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso. now permite fijar el reloj en
// pruebas.
func NewReportUseCase(repo repository.DatasetRepository, now func() time.Time) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{repo: repo, now: now}
}

// View devuelve la vista de un mes "YYYY-MM".
func (uc *ReportUseCase) View(ctx context.Context, month string) (*dto.ReportView, error) {
	if month == "" {
		return nil, domain.ErrInvalidInput
	}
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if rep := ds.ReportByMonth(month); rep != nil {
		if rep.IsLocked {
			// Bloqueado: solo la foto persistida, nada fresco.
			return &dto.ReportView{Report: rep, Frozen: rep.Totals}, nil
		}
		totals := uc.computeTotals(ds, *rep)
		return &dto.ReportView{Report: rep, Fresh: &totals}, nil
	}

	// Mes sin reporte: borrador sembrado desde los pedidos, no persistido.
	draft := entity.MonthlyReport{
		ID:        uuid.New().String(),
		Month:     month,
		SaleLines: report.SeedSaleLines(ds.Orders, month, ds.Settings, false),
	}
	totals := uc.computeTotals(ds, draft)
	return &dto.ReportView{Report: &draft, Fresh: &totals, Seeded: true}, nil
}

// Save guarda (crea o reemplaza) el borrador de un mes. Falla con
// ErrReportLocked si el reporte existente está bloqueado: un mes cerrado solo
// admite AppendSaleLine.
func (uc *ReportUseCase) Save(ctx context.Context, raw normalize.RawReport) (*entity.MonthlyReport, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	rep := normalize.Report(raw)
	if rep.Month == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing := ds.ReportByMonth(rep.Month); existing != nil {
		if existing.IsLocked {
			return nil, domain.ErrReportLocked
		}
		*existing = rep
	} else {
		ds.Reports = append(ds.Reports, rep)
	}
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Freeze congela los totales del mes con el modo de costo vigente del reporte
// y lo bloquea. Un mes ya congelado se rechaza: la foto nunca se reescribe.
func (uc *ReportUseCase) Freeze(ctx context.Context, month string) (*entity.MonthlyReport, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	rep := ds.ReportByMonth(month)
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	if rep.IsLocked {
		return nil, domain.ErrReportLocked
	}
	totals := uc.computeTotals(ds, *rep)
	frozen := report.Freeze(totals, rep.CostMode, uc.now())
	rep.Totals = &frozen
	rep.IsLocked = true
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return rep, nil
}

// Unfreeze desbloquea un mes congelado. La foto persistida se descarta: al
// volver a congelar se recalcula desde las líneas vigentes.
func (uc *ReportUseCase) Unfreeze(ctx context.Context, month string) (*entity.MonthlyReport, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	rep := ds.ReportByMonth(month)
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	if !rep.IsLocked {
		return nil, domain.ErrReportNotFrozen
	}
	rep.IsLocked = false
	rep.Totals = nil
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return rep, nil
}

// AppendSaleLine agrega una venta tardía a un mes, bloqueado o no. Es la única
// mutación permitida sobre un reporte bloqueado; la foto congelada NO se
// recalcula (la venta tardía quedará reflejada solo si el mes se descongela y
// se vuelve a congelar).
func (uc *ReportUseCase) AppendSaleLine(ctx context.Context, month string, line entity.SaleLine) (*entity.MonthlyReport, error) {
	if line.ProductID == "" || line.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	rep := ds.ReportByMonth(month)
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if line.IsTvaSubject == nil {
		subject := ds.Settings.IsTvaSubject
		line.IsTvaSubject = &subject
	}
	rep.SaleLines = append(rep.SaleLines, line)
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return rep, nil
}

func (uc *ReportUseCase) computeTotals(ds *entity.Dataset, rep entity.MonthlyReport) report.Totals {
	return report.ComputeTotals(report.Input{
		SaleLines:              rep.SaleLines,
		UnsoldLines:            rep.UnsoldLines,
		Products:               ds.Products,
		Recipes:                ds.Recipes,
		Ingredients:            ds.Ingredients,
		Settings:               ds.Settings,
		CostMode:               rep.CostMode,
		ActualFixedCosts:       rep.ActualFixedCosts,
		ActualIngredientSpend:  rep.ActualIngredientSpend,
		InventoryVariationCost: report.InventoryVariationCost(rep.InventoryEntries, ds.Ingredients),
	})
}
