package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
	"github.com/tu-usuario/costeo-pro/internal/domain/stockledger"
)

// ProductionUseCase registra y revierte lotes de producción contra el libro
// de stock. Registrar consume ingredientes; borrar un lote restaura
// exactamente lo que ese lote consumió (mismo cálculo, modo inverso).
type ProductionUseCase struct {
	repo repository.DatasetRepository
	now  func() time.Time
}

// NewProductionUseCase construye el caso de uso. now permite fijar el reloj
// en pruebas.
func NewProductionUseCase(repo repository.DatasetRepository, now func() time.Time) *ProductionUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProductionUseCase{repo: repo, now: now}
}

// Record registra un lote: explota la solicitud en consumos por ingrediente,
// detecta faltantes (advertencia, no bloqueo), aplica los consumos al stock
// y agrega el lote al historial.
func (uc *ProductionUseCase) Record(ctx context.Context, req dto.ProductionRequest) (*dto.ProductionResponse, error) {
	if req.ProductID == "" || req.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	requests := []stockledger.ProductionRequest{{ProductID: req.ProductID, Quantity: req.Quantity}}
	result := stockledger.ComputeProductionIngredientUsage(requests, ds.Products, ds.Recipes, ds.Ingredients)
	shortages := stockledger.StockShortages(ds.Ingredients, result.Usages)
	ds.Ingredients = stockledger.ApplyIngredientUsage(ds.Ingredients, result.Usages, stockledger.ModeConsume)

	date := req.Date
	if date == "" {
		date = uc.now().Format("2006-01-02")
	}
	batch := entity.ProductionBatch{
		ID:            uuid.New().String(),
		Date:          date,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		SourceOrderID: req.SourceOrderID,
	}
	ds.ProductionBatches = append(ds.ProductionBatches, batch)

	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &dto.ProductionResponse{
		BatchID:            batch.ID,
		Usages:             result.Usages,
		Shortages:          shortages,
		MissingProducts:    result.MissingProducts,
		MissingRecipes:     result.MissingRecipes,
		MissingIngredients: result.MissingIngredients,
	}, nil
}

// Delete borra un lote y devuelve al stock lo que consumió. La restauración
// recalcula el consumo contra el catálogo ACTUAL: si la receta cambió desde
// que se registró el lote, lo restaurado sigue la receta vigente.
func (uc *ProductionUseCase) Delete(ctx context.Context, batchID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range ds.ProductionBatches {
		if ds.ProductionBatches[i].ID == batchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	batch := ds.ProductionBatches[idx]

	requests := []stockledger.ProductionRequest{{ProductID: batch.ProductID, Quantity: batch.Quantity}}
	result := stockledger.ComputeProductionIngredientUsage(requests, ds.Products, ds.Recipes, ds.Ingredients)
	ds.Ingredients = stockledger.ApplyIngredientUsage(ds.Ingredients, result.Usages, stockledger.ModeRestore)
	ds.ProductionBatches = append(ds.ProductionBatches[:idx], ds.ProductionBatches[idx+1:]...)

	return uc.repo.Save(ctx, ds)
}
