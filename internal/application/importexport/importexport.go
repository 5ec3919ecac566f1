// Package importexport exporta el conjunto de datos a JSON portable y lo
// reimporta con tolerancia a respaldos viejos: coerción de tipos, migración
// de formas legadas y normalización completa antes de persistir.
package importexport

import (
	"context"
	"encoding/json"

	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// Section una sección exportable del conjunto de datos.
type Section string

const (
	SectionIngredients Section = "ingredients"
	SectionRecipes     Section = "recipes"
	SectionProducts    Section = "products"
	SectionPurchases   Section = "purchases"
	SectionProduction  Section = "productionBatches"
	SectionOrders      Section = "orders"
	SectionReports     Section = "reports"
	SectionSettings    Section = "settings"
)

// UseCase casos de uso de exportación e importación.
type UseCase struct {
	repo repository.DatasetRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DatasetRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Export serializa las secciones pedidas (todas si sections va vacío) a un
// objeto JSON. El payload es el mismo formato que Import acepta.
func (uc *UseCase) Export(ctx context.Context, sections []Section) (json.RawMessage, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	wanted := func(s Section) bool {
		if len(sections) == 0 {
			return true
		}
		for _, w := range sections {
			if w == s {
				return true
			}
		}
		return false
	}
	payload := make(map[string]any)
	if wanted(SectionIngredients) {
		payload[string(SectionIngredients)] = ds.Ingredients
	}
	if wanted(SectionRecipes) {
		payload[string(SectionRecipes)] = ds.Recipes
	}
	if wanted(SectionProducts) {
		payload[string(SectionProducts)] = ds.Products
	}
	if wanted(SectionPurchases) {
		payload[string(SectionPurchases)] = ds.Purchases
	}
	if wanted(SectionProduction) {
		payload[string(SectionProduction)] = ds.ProductionBatches
	}
	if wanted(SectionOrders) {
		payload[string(SectionOrders)] = ds.Orders
	}
	if wanted(SectionReports) {
		payload[string(SectionReports)] = ds.Reports
	}
	if wanted(SectionSettings) {
		payload[string(SectionSettings)] = ds.Settings
	}
	return json.Marshal(payload)
}

// Import decodifica un respaldo, repara tipos (CoerceTree), migra las formas
// legadas vía normalización y REEMPLAZA las secciones presentes en el payload;
// las ausentes se conservan. Importar dos veces el mismo respaldo deja el
// estado idéntico.
func (uc *UseCase) Import(ctx context.Context, payload json.RawMessage) (*entity.Dataset, error) {
	var tree any
	if err := json.Unmarshal(payload, &tree); err != nil {
		return nil, domain.ErrInvalidInput
	}
	root, ok := CoerceTree(tree).(map[string]any)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	coerced, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	var raw normalize.RawDataset
	if err := json.Unmarshal(coerced, &raw); err != nil {
		return nil, domain.ErrInvalidInput
	}

	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	// Un respaldo sin ajustes se normaliza bajo los ajustes ACTUALES: la
	// recuperación de precios legados TTC depende del régimen TVA.
	if raw.Settings == nil {
		current, err := json.Marshal(ds.Settings)
		if err != nil {
			return nil, err
		}
		raw.Settings = &normalize.RawSettings{}
		if err := json.Unmarshal(current, raw.Settings); err != nil {
			return nil, err
		}
	}
	incoming := normalize.Dataset(raw)

	if _, ok := root[string(SectionSettings)]; ok {
		ds.Settings = incoming.Settings
	}
	if _, ok := root[string(SectionIngredients)]; ok {
		ds.Ingredients = incoming.Ingredients
	}
	if _, ok := root[string(SectionRecipes)]; ok {
		ds.Recipes = incoming.Recipes
	}
	if _, ok := root[string(SectionProducts)]; ok {
		ds.Products = incoming.Products
	}
	if _, ok := root[string(SectionPurchases)]; ok {
		ds.Purchases = incoming.Purchases
	}
	if _, ok := root[string(SectionProduction)]; ok {
		ds.ProductionBatches = incoming.ProductionBatches
	}
	if _, ok := root[string(SectionOrders)]; ok {
		ds.Orders = incoming.Orders
	}
	if _, ok := root[string(SectionReports)]; ok {
		ds.Reports = incoming.Reports
	}

	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}
