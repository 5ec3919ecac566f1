package usecase

import (
	"context"

	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
	"github.com/tu-usuario/costeo-pro/internal/domain/pricing"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// CatalogUseCase casos de uso del catálogo (ingredientes, recetas, productos,
// pedidos, ajustes). Toda mutación pasa por el pipeline de normalización
// antes de persistir; las métricas se recalculan bajo demanda, nunca se
// cachean.
type CatalogUseCase struct {
	repo repository.DatasetRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.DatasetRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Dataset devuelve el conjunto de datos completo (ya normalizado por el
// adaptador de persistencia).
func (uc *CatalogUseCase) Dataset(ctx context.Context) (*entity.Dataset, error) {
	return uc.repo.Load(ctx)
}

// SaveIngredient crea o reemplaza un ingrediente. El registro entra en forma
// cruda y sale normalizado: el costo por unidad base se recalcula siempre
// desde precio y unidad.
func (uc *CatalogUseCase) SaveIngredient(ctx context.Context, raw normalize.RawIngredient) (*entity.Ingredient, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	ing := normalize.Ingredient(raw, ds.Settings)
	if existing := ds.IngredientByID(ing.ID); existing != nil {
		*existing = ing
	} else {
		ds.Ingredients = append(ds.Ingredients, ing)
	}
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &ing, nil
}

// DeleteIngredient elimina un ingrediente. Las recetas que lo referencien
// quedan con la referencia colgante: los motores la omiten por diseño.
func (uc *CatalogUseCase) DeleteIngredient(ctx context.Context, id string) error {
	return uc.deleteByID(ctx, id, func(ds *entity.Dataset) bool {
		for i := range ds.Ingredients {
			if ds.Ingredients[i].ID == id {
				ds.Ingredients = append(ds.Ingredients[:i], ds.Ingredients[i+1:]...)
				return true
			}
		}
		return false
	})
}

// SaveRecipe crea o reemplaza una receta.
func (uc *CatalogUseCase) SaveRecipe(ctx context.Context, raw normalize.RawRecipe) (*entity.Recipe, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	recipe := normalize.Recipe(raw)
	if existing := ds.RecipeByID(recipe.ID); existing != nil {
		*existing = recipe
	} else {
		ds.Recipes = append(ds.Recipes, recipe)
	}
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe elimina una receta.
func (uc *CatalogUseCase) DeleteRecipe(ctx context.Context, id string) error {
	return uc.deleteByID(ctx, id, func(ds *entity.Dataset) bool {
		for i := range ds.Recipes {
			if ds.Recipes[i].ID == id {
				ds.Recipes = append(ds.Recipes[:i], ds.Recipes[i+1:]...)
				return true
			}
		}
		return false
	})
}

// SaveProduct crea o reemplaza un producto.
func (uc *CatalogUseCase) SaveProduct(ctx context.Context, raw normalize.RawProduct) (*entity.Product, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product := normalize.Product(raw)
	if existing := ds.ProductByID(product.ID); existing != nil {
		*existing = product
	} else {
		ds.Products = append(ds.Products, product)
	}
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct elimina un producto.
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.deleteByID(ctx, id, func(ds *entity.Dataset) bool {
		for i := range ds.Products {
			if ds.Products[i].ID == id {
				ds.Products = append(ds.Products[:i], ds.Products[i+1:]...)
				return true
			}
		}
		return false
	})
}

// SaveOrder crea o reemplaza un pedido.
func (uc *CatalogUseCase) SaveOrder(ctx context.Context, raw normalize.RawOrder) (*entity.Order, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	order := normalize.Order(raw)
	replaced := false
	for i := range ds.Orders {
		if ds.Orders[i].ID == order.ID {
			ds.Orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		ds.Orders = append(ds.Orders, order)
	}
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateSettings reemplaza los ajustes globales. Las métricas y reportes
// abiertos se recalculan al vuelo en la siguiente lectura; nada derivado se
// persiste aquí.
func (uc *CatalogUseCase) UpdateSettings(ctx context.Context, raw *normalize.RawSettings) (*entity.GlobalSettings, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	ds.Settings = normalize.Settings(raw)
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &ds.Settings, nil
}

// RecordPurchase registra una compra: agrega el evento, suma la cantidad al
// stock del ingrediente y actualiza su precio por unidad de stock con el de
// la compra (precio total / cantidad), recalculando el costo derivado.
func (uc *CatalogUseCase) RecordPurchase(ctx context.Context, raw normalize.RawPurchase) (*entity.Purchase, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	purchase := normalize.Purchase(raw, ds.Settings)
	ing := ds.IngredientByID(purchase.IngredientID)
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	ing.Quantity += purchase.Quantity
	if purchase.Quantity > 0 {
		ing.Price = purchase.Price / purchase.Quantity
		ing.CostPerBaseUnit = costing.CostPerBaseUnit(ing.Price, 1, ing.Unit)
	}
	ds.Purchases = append(ds.Purchases, purchase)
	if err := uc.repo.Save(ctx, ds); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Metrics calcula el desglose económico de un producto contra el catálogo
// actual.
func (uc *CatalogUseCase) Metrics(ctx context.Context, productID string) (*dto.ProductMetrics, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product := ds.ProductByID(productID)
	if product == nil {
		return nil, domain.ErrNotFound
	}
	m := buildMetrics(*product, ds)
	return &m, nil
}

// CatalogMetrics recalcula las métricas de todos los productos del catálogo.
func (uc *CatalogUseCase) CatalogMetrics(ctx context.Context) ([]dto.ProductMetrics, error) {
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductMetrics, 0, len(ds.Products))
	for _, p := range ds.Products {
		out = append(out, buildMetrics(p, ds))
	}
	return out, nil
}

func buildMetrics(product entity.Product, ds *entity.Dataset) dto.ProductMetrics {
	recipe := ds.RecipeByID(product.RecipeID)
	return dto.ProductMetrics{
		ProductID:     product.ID,
		ProductName:   product.Name,
		StandardPrice: product.StandardPrice,
		Breakdown:     pricing.Compute(product, recipe, ds.Ingredients, ds.Settings, ds.Products),
	}
}

func (uc *CatalogUseCase) deleteByID(ctx context.Context, id string, remove func(*entity.Dataset) bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	ds, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !remove(ds) {
		return domain.ErrNotFound
	}
	return uc.repo.Save(ctx, ds)
}
