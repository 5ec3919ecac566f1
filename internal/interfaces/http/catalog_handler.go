package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/application/usecase"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
)

// CatalogHandler maneja ingredientes, recetas, productos, pedidos, compras,
// ajustes y métricas. Los cuerpos de entrada se decodifican a las formas
// crudas: cualquier forma histórica válida es aceptada y normalizada.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler del catálogo.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Dataset devuelve el conjunto de datos completo.
func (h *CatalogHandler) Dataset(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ds)
}

// ListIngredients devuelve todos los ingredientes.
func (h *CatalogHandler) ListIngredients(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ds.Ingredients)
}

// ListRecipes devuelve todas las recetas.
func (h *CatalogHandler) ListRecipes(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ds.Recipes)
}

// ListProducts devuelve todos los productos.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ds.Products)
}

// ListOrders devuelve todos los pedidos.
func (h *CatalogHandler) ListOrders(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(ds.Orders)
}

// SaveIngredient crea o reemplaza un ingrediente.
func (h *CatalogHandler) SaveIngredient(c *fiber.Ctx) error {
	var raw normalize.RawIngredient
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	ing, err := h.uc.SaveIngredient(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(ing)
}

// DeleteIngredient elimina un ingrediente.
func (h *CatalogHandler) DeleteIngredient(c *fiber.Ctx) error {
	if err := h.uc.DeleteIngredient(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveRecipe crea o reemplaza una receta.
func (h *CatalogHandler) SaveRecipe(c *fiber.Ctx) error {
	var raw normalize.RawRecipe
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	recipe, err := h.uc.SaveRecipe(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe elimina una receta.
func (h *CatalogHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.uc.DeleteRecipe(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveProduct crea o reemplaza un producto.
func (h *CatalogHandler) SaveProduct(c *fiber.Ctx) error {
	var raw normalize.RawProduct
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	product, err := h.uc.SaveProduct(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct elimina un producto.
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveOrder crea o reemplaza un pedido.
func (h *CatalogHandler) SaveOrder(c *fiber.Ctx) error {
	var raw normalize.RawOrder
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	order, err := h.uc.SaveOrder(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(order)
}

// UpdateSettings reemplaza los ajustes globales.
func (h *CatalogHandler) UpdateSettings(c *fiber.Ctx) error {
	var raw normalize.RawSettings
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	settings, err := h.uc.UpdateSettings(c.Context(), &raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(settings)
}

// RecordPurchase registra una compra de ingrediente.
func (h *CatalogHandler) RecordPurchase(c *fiber.Ctx) error {
	var raw normalize.RawPurchase
	if err := c.BodyParser(&raw); err != nil {
		return invalidBody(c)
	}
	purchase, err := h.uc.RecordPurchase(c.Context(), raw)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// Metrics devuelve el desglose económico de un producto.
func (h *CatalogHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.uc.Metrics(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(m)
}

// CatalogMetrics devuelve las métricas de todos los productos.
func (h *CatalogHandler) CatalogMetrics(c *fiber.Ctx) error {
	ms, err := h.uc.CatalogMetrics(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(ms)
}

// ── Helpers de error compartidos por los handlers ─────────────────────────────

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrReportLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REPORT_LOCKED", Message: "el reporte mensual está bloqueado"})
	case errors.Is(err, domain.ErrReportNotFrozen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REPORT_NOT_FROZEN", Message: "el reporte no tiene totales congelados"})
	default:
		return internalError(c, err)
	}
}
