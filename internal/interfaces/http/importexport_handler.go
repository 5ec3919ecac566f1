package http

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/importexport"
)

// ImportExportHandler maneja respaldos JSON del conjunto de datos.
type ImportExportHandler struct {
	uc *importexport.UseCase
}

// NewImportExportHandler construye el handler.
func NewImportExportHandler(uc *importexport.UseCase) *ImportExportHandler {
	return &ImportExportHandler{uc: uc}
}

// Export descarga las secciones pedidas (?sections=ingredients,recipes) o
// todo el conjunto si no se indica ninguna.
func (h *ImportExportHandler) Export(c *fiber.Ctx) error {
	var sections []importexport.Section
	if q := c.Query("sections"); q != "" {
		for _, s := range strings.Split(q, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sections = append(sections, importexport.Section(s))
			}
		}
	}
	payload, err := h.uc.Export(c.Context(), sections)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="costeo-pro-backup.json"`)
	return c.Send(payload)
}

// Import carga un respaldo: las secciones presentes REEMPLAZAN las actuales,
// las ausentes se conservan.
func (h *ImportExportHandler) Import(c *fiber.Ctx) error {
	ds, err := h.uc.Import(c.Context(), json.RawMessage(c.Body()))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(ds)
}
