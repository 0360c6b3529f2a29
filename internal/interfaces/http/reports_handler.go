package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/application/reports"
)

// ReportsHandler expone el catálogo de reportes, su ejecución y exportación.
type ReportsHandler struct {
	registry *reports.Registry
	engine   *reports.Engine
}

// NewReportsHandler construye el handler.
func NewReportsHandler(registry *reports.Registry, engine *reports.Engine) *ReportsHandler {
	return &ReportsHandler{registry: registry, engine: engine}
}

// List godoc
// @Summary      Catálogo de reportes disponibles
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría (ventas, inventario, compras, clientes)"
// @Success      200  {array}  reports.Definition
// @Router       /api/reports [get]
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.registry.List(c.Query("category")))
}

// Categories godoc
// @Summary      Categorías de reportes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/reports/categories [get]
func (h *ReportsHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.registry.Categories())
}

// Describe godoc
// @Summary      Definición de un reporte con sus filtros resueltos
// @Description  Los filtros dinámicos (categoría, bodega, canal) se resuelven contra los datos de la empresa; la primera opción siempre es "all".
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  reports.Definition
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportsHandler) Describe(c *fiber.Ctx) error {
	def, err := h.engine.Describe(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(def)
}

// Run godoc
// @Summary      Ejecutar un reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del reporte"
// @Param        startDate  query  string  false  "Inicio del período"
// @Param        endDate    query  string  false  "Fin del período"
// @Param        warehouse  query  string  false  "Bodega (all = todas)"
// @Param        category   query  string  false  "Categoría (all = todas)"
// @Param        channel    query  string  false  "Canal (all = todos)"
// @Param        status     query  string  false  "Estado"
// @Param        groupBy    query  string  false  "Agrupación temporal: day, week o month"
// @Success      200  {object}  reports.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/run [get]
func (h *ReportsHandler) Run(c *fiber.Ctx) error {
	var raw analytics.RawFilters
	if err := c.QueryParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.engine.Run(c.Context(), GetCompanyID(c), c.Params("id"), raw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar un reporte (xlsx, csv o pdf)
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id      path   string  true   "ID del reporte"
// @Param        format  query  string  true   "Formato: xlsx, csv o pdf"
// @Param        startDate  query  string  false  "Inicio del período"
// @Param        endDate    query  string  false  "Fin del período"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse  "formato no soportado por el reporte"
// @Router       /api/reports/{id}/export [get]
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format")
	if format == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format es requerido"})
	}
	var raw analytics.RawFilters
	if err := c.QueryParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	file, err := h.engine.Export(c.Context(), GetCompanyID(c), c.Params("id"), format, raw)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	return c.Send(file.Data)
}
