package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/application/dto"
)

// AnalyticsHandler expone los tableros analíticos de ventas e inventario.
type AnalyticsHandler struct {
	sales     *analytics.SalesAnalyticsUseCase
	inventory *analytics.InventoryAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(sales *analytics.SalesAnalyticsUseCase, inventory *analytics.InventoryAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{sales: sales, inventory: inventory}
}

// SalesDashboard godoc
// @Summary      Tablero analítico de ventas
// @Description  KPIs con comparación contra el período anterior, tendencia, top productos, rendimiento por categoría, segmentos de clientes e insights.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Inicio del período (YYYY-MM-DD o RFC3339)"
// @Param        endDate    query  string  false  "Fin del período"
// @Param        warehouse  query  string  false  "Bodega (all = todas)"
// @Param        category   query  string  false  "Categoría (all = todas)"
// @Param        channel    query  string  false  "Canal de venta (all = todos)"
// @Param        groupBy    query  string  false  "Agrupación de la tendencia: day, week o month"
// @Param        limit      query  int     false  "Máximo de filas en rankings"
// @Success      200  {object}  dto.SalesDashboardDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) SalesDashboard(c *fiber.Ctx) error {
	var raw analytics.RawFilters
	if err := c.QueryParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.sales.GetDashboard(c.Context(), GetCompanyID(c), raw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryDashboard godoc
// @Summary      Tablero analítico de inventario
// @Description  KPIs de valorización y rotación, clasificación ABC, stock muerto, alertas de reposición y distribución por bodega.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "Bodega (all = todas)"
// @Param        category   query  string  false  "Categoría (all = todas)"
// @Param        minValue   query  string  false  "Valor mínimo de inventario por producto"
// @Success      200  {object}  dto.InventoryDashboardDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory [get]
func (h *AnalyticsHandler) InventoryDashboard(c *fiber.Ctx) error {
	var raw analytics.RawFilters
	if err := c.QueryParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.inventory.GetDashboard(c.Context(), GetCompanyID(c), raw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
