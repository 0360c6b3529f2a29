package reports

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// topCustomersLimit límite por defecto del ranking de clientes.
const topCustomersLimit = 50

// Filtros reutilizados entre definiciones.
var (
	filterDateRange = Filter{Key: "dateRange", Label: "Período", Type: "dateRange"}

	filterCategory = Filter{
		Key: "category", Label: "Categoría", Type: "select",
		Dynamic: &DynamicSource{Collection: repository.CollProducts, Field: "category.name"},
	}
	filterWarehouse = Filter{
		Key: "warehouse", Label: "Bodega", Type: "select",
		Dynamic: &DynamicSource{Collection: repository.CollWarehouses, Field: "name"},
	}
	filterChannel = Filter{
		Key: "channel", Label: "Canal", Type: "select",
		Dynamic: &DynamicSource{Collection: repository.CollSalesOrders, Field: "channel"},
	}
	filterSalesStatus = Filter{
		Key: "status", Label: "Estado", Type: "multiselect",
		Options: []FilterOption{
			{Value: entity.SalesStatusConfirmed, Label: "Confirmada"},
			{Value: entity.SalesStatusProcessing, Label: "En proceso"},
			{Value: entity.SalesStatusShipped, Label: "Despachada"},
			{Value: entity.SalesStatusDelivered, Label: "Entregada"},
		},
	}
)

var allExportFormats = []string{ExportXLSX, ExportCSV, ExportPDF}

// builtinDefinitions catálogo incorporado. Cada definición referencia un
// builder puro: mismos filtros, mismas etapas, siempre.
func builtinDefinitions() []Definition {
	return []Definition{
		// ── Ventas ───────────────────────────────────────────────────────────
		{
			ID: "sales_trend", Name: "Tendencia de ventas", Category: CategorySales,
			Columns: []Column{
				{Key: "_id", Label: "Período", Format: FormatText},
				{Key: "revenue", Label: "Ingresos", Format: FormatCurrency},
				{Key: "orders", Label: "Órdenes", Format: FormatNumber},
				{Key: "uniqueCustomers", Label: "Clientes", Format: FormatNumber},
				{Key: "avgOrderValue", Label: "Ticket promedio", Format: FormatCurrency},
			},
			Filters:       []Filter{filterDateRange, filterWarehouse, filterChannel, filterSalesStatus},
			DefaultSort:   Sort{Key: "_id"},
			ExportFormats: allExportFormats,
			Pipeline: func(f analytics.Filters) (string, []bson.M) {
				return repository.CollSalesOrders, analytics.SalesTrendPipeline(f)
			},
			Summary: salesSummary,
		},
		{
			ID: "top_products", Name: "Productos más vendidos", Category: CategorySales,
			Columns: []Column{
				{Key: "sku", Label: "SKU", Format: FormatText},
				{Key: "name", Label: "Producto", Format: FormatText},
				{Key: "category", Label: "Categoría", Format: FormatText},
				{Key: "quantity", Label: "Unidades", Format: FormatNumber},
				{Key: "revenue", Label: "Ingresos", Format: FormatCurrency},
				{Key: "profit", Label: "Utilidad", Format: FormatCurrency},
				{Key: "marginPct", Label: "Margen", Format: FormatPercentage},
			},
			Filters:       []Filter{filterDateRange, filterCategory, filterWarehouse, filterChannel},
			DefaultSort:   Sort{Key: "revenue", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline: func(f analytics.Filters) (string, []bson.M) {
				if f.Limit <= 0 {
					f.Limit = 10
				}
				return repository.CollSalesOrders, analytics.TopProductsPipeline(f)
			},
			Summary: productRankingSummary,
		},
		{
			ID: "category_performance", Name: "Desempeño por categoría", Category: CategorySales,
			Columns: []Column{
				{Key: "_id", Label: "Categoría", Format: FormatText},
				{Key: "quantity", Label: "Unidades", Format: FormatNumber},
				{Key: "revenue", Label: "Ingresos", Format: FormatCurrency},
				{Key: "orders", Label: "Órdenes", Format: FormatNumber},
				{Key: "profit", Label: "Utilidad", Format: FormatCurrency},
				{Key: "marginPct", Label: "Margen", Format: FormatPercentage},
			},
			Filters:       []Filter{filterDateRange, filterWarehouse, filterChannel},
			DefaultSort:   Sort{Key: "revenue", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline: func(f analytics.Filters) (string, []bson.M) {
				return repository.CollSalesOrders, analytics.CategoryPerformancePipeline(f)
			},
			Summary: salesSummary,
		},

		// ── Inventario ───────────────────────────────────────────────────────
		{
			ID: "inventory_valuation", Name: "Valorización de inventario", Category: CategoryInventory,
			Columns: []Column{
				{Key: "sku", Label: "SKU", Format: FormatText},
				{Key: "name", Label: "Producto", Format: FormatText},
				{Key: "stock", Label: "Existencias", Format: FormatNumber},
				{Key: "value", Label: "Valor", Format: FormatCurrency},
			},
			Filters:       []Filter{filterCategory, filterWarehouse},
			DefaultSort:   Sort{Key: "value", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline: func(f analytics.Filters) (string, []bson.M) {
				return repository.CollProducts, analytics.ABCValuePipeline(f)
			},
			Summary: inventorySummary,
		},
		{
			ID: "low_stock", Name: "Stock bajo punto de reorden", Category: CategoryInventory,
			Columns: []Column{
				{Key: "sku", Label: "SKU", Format: FormatText},
				{Key: "name", Label: "Producto", Format: FormatText},
				{Key: "stock", Label: "Existencias", Format: FormatNumber},
				{Key: "reorderPoint", Label: "Punto de reorden", Format: FormatNumber},
				{Key: "reorderQuantity", Label: "Cantidad a reordenar", Format: FormatNumber},
				{Key: "value", Label: "Valor", Format: FormatCurrency},
			},
			Filters:       []Filter{filterCategory, filterWarehouse},
			DefaultSort:   Sort{Key: "stock"},
			ExportFormats: allExportFormats,
			Pipeline:      lowStockPipeline,
			Summary:       inventorySummary,
		},
		{
			ID: "warehouse_distribution", Name: "Distribución por bodega", Category: CategoryInventory,
			Columns: []Column{
				{Key: "_id", Label: "Bodega", Format: FormatText},
				{Key: "items", Label: "Productos", Format: FormatNumber},
				{Key: "quantity", Label: "Unidades", Format: FormatNumber},
				{Key: "value", Label: "Valor", Format: FormatCurrency},
			},
			Filters:       []Filter{filterCategory, filterWarehouse},
			DefaultSort:   Sort{Key: "value", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline: func(f analytics.Filters) (string, []bson.M) {
				return repository.CollProducts, analytics.WarehouseDistributionPipeline(f)
			},
			Summary: warehouseSummary,
		},

		// ── Compras ──────────────────────────────────────────────────────────
		{
			ID: "purchases_by_status", Name: "Compras por estado", Category: CategoryPurchases,
			Columns: []Column{
				{Key: "_id", Label: "Estado", Format: FormatText},
				{Key: "orders", Label: "Órdenes", Format: FormatNumber},
				{Key: "amount", Label: "Monto", Format: FormatCurrency},
			},
			Filters:       []Filter{filterDateRange, filterWarehouse},
			DefaultSort:   Sort{Key: "amount", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline:      purchasesByStatusPipeline,
			Summary:       purchaseSummary,
		},
		{
			ID: "supplier_orders", Name: "Compras por proveedor", Category: CategoryPurchases,
			Columns: []Column{
				{Key: "_id", Label: "Proveedor", Format: FormatText},
				{Key: "orders", Label: "Órdenes", Format: FormatNumber},
				{Key: "amount", Label: "Monto", Format: FormatCurrency},
				{Key: "avgAmount", Label: "Monto promedio", Format: FormatCurrency},
			},
			Filters:       []Filter{filterDateRange},
			DefaultSort:   Sort{Key: "amount", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline:      supplierOrdersPipeline,
			Summary:       purchaseSummary,
		},

		// ── Clientes ─────────────────────────────────────────────────────────
		{
			ID: "top_customers", Name: "Mejores clientes", Category: CategoryCustomers,
			Columns: []Column{
				{Key: "_id", Label: "Cliente", Format: FormatText},
				{Key: "segment", Label: "Segmento", Format: FormatText},
				{Key: "orders", Label: "Órdenes", Format: FormatNumber},
				{Key: "revenue", Label: "Ingresos", Format: FormatCurrency},
				{Key: "avgOrderValue", Label: "Ticket promedio", Format: FormatCurrency},
			},
			Filters:       []Filter{filterDateRange, filterChannel, filterSalesStatus},
			DefaultSort:   Sort{Key: "revenue", Desc: true},
			ExportFormats: allExportFormats,
			Pipeline:      topCustomersPipeline,
			Summary:       customerSummary,
		},
	}
}

// warehouseSummary resumen de la distribución por bodega (unidades en
// "quantity", no en "stock").
func warehouseSummary(rows []bson.M) bson.M {
	totalValue := sumField(rows, "value")
	return bson.M{
		"rows":       len(rows),
		"totalValue": analytics.Round2(totalValue),
		"totalUnits": sumField(rows, "quantity"),
		"topByValue": topByField(rows, "value", topNBreakdown),
	}
}
