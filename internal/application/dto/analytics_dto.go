package dto

// ── Bloques comunes ───────────────────────────────────────────────────────────

// InsightDTO mensaje analítico legible generado sobre métricas ya calculadas.
type InsightDTO struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// KPIDTO valor de una métrica junto con su variación porcentual frente al
// período de comparación (cero cuando no hay período).
type KPIDTO struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// ── Dashboard de ventas ───────────────────────────────────────────────────────

// SalesKPIsDTO bloque de KPIs del dashboard de ventas.
type SalesKPIsDTO struct {
	TotalRevenue    KPIDTO `json:"total_revenue"`
	TotalOrders     KPIDTO `json:"total_orders"`
	AvgOrderValue   KPIDTO `json:"avg_order_value"`
	UniqueCustomers KPIDTO `json:"unique_customers"`
	ConversionRate  KPIDTO `json:"conversion_rate"`
	LifetimeValue   KPIDTO `json:"lifetime_value"`
}

// TrendPointDTO punto de la serie temporal de ventas.
type TrendPointDTO struct {
	Bucket          string  `json:"bucket"` // día/semana/mes (YYYY-MM-DD, YYYY-WW, YYYY-MM)
	Revenue         float64 `json:"revenue"`
	Orders          int64   `json:"orders"`
	UniqueCustomers int64   `json:"unique_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

// ProductRowDTO fila del ranking de productos.
type ProductRowDTO struct {
	ProductID string  `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`
}

// CategoryRowDTO fila de desempeño por categoría.
type CategoryRowDTO struct {
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Orders    int64   `json:"orders"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`
}

// SegmentRowDTO fila de segmentación de clientes.
type SegmentRowDTO struct {
	Segment         string  `json:"segment"` // b2b | b2c
	Revenue         float64 `json:"revenue"`
	Orders          int64   `json:"orders"`
	UniqueCustomers int64   `json:"unique_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	Growth          float64 `json:"growth"` // % mitad reciente vs mitad anterior del período
}

// SalesDashboardDTO respuesta de GET /api/analytics/sales.
type SalesDashboardDTO struct {
	Period              PeriodDTO        `json:"period"`
	ComparisonPeriod    PeriodDTO        `json:"comparison_period"`
	KPIs                SalesKPIsDTO     `json:"kpis"`
	SalesTrend          []TrendPointDTO  `json:"sales_trend"`
	TopProducts         []ProductRowDTO  `json:"top_products"`
	CategoryPerformance []CategoryRowDTO `json:"category_performance"`
	CustomerSegments    []SegmentRowDTO  `json:"customer_segments"`
	GrowthComparison    float64          `json:"growth_comparison"` // crecimiento B2B / B2C
	Insights            []InsightDTO     `json:"insights"`
}

// ── Dashboard de inventario ───────────────────────────────────────────────────

// InventoryKPIsDTO bloque de KPIs de inventario.
type InventoryKPIsDTO struct {
	TotalItems        int64   `json:"total_items"`
	BelowReorderPoint int64   `json:"below_reorder_point"`
	Overstock         int64   `json:"overstock"`
	OutOfStock        int64   `json:"out_of_stock"`
	TotalValue        float64 `json:"total_value"`
	TurnoverRate      float64 `json:"turnover_rate"` // estimación trimestral anualizada ×4
}

// DeadStockRowDTO producto con existencias y sin actividad de venta en la ventana.
type DeadStockRowDTO struct {
	ProductID string  `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Stock     float64 `json:"stock"`
	Value     float64 `json:"value"`
	// LastSold nil significa "nunca vendido", estado distinto de "vendido hace mucho".
	LastSold *string `json:"last_sold"`
}

// WarehouseRowDTO fila de distribución de inventario por bodega.
// Incluye bodegas sin stock bajo el filtro actual (fila en cero).
type WarehouseRowDTO struct {
	WarehouseID string  `json:"warehouse_id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Value       float64 `json:"value"`
	Items       int64   `json:"items"`
	ValuePct    float64 `json:"value_pct"`
}

// ABCItemDTO fila ya clasificada del análisis ABC.
type ABCItemDTO struct {
	ProductID     string  `json:"product_id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Stock         float64 `json:"stock"`
	Value         float64 `json:"value"`
	ValuePct      float64 `json:"value_pct"`
	CumulativePct float64 `json:"cumulative_pct"`
	Class         string  `json:"class"` // A | B | C
}

// ABCSummaryDTO conteo y valor por clase.
type ABCSummaryDTO struct {
	Items int     `json:"items"`
	Value float64 `json:"value"`
}

// InventoryDashboardDTO respuesta de GET /api/analytics/inventory.
type InventoryDashboardDTO struct {
	Period                PeriodDTO                `json:"period"`
	KPIs                  InventoryKPIsDTO         `json:"kpis"`
	ABCAnalysis           []ABCItemDTO             `json:"abc_analysis"`
	ABCSummary            map[string]ABCSummaryDTO `json:"abc_summary"` // A, B, C
	DeadStock             []DeadStockRowDTO        `json:"dead_stock"`
	WarehouseDistribution []WarehouseRowDTO        `json:"warehouse_distribution"`
	Insights              []InsightDTO             `json:"insights"`
}
