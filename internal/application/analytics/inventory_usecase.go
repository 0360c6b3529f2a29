package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// ── Filas crudas de los pipelines de inventario ──────────────────────────────

type inventoryKPIRow struct {
	TotalItems        int64   `bson:"totalItems"`
	BelowReorderPoint int64   `bson:"belowReorderPoint"`
	Overstock         int64   `bson:"overstock"`
	OutOfStock        int64   `bson:"outOfStock"`
	TotalValue        float64 `bson:"totalValue"`
}

type abcRow struct {
	ID    string  `bson:"_id"`
	SKU   string  `bson:"sku"`
	Name  string  `bson:"name"`
	Stock float64 `bson:"stock"`
	Value float64 `bson:"value"`
}

type deadStockSaleRow struct {
	ID           string    `bson:"_id"`
	LastSold     time.Time `bson:"lastSold"`
	SoldInWindow float64   `bson:"soldInWindow"`
}

type warehouseRow struct {
	ID       string  `bson:"_id"`
	Quantity float64 `bson:"quantity"`
	Value    float64 `bson:"value"`
	Items    int64   `bson:"items"`
}

// InventoryAnalyticsUseCase construye el dashboard de inventario.
//
// Tres ramas independientes van en paralelo (KPIs, ABC, distribución por
// bodega + revenue para rotación); el stock muerto es una consulta dependiente
// de dos pasos (primero ids de productos con stock, después sus ventas) y se
// ejecuta secuencialmente dentro de su propia rama.
type InventoryAnalyticsUseCase struct {
	executor      repository.AggregationExecutor
	warehouseRepo repository.WarehouseRepository
}

// NewInventoryAnalyticsUseCase construye el caso de uso.
func NewInventoryAnalyticsUseCase(
	executor repository.AggregationExecutor,
	warehouseRepo repository.WarehouseRepository,
) *InventoryAnalyticsUseCase {
	return &InventoryAnalyticsUseCase{executor: executor, warehouseRepo: warehouseRepo}
}

// GetDashboard ejecuta los pipelines de inventario y deriva las métricas.
func (uc *InventoryAnalyticsUseCase) GetDashboard(
	ctx context.Context,
	companyID string,
	raw RawFilters,
) (*dto.InventoryDashboardDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregationTimeout)
	defer cancel()

	f := Normalize(companyID, raw)

	type kpiResult struct {
		row     inventoryKPIRow
		revenue float64
		err     error
	}
	type abcResult struct {
		items []ABCItem
		err   error
	}
	type deadResult struct {
		rows []dto.DeadStockRowDTO
		err  error
	}
	type whResult struct {
		rows []warehouseRow
		err  error
	}

	kpiCh := make(chan kpiResult, 1)
	abcCh := make(chan abcResult, 1)
	deadCh := make(chan deadResult, 1)
	whCh := make(chan whResult, 1)

	go func() {
		var rows []inventoryKPIRow
		if err := uc.executor.Aggregate(ctx, repository.CollProducts, InventoryKPIsPipeline(f), &rows); err != nil {
			kpiCh <- kpiResult{err: err}
			return
		}
		var row inventoryKPIRow
		if len(rows) > 0 {
			row = rows[0]
		}
		// Revenue del período para la rotación: mismo filtro, colección de ventas.
		var sales []kpiRow
		if err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, SalesKPIsPipeline(f), &sales); err != nil {
			kpiCh <- kpiResult{err: err}
			return
		}
		var revenue float64
		for _, s := range sales {
			if s.ID == bucketCurrent {
				revenue = s.Revenue
			}
		}
		kpiCh <- kpiResult{row: row, revenue: revenue}
	}()

	go func() {
		var rows []abcRow
		if err := uc.executor.Aggregate(ctx, repository.CollProducts, ABCValuePipeline(f), &rows); err != nil {
			abcCh <- abcResult{err: err}
			return
		}
		items := make([]ABCItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, ABCItem{
				ProductID: r.ID, SKU: r.SKU, Name: r.Name,
				Stock: r.Stock, Value: r.Value,
			})
		}
		abcCh <- abcResult{items: ClassifyABC(items)}
	}()

	go func() {
		rows, err := uc.deadStock(ctx, f)
		deadCh <- deadResult{rows: rows, err: err}
	}()

	go func() {
		var rows []warehouseRow
		err := uc.executor.Aggregate(ctx, repository.CollProducts, WarehouseDistributionPipeline(f), &rows)
		whCh <- whResult{rows: rows, err: err}
	}()

	kpis := <-kpiCh
	abc := <-abcCh
	dead := <-deadCh
	wh := <-whCh

	if kpis.err != nil {
		return nil, fmt.Errorf("analytics: KPIs de inventario: %w", kpis.err)
	}
	if abc.err != nil {
		return nil, fmt.Errorf("analytics: análisis ABC: %w", abc.err)
	}
	if dead.err != nil {
		return nil, fmt.Errorf("analytics: stock muerto: %w", dead.err)
	}
	if wh.err != nil {
		return nil, fmt.Errorf("analytics: distribución por bodega: %w", wh.err)
	}

	warehouses, err := uc.fillWarehouses(ctx, f, wh.rows)
	if err != nil {
		return nil, fmt.Errorf("analytics: catálogo de bodegas: %w", err)
	}

	abcSummary := map[string]dto.ABCSummaryDTO{"A": {}, "B": {}, "C": {}}
	for _, item := range abc.items {
		s := abcSummary[item.Class]
		s.Items++
		s.Value = Round2(s.Value + item.Value)
		abcSummary[item.Class] = s
	}

	insights := BuildInsights(InsightInputs{
		BelowReorderPoint: kpis.row.BelowReorderPoint,
		OutOfStock:        kpis.row.OutOfStock,
		DeadStockCount:    len(dead.rows),
		HasData:           kpis.row.TotalItems > 0,
	})

	out := &dto.InventoryDashboardDTO{
		KPIs: dto.InventoryKPIsDTO{
			TotalItems:        kpis.row.TotalItems,
			BelowReorderPoint: kpis.row.BelowReorderPoint,
			Overstock:         kpis.row.Overstock,
			OutOfStock:        kpis.row.OutOfStock,
			TotalValue:        Round2(kpis.row.TotalValue),
			TurnoverRate:      Round2(TurnoverRate(kpis.revenue, kpis.row.TotalValue)),
		},
		ABCAnalysis:           toABCItemDTOs(abc.items),
		ABCSummary:            abcSummary,
		DeadStock:             dead.rows,
		WarehouseDistribution: warehouses,
		Insights:              toInsightDTOs(insights),
	}
	if f.HasPeriod {
		out.Period = dto.PeriodDTO{
			StartDate: f.Start.Format(time.RFC3339),
			EndDate:   f.End.Format(time.RFC3339),
		}
	}
	return out, nil
}

// toABCItemDTOs proyecta los ítems clasificados al tipo de transporte.
func toABCItemDTOs(items []ABCItem) []dto.ABCItemDTO {
	out := make([]dto.ABCItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ABCItemDTO{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			Name:          it.Name,
			Stock:         it.Stock,
			Value:         it.Value,
			ValuePct:      it.ValuePct,
			CumulativePct: it.CumulativePct,
			Class:         it.Class,
		})
	}
	return out
}

// deadStock consulta dependiente en dos pasos, no paralelizable:
// primero los productos activos con existencias, después su actividad de
// venta (última venta histórica + unidades vendidas en la ventana móvil).
func (uc *InventoryAnalyticsUseCase) deadStock(ctx context.Context, f Filters) ([]dto.DeadStockRowDTO, error) {
	var candidates []abcRow
	if err := uc.executor.Aggregate(ctx, repository.CollProducts, StockedProductsPipeline(f), &candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []dto.DeadStockRowDTO{}, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	windowStart := time.Now().UTC().AddDate(0, 0, -DeadStockWindowDays)

	var sales []deadStockSaleRow
	if err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, DeadStockSalesPipeline(f, ids, windowStart), &sales); err != nil {
		return nil, err
	}
	activity := make(map[string]deadStockSaleRow, len(sales))
	for _, s := range sales {
		activity[s.ID] = s
	}

	rows := []dto.DeadStockRowDTO{}
	for _, c := range candidates {
		act, sold := activity[c.ID]
		if sold && act.SoldInWindow > 0 {
			continue // tuvo ventas dentro de la ventana: no es stock muerto
		}
		row := dto.DeadStockRowDTO{
			ProductID: c.ID,
			SKU:       c.SKU,
			Name:      c.Name,
			Stock:     c.Stock,
			Value:     Round2(c.Value),
		}
		if sold && !act.LastSold.IsZero() {
			formatted := act.LastSold.Format(time.RFC3339)
			row.LastSold = &formatted
		}
		// LastSold nil = nunca vendido.
		rows = append(rows, row)
	}
	return rows, nil
}

// fillWarehouses completa la distribución con filas en cero para las bodegas
// activas sin stock bajo el filtro actual y resuelve nombres desde el catálogo.
func (uc *InventoryAnalyticsUseCase) fillWarehouses(
	ctx context.Context,
	f Filters,
	rows []warehouseRow,
) ([]dto.WarehouseRowDTO, error) {
	catalog, err := uc.warehouseRepo.ListByCompany(ctx, f.CompanyID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]warehouseRow, len(rows))
	var totalValue float64
	for _, r := range rows {
		byID[r.ID] = r
		totalValue += r.Value
	}

	out := make([]dto.WarehouseRowDTO, 0, len(catalog))
	seen := map[string]bool{}
	for _, w := range catalog {
		if f.Warehouse != "" && w.ID != f.Warehouse {
			continue
		}
		r := byID[w.ID]
		seen[w.ID] = true
		out = append(out, dto.WarehouseRowDTO{
			WarehouseID: w.ID,
			Name:        w.Name,
			Quantity:    r.Quantity,
			Value:       Round2(r.Value),
			Items:       r.Items,
			ValuePct:    Round2(SafeDivide(r.Value, totalValue) * 100),
		})
	}
	// Bodegas presentes en los datos pero fuera del catálogo (p. ej. eliminadas
	// de forma lógica) se conservan con su id como nombre.
	for _, r := range rows {
		if seen[r.ID] {
			continue
		}
		out = append(out, dto.WarehouseRowDTO{
			WarehouseID: r.ID,
			Name:        r.ID,
			Quantity:    r.Quantity,
			Value:       Round2(r.Value),
			Items:       r.Items,
			ValuePct:    Round2(SafeDivide(r.Value, totalValue) * 100),
		})
	}
	return out, nil
}
