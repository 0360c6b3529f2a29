package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// aggregationTimeout cota superior por petición para el abanico de pipelines.
const aggregationTimeout = 30 * time.Second

// ── Filas crudas decodificadas de los pipelines ──────────────────────────────

type kpiRow struct {
	ID              string  `bson:"_id"`
	Revenue         float64 `bson:"revenue"`
	Subtotal        float64 `bson:"subtotal"`
	Tax             float64 `bson:"tax"`
	Orders          int64   `bson:"orders"`
	UniqueCustomers int64   `bson:"uniqueCustomers"`
	AvgOrderValue   float64 `bson:"avgOrderValue"`
}

type trendRow struct {
	ID              string  `bson:"_id"`
	Revenue         float64 `bson:"revenue"`
	Orders          int64   `bson:"orders"`
	UniqueCustomers int64   `bson:"uniqueCustomers"`
	AvgOrderValue   float64 `bson:"avgOrderValue"`
}

type productRow struct {
	ID        string  `bson:"_id"`
	SKU       string  `bson:"sku"`
	Name      string  `bson:"name"`
	Category  string  `bson:"category"`
	Quantity  float64 `bson:"quantity"`
	Revenue   float64 `bson:"revenue"`
	Profit    float64 `bson:"profit"`
	MarginPct float64 `bson:"marginPct"`
}

type categoryRow struct {
	ID        string  `bson:"_id"`
	Quantity  float64 `bson:"quantity"`
	Revenue   float64 `bson:"revenue"`
	Orders    int64   `bson:"orders"`
	Profit    float64 `bson:"profit"`
	MarginPct float64 `bson:"marginPct"`
}

type segmentRow struct {
	ID struct {
		Segment string `bson:"segment"`
		Half    string `bson:"half"`
	} `bson:"_id"`
	Revenue         float64 `bson:"revenue"`
	Orders          int64   `bson:"orders"`
	UniqueCustomers int64   `bson:"uniqueCustomers"`
	AvgOrderValue   float64 `bson:"avgOrderValue"`
}

// SalesAnalyticsUseCase construye el dashboard de ventas.
//
// Los cinco pipelines independientes se lanzan en paralelo (fan-out/fan-in
// sin estado compartido) solo para reducir latencia; cualquier rama fallida
// aborta la petición completa (fail-fast, sin dashboards parciales).
type SalesAnalyticsUseCase struct {
	executor repository.AggregationExecutor
}

// NewSalesAnalyticsUseCase construye el caso de uso.
func NewSalesAnalyticsUseCase(executor repository.AggregationExecutor) *SalesAnalyticsUseCase {
	return &SalesAnalyticsUseCase{executor: executor}
}

// GetDashboard normaliza filtros, ejecuta los pipelines y deriva las métricas.
func (uc *SalesAnalyticsUseCase) GetDashboard(
	ctx context.Context,
	companyID string,
	raw RawFilters,
) (*dto.SalesDashboardDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregationTimeout)
	defer cancel()

	f := Normalize(companyID, raw)

	// Filtros del período de comparación: mismo conjunto de dimensiones,
	// fechas desplazadas al período anterior. Sin período no hay comparación.
	compFilters := f
	if f.HasPeriod {
		compFilters.Start = f.ComparisonStart
		compFilters.End = f.ComparisonEnd
	}

	type result struct {
		kpis          []kpiRow
		trend         []trendRow
		top           []productRow
		categories    []categoryRow
		compCats      []categoryRow
		segments      []segmentRow
		err           error
		name          string
	}

	ch := make(chan result, 5)

	go func() {
		var rows []kpiRow
		err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, SalesKPIsPipeline(f), &rows)
		ch <- result{kpis: rows, err: err, name: "kpis"}
	}()
	go func() {
		var rows []trendRow
		err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, SalesTrendPipeline(f), &rows)
		ch <- result{trend: rows, err: err, name: "trend"}
	}()
	go func() {
		var rows []productRow
		err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, TopProductsPipeline(f), &rows)
		ch <- result{top: rows, err: err, name: "top products"}
	}()
	go func() {
		// Desempeño por categoría del período actual y del de comparación: la
		// segunda consulta alimenta el insight de oscilación de categoría.
		var rows, compRows []categoryRow
		err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, CategoryPerformancePipeline(f), &rows)
		if err == nil && f.HasPeriod {
			err = uc.executor.Aggregate(ctx, repository.CollSalesOrders, CategoryPerformancePipeline(compFilters), &compRows)
		}
		ch <- result{categories: rows, compCats: compRows, err: err, name: "categories"}
	}()
	go func() {
		var rows []segmentRow
		err := uc.executor.Aggregate(ctx, repository.CollSalesOrders, CustomerSegmentsPipeline(f), &rows)
		ch <- result{segments: rows, err: err, name: "segments"}
	}()

	var merged result
	for i := 0; i < 5; i++ {
		r := <-ch
		if r.err != nil {
			return nil, fmt.Errorf("analytics: pipeline %s: %w", r.name, r.err)
		}
		switch r.name {
		case "kpis":
			merged.kpis = r.kpis
		case "trend":
			merged.trend = r.trend
		case "top products":
			merged.top = r.top
		case "categories":
			merged.categories = r.categories
			merged.compCats = r.compCats
		case "segments":
			merged.segments = r.segments
		}
	}

	return uc.assemble(f, merged.kpis, merged.trend, merged.top, merged.categories, merged.compCats, merged.segments), nil
}

// assemble deriva KPIs con variación, arma los desgloses y genera insights.
// Conjuntos vacíos producen formas en cero, nunca campos omitidos.
func (uc *SalesAnalyticsUseCase) assemble(
	f Filters,
	kpis []kpiRow,
	trend []trendRow,
	top []productRow,
	categories []categoryRow,
	compCats []categoryRow,
	segments []segmentRow,
) *dto.SalesDashboardDTO {
	var current, comparison kpiRow
	for _, row := range kpis {
		switch row.ID {
		case bucketCurrent:
			current = row
		case bucketComparison:
			comparison = row
		}
	}

	compConversion := ConversionRate(float64(comparison.Orders), float64(comparison.UniqueCustomers))
	compCLV := CustomerLifetimeValue(comparison.Revenue, float64(comparison.UniqueCustomers))
	conversion := ConversionRate(float64(current.Orders), float64(current.UniqueCustomers))
	clv := CustomerLifetimeValue(current.Revenue, float64(current.UniqueCustomers))

	kpiBlock := dto.SalesKPIsDTO{
		TotalRevenue: dto.KPIDTO{
			Value:  Round2(current.Revenue),
			Change: Round2(Change(current.Revenue, comparison.Revenue)),
		},
		TotalOrders: dto.KPIDTO{
			Value:  float64(current.Orders),
			Change: Round2(Change(float64(current.Orders), float64(comparison.Orders))),
		},
		AvgOrderValue: dto.KPIDTO{
			Value:  Round2(current.AvgOrderValue),
			Change: Round2(Change(current.AvgOrderValue, comparison.AvgOrderValue)),
		},
		UniqueCustomers: dto.KPIDTO{
			Value:  float64(current.UniqueCustomers),
			Change: Round2(Change(float64(current.UniqueCustomers), float64(comparison.UniqueCustomers))),
		},
		ConversionRate: dto.KPIDTO{
			Value:  Round2(conversion),
			Change: Round2(Change(conversion, compConversion)),
		},
		LifetimeValue: dto.KPIDTO{
			Value:  Round2(clv),
			Change: Round2(Change(clv, compCLV)),
		},
	}

	trendPoints := make([]dto.TrendPointDTO, 0, len(trend))
	for _, row := range trend {
		trendPoints = append(trendPoints, dto.TrendPointDTO{
			Bucket:          row.ID,
			Revenue:         Round2(row.Revenue),
			Orders:          row.Orders,
			UniqueCustomers: row.UniqueCustomers,
			AvgOrderValue:   Round2(row.AvgOrderValue),
		})
	}

	topProducts := make([]dto.ProductRowDTO, 0, len(top))
	for _, row := range top {
		topProducts = append(topProducts, dto.ProductRowDTO{
			ProductID: row.ID,
			SKU:       row.SKU,
			Name:      row.Name,
			Category:  row.Category,
			Quantity:  row.Quantity,
			Revenue:   Round2(row.Revenue),
			Profit:    Round2(row.Profit),
			MarginPct: Round2(row.MarginPct),
		})
	}

	catRows := make([]dto.CategoryRowDTO, 0, len(categories))
	for _, row := range categories {
		catRows = append(catRows, dto.CategoryRowDTO{
			Category:  row.ID,
			Quantity:  row.Quantity,
			Revenue:   Round2(row.Revenue),
			Orders:    row.Orders,
			Profit:    Round2(row.Profit),
			MarginPct: Round2(row.MarginPct),
		})
	}

	segmentRows, growthComparison := assembleSegments(segments)

	// Oscilación de la categoría líder frente al período de comparación.
	topCategory := ""
	topCategorySwing := 0.0
	if len(categories) > 0 {
		topCategory = categories[0].ID
		for _, prev := range compCats {
			if prev.ID == topCategory {
				topCategorySwing = Change(categories[0].Revenue, prev.Revenue)
				break
			}
		}
	}

	insights := BuildInsights(InsightInputs{
		RevenueChangePct: kpiBlock.TotalRevenue.Change,
		TopCategory:      topCategory,
		TopCategorySwing: topCategorySwing,
		GrowthComparison: growthComparison,
		HasData:          current.Orders > 0,
	})

	out := &dto.SalesDashboardDTO{
		KPIs:                kpiBlock,
		SalesTrend:          trendPoints,
		TopProducts:         topProducts,
		CategoryPerformance: catRows,
		CustomerSegments:    segmentRows,
		GrowthComparison:    Round2(growthComparison),
		Insights:            toInsightDTOs(insights),
	}
	if f.HasPeriod {
		out.Period = dto.PeriodDTO{
			StartDate: f.Start.Format(time.RFC3339),
			EndDate:   f.End.Format(time.RFC3339),
		}
		out.ComparisonPeriod = dto.PeriodDTO{
			StartDate: f.ComparisonStart.Format(time.RFC3339),
			EndDate:   f.ComparisonEnd.Format(time.RFC3339),
		}
	}
	return out
}

// toInsightDTOs proyecta los insights al tipo de transporte.
func toInsightDTOs(insights []Insight) []dto.InsightDTO {
	out := make([]dto.InsightDTO, 0, len(insights))
	for _, in := range insights {
		out = append(out, dto.InsightDTO{
			Type:        in.Type,
			Icon:        in.Icon,
			Title:       in.Title,
			Description: in.Description,
		})
	}
	return out
}

// assembleSegments consolida las mitades recent/prior por segmento, calcula el
// crecimiento de cada uno y la razón de crecimiento B2B/B2C protegida.
func assembleSegments(rows []segmentRow) ([]dto.SegmentRowDTO, float64) {
	type segAccum struct {
		revenue, recent, prior float64
		orders                 int64
		uniqueCustomers        int64
	}
	accum := map[string]*segAccum{}
	order := []string{}
	for _, row := range rows {
		seg := row.ID.Segment
		a, ok := accum[seg]
		if !ok {
			a = &segAccum{}
			accum[seg] = a
			order = append(order, seg)
		}
		a.revenue += row.Revenue
		a.orders += row.Orders
		// Clientes únicos por mitad; la suma es una cota superior aceptable
		// para el desglose (un cliente activo en ambas mitades cuenta dos veces).
		a.uniqueCustomers += row.UniqueCustomers
		switch row.ID.Half {
		case "recent":
			a.recent += row.Revenue
		case "prior":
			a.prior += row.Revenue
		default:
			// Sin período no hay mitades: todo cae en revenue y growth queda en 0.
		}
	}

	out := make([]dto.SegmentRowDTO, 0, len(accum))
	growth := map[string]float64{}
	for _, seg := range order {
		a := accum[seg]
		g := Change(a.recent, a.prior)
		growth[seg] = g
		out = append(out, dto.SegmentRowDTO{
			Segment:         seg,
			Revenue:         Round2(a.revenue),
			Orders:          a.orders,
			UniqueCustomers: a.uniqueCustomers,
			AvgOrderValue:   Round2(SafeDivide(a.revenue, float64(a.orders))),
			Growth:          Round2(g),
		})
	}

	return out, GrowthComparison(growth[entity.CustomerTypeB2B], growth[entity.CustomerTypeB2C])
}
