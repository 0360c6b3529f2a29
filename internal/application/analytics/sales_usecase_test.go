package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
)

// fakeExecutor implementación en memoria del puerto de agregación. Entrega
// filas pre-armadas según el tipo del destino de decodificación.
type fakeExecutor struct {
	kpis       []kpiRow
	trend      []trendRow
	top        []productRow
	categories []categoryRow
	segments   []segmentRow

	inventoryKPIs []inventoryKPIRow
	abc           []abcRow
	deadSales     []deadStockSaleRow
	warehouses    []warehouseRow

	distinct []interface{}
	err      error

	collections []string
}

func (f *fakeExecutor) Aggregate(_ context.Context, collection string, _ []bson.M, results interface{}) error {
	f.collections = append(f.collections, collection)
	if f.err != nil {
		return f.err
	}
	switch out := results.(type) {
	case *[]kpiRow:
		*out = f.kpis
	case *[]trendRow:
		*out = f.trend
	case *[]productRow:
		*out = f.top
	case *[]categoryRow:
		*out = f.categories
	case *[]segmentRow:
		*out = f.segments
	case *[]inventoryKPIRow:
		*out = f.inventoryKPIs
	case *[]abcRow:
		*out = f.abc
	case *[]deadStockSaleRow:
		*out = f.deadSales
	case *[]warehouseRow:
		*out = f.warehouses
	}
	return nil
}

func (f *fakeExecutor) Distinct(_ context.Context, _, _ string, _ bson.M) ([]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.distinct, nil
}

func TestSalesDashboard_SinDatosEntregaFormasEnCero(t *testing.T) {
	uc := NewSalesAnalyticsUseCase(&fakeExecutor{})

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})
	require.NoError(t, err)

	assert.Zero(t, out.KPIs.TotalRevenue.Value)
	assert.Zero(t, out.KPIs.TotalRevenue.Change)
	assert.NotNil(t, out.SalesTrend, "conjunto vacío produce slice vacío, no nil")
	assert.Empty(t, out.SalesTrend)
	assert.NotNil(t, out.TopProducts)
	assert.NotNil(t, out.CustomerSegments)
	assert.Empty(t, out.Insights, "sin órdenes no se generan insights")
	assert.NotEmpty(t, out.Period.StartDate)
	assert.NotEmpty(t, out.ComparisonPeriod.StartDate)
}

func TestSalesDashboard_KPIsConVariacion(t *testing.T) {
	exec := &fakeExecutor{
		kpis: []kpiRow{
			{ID: "current", Revenue: 1500, Orders: 10, UniqueCustomers: 5, AvgOrderValue: 150},
			{ID: "comparison", Revenue: 1000, Orders: 8, UniqueCustomers: 4, AvgOrderValue: 125},
		},
	}
	uc := NewSalesAnalyticsUseCase(exec)

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, out.KPIs.TotalRevenue.Value, 0.001)
	assert.InDelta(t, 50.0, out.KPIs.TotalRevenue.Change, 0.001)
	assert.InDelta(t, 10.0, out.KPIs.TotalOrders.Value, 0.001)
	assert.InDelta(t, 25.0, out.KPIs.TotalOrders.Change, 0.001)
	// conversión = 10/5*100 = 200; comparación = 8/4*100 = 200 → sin variación.
	assert.InDelta(t, 200.0, out.KPIs.ConversionRate.Value, 0.001)
	assert.Zero(t, out.KPIs.ConversionRate.Change)
	// CLV = 1500/5 = 300.
	assert.InDelta(t, 300.0, out.KPIs.LifetimeValue.Value, 0.001)

	// Ingresos +50% dispara el insight de tendencia.
	require.NotEmpty(t, out.Insights)
	assert.Equal(t, "Ingresos en alza", out.Insights[0].Title)
}

func TestSalesDashboard_SegmentosConCrecimiento(t *testing.T) {
	b2bRecent := segmentRow{Revenue: 600, Orders: 3, UniqueCustomers: 2}
	b2bRecent.ID.Segment = "b2b"
	b2bRecent.ID.Half = "recent"
	b2bPrior := segmentRow{Revenue: 300, Orders: 2, UniqueCustomers: 2}
	b2bPrior.ID.Segment = "b2b"
	b2bPrior.ID.Half = "prior"
	b2cRecent := segmentRow{Revenue: 220, Orders: 4, UniqueCustomers: 4}
	b2cRecent.ID.Segment = "b2c"
	b2cRecent.ID.Half = "recent"
	b2cPrior := segmentRow{Revenue: 200, Orders: 3, UniqueCustomers: 3}
	b2cPrior.ID.Segment = "b2c"
	b2cPrior.ID.Half = "prior"

	exec := &fakeExecutor{
		kpis:     []kpiRow{{ID: "current", Revenue: 1320, Orders: 12, UniqueCustomers: 6}},
		segments: []segmentRow{b2bRecent, b2bPrior, b2cRecent, b2cPrior},
	}
	uc := NewSalesAnalyticsUseCase(exec)

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})
	require.NoError(t, err)
	require.Len(t, out.CustomerSegments, 2)

	var b2b, b2c *dto.SegmentRowDTO
	for i := range out.CustomerSegments {
		switch out.CustomerSegments[i].Segment {
		case "b2b":
			b2b = &out.CustomerSegments[i]
		case "b2c":
			b2c = &out.CustomerSegments[i]
		}
	}
	require.NotNil(t, b2b)
	require.NotNil(t, b2c)

	assert.InDelta(t, 900.0, b2b.Revenue, 0.001)
	assert.InDelta(t, 100.0, b2b.Growth, 0.001, "b2b duplicó la mitad anterior")
	assert.InDelta(t, 10.0, b2c.Growth, 0.001)
	// razón 100/10 = 10 → insight de aceleración B2B.
	assert.InDelta(t, 10.0, out.GrowthComparison, 0.001)
}

func TestSalesDashboard_FallaDePipelineAbortaTodo(t *testing.T) {
	uc := NewSalesAnalyticsUseCase(&fakeExecutor{err: errors.New("boom")})
	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{})
	assert.Error(t, err, "cualquier rama fallida aborta la petición completa")
	assert.Nil(t, out)
}
