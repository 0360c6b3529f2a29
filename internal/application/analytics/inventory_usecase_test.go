package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// fakeWarehouseCatalog stub del puerto de bodegas: solo se usa ListByCompany.
type fakeWarehouseCatalog struct {
	warehouses []*entity.Warehouse
}

func (f *fakeWarehouseCatalog) Create(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouseCatalog) GetByID(context.Context, string) (*entity.Warehouse, error) {
	return nil, entity.ErrNotFound
}
func (f *fakeWarehouseCatalog) Update(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouseCatalog) ListByCompany(context.Context, string) ([]*entity.Warehouse, error) {
	return f.warehouses, nil
}
func (f *fakeWarehouseCatalog) SoftDelete(context.Context, string) error { return nil }
func (f *fakeWarehouseCatalog) SetDefault(context.Context, string, string) error {
	return nil
}

func TestInventoryDashboard_SinDatosEntregaFormasEnCero(t *testing.T) {
	uc := NewInventoryAnalyticsUseCase(&fakeExecutor{}, &fakeWarehouseCatalog{})

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{})
	require.NoError(t, err)

	assert.Zero(t, out.KPIs.TotalItems)
	assert.Zero(t, out.KPIs.TurnoverRate)
	assert.NotNil(t, out.ABCAnalysis)
	assert.NotNil(t, out.DeadStock)
	assert.NotNil(t, out.WarehouseDistribution)
	assert.Empty(t, out.Insights)

	// El resumen ABC siempre trae las tres clases, aunque estén vacías.
	for _, class := range []string{"A", "B", "C"} {
		assert.Contains(t, out.ABCSummary, class)
	}
}

func TestInventoryDashboard_RotacionDesdeVentasDelPeriodo(t *testing.T) {
	exec := &fakeExecutor{
		inventoryKPIs: []inventoryKPIRow{{TotalItems: 10, TotalValue: 500}},
		kpis:          []kpiRow{{ID: "current", Revenue: 1000, Orders: 5}},
	}
	uc := NewInventoryAnalyticsUseCase(exec, &fakeWarehouseCatalog{})

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})
	require.NoError(t, err)

	// 1000 / 500 × 4 (anualización trimestral).
	assert.InDelta(t, 8.0, out.KPIs.TurnoverRate, 0.001)
	assert.NotEmpty(t, out.Period.StartDate)
}

func TestInventoryDashboard_StockMuertoEnDosPasos(t *testing.T) {
	exec := &fakeExecutor{
		inventoryKPIs: []inventoryKPIRow{{TotalItems: 2}},
		// Candidatos con existencias (mismo shape que el pipeline ABC).
		abc: []abcRow{
			{ID: "p1", SKU: "SKU-1", Name: "Sin ventas", Stock: 5, Value: 50},
			{ID: "p2", SKU: "SKU-2", Name: "Con ventas", Stock: 3, Value: 30},
		},
		// Solo p2 vendió dentro de la ventana.
		deadSales: []deadStockSaleRow{{ID: "p2", SoldInWindow: 4}},
	}
	uc := NewInventoryAnalyticsUseCase(exec, &fakeWarehouseCatalog{})

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{})
	require.NoError(t, err)

	require.Len(t, out.DeadStock, 1)
	assert.Equal(t, "p1", out.DeadStock[0].ProductID)
	assert.Nil(t, out.DeadStock[0].LastSold, "nunca vendido se reporta con lastSold nulo")
}

func TestInventoryDashboard_ZeroFillDeBodegas(t *testing.T) {
	exec := &fakeExecutor{
		inventoryKPIs: []inventoryKPIRow{{TotalItems: 1}},
		warehouses:    []warehouseRow{{ID: "w1", Quantity: 10, Value: 100, Items: 1}},
	}
	catalog := &fakeWarehouseCatalog{warehouses: []*entity.Warehouse{
		{ID: "w1", Name: "Central"},
		{ID: "w2", Name: "Norte"},
	}}
	uc := NewInventoryAnalyticsUseCase(exec, catalog)

	out, err := uc.GetDashboard(context.Background(), "c1", RawFilters{})
	require.NoError(t, err)
	require.Len(t, out.WarehouseDistribution, 2)

	byID := map[string]float64{}
	names := map[string]string{}
	for _, w := range out.WarehouseDistribution {
		byID[w.WarehouseID] = w.Value
		names[w.WarehouseID] = w.Name
	}
	assert.InDelta(t, 100.0, byID["w1"], 0.001)
	assert.Zero(t, byID["w2"], "bodega del catálogo sin stock aparece con fila en cero")
	assert.Equal(t, "Norte", names["w2"], "el nombre se resuelve desde el catálogo")
}
