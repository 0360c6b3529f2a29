package analytics_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func TestInventoryKPIsPipeline_ConteosCondicionales(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{})
	pipeline := analytics.InventoryKPIsPipeline(f)
	require.Len(t, pipeline, 2)

	match := pipeline[0]["$match"].(bson.M)
	assert.Equal(t, "c1", match["companyId"])
	assert.Equal(t, true, match["isActive"])

	group := pipeline[1]["$group"].(bson.M)
	assert.Nil(t, group["_id"], "los KPIs de inventario agrupan todo en un solo documento")
	for _, key := range []string{"totalItems", "belowReorderPoint", "overstock", "outOfStock", "totalValue"} {
		assert.Contains(t, group, key)
	}
}

func TestInventoryKPIsPipeline_BajoReordenExcluyeAgotados(t *testing.T) {
	pipeline := analytics.InventoryKPIsPipeline(analytics.Normalize("c1", analytics.RawFilters{}))
	group := pipeline[1]["$group"].(bson.M)

	cond := group["belowReorderPoint"].(bson.M)["$sum"].(bson.M)["$cond"].(bson.A)
	and := cond[0].(bson.M)["$and"].(bson.A)
	require.Len(t, and, 2, "bajo reorden exige stock > 0 además de stock <= reorderPoint")
}

func TestABCValuePipeline_OrdenPorValorConDesempate(t *testing.T) {
	pipeline := analytics.ABCValuePipeline(analytics.Normalize("c1", analytics.RawFilters{}))
	last := pipeline[len(pipeline)-1]

	sortStage := last["$sort"].(bson.D)
	require.Len(t, sortStage, 2)
	assert.Equal(t, bson.E{Key: "value", Value: -1}, sortStage[0])
	assert.Equal(t, bson.E{Key: "_id", Value: 1}, sortStage[1])
}

func TestStockedProductsPipeline_SoloConExistencias(t *testing.T) {
	pipeline := analytics.StockedProductsPipeline(analytics.Normalize("c1", analytics.RawFilters{}))
	match := pipeline[0]["$match"].(bson.M)
	assert.Equal(t, bson.M{"$gt": 0}, match["inventory.currentStock"])
}

func TestDeadStockSalesPipeline_VentanaMovil(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{})
	windowStart := "2025-01-01"
	pipeline := analytics.DeadStockSalesPipeline(f, []string{"p1", "p2"}, windowStart)

	// El cruce aplica solo a los ids candidatos.
	idsMatch := pipeline[2]["$match"].(bson.M)
	assert.Equal(t, bson.M{"$in": []string{"p1", "p2"}}, idsMatch["items.productId"])

	group := pipeline[3]["$group"].(bson.M)
	assert.Contains(t, group, "lastSold", "la última venta es histórica, sin ventana")

	soldCond := group["soldInWindow"].(bson.M)["$sum"].(bson.M)["$cond"].(bson.A)
	gte := soldCond[0].(bson.M)["$gte"].(bson.A)
	assert.Equal(t, windowStart, gte[1], "las unidades vendidas solo cuentan dentro de la ventana")
}

func TestWarehouseDistributionPipeline_FiltroDeBodegaTrasUnwind(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{Warehouse: "w1"})
	pipeline := analytics.WarehouseDistributionPipeline(f)

	assert.Equal(t, "$inventory.locations", pipeline[1]["$unwind"])
	assert.Equal(t, bson.M{"inventory.locations.warehouseId": "w1"}, pipeline[2]["$match"],
		"con filtro de bodega solo se acumulan las ubicaciones de esa bodega")
}

func TestInventoryPipelines_SonDeterministas(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{Category: "cat1", MinValue: "100"})
	assert.True(t, reflect.DeepEqual(analytics.InventoryKPIsPipeline(f), analytics.InventoryKPIsPipeline(f)))
	assert.True(t, reflect.DeepEqual(analytics.ABCValuePipeline(f), analytics.ABCValuePipeline(f)))
	assert.True(t, reflect.DeepEqual(analytics.WarehouseDistributionPipeline(f), analytics.WarehouseDistributionPipeline(f)))
}

func TestInventoryPipelines_FiltroDeCategoriaPorNombre(t *testing.T) {
	// El catálogo de filtros dinámicos ofrece nombres de categoría; los
	// pipelines de inventario deben casar contra el mismo campo para que una
	// opción ofrecida nunca produzca un match vacío garantizado.
	f := analytics.Normalize("c1", analytics.RawFilters{Category: "Electrónica"})

	for name, pipeline := range map[string][]bson.M{
		"kpis":      analytics.InventoryKPIsPipeline(f),
		"abc":       analytics.ABCValuePipeline(f),
		"stocked":   analytics.StockedProductsPipeline(f),
		"warehouse": analytics.WarehouseDistributionPipeline(f),
	} {
		match := pipeline[0]["$match"].(bson.M)
		assert.Equal(t, "Electrónica", match["category.name"], "%s: casa por nombre", name)
		_, hasID := match["category.id"]
		assert.False(t, hasID, "%s: no debe casar por id", name)
	}
}
