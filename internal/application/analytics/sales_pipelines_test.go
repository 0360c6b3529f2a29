package analytics_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func periodFilters(t *testing.T) analytics.Filters {
	t.Helper()
	f := analytics.Normalize("c1", analytics.RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})
	require.True(t, f.HasPeriod)
	return f
}

func TestSalesKPIsPipeline_UnaSolaPasadaConBuckets(t *testing.T) {
	f := periodFilters(t)
	pipeline := analytics.SalesKPIsPipeline(f)
	require.Len(t, pipeline, 3)

	// El match cubre la unión del período actual y el de comparación.
	match := pipeline[0]["$match"].(bson.M)
	dateRange := match["dates.orderDate"].(bson.M)
	assert.Equal(t, f.ComparisonStart, dateRange["$gte"])
	assert.Equal(t, f.End, dateRange["$lte"])

	// draft y cancelled quedan excluidos por defecto.
	statusFilter := match["status"].(bson.M)
	assert.ElementsMatch(t, []string{"draft", "cancelled"}, statusFilter["$nin"])

	// El _id del group separa los buckets con $cond sobre la fecha.
	group := pipeline[1]["$group"].(bson.M)
	_, ok := group["_id"].(bson.M)
	assert.True(t, ok, "con período el _id debe ser una expresión $cond, no una constante")
}

func TestSalesKPIsPipeline_SinPeriodoUnSoloBucket(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{})
	pipeline := analytics.SalesKPIsPipeline(f)

	match := pipeline[0]["$match"].(bson.M)
	_, hasDate := match["dates.orderDate"]
	assert.False(t, hasDate, "sin período no hay filtro de fechas")

	group := pipeline[1]["$group"].(bson.M)
	assert.Equal(t, "current", group["_id"], "sin período solo existe el bucket current")
}

func TestSalesKPIsPipeline_StatusExplicitoReemplazaExclusion(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{Status: []string{"delivered"}})
	pipeline := analytics.SalesKPIsPipeline(f)

	match := pipeline[0]["$match"].(bson.M)
	statusFilter := match["status"].(bson.M)
	assert.Equal(t, bson.M{"$in": []string{"delivered"}}, statusFilter)
}

func TestSalesTrendPipeline_FormatoPorGroupBy(t *testing.T) {
	cases := map[string]string{
		"day":   "%Y-%m-%d",
		"week":  "%Y-%U",
		"month": "%Y-%m",
	}
	for groupBy, want := range cases {
		f := analytics.Normalize("c1", analytics.RawFilters{GroupBy: groupBy})
		pipeline := analytics.SalesTrendPipeline(f)

		group := pipeline[1]["$group"].(bson.M)
		dateToString := group["_id"].(bson.M)["$dateToString"].(bson.M)
		assert.Equal(t, want, dateToString["format"], "groupBy=%s", groupBy)

		// La serie sale ordenada ascendente por bucket.
		last := pipeline[len(pipeline)-1]
		assert.Equal(t, bson.M{"_id": 1}, last["$sort"])
	}
}

func TestTopProductsPipeline_OrdenYDesempate(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{Limit: 10})
	pipeline := analytics.TopProductsPipeline(f)

	var sortStage bson.D
	var limit int
	for _, stage := range pipeline {
		if s, ok := stage["$sort"]; ok {
			sortStage = s.(bson.D)
		}
		if l, ok := stage["$limit"]; ok {
			limit = l.(int)
		}
	}

	require.Len(t, sortStage, 2)
	assert.Equal(t, bson.E{Key: "revenue", Value: -1}, sortStage[0])
	assert.Equal(t, bson.E{Key: "_id", Value: 1}, sortStage[1],
		"el empate en revenue se resuelve por _id ascendente")
	assert.Equal(t, 10, limit)
}

func TestTopProductsPipeline_LimitePorDefecto(t *testing.T) {
	pipeline := analytics.TopProductsPipeline(analytics.Normalize("c1", analytics.RawFilters{}))
	var limit int
	for _, stage := range pipeline {
		if l, ok := stage["$limit"]; ok {
			limit = l.(int)
		}
	}
	assert.Equal(t, 5, limit)
}

func TestTopProductsPipeline_FiltroDeCategoriaTrasUnwind(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{Category: "Audio"})
	pipeline := analytics.TopProductsPipeline(f)

	require.GreaterOrEqual(t, len(pipeline), 3)
	assert.Equal(t, "$items", pipeline[1]["$unwind"])
	assert.Equal(t, bson.M{"items.category": "Audio"}, pipeline[2]["$match"],
		"el filtro de categoría aplica sobre las líneas desenrolladas")
}

func TestCategoryPerformancePipeline_SinLimite(t *testing.T) {
	pipeline := analytics.CategoryPerformancePipeline(periodFilters(t))
	for _, stage := range pipeline {
		_, hasLimit := stage["$limit"]
		assert.False(t, hasLimit, "el desempeño por categoría no se trunca")
	}
}

func TestCustomerSegmentsPipeline_MitadesDelPeriodo(t *testing.T) {
	f := periodFilters(t)
	pipeline := analytics.CustomerSegmentsPipeline(f)

	group := pipeline[1]["$group"].(bson.M)
	groupID := group["_id"].(bson.M)
	_, hasHalf := groupID["half"]
	assert.True(t, hasHalf, "con período el group separa mitad reciente y anterior")

	half := groupID["half"].(bson.M)["$cond"].(bson.A)
	midpoint := half[0].(bson.M)["$gte"].(bson.A)[1].(time.Time)
	assert.Equal(t, f.Start.Add(f.End.Sub(f.Start)/2), midpoint)
}

func TestPipelines_SonDeterministas(t *testing.T) {
	f := periodFilters(t)
	assert.True(t, reflect.DeepEqual(analytics.SalesKPIsPipeline(f), analytics.SalesKPIsPipeline(f)))
	assert.True(t, reflect.DeepEqual(analytics.TopProductsPipeline(f), analytics.TopProductsPipeline(f)))
	assert.True(t, reflect.DeepEqual(analytics.CustomerSegmentsPipeline(f), analytics.CustomerSegmentsPipeline(f)))
}

func TestPipelinesDeVentas_IngresosCuadranConElDesglosePorCategoria(t *testing.T) {
	f := periodFilters(t)

	// Los KPIs acumulan la suma de totales de línea por orden…
	kpiGroup := analytics.SalesKPIsPipeline(f)[1]["$group"].(bson.M)
	assert.Equal(t, bson.M{"$sum": bson.M{"$sum": "$items.total"}}, kpiGroup["revenue"],
		"el ingreso de KPIs sale de las líneas, no del gran total con despacho")

	// …y el desglose por categoría suma exactamente el mismo campo tras el
	// $unwind: sobre cualquier conjunto de órdenes ambos totalizan lo mismo,
	// aunque las órdenes carguen despacho, manejo u otros cargos.
	var catGroup bson.M
	for _, stage := range analytics.CategoryPerformancePipeline(f) {
		if g, ok := stage["$group"].(bson.M); ok {
			catGroup = g
		}
	}
	require.NotNil(t, catGroup)
	assert.Equal(t, bson.M{"$sum": "$items.total"}, catGroup["revenue"])

	// La serie temporal y la segmentación comparten la misma base de ingreso.
	trendGroup := analytics.SalesTrendPipeline(f)[1]["$group"].(bson.M)
	assert.Equal(t, bson.M{"$sum": bson.M{"$sum": "$items.total"}}, trendGroup["revenue"])
	segGroup := analytics.CustomerSegmentsPipeline(f)[1]["$group"].(bson.M)
	assert.Equal(t, bson.M{"$sum": bson.M{"$sum": "$items.total"}}, segGroup["revenue"])
}
