package reports

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func analyticsRaw() analytics.RawFilters {
	return analytics.RawFilters{StartDate: "2025-02-01", EndDate: "2025-02-28"}
}

// stubExecutor ejecutor en memoria: devuelve filas fijas y registra las
// colecciones consultadas.
type stubExecutor struct {
	rows     []bson.M
	distinct []interface{}
	err      error

	aggregated []string
	distincted []string
}

func (s *stubExecutor) Aggregate(_ context.Context, collection string, _ []bson.M, results interface{}) error {
	s.aggregated = append(s.aggregated, collection)
	if s.err != nil {
		return s.err
	}
	if out, ok := results.(*[]bson.M); ok {
		*out = append(*out, s.rows...)
	}
	return nil
}

func (s *stubExecutor) Distinct(_ context.Context, collection, _ string, _ bson.M) ([]interface{}, error) {
	s.distincted = append(s.distincted, collection)
	if s.err != nil {
		return nil, s.err
	}
	return s.distinct, nil
}

// stubExporter materializador trivial para probar el flujo de exportación.
type stubExporter struct{}

func (stubExporter) ContentType() string { return "text/plain" }
func (stubExporter) Render(doc TableDocument) ([]byte, error) {
	return []byte(doc.Title), nil
}

func newTestEngine(exec *stubExecutor) *Engine {
	return NewEngine(NewRegistry(), exec, map[string]TableExporter{
		ExportCSV: stubExporter{},
	})
}

func TestEngineRun_FilasYResumen(t *testing.T) {
	exec := &stubExecutor{rows: []bson.M{
		{"_id": "2025-02-01", "revenue": 300.0, "orders": int32(3)},
	}}
	engine := newTestEngine(exec)

	result, err := engine.Run(context.Background(), "c1", "sales_trend", analyticsRaw())
	require.NoError(t, err)

	assert.Equal(t, "sales_trend", result.Report.ID)
	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 300.0, result.Summary["totalRevenue"].(float64), 0.001)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Equal(t, []string{"sales_orders"}, exec.aggregated)
}

func TestEngineRun_SinCoincidenciasNoEsError(t *testing.T) {
	engine := newTestEngine(&stubExecutor{})

	result, err := engine.Run(context.Background(), "c1", "top_products", analyticsRaw())
	require.NoError(t, err)

	assert.NotNil(t, result.Rows, "sin coincidencias las filas son slice vacío, no nil")
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.Summary["rows"])
}

func TestEngineRun_ReporteInexistente(t *testing.T) {
	engine := newTestEngine(&stubExecutor{})
	_, err := engine.Run(context.Background(), "c1", "no_existe", analyticsRaw())
	assert.Error(t, err)
}

func TestEngineRun_ErrorDelEjecutorSePropaga(t *testing.T) {
	engine := newTestEngine(&stubExecutor{err: errors.New("boom")})
	_, err := engine.Run(context.Background(), "c1", "sales_trend", analyticsRaw())
	assert.Error(t, err)
}

func TestEngineDescribe_ResuelveFiltrosDinamicos(t *testing.T) {
	exec := &stubExecutor{distinct: []interface{}{"Zapatos", "Audio", "", 42}}
	engine := newTestEngine(exec)

	def, err := engine.Describe(context.Background(), "c1", "top_products")
	require.NoError(t, err)

	var category *Filter
	for i := range def.Filters {
		if def.Filters[i].Key == "category" {
			category = &def.Filters[i]
		}
	}
	require.NotNil(t, category, "top_products expone filtro de categoría")
	require.NotEmpty(t, category.Options)

	assert.Equal(t, FilterOption{Value: "all", Label: "Todos"}, category.Options[0],
		`la primera opción siempre es "all"`)
	// Valores no-string y vacíos se descartan; el resto sale ordenado.
	assert.Equal(t, []FilterOption{
		{Value: "all", Label: "Todos"},
		{Value: "Audio", Label: "Audio"},
		{Value: "Zapatos", Label: "Zapatos"},
	}, category.Options)
}

func TestEngineDescribe_NoMutaElCatalogo(t *testing.T) {
	exec := &stubExecutor{distinct: []interface{}{"Audio"}}
	engine := newTestEngine(exec)

	_, err := engine.Describe(context.Background(), "c1", "top_products")
	require.NoError(t, err)

	original, err := engine.registry.Get("top_products")
	require.NoError(t, err)
	for _, flt := range original.Filters {
		if flt.Dynamic != nil {
			assert.Empty(t, flt.Options, "resolver opciones no debe escribir en el catálogo")
		}
	}
}

func TestEngineExport_FlujoCompleto(t *testing.T) {
	exec := &stubExecutor{rows: []bson.M{{"_id": "2025-02-01", "revenue": 100.0}}}
	engine := newTestEngine(exec)

	file, err := engine.Export(context.Background(), "c1", "sales_trend", ExportCSV, analyticsRaw())
	require.NoError(t, err)

	assert.Equal(t, "text/plain", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "sales_trend_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	assert.NotEmpty(t, file.Data)
}

func TestEngineExport_FormatoNoSoportado(t *testing.T) {
	engine := newTestEngine(&stubExecutor{})
	_, err := engine.Export(context.Background(), "c1", "sales_trend", "docx", analyticsRaw())
	assert.Error(t, err)
}

func TestLowStockPipeline_FiltroDeCategoriaPorNombre(t *testing.T) {
	// Las opciones del filtro dinámico de categoría son nombres (distinct de
	// products.category.name): el pipeline debe casar contra el mismo campo.
	f := analytics.Normalize("c1", analytics.RawFilters{Category: "Electrónica"})
	_, pipeline := lowStockPipeline(f)

	match := pipeline[0]["$match"].(bson.M)
	assert.Equal(t, "Electrónica", match["category.name"])
	_, hasID := match["category.id"]
	assert.False(t, hasID, "casar por id vaciaría cualquier opción ofrecida")
}
