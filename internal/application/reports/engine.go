package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// reportTimeout presupuesto de ejecución de un reporte, incluido el export.
const reportTimeout = 30 * time.Second

// Result resultado de ejecutar un reporte: filas finales más el resumen
// reducido. Rows nunca es nil: sin coincidencias se devuelve el slice vacío
// con el resumen en ceros, no un error.
type Result struct {
	Report      Definition `json:"report"`
	Rows        []bson.M   `json:"rows"`
	Summary     bson.M     `json:"summary"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// ExportFile archivo exportado listo para servir.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Engine ejecuta reportes del catálogo contra el ejecutor de agregaciones y
// los materializa a los formatos de exportación registrados.
type Engine struct {
	registry  *Registry
	executor  repository.AggregationExecutor
	exporters map[string]TableExporter
}

// NewEngine construye el motor de reportes. exporters mapea formato
// (ExportXLSX, ExportCSV, ExportPDF) a su materializador.
func NewEngine(registry *Registry, executor repository.AggregationExecutor, exporters map[string]TableExporter) *Engine {
	return &Engine{registry: registry, executor: executor, exporters: exporters}
}

// Run ejecuta el reporte: normaliza filtros, construye el pipeline de la
// definición, agrega y reduce el resumen.
func (e *Engine) Run(ctx context.Context, companyID, reportID string, raw analytics.RawFilters) (*Result, error) {
	def, err := e.registry.Get(reportID)
	if err != nil {
		return nil, err
	}

	filters := analytics.Normalize(companyID, raw)
	collection, stages := def.Pipeline(filters)

	ctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	rows := []bson.M{}
	if err := e.executor.Aggregate(ctx, collection, stages, &rows); err != nil {
		return nil, fmt.Errorf("ejecutando reporte %s: %w", reportID, err)
	}

	summary := bson.M{}
	if def.Summary != nil {
		summary = def.Summary(rows)
	}

	return &Result{
		Report:      def,
		Rows:        rows,
		Summary:     summary,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Describe devuelve la definición con las opciones de filtros dinámicos
// resueltas contra el datastore (valores distintos del campo fuente, ordenados
// y precedidos por la opción "all").
func (e *Engine) Describe(ctx context.Context, companyID, reportID string) (Definition, error) {
	def, err := e.registry.Get(reportID)
	if err != nil {
		return Definition{}, err
	}

	resolved := make([]Filter, len(def.Filters))
	copy(resolved, def.Filters)
	for i, flt := range resolved {
		if flt.Dynamic == nil {
			continue
		}
		options, err := e.distinctOptions(ctx, companyID, *flt.Dynamic)
		if err != nil {
			return Definition{}, fmt.Errorf("resolviendo filtro %s de %s: %w", flt.Key, reportID, err)
		}
		resolved[i].Options = options
	}
	def.Filters = resolved
	return def, nil
}

func (e *Engine) distinctOptions(ctx context.Context, companyID string, src DynamicSource) ([]FilterOption, error) {
	values, err := e.executor.Distinct(ctx, src.Collection, src.Field, bson.M{"companyId": companyID})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			labels = append(labels, s)
		}
	}
	sort.Strings(labels)

	options := make([]FilterOption, 0, len(labels)+1)
	options = append(options, FilterOption{Value: "all", Label: "Todos"})
	for _, l := range labels {
		options = append(options, FilterOption{Value: l, Label: l})
	}
	return options, nil
}

// Export ejecuta el reporte y lo materializa en el formato pedido.
func (e *Engine) Export(ctx context.Context, companyID, reportID, format string, raw analytics.RawFilters) (*ExportFile, error) {
	def, err := e.registry.Get(reportID)
	if err != nil {
		return nil, err
	}
	if !formatSupported(def, format) {
		return nil, fmt.Errorf("reports: formato %q no soportado por %s", format, reportID)
	}
	exporter, ok := e.exporters[format]
	if !ok {
		return nil, fmt.Errorf("reports: sin exportador registrado para %q", format)
	}

	result, err := e.Run(ctx, companyID, reportID, raw)
	if err != nil {
		return nil, err
	}

	doc := BuildTable(def, result)
	data, err := exporter.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("exportando reporte %s a %s: %w", reportID, format, err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", def.ID, result.GeneratedAt.Format("20060102_150405"), format),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

func formatSupported(def Definition, format string) bool {
	for _, f := range def.ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}
