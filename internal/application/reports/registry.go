// Package reports implementa el motor genérico de reportes: un catálogo de
// definiciones (columnas, filtros, orden, pipeline y reductor de resumen)
// parametriza una familia de reportes con nombre sobre el mismo ejecutor de
// agregaciones que usa el paquete analytics.
package reports

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

// Formatos de columna. Se aplican solo en presentación/exportación: los
// valores numéricos viajan sin formato por pipeline y resumen para seguir
// siendo componibles aritméticamente.
const (
	FormatCurrency   = "currency"
	FormatNumber     = "number"
	FormatPercentage = "percentage"
	FormatDate       = "date"
	FormatText       = "text"
)

// Categorías del catálogo.
const (
	CategorySales     = "ventas"
	CategoryInventory = "inventario"
	CategoryPurchases = "compras"
	CategoryCustomers = "clientes"
)

// Formatos de exportación soportados.
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
	ExportPDF  = "pdf"
)

// Column metadato de columna de un reporte.
type Column struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Format string `json:"format"`
}

// FilterOption opción de un filtro select/multiselect.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DynamicSource origen de opciones dinámicas: los valores distintos de un
// campo en una colección, resueltos en tiempo de petición.
type DynamicSource struct {
	Collection string
	Field      string
}

// Filter metadato de filtro de un reporte. Options estáticas o Dynamic
// (nunca ambas).
type Filter struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Type    string         `json:"type"` // select | multiselect | dateRange | number
	Options []FilterOption `json:"options,omitempty"`
	Dynamic *DynamicSource `json:"-"`
}

// Sort orden por defecto del reporte.
type Sort struct {
	Key  string `json:"key"`
	Desc bool   `json:"desc"`
}

// PipelineFunc construye el pipeline del reporte para los filtros dados y
// nombra la colección destino. Debe ser pura y determinista.
type PipelineFunc func(f analytics.Filters) (collection string, stages []bson.M)

// SummaryFunc reduce las filas finales a agregados de presentación.
type SummaryFunc func(rows []bson.M) bson.M

// Definition registro completo de un reporte del catálogo.
type Definition struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	Columns       []Column     `json:"columns"`
	Filters       []Filter     `json:"filters"`
	DefaultSort   Sort         `json:"default_sort"`
	ExportFormats []string     `json:"export_formats"`
	Pipeline      PipelineFunc `json:"-"`
	Summary       SummaryFunc  `json:"-"`
}

// Registry catálogo de reportes indexado por id.
type Registry struct {
	defs  map[string]Definition
	order []string // orden de registro, estable para listados
}

// NewRegistry construye el catálogo con los reportes incorporados.
func NewRegistry() *Registry {
	r := &Registry{defs: map[string]Definition{}}
	for _, def := range builtinDefinitions() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def Definition) {
	if _, exists := r.defs[def.ID]; exists {
		panic(fmt.Sprintf("reports: definición duplicada %q", def.ID))
	}
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
}

// Get busca un reporte por id.
func (r *Registry) Get(id string) (Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("reports: reporte %q no existe", id)
	}
	return def, nil
}

// List devuelve todas las definiciones; con category no vacía filtra por categoría.
func (r *Registry) List(category string) []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		def := r.defs[id]
		if category != "" && def.Category != category {
			continue
		}
		out = append(out, def)
	}
	return out
}

// GroupByCategory agrupa el catálogo por categoría para la vista de menú.
// Las categorías salen ordenadas alfabéticamente; dentro de cada una se
// preserva el orden de registro.
func (r *Registry) GroupByCategory() map[string][]Definition {
	grouped := map[string][]Definition{}
	for _, id := range r.order {
		def := r.defs[id]
		grouped[def.Category] = append(grouped[def.Category], def)
	}
	return grouped
}

// Categories lista ordenada de categorías presentes en el catálogo.
func (r *Registry) Categories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, id := range r.order {
		c := r.defs[id].Category
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}
