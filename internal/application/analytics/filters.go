// Package analytics implementa el núcleo de agregación y reportes:
// normalización de filtros, constructores de pipelines puros, derivación de
// métricas post-agregación y generación de insights.
//
// Los pipelines se construyen como []bson.M y se ejecutan a través del puerto
// repository.AggregationExecutor; ningún builder toca la base de datos.
package analytics

import (
	"strconv"
	"strings"
	"time"
)

// Formatos de fecha aceptados en query params.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// RawFilters parámetros crudos tal como llegan por query string.
// Valores vacíos o "all" significan "sin restricción".
type RawFilters struct {
	StartDate   string   `query:"startDate"`
	EndDate     string   `query:"endDate"`
	Warehouse   string   `query:"warehouse"`
	Category    string   `query:"category"`
	Channel     string   `query:"channel"`
	SalesRep    string   `query:"salesRep"`
	Status      []string `query:"status"`
	Search      string   `query:"search"`
	MinAmount   string   `query:"minAmount"`
	MinQuantity string   `query:"minQuantity"`
	MinValue    string   `query:"minValue"`
	GroupBy     string   `query:"groupBy"` // day | week | month
	Limit       int      `query:"limit"`
}

// Filters filtros normalizados y tipados que consumen los pipeline builders.
type Filters struct {
	CompanyID string

	// Período solicitado. HasPeriod es false cuando no llegaron fechas: en ese
	// caso no se calcula período de comparación y las métricas de variación
	// quedan en cero.
	Start     time.Time
	End       time.Time
	HasPeriod bool

	// Período de comparación: misma duración, inmediatamente anterior,
	// terminando exactamente 1 ms antes de Start (contiguo y sin solape).
	ComparisonStart time.Time
	ComparisonEnd   time.Time

	Warehouse string
	Category  string // nombre de categoría, el mismo que denormalizan productos y líneas de venta
	Channel   string
	SalesRep  string
	Status    []string
	Search    string

	MinAmount   float64
	MinQuantity float64
	MinValue    float64

	GroupBy string
	Limit   int
}

// Normalize convierte parámetros crudos en Filters tipados.
//
// Fechas malformadas se tratan como ausentes (sin filtro), nunca se propagan
// como error hacia la etapa de agregación. "all" y cadena vacía en filtros de
// dimensión significan "sin restricción" (no un match de conjunto vacío).
func Normalize(companyID string, raw RawFilters) Filters {
	f := Filters{
		CompanyID: companyID,
		Warehouse: normalizeDimension(raw.Warehouse),
		Category:  normalizeDimension(raw.Category),
		Channel:   normalizeDimension(raw.Channel),
		SalesRep:  normalizeDimension(raw.SalesRep),
		Search:    strings.TrimSpace(raw.Search),
		GroupBy:   normalizeGroupBy(raw.GroupBy),
		Limit:     raw.Limit,
	}

	for _, s := range raw.Status {
		if v := normalizeDimension(s); v != "" {
			f.Status = append(f.Status, v)
		}
	}

	f.MinAmount = parseThreshold(raw.MinAmount)
	f.MinQuantity = parseThreshold(raw.MinQuantity)
	f.MinValue = parseThreshold(raw.MinValue)

	start, okStart := parseDate(raw.StartDate)
	end, okEnd := parseDate(raw.EndDate)
	if okStart && okEnd && !end.Before(start) {
		// Fecha final sin hora: se extiende al final del día (23:59:59.999).
		if isDateOnly(raw.EndDate) {
			end = end.Add(24*time.Hour - time.Millisecond)
		}
		f.Start = start
		f.End = end
		f.HasPeriod = true

		periodLength := end.Sub(start)
		f.ComparisonEnd = start.Add(-time.Millisecond)
		f.ComparisonStart = f.ComparisonEnd.Add(-periodLength)
	}

	return f
}

// normalizeDimension trata "" y "all" (en cualquier capitalización) como sin restricción.
func normalizeDimension(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func normalizeGroupBy(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "week":
		return "week"
	case "month":
		return "month"
	default:
		return "day"
	}
}

// parseThreshold números malformados o negativos se tratan como sin umbral.
func parseThreshold(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// isDateOnly true si el valor venía como YYYY-MM-DD sin componente horario.
func isDateOnly(v string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(v))
	return err == nil
}
