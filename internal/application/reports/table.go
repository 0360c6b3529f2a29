package reports

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TableDocument representación tabular de un reporte, lista para materializar
// en cualquier formato de salida.
type TableDocument struct {
	Title       string
	Headers     []string
	Rows        [][]string
	GeneratedAt time.Time
}

// TableExporter materializa un TableDocument a bytes de un formato concreto.
type TableExporter interface {
	ContentType() string
	Render(doc TableDocument) ([]byte, error)
}

// cellPrinter formatea números con separadores de la localización es-419.
var cellPrinter = message.NewPrinter(language.LatinAmericanSpanish)

// BuildTable proyecta las filas del resultado según las columnas de la
// definición, aplicando el formato declarado en cada una.
func BuildTable(def Definition, result *Result) TableDocument {
	headers := make([]string, len(def.Columns))
	for i, col := range def.Columns {
		headers[i] = col.Label
	}

	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make([]string, len(def.Columns))
		for i, col := range def.Columns {
			cells[i] = formatCell(row[col.Key], col.Format)
		}
		rows = append(rows, cells)
	}

	return TableDocument{
		Title:       def.Name,
		Headers:     headers,
		Rows:        rows,
		GeneratedAt: result.GeneratedAt,
	}
}

// formatCell convierte un valor decodificado de bson a su presentación según
// el formato de columna. Valores ausentes quedan como cadena vacía.
func formatCell(v interface{}, format string) string {
	if v == nil {
		return ""
	}

	switch format {
	case FormatCurrency:
		return "$" + cellPrinter.Sprint(number.Decimal(asFloat(v),
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	case FormatNumber:
		return cellPrinter.Sprint(number.Decimal(asFloat(v),
			number.MaxFractionDigits(2)))
	case FormatPercentage:
		return cellPrinter.Sprintf("%.1f%%", asFloat(v))
	case FormatDate:
		if t, ok := asTime(v); ok {
			return t.UTC().Format("2006-01-02")
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	default:
		return time.Time{}, false
	}
}
