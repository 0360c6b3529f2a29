package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Ventory-api/internal/application/reports"
)

// CSVExporter materializa reportes como CSV UTF-8. Se antepone un BOM para
// que Excel detecte la codificación al abrir el archivo por doble clic.
type CSVExporter struct{}

// NewCSVExporter construye el exportador CSV.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

var _ reports.TableExporter = (*CSVExporter)(nil)

// ContentType tipo MIME del CSV.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Render escribe cabeceras más una fila por registro.
func (e *CSVExporter) Render(doc reports.TableDocument) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(doc.Headers); err != nil {
		return nil, fmt.Errorf("export: escribir cabeceras csv: %w", err)
	}
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: escribir fila csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: volcar csv: %w", err)
	}
	return buf.Bytes(), nil
}
