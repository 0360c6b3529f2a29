// Package export materializa reportes tabulares (reports.TableDocument) en
// los formatos de descarga soportados: XLSX, CSV y PDF.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Ventory-api/internal/application/reports"
)

const xlsxSheet = "Reporte"

// XLSXExporter materializa reportes como libros de Excel usando excelize.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador XLSX.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

var _ reports.TableExporter = (*XLSXExporter)(nil)

// ContentType tipo MIME de un libro xlsx.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe título, cabeceras en negrita y una fila por registro.
func (e *XLSXExporter) Render(doc reports.TableDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}

	if err := f.SetCellValue(xlsxSheet, "A1", doc.Title); err != nil {
		return nil, fmt.Errorf("export: escribir título: %w", err)
	}
	if err := f.SetCellValue(xlsxSheet, "A2",
		"Generado: "+doc.GeneratedAt.Format("2006-01-02 15:04")+" UTC"); err != nil {
		return nil, fmt.Errorf("export: escribir fecha: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: crear estilo: %w", err)
	}

	const headerRow = 4
	for i, h := range doc.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("export: celda de cabecera: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, fmt.Errorf("export: escribir cabecera: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, boldStyle); err != nil {
			return nil, fmt.Errorf("export: estilo de cabecera: %w", err)
		}
	}

	for r, row := range doc.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, fmt.Errorf("export: celda de datos: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, fmt.Errorf("export: escribir celda: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
