package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ventory-api/internal/application/reports"
)

// gridColumns ancho total de la grilla de Maroto.
const gridColumns = 12

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFExporter materializa reportes como tablas PDF A4 usando Maroto v2.
type PDFExporter struct{}

// NewPDFExporter construye el exportador PDF.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

var _ reports.TableExporter = (*PDFExporter)(nil)

// ContentType tipo MIME del PDF.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Render arma título, cabecera de tabla y una fila por registro. Las columnas
// se reparten uniformemente sobre la grilla de 12; el residuo se asigna a la
// primera columna para que la fila siempre cierre en 12.
func (e *PDFExporter) Render(doc reports.TableDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(doc.Headers))
	for _, r := range doc.Rows {
		m.AddRows(dataRow(r, len(doc.Headers)))
	}

	rendered, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generar pdf: %w", err)
	}
	return rendered.GetBytes(), nil
}

func titleRow(doc reports.TableDocument) core.Row {
	return row.New(14).Add(
		col.New(gridColumns).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("2006-01-02 15:04")+" UTC", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

func headerRow(headers []string) core.Row {
	widths := columnWidths(len(headers))
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func dataRow(cells []string, columns int) core.Row {
	widths := columnWidths(columns)
	cols := make([]core.Col, 0, columns)
	for i := 0; i < columns; i++ {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(value, props.Text{
			Size: 8, Align: align.Left, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func columnWidths(n int) []int {
	if n <= 0 || n > gridColumns {
		return nil
	}
	widths := make([]int, n)
	base := gridColumns / n
	for i := range widths {
		widths[i] = base
	}
	widths[0] += gridColumns % n
	return widths
}
