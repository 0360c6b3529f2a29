package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
)

func TestNormalize_PeriodoDeComparacionContiguo(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-28",
	})

	require.True(t, f.HasPeriod)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), f.Start)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 999000000, time.UTC), f.End,
		"fecha final sin hora debe extenderse al final del día")

	// El período anterior termina exactamente 1 ms antes del inicio.
	assert.Equal(t, f.Start.Add(-time.Millisecond), f.ComparisonEnd)
	// Misma duración, sin solape ni hueco.
	assert.Equal(t, f.End.Sub(f.Start), f.ComparisonEnd.Sub(f.ComparisonStart))
}

func TestNormalize_FechasMalformadasSeIgnoran(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		StartDate: "hace un mes",
		EndDate:   "2025-02-28",
	})

	assert.False(t, f.HasPeriod, "una fecha malformada no debe producir período ni error")
	assert.True(t, f.Start.IsZero())
}

func TestNormalize_FinAntesDelInicioSeIgnora(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		StartDate: "2025-03-01",
		EndDate:   "2025-02-01",
	})
	assert.False(t, f.HasPeriod)
}

func TestNormalize_AllSignificaSinRestriccion(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		Warehouse: "all",
		Category:  "ALL",
		Channel:   " online ",
		Status:    []string{"all", "confirmed"},
	})

	assert.Empty(t, f.Warehouse)
	assert.Empty(t, f.Category, `"all" en cualquier capitalización significa sin filtro`)
	assert.Equal(t, "online", f.Channel)
	assert.Equal(t, []string{"confirmed"}, f.Status)
}

func TestNormalize_GroupByInvalidoCaeEnDay(t *testing.T) {
	assert.Equal(t, "day", analytics.Normalize("c1", analytics.RawFilters{GroupBy: "year"}).GroupBy)
	assert.Equal(t, "week", analytics.Normalize("c1", analytics.RawFilters{GroupBy: "WEEK"}).GroupBy)
	assert.Equal(t, "month", analytics.Normalize("c1", analytics.RawFilters{GroupBy: "month"}).GroupBy)
}

func TestNormalize_UmbralesMalformadosONegativos(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		MinAmount:   "abc",
		MinQuantity: "-5",
		MinValue:    "150.5",
	})

	assert.Zero(t, f.MinAmount)
	assert.Zero(t, f.MinQuantity, "umbral negativo se trata como sin umbral")
	assert.InDelta(t, 150.5, f.MinValue, 0.001)
}

func TestNormalize_FechaConHoraNoSeExtiende(t *testing.T) {
	f := analytics.Normalize("c1", analytics.RawFilters{
		StartDate: "2025-02-01T00:00:00Z",
		EndDate:   "2025-02-15T12:30:00Z",
	})

	require.True(t, f.HasPeriod)
	assert.Equal(t, time.Date(2025, 2, 15, 12, 30, 0, 0, time.UTC), f.End,
		"una fecha con componente horario se respeta tal cual")
}
