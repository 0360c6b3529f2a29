package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

func TestCustomer_ApplyOrderAcumulaMetricas(t *testing.T) {
	c := &entity.Customer{}
	first := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	c.ApplyOrder(100, first)
	c.ApplyOrder(200, second)

	assert.Equal(t, 2, c.Metrics.TotalOrders)
	assert.InDelta(t, 300.0, c.Metrics.TotalSpent, 0.001)
	assert.InDelta(t, 150.0, c.Metrics.AverageOrderValue, 0.001)
	assert.InDelta(t, 300.0, c.Metrics.LifetimeValue, 0.001)
	assert.Equal(t, second, c.Metrics.LastOrderDate)
}

func TestCustomer_ApplyOrderNoRetrocedeLastOrderDate(t *testing.T) {
	c := &entity.Customer{}
	recent := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c.ApplyOrder(100, recent)
	c.ApplyOrder(50, older)

	assert.Equal(t, recent, c.Metrics.LastOrderDate,
		"una entrega atribuida fuera de orden no debe retroceder la última fecha")
}
