package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

func TestSupplier_PrimeraOrdenFijaDesempeno(t *testing.T) {
	s := &entity.Supplier{}
	s.ApplyCompletedOrder(true, 4)

	assert.Equal(t, 1, s.Performance.TotalOrders)
	assert.InDelta(t, 100.0, s.Performance.OnTimeDelivery, 0.001)
	assert.InDelta(t, 4.0, s.Performance.AverageLeadTime, 0.001)
}

func TestSupplier_OrdenesSiguientesSuavizan(t *testing.T) {
	s := &entity.Supplier{}
	s.ApplyCompletedOrder(true, 4)
	s.ApplyCompletedOrder(false, 10)

	assert.Equal(t, 2, s.Performance.TotalOrders)
	// 100*0.7 + 0*0.3
	assert.InDelta(t, 70.0, s.Performance.OnTimeDelivery, 0.001)
	// 4*0.7 + 10*0.3
	assert.InDelta(t, 5.8, s.Performance.AverageLeadTime, 0.001)
}
