package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeB2B = "b2b"
	CustomerTypeB2C = "b2c"
)

// CustomerMetrics métricas acumuladas del cliente, recalculadas de forma
// incremental cada vez que se le atribuye una orden de venta.
type CustomerMetrics struct {
	TotalOrders       int       `bson:"totalOrders" json:"total_orders"`
	TotalSpent        float64   `bson:"totalSpent" json:"total_spent"`
	AverageOrderValue float64   `bson:"averageOrderValue" json:"average_order_value"`
	LifetimeValue     float64   `bson:"lifetimeValue" json:"lifetime_value"`
	LastOrderDate     time.Time `bson:"lastOrderDate,omitempty" json:"last_order_date,omitempty"`
}

// Customer cliente (B2B o B2C).
type Customer struct {
	ID        string          `bson:"_id" json:"id"`
	CompanyID string          `bson:"companyId" json:"company_id"`
	Name      string          `bson:"name" json:"name"`
	Email     string          `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Type      string          `bson:"type" json:"type"` // b2b | b2c
	Metrics   CustomerMetrics `bson:"metrics" json:"metrics"`
	IsActive  bool            `bson:"isActive" json:"is_active"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updated_at"`
}

// ApplyOrder incorpora una orden entregada a las métricas del cliente.
// AverageOrderValue se recalcula con división protegida (cero pedidos → 0).
func (c *Customer) ApplyOrder(grandTotal float64, orderDate time.Time) {
	c.Metrics.TotalOrders++
	c.Metrics.TotalSpent += grandTotal
	if c.Metrics.TotalOrders > 0 {
		c.Metrics.AverageOrderValue = c.Metrics.TotalSpent / float64(c.Metrics.TotalOrders)
	} else {
		c.Metrics.AverageOrderValue = 0
	}
	c.Metrics.LifetimeValue = c.Metrics.TotalSpent
	if orderDate.After(c.Metrics.LastOrderDate) {
		c.Metrics.LastOrderDate = orderDate
	}
}
