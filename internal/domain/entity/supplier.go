package entity

import "time"

// performanceSmoothing peso del promedio móvil exponencial con el que se
// actualizan OnTimeDelivery y AverageLeadTime al completar cada orden de
// compra. 0.3 pondera la entrega más reciente sin descartar el histórico.
const performanceSmoothing = 0.3

// SupplierPerformance desempeño acumulado del proveedor.
type SupplierPerformance struct {
	TotalOrders     int     `bson:"totalOrders" json:"total_orders"`
	OnTimeDelivery  float64 `bson:"onTimeDelivery" json:"on_time_delivery"`   // % de entregas a tiempo
	AverageLeadTime float64 `bson:"averageLeadTime" json:"average_lead_time"` // días promedio pedido→entrega
}

// Supplier proveedor.
type Supplier struct {
	ID          string              `bson:"_id" json:"id"`
	CompanyID   string              `bson:"companyId" json:"company_id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Performance SupplierPerformance `bson:"performance" json:"performance"`
	IsActive    bool                `bson:"isActive" json:"is_active"`
	CreatedAt   time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updated_at"`
}

// ApplyCompletedOrder actualiza el desempeño tras completarse una orden de compra.
// onTime indica si la entrega llegó dentro de la fecha esperada; leadTimeDays
// los días transcurridos entre pedido y entrega. La primera orden fija los
// valores; las siguientes aplican promedio móvil exponencial.
func (s *Supplier) ApplyCompletedOrder(onTime bool, leadTimeDays float64) {
	s.Performance.TotalOrders++
	onTimePct := 0.0
	if onTime {
		onTimePct = 100.0
	}
	if s.Performance.TotalOrders == 1 {
		s.Performance.OnTimeDelivery = onTimePct
		s.Performance.AverageLeadTime = leadTimeDays
		return
	}
	s.Performance.OnTimeDelivery = s.Performance.OnTimeDelivery*(1-performanceSmoothing) + onTimePct*performanceSmoothing
	s.Performance.AverageLeadTime = s.Performance.AverageLeadTime*(1-performanceSmoothing) + leadTimeDays*performanceSmoothing
}
