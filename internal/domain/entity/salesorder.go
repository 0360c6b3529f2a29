package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta. Orden parcial de transiciones:
// draft→confirmed→processing→shipped→delivered; cancelled es terminal y solo
// es alcanzable desde estados no despachados.
const (
	SalesStatusDraft      = "draft"
	SalesStatusConfirmed  = "confirmed"
	SalesStatusProcessing = "processing"
	SalesStatusShipped    = "shipped"
	SalesStatusDelivered  = "delivered"
	SalesStatusCancelled  = "cancelled"
)

// salesTransitions transiciones permitidas por estado.
var salesTransitions = map[string][]string{
	SalesStatusDraft:      {SalesStatusConfirmed, SalesStatusCancelled},
	SalesStatusConfirmed:  {SalesStatusProcessing, SalesStatusCancelled},
	SalesStatusProcessing: {SalesStatusShipped, SalesStatusCancelled},
	SalesStatusShipped:    {SalesStatusDelivered},
	SalesStatusDelivered:  {},
	SalesStatusCancelled:  {},
}

// OrderDates fechas relevantes de la orden.
type OrderDates struct {
	OrderDate     time.Time  `bson:"orderDate" json:"order_date"`
	ConfirmedDate *time.Time `bson:"confirmedDate,omitempty" json:"confirmed_date,omitempty"`
	ShippedDate   *time.Time `bson:"shippedDate,omitempty" json:"shipped_date,omitempty"`
	DeliveredDate *time.Time `bson:"deliveredDate,omitempty" json:"delivered_date,omitempty"`
}

// OrderItem línea de una orden de venta. La categoría viaja denormalizada
// para que los pipelines de analítica no necesiten $lookup.
type OrderItem struct {
	ProductID       string  `bson:"productId" json:"product_id"`
	SKU             string  `bson:"sku" json:"sku"`
	Name            string  `bson:"name" json:"name"`
	Category        string  `bson:"category" json:"category"`
	Quantity        float64 `bson:"quantity" json:"quantity"`
	UnitPrice       float64 `bson:"unitPrice" json:"unit_price"`
	CostPrice       float64 `bson:"costPrice" json:"cost_price"`
	Discount        float64 `bson:"discount" json:"discount"`
	Tax             float64 `bson:"tax" json:"tax"`
	Total           float64 `bson:"total" json:"total"`
	ShippedQuantity float64 `bson:"shippedQuantity" json:"shipped_quantity"`
}

// OrderFinancial bloque financiero de la orden.
//
// GrandTotal es derivado, no autoritativo:
//
//	grandTotal = subtotal - totalDiscount + totalTax + shippingCost + handlingFee + otherCharges
//
// Debe recalcularse con RecalculateTotals cada vez que cambian las líneas.
type OrderFinancial struct {
	Subtotal      float64 `bson:"subtotal" json:"subtotal"`
	TotalDiscount float64 `bson:"totalDiscount" json:"total_discount"`
	TotalTax      float64 `bson:"totalTax" json:"total_tax"`
	ShippingCost  float64 `bson:"shippingCost" json:"shipping_cost"`
	HandlingFee   float64 `bson:"handlingFee" json:"handling_fee"`
	OtherCharges  float64 `bson:"otherCharges" json:"other_charges"`
	GrandTotal    float64 `bson:"grandTotal" json:"grand_total"`
	ProfitMargin  float64 `bson:"profitMargin" json:"profit_margin"` // % sobre subtotal
}

// SalesOrder orden de venta.
type SalesOrder struct {
	ID            string         `bson:"_id" json:"id"`
	CompanyID     string         `bson:"companyId" json:"company_id"`
	OrderNumber   string         `bson:"orderNumber" json:"order_number"`
	Status        string         `bson:"status" json:"status"`
	Channel       string         `bson:"channel,omitempty" json:"channel,omitempty"` // online | pos | b2b | marketplace
	Source        string         `bson:"source,omitempty" json:"source,omitempty"`
	WarehouseID   string         `bson:"warehouseId,omitempty" json:"warehouse_id,omitempty"`
	SalesPersonID string         `bson:"salesPersonId,omitempty" json:"sales_person_id,omitempty"`
	CustomerID    string         `bson:"customerId" json:"customer_id"`
	CustomerName  string         `bson:"customerName,omitempty" json:"customer_name,omitempty"`
	CustomerType  string         `bson:"customerType,omitempty" json:"customer_type,omitempty"` // b2b | b2c
	Dates         OrderDates     `bson:"dates" json:"dates"`
	Financial     OrderFinancial `bson:"financial" json:"financial"`
	Items         []OrderItem    `bson:"items" json:"items"`
	Notes         string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updated_at"`
}

// CanTransitionTo indica si la orden puede pasar al estado destino.
func (o *SalesOrder) CanTransitionTo(target string) bool {
	for _, allowed := range salesTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition valida y aplica el cambio de estado, estampando la fecha que corresponda.
func (o *SalesOrder) Transition(target string, at time.Time) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	switch target {
	case SalesStatusConfirmed:
		o.Dates.ConfirmedDate = &at
	case SalesStatusShipped:
		o.Dates.ShippedDate = &at
	case SalesStatusDelivered:
		o.Dates.DeliveredDate = &at
	}
	o.UpdatedAt = at
	return nil
}

// RecalculateTotals recalcula el bloque financiero a partir de las líneas.
// La acumulación se hace en decimal para evitar deriva de flotantes al sumar
// muchas líneas; el resultado se redondea a 2 decimales.
func (o *SalesOrder) RecalculateTotals() {
	var subtotal, discount, tax, cost decimal.Decimal
	for i := range o.Items {
		it := &o.Items[i]
		qty := decimal.NewFromFloat(it.Quantity)
		lineGross := qty.Mul(decimal.NewFromFloat(it.UnitPrice))
		lineDiscount := decimal.NewFromFloat(it.Discount)
		lineTax := decimal.NewFromFloat(it.Tax)
		lineTotal := lineGross.Sub(lineDiscount).Add(lineTax)
		it.Total = lineTotal.Round(2).InexactFloat64()

		subtotal = subtotal.Add(lineGross)
		discount = discount.Add(lineDiscount)
		tax = tax.Add(lineTax)
		cost = cost.Add(qty.Mul(decimal.NewFromFloat(it.CostPrice)))
	}

	o.Financial.Subtotal = subtotal.Round(2).InexactFloat64()
	o.Financial.TotalDiscount = discount.Round(2).InexactFloat64()
	o.Financial.TotalTax = tax.Round(2).InexactFloat64()

	grand := subtotal.
		Sub(discount).
		Add(tax).
		Add(decimal.NewFromFloat(o.Financial.ShippingCost)).
		Add(decimal.NewFromFloat(o.Financial.HandlingFee)).
		Add(decimal.NewFromFloat(o.Financial.OtherCharges))
	o.Financial.GrandTotal = grand.Round(2).InexactFloat64()

	// Margen: (subtotal - costo) / subtotal * 100, protegido contra subtotal cero.
	if subtotal.IsPositive() {
		margin := subtotal.Sub(cost).Div(subtotal).Mul(decimal.NewFromInt(100))
		o.Financial.ProfitMargin = margin.Round(2).InexactFloat64()
	} else {
		o.Financial.ProfitMargin = 0
	}
}
