package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusDraft     = "draft"
	PurchaseStatusPending   = "pending"
	PurchaseStatusApproved  = "approved"
	PurchaseStatusOrdered   = "ordered"
	PurchaseStatusPartial   = "partial"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
	PurchaseStatusCompleted = "completed"
)

var purchaseTransitions = map[string][]string{
	PurchaseStatusDraft:     {PurchaseStatusPending, PurchaseStatusCancelled},
	PurchaseStatusPending:   {PurchaseStatusApproved, PurchaseStatusCancelled},
	PurchaseStatusApproved:  {PurchaseStatusOrdered, PurchaseStatusCancelled},
	PurchaseStatusOrdered:   {PurchaseStatusPartial, PurchaseStatusReceived, PurchaseStatusCancelled},
	PurchaseStatusPartial:   {PurchaseStatusReceived},
	PurchaseStatusReceived:  {PurchaseStatusCompleted},
	PurchaseStatusCancelled: {},
	PurchaseStatusCompleted: {},
}

// PurchaseItem línea de una orden de compra.
type PurchaseItem struct {
	ProductID        string  `bson:"productId" json:"product_id"`
	SKU              string  `bson:"sku" json:"sku"`
	Name             string  `bson:"name" json:"name"`
	Quantity         float64 `bson:"quantity" json:"quantity"`
	UnitCost         float64 `bson:"unitCost" json:"unit_cost"`
	Tax              float64 `bson:"tax" json:"tax"`
	Total            float64 `bson:"total" json:"total"`
	ReceivedQuantity float64 `bson:"receivedQuantity" json:"received_quantity"`
}

// PurchaseDates fechas de la orden de compra.
type PurchaseDates struct {
	OrderDate    time.Time  `bson:"orderDate" json:"order_date"`
	ExpectedDate *time.Time `bson:"expectedDate,omitempty" json:"expected_date,omitempty"`
	ReceivedDate *time.Time `bson:"receivedDate,omitempty" json:"received_date,omitempty"`
}

// PurchaseOrder orden de compra a proveedor, estructura simétrica a SalesOrder.
type PurchaseOrder struct {
	ID           string         `bson:"_id" json:"id"`
	CompanyID    string         `bson:"companyId" json:"company_id"`
	OrderNumber  string         `bson:"orderNumber" json:"order_number"`
	Status       string         `bson:"status" json:"status"`
	SupplierID   string         `bson:"supplierId" json:"supplier_id"`
	SupplierName string         `bson:"supplierName,omitempty" json:"supplier_name,omitempty"`
	WarehouseID  string         `bson:"warehouseId,omitempty" json:"warehouse_id,omitempty"`
	Dates        PurchaseDates  `bson:"dates" json:"dates"`
	Financial    OrderFinancial `bson:"financial" json:"financial"`
	Items        []PurchaseItem `bson:"items" json:"items"`
	Notes        string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time      `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updated_at"`
}

// CanTransitionTo indica si la orden puede pasar al estado destino.
func (o *PurchaseOrder) CanTransitionTo(target string) bool {
	for _, allowed := range purchaseTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition valida y aplica el cambio de estado.
func (o *PurchaseOrder) Transition(target string, at time.Time) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	if target == PurchaseStatusReceived {
		o.Dates.ReceivedDate = &at
	}
	o.UpdatedAt = at
	return nil
}

// RecalculateTotals recalcula el bloque financiero a partir de las líneas.
func (o *PurchaseOrder) RecalculateTotals() {
	var subtotal, tax decimal.Decimal
	for i := range o.Items {
		it := &o.Items[i]
		lineGross := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitCost))
		lineTax := decimal.NewFromFloat(it.Tax)
		it.Total = lineGross.Add(lineTax).Round(2).InexactFloat64()
		subtotal = subtotal.Add(lineGross)
		tax = tax.Add(lineTax)
	}
	o.Financial.Subtotal = subtotal.Round(2).InexactFloat64()
	o.Financial.TotalTax = tax.Round(2).InexactFloat64()
	grand := subtotal.
		Add(tax).
		Add(decimal.NewFromFloat(o.Financial.ShippingCost)).
		Add(decimal.NewFromFloat(o.Financial.HandlingFee)).
		Add(decimal.NewFromFloat(o.Financial.OtherCharges))
	o.Financial.GrandTotal = grand.Round(2).InexactFloat64()
}

// LeadTimeDays días entre pedido y recepción. Cero si aún no se ha recibido.
func (o *PurchaseOrder) LeadTimeDays() float64 {
	if o.Dates.ReceivedDate == nil {
		return 0
	}
	return o.Dates.ReceivedDate.Sub(o.Dates.OrderDate).Hours() / 24
}

// ReceivedOnTime true si la recepción ocurrió en o antes de la fecha esperada.
// Sin fecha esperada la entrega se considera a tiempo.
func (o *PurchaseOrder) ReceivedOnTime() bool {
	if o.Dates.ReceivedDate == nil {
		return false
	}
	if o.Dates.ExpectedDate == nil {
		return true
	}
	return !o.Dates.ReceivedDate.After(*o.Dates.ExpectedDate)
}
