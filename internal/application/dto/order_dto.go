package dto

import "github.com/jhoicas/Ventory-api/internal/domain/entity"

// OrderItemRequest línea de orden de venta en entrada.
type OrderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"min=0"`
	Discount  float64 `json:"discount" validate:"min=0"`
	Tax       float64 `json:"tax" validate:"min=0"`
}

// CreateSalesOrderRequest entrada para crear una orden de venta (nace en draft).
type CreateSalesOrderRequest struct {
	CustomerID    string             `json:"customer_id" validate:"required"`
	WarehouseID   string             `json:"warehouse_id"`
	Channel       string             `json:"channel" validate:"omitempty,oneof=online pos b2b marketplace"`
	SalesPersonID string             `json:"sales_person_id"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingCost  float64            `json:"shipping_cost" validate:"min=0"`
	HandlingFee   float64            `json:"handling_fee" validate:"min=0"`
	OtherCharges  float64            `json:"other_charges" validate:"min=0"`
	Notes         string             `json:"notes"`
}

// TransitionRequest cambio de estado de una orden.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// SalesOrderResponse salida de una orden de venta.
type SalesOrderResponse = entity.SalesOrder

// SalesOrderListResponse lista paginada de órdenes de venta.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// PurchaseItemRequest línea de orden de compra en entrada.
type PurchaseItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost" validate:"min=0"`
	Tax       float64 `json:"tax" validate:"min=0"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                `json:"supplier_id" validate:"required"`
	WarehouseID  string                `json:"warehouse_id"`
	ExpectedDate string                `json:"expected_date"` // YYYY-MM-DD, opcional
	Items        []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        string                `json:"notes"`
}

// ReceiveItemRequest cantidad recibida de una línea al registrar recepción.
type ReceiveItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

// ReceivePurchaseRequest recepción (total o parcial) de una orden de compra.
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse = entity.PurchaseOrder

// PurchaseOrderListResponse lista paginada de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
