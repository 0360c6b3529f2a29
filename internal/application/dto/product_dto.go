package dto

import (
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// StockLocationRequest existencias iniciales por bodega.
type StockLocationRequest struct {
	WarehouseID string  `json:"warehouse_id" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"min=0"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU             string                 `json:"sku" validate:"required,min=1,max=100"`
	Name            string                 `json:"name" validate:"required,min=1,max=200"`
	Description     string                 `json:"description"`
	CategoryID      string                 `json:"category_id"`
	Cost            float64                `json:"cost" validate:"min=0"`
	Price           float64                `json:"price" validate:"min=0"`
	ReorderPoint    float64                `json:"reorder_point" validate:"min=0"`
	ReorderQuantity float64                `json:"reorder_quantity" validate:"min=0"`
	SupplierID      string                 `json:"supplier_id"`
	Locations       []StockLocationRequest `json:"locations"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description"`
	CategoryID      *string  `json:"category_id"`
	Cost            *float64 `json:"cost" validate:"omitempty,min=0"`
	Price           *float64 `json:"price" validate:"omitempty,min=0"`
	ReorderPoint    *float64 `json:"reorder_point" validate:"omitempty,min=0"`
	ReorderQuantity *float64 `json:"reorder_quantity" validate:"omitempty,min=0"`
	SupplierID      *string  `json:"supplier_id"`
}

// AdjustStockRequest ajuste de existencias en una bodega concreta.
type AdjustStockRequest struct {
	WarehouseID string  `json:"warehouse_id" validate:"required"`
	Quantity    float64 `json:"quantity"` // delta, puede ser negativo
	Reason      string  `json:"reason"`
}

// ProductResponse salida de un producto. Reusa la entidad: los tags json de
// entity.Product ya definen el contrato de salida.
type ProductResponse = entity.Product

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
