package dto

import "github.com/jhoicas/Ventory-api/internal/domain/entity"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Address    string  `json:"address"`
	TotalSpace float64 `json:"total_space" validate:"min=0"`
	IsDefault  bool    `json:"is_default"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega. El cambio de
// bodega predeterminada tiene endpoint propio (SetDefault) para preservar el
// invariante de unicidad.
type UpdateWarehouseRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address    *string  `json:"address"`
	TotalSpace *float64 `json:"total_space" validate:"omitempty,min=0"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse = entity.Warehouse

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}
