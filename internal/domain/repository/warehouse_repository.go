package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Warehouse, error)
	SoftDelete(ctx context.Context, id string) error
	// SetDefault marca la bodega como predeterminada y desmarca las demás de la
	// empresa en una sola operación atómica. Es la única vía para mutar
	// settings.isDefault: preserva el invariante de unicidad sin carreras.
	SetDefault(ctx context.Context, companyID, warehouseID string) error
}
