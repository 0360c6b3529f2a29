package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// SalesOrderRepository puerto de persistencia para SalesOrder.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, error)
}

// PurchaseOrderRepository puerto de persistencia para PurchaseOrder.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
