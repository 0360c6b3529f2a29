package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListByCategory devuelve los productos activos cuya categoría (id) coincide.
	ListByCategory(ctx context.Context, companyID, categoryID string) ([]*entity.Product, error)
	// SoftDelete marca el producto como inactivo sin borrar el documento.
	SoftDelete(ctx context.Context, id string) error
}
