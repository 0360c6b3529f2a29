package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// ListByCompany devuelve todas las categorías activas de la empresa.
	// El árbol completo cabe en memoria; la cascada de paths trabaja sobre él.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error)
	ListChildren(ctx context.Context, parentID string) ([]*entity.Category, error)
	SoftDelete(ctx context.Context, id string) error
}
