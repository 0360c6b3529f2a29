package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	SoftDelete(ctx context.Context, id string) error
}
