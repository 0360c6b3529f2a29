package repository

import (
	"context"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca dentro de una empresa (chequeo de duplicados en registro).
	GetByEmail(ctx context.Context, companyID, email string) (*entity.User, error)
	// FindByEmail busca global por email (login, sin contexto de empresa aún).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
