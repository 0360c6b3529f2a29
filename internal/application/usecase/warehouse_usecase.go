package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega. Si se pide como predeterminada, el marcado pasa por
// SetDefault para preservar la unicidad por empresa.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		Capacity:  entity.WarehouseCapacity{TotalSpace: in.TotalSpace},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("creando bodega: %w", err)
	}
	if in.IsDefault {
		if err := uc.repo.SetDefault(ctx, companyID, warehouse.ID); err != nil {
			return nil, fmt.Errorf("marcando bodega predeterminada: %w", err)
		}
		warehouse.Settings.IsDefault = true
	}
	return warehouse, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	return uc.repo.GetByID(ctx, id)
}

// Update actualiza una bodega. settings.isDefault no se toca aquí.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.TotalSpace != nil {
		warehouse.Capacity.TotalSpace = *in.TotalSpace
	}
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("actualizando bodega %s: %w", id, err)
	}
	return warehouse, nil
}

// SetDefault marca la bodega como predeterminada de su empresa.
func (uc *WarehouseUseCase) SetDefault(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.SetDefault(ctx, warehouse.CompanyID, warehouse.ID)
}

// List lista las bodegas de la empresa.
func (uc *WarehouseUseCase) List(ctx context.Context, companyID string) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *w)
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

// Delete desactiva una bodega. La predeterminada no puede desactivarse:
// primero hay que trasladar el marcado a otra.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse.Settings.IsDefault {
		return fmt.Errorf("%w: la bodega predeterminada no puede desactivarse", entity.ErrValidation)
	}
	return uc.repo.SoftDelete(ctx, id)
}
