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

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. La categoría se denormaliza (id, nombre y ruta)
// para que las órdenes y los pipelines no necesiten resolverla después.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Pricing:     entity.ProductPricing{Cost: in.Cost, Price: in.Price},
		SupplierID:  in.SupplierID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.CategoryID != "" {
		category, err := uc.categories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("resolviendo categoría %s: %w", in.CategoryID, err)
		}
		product.Category = entity.ProductCategory{
			ID:   category.ID,
			Name: category.Name,
			Path: category.Path,
		}
	}

	product.Inventory.ReorderPoint = in.ReorderPoint
	product.Inventory.ReorderQuantity = in.ReorderQuantity
	for _, loc := range in.Locations {
		product.Inventory.Locations = append(product.Inventory.Locations, entity.StockLocation{
			WarehouseID: loc.WarehouseID,
			Quantity:    loc.Quantity,
		})
	}
	product.RecalculateInventory()

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("creando producto: %w", err)
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	return uc.repo.GetByID(ctx, id)
}

// Update actualiza un producto. Campos nil no se modifican. Un cambio de
// costo recalcula el valor de inventario; un cambio de categoría vuelve a
// denormalizarla.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Cost != nil {
		product.Pricing.Cost = *in.Cost
	}
	if in.Price != nil {
		product.Pricing.Price = *in.Price
	}
	if in.ReorderPoint != nil {
		product.Inventory.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		product.Inventory.ReorderQuantity = *in.ReorderQuantity
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			product.Category = entity.ProductCategory{}
		} else {
			category, err := uc.categories.GetByID(ctx, *in.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("resolviendo categoría %s: %w", *in.CategoryID, err)
			}
			product.Category = entity.ProductCategory{
				ID:   category.ID,
				Name: category.Name,
				Path: category.Path,
			}
		}
	}

	product.RecalculateInventory()
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizando producto %s: %w", id, err)
	}
	return product, nil
}

// AdjustStock aplica un delta de existencias en una bodega. Un ajuste que
// dejaría la ubicación en negativo se rechaza con ErrValidation.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, loc := range product.Inventory.Locations {
		if loc.WarehouseID == in.WarehouseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		if in.Quantity < 0 {
			return nil, fmt.Errorf("%w: sin existencias en la bodega %s", entity.ErrValidation, in.WarehouseID)
		}
		product.Inventory.Locations = append(product.Inventory.Locations, entity.StockLocation{
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
		})
	} else {
		next := product.Inventory.Locations[idx].Quantity + in.Quantity
		if next < 0 {
			return nil, fmt.Errorf("%w: el ajuste dejaría existencias negativas", entity.ErrValidation)
		}
		product.Inventory.Locations[idx].Quantity = next
	}

	product.RecalculateInventory()
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("ajustando stock de %s: %w", id, err)
	}
	return product, nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *p)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete desactiva un producto (soft delete: conserva el histórico de ventas).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.SoftDelete(ctx, id)
}
