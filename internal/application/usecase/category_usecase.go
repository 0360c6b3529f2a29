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

// CategoryUseCase casos de uso de la jerarquía de categorías.
//
// Las rutas materializadas (Path) y los niveles son derivados: cualquier
// renombre o cambio de padre dispara la reconstrucción en cascada de todo el
// subárbol, incluida la categoría denormalizada dentro de los productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products}
}

// Create crea una categoría. ParentID vacío crea una raíz.
func (uc *CategoryUseCase) Create(ctx context.Context, companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		ParentID:  in.ParentID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var parent *entity.Category
	if in.ParentID != "" {
		p, err := uc.repo.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolviendo padre %s: %w", in.ParentID, err)
		}
		parent = p
	}
	category.RebuildPath(parent)

	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("creando categoría: %w", err)
	}
	return category, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	return uc.repo.GetByID(ctx, id)
}

// Update renombra o mueve una categoría y reconstruye en cascada las rutas de
// todo su subárbol, además de la categoría denormalizada en los productos.
//
// Mover una categoría bajo sí misma o bajo uno de sus descendientes se
// rechaza con ErrCycleDetected: rompería la jerarquía (el recálculo de rutas
// nunca terminaría).
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tree, err := uc.repo.ListByCompany(ctx, category.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("cargando árbol de categorías: %w", err)
	}
	byID := make(map[string]*entity.Category, len(tree))
	children := make(map[string][]*entity.Category, len(tree))
	for _, c := range tree {
		byID[c.ID] = c
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}
	// Trabajar sobre la copia del árbol, no sobre el doc recién leído.
	category = byID[category.ID]

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.ParentID != nil && *in.ParentID != category.ParentID {
		if *in.ParentID != "" {
			if _, ok := byID[*in.ParentID]; !ok {
				return nil, fmt.Errorf("padre %s: %w", *in.ParentID, entity.ErrNotFound)
			}
			if createsCycle(category.ID, *in.ParentID, children) {
				return nil, entity.ErrCycleDetected
			}
		}
		category.ParentID = *in.ParentID
	}

	// Reconstrucción descendente: primero la categoría, luego el subárbol por
	// niveles. Cada nodo deriva su ruta del padre ya actualizado.
	category.RebuildPath(byID[category.ParentID])
	now := time.Now().UTC()
	category.UpdatedAt = now

	queue := []*entity.Category{category}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node != category {
			node.RebuildPath(byID[node.ParentID])
			node.UpdatedAt = now
		}
		if err := uc.repo.Update(ctx, node); err != nil {
			return nil, fmt.Errorf("actualizando categoría %s: %w", node.ID, err)
		}
		if err := uc.syncProducts(ctx, node); err != nil {
			return nil, err
		}
		queue = append(queue, children[node.ID]...)
	}

	return category, nil
}

// createsCycle true si newParent es el propio nodo o un descendiente suyo.
func createsCycle(nodeID, newParentID string, children map[string][]*entity.Category) bool {
	if nodeID == newParentID {
		return true
	}
	seen := map[string]bool{nodeID: true}
	queue := []string{nodeID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if child.ID == newParentID {
				return true
			}
			if !seen[child.ID] {
				seen[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}
	return false
}

// syncProducts propaga nombre y ruta de la categoría a sus productos.
func (uc *CategoryUseCase) syncProducts(ctx context.Context, category *entity.Category) error {
	products, err := uc.products.ListByCategory(ctx, category.CompanyID, category.ID)
	if err != nil {
		return fmt.Errorf("cargando productos de la categoría %s: %w", category.ID, err)
	}
	for _, p := range products {
		p.Category.Name = category.Name
		p.Category.Path = category.Path
		p.UpdatedAt = category.UpdatedAt
		if err := uc.products.Update(ctx, p); err != nil {
			return fmt.Errorf("sincronizando producto %s: %w", p.ID, err)
		}
	}
	return nil
}

// Tree devuelve el árbol completo de la empresa como nodos anidados.
func (uc *CategoryUseCase) Tree(ctx context.Context, companyID string) ([]dto.CategoryTreeNode, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]*entity.Category, len(list))
	var roots []*entity.Category
	for _, c := range list {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	var build func(c *entity.Category) dto.CategoryTreeNode
	build = func(c *entity.Category) dto.CategoryTreeNode {
		node := dto.CategoryTreeNode{Category: *c}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	out := make([]dto.CategoryTreeNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out, nil
}

// Delete desactiva una categoría. Con hijos activos se rechaza: primero hay
// que mover o desactivar el subárbol.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	kids, err := uc.repo.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(kids) > 0 {
		return fmt.Errorf("%w: la categoría tiene %d subcategorías activas", entity.ErrValidation, len(kids))
	}
	return uc.repo.SoftDelete(ctx, id)
}
