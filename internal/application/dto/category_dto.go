package dto

import "github.com/jhoicas/Ventory-api/internal/domain/entity"

// CreateCategoryRequest entrada para crear una categoría.
// ParentID vacío crea una categoría raíz.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	ParentID string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para renombrar o mover una categoría.
// Mover a un descendiente propio se rechaza (introduciría un ciclo).
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	ParentID *string `json:"parent_id"` // "" = convertir en raíz
}

// CategoryResponse salida de una categoría.
type CategoryResponse = entity.Category

// CategoryTreeNode nodo del árbol de categorías.
type CategoryTreeNode struct {
	Category entity.Category    `json:"category"`
	Children []CategoryTreeNode `json:"children,omitempty"`
}
