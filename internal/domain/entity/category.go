package entity

import "time"

// PathSeparator separador usado en la ruta materializada de categorías.
const PathSeparator = "/"

// Category categoría jerárquica del catálogo.
//
// Path es una cadena materializada ("Padre/Hijo/Nieto") y Level la profundidad
// (raíz = 0). Ambos son derivados: se reconstruyen de arriba hacia abajo cada
// vez que un ancestro cambia de nombre o de padre. La reconstrucción en
// cascada vive en CategoryUseCase, que además rechaza asignaciones de padre
// que introducirían un ciclo.
type Category struct {
	ID        string    `bson:"_id" json:"id"`
	CompanyID string    `bson:"companyId" json:"company_id"`
	Name      string    `bson:"name" json:"name"`
	ParentID  string    `bson:"parentId,omitempty" json:"parent_id,omitempty"`
	Path      string    `bson:"path" json:"path"`
	Level     int       `bson:"level" json:"level"`
	IsActive  bool      `bson:"isActive" json:"is_active"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// RebuildPath recalcula Path y Level a partir del padre ya resuelto.
// Con parent nil la categoría es raíz.
func (c *Category) RebuildPath(parent *Category) {
	if parent == nil {
		c.Path = c.Name
		c.Level = 0
		return
	}
	c.Path = parent.Path + PathSeparator + c.Name
	c.Level = parent.Level + 1
}
