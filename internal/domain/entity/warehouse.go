package entity

import "time"

// WarehouseCapacity capacidad física de la bodega.
type WarehouseCapacity struct {
	TotalSpace float64 `bson:"totalSpace" json:"total_space"`
	UsedSpace  float64 `bson:"usedSpace" json:"used_space"`
}

// WarehouseSettings configuración de la bodega.
// IsDefault: exactamente una bodega por empresa puede ser la predeterminada.
// El invariante se preserva en WarehouseRepository.SetDefault, nunca con
// updates sueltos por handler.
type WarehouseSettings struct {
	IsDefault bool `bson:"isDefault" json:"is_default"`
}

// Warehouse bodega / almacén.
type Warehouse struct {
	ID        string            `bson:"_id" json:"id"`
	CompanyID string            `bson:"companyId" json:"company_id"`
	Name      string            `bson:"name" json:"name"`
	Address   string            `bson:"address,omitempty" json:"address,omitempty"`
	Capacity  WarehouseCapacity `bson:"capacity" json:"capacity"`
	Settings  WarehouseSettings `bson:"settings" json:"settings"`
	IsActive  bool              `bson:"isActive" json:"is_active"`
	CreatedAt time.Time         `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updated_at"`
}
