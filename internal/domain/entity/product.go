package entity

import "time"

// ProductCategory categoría denormalizada dentro del producto.
// Path es la ruta materializada (ej. "Electrónica/Audio/Audífonos") que se
// reconstruye en cascada cuando un ancestro cambia de nombre o de padre.
type ProductCategory struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Path string `bson:"path" json:"path"`
}

// ProductPricing precios del producto.
type ProductPricing struct {
	Cost  float64 `bson:"cost" json:"cost"`   // costo promedio de adquisición
	Price float64 `bson:"price" json:"price"` // precio de venta
}

// StockLocation existencias de un producto en una bodega concreta.
type StockLocation struct {
	WarehouseID string  `bson:"warehouseId" json:"warehouse_id"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
}

// ProductInventory bloque de inventario del producto.
//
// Invariantes (se recalculan en cada mutación, nunca se escriben a mano):
//   - AvailableStock = CurrentStock - ReservedStock
//   - StockValue     = CurrentStock * costo promedio
type ProductInventory struct {
	CurrentStock    float64         `bson:"currentStock" json:"current_stock"`
	AvailableStock  float64         `bson:"availableStock" json:"available_stock"`
	ReservedStock   float64         `bson:"reservedStock" json:"reserved_stock"`
	IncomingStock   float64         `bson:"incomingStock" json:"incoming_stock"`
	ReorderPoint    float64         `bson:"reorderPoint" json:"reorder_point"`
	ReorderQuantity float64         `bson:"reorderQuantity" json:"reorder_quantity"`
	StockValue      float64         `bson:"stockValue" json:"stock_value"`
	Locations       []StockLocation `bson:"locations" json:"locations"`
}

// Product producto del catálogo.
type Product struct {
	ID          string           `bson:"_id" json:"id"`
	CompanyID   string           `bson:"companyId" json:"company_id"`
	SKU         string           `bson:"sku" json:"sku"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Category    ProductCategory  `bson:"category" json:"category"`
	Pricing     ProductPricing   `bson:"pricing" json:"pricing"`
	Inventory   ProductInventory `bson:"inventory" json:"inventory"`
	SupplierID  string           `bson:"supplierId,omitempty" json:"supplier_id,omitempty"`
	IsActive    bool             `bson:"isActive" json:"is_active"`
	CreatedAt   time.Time        `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updated_at"`
}

// RecalculateInventory restablece los campos derivados del bloque de inventario.
// CurrentStock se obtiene como la suma de las ubicaciones por bodega.
func (p *Product) RecalculateInventory() {
	var total float64
	for _, loc := range p.Inventory.Locations {
		total += loc.Quantity
	}
	p.Inventory.CurrentStock = total
	p.Inventory.AvailableStock = p.Inventory.CurrentStock - p.Inventory.ReservedStock
	p.Inventory.StockValue = p.Inventory.CurrentStock * p.Pricing.Cost
}

// BelowReorderPoint indica si el producto está en o por debajo del punto de reorden.
func (p *Product) BelowReorderPoint() bool {
	return p.Inventory.CurrentStock <= p.Inventory.ReorderPoint
}
