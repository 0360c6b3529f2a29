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

// PurchaseOrderUseCase ciclo de vida de las órdenes de compra.
//
// La recepción alimenta el inventario: cada cantidad recibida entra a la
// bodega de la orden y el costo del producto se recalcula como promedio
// ponderado entre existencias previas y lo recibido. Al completarse la orden
// se actualiza el desempeño del proveedor (entrega a tiempo y lead time).
type PurchaseOrderUseCase struct {
	repo      repository.PurchaseOrderRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	repo repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, products: products, suppliers: suppliers}
}

// Create crea una orden de compra en borrador.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("resolviendo proveedor %s: %w", in.SupplierID, err)
	}

	now := time.Now().UTC()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		OrderNumber:  newOrderNumber("PO", now),
		Status:       entity.PurchaseStatusDraft,
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		WarehouseID:  in.WarehouseID,
		Dates:        entity.PurchaseDates{OrderDate: now},
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.ExpectedDate != "" {
		expected, err := time.Parse("2006-01-02", in.ExpectedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha esperada inválida %q", entity.ErrValidation, in.ExpectedDate)
		}
		order.Dates.ExpectedDate = &expected
	}

	for _, line := range in.Items {
		product, err := uc.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolviendo producto %s: %w", line.ProductID, err)
		}
		unitCost := line.UnitCost
		if unitCost == 0 {
			unitCost = product.Pricing.Cost
		}
		order.Items = append(order.Items, entity.PurchaseItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitCost:  unitCost,
			Tax:       line.Tax,
		})
	}
	order.RecalculateTotals()

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("creando orden de compra: %w", err)
	}
	return order, nil
}

// GetByID obtiene una orden de compra por ID.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista órdenes de compra por empresa con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *o)
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Transition aplica un cambio de estado. Completar la orden actualiza el
// desempeño del proveedor con la entrega ya cerrada.
func (uc *PurchaseOrderUseCase) Transition(ctx context.Context, id, target string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status

	now := time.Now().UTC()
	if err := order.Transition(target, now); err != nil {
		return nil, fmt.Errorf("orden %s (%s → %s): %w", order.OrderNumber, previous, target, err)
	}

	if target == entity.PurchaseStatusCompleted {
		if err := uc.applySupplierPerformance(ctx, order, now); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("guardando orden %s: %w", id, err)
	}
	return order, nil
}

// Receive registra una recepción (total o parcial): incrementa existencias en
// la bodega de la orden, recalcula el costo promedio del producto y mueve la
// orden a partial o received según queden líneas pendientes.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id string, in dto.ReceivePurchaseRequest) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.PurchaseStatusOrdered && order.Status != entity.PurchaseStatusPartial {
		return nil, fmt.Errorf("orden %s en estado %s: %w", order.OrderNumber, order.Status, entity.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	for _, rec := range in.Items {
		item := findPurchaseItem(order, rec.ProductID)
		if item == nil {
			return nil, fmt.Errorf("%w: el producto %s no pertenece a la orden", entity.ErrValidation, rec.ProductID)
		}
		pending := item.Quantity - item.ReceivedQuantity
		if rec.Quantity > pending {
			return nil, fmt.Errorf("%w: recepción de %s excede lo pendiente (%.2f)", entity.ErrValidation, item.SKU, pending)
		}
		if err := uc.receiveIntoStock(ctx, order, item, rec.Quantity, now); err != nil {
			return nil, err
		}
		item.ReceivedQuantity += rec.Quantity
	}

	target := entity.PurchaseStatusPartial
	if fullyReceived(order) {
		target = entity.PurchaseStatusReceived
	}
	if order.Status != target {
		if err := order.Transition(target, now); err != nil {
			return nil, fmt.Errorf("orden %s (%s → %s): %w", order.OrderNumber, order.Status, target, err)
		}
	} else {
		order.UpdatedAt = now
	}

	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("guardando orden %s: %w", id, err)
	}
	return order, nil
}

// receiveIntoStock suma existencias en la bodega de la orden y recalcula el
// costo promedio ponderado del producto.
func (uc *PurchaseOrderUseCase) receiveIntoStock(ctx context.Context, order *entity.PurchaseOrder, item *entity.PurchaseItem, qty float64, at time.Time) error {
	product, err := uc.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("resolviendo producto %s: %w", item.ProductID, err)
	}

	// Promedio ponderado: (stock previo × costo previo + recibido × costo de
	// compra) / (stock previo + recibido). Con stock previo cero el costo pasa
	// a ser el de la compra.
	previousStock := product.Inventory.CurrentStock
	if previousStock+qty > 0 {
		product.Pricing.Cost = (previousStock*product.Pricing.Cost + qty*item.UnitCost) / (previousStock + qty)
	}

	placed := false
	for i := range product.Inventory.Locations {
		if product.Inventory.Locations[i].WarehouseID == order.WarehouseID {
			product.Inventory.Locations[i].Quantity += qty
			placed = true
			break
		}
	}
	if !placed {
		product.Inventory.Locations = append(product.Inventory.Locations, entity.StockLocation{
			WarehouseID: order.WarehouseID,
			Quantity:    qty,
		})
	}

	product.RecalculateInventory()
	product.UpdatedAt = at
	if err := uc.products.Update(ctx, product); err != nil {
		return fmt.Errorf("actualizando producto %s: %w", product.ID, err)
	}
	return nil
}

func (uc *PurchaseOrderUseCase) applySupplierPerformance(ctx context.Context, order *entity.PurchaseOrder, at time.Time) error {
	supplier, err := uc.suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return fmt.Errorf("resolviendo proveedor %s: %w", order.SupplierID, err)
	}
	supplier.ApplyCompletedOrder(order.ReceivedOnTime(), order.LeadTimeDays())
	supplier.UpdatedAt = at
	if err := uc.suppliers.Update(ctx, supplier); err != nil {
		return fmt.Errorf("actualizando desempeño del proveedor %s: %w", supplier.ID, err)
	}
	return nil
}

func findPurchaseItem(order *entity.PurchaseOrder, productID string) *entity.PurchaseItem {
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			return &order.Items[i]
		}
	}
	return nil
}

func fullyReceived(order *entity.PurchaseOrder) bool {
	for _, item := range order.Items {
		if item.ReceivedQuantity < item.Quantity {
			return false
		}
	}
	return true
}
