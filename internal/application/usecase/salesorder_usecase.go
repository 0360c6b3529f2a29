package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// SalesOrderUseCase ciclo de vida de las órdenes de venta.
//
// Efectos sobre inventario y métricas, atados a las transiciones de estado:
//   - confirmed:  reserva existencias por línea
//   - shipped:    descuenta stock de la bodega de la orden y libera la reserva
//   - delivered:  atribuye la orden a las métricas del cliente
//   - cancelled:  libera la reserva si la orden estaba confirmada o en proceso
type SalesOrderUseCase struct {
	repo      repository.SalesOrderRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	repo repository.SalesOrderRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
) *SalesOrderUseCase {
	return &SalesOrderUseCase{repo: repo, products: products, customers: customers}
}

// Create crea una orden de venta en borrador. Las líneas denormalizan SKU,
// nombre, categoría y costo del producto en el momento de la venta: los
// reportes históricos no se ven afectados por cambios posteriores de catálogo.
func (uc *SalesOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("resolviendo cliente %s: %w", in.CustomerID, err)
	}

	now := time.Now().UTC()
	order := &entity.SalesOrder{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		OrderNumber:   newOrderNumber("SO", now),
		Status:        entity.SalesStatusDraft,
		Channel:       in.Channel,
		WarehouseID:   in.WarehouseID,
		SalesPersonID: in.SalesPersonID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerType:  customer.Type,
		Dates:         entity.OrderDates{OrderDate: now},
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.Financial.ShippingCost = in.ShippingCost
	order.Financial.HandlingFee = in.HandlingFee
	order.Financial.OtherCharges = in.OtherCharges

	for _, line := range in.Items {
		product, err := uc.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolviendo producto %s: %w", line.ProductID, err)
		}
		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.Pricing.Price
		}
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Category:  product.Category.Name,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			CostPrice: product.Pricing.Cost,
			Discount:  line.Discount,
			Tax:       line.Tax,
		})
	}
	order.RecalculateTotals()

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("creando orden de venta: %w", err)
	}
	return order, nil
}

// GetByID obtiene una orden de venta por ID.
func (uc *SalesOrderUseCase) GetByID(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista órdenes de venta por empresa con paginación.
func (uc *SalesOrderUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SalesOrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *o)
	}
	return &dto.SalesOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Transition aplica un cambio de estado con sus efectos colaterales.
func (uc *SalesOrderUseCase) Transition(ctx context.Context, id, target string) (*dto.SalesOrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status

	now := time.Now().UTC()
	if err := order.Transition(target, now); err != nil {
		return nil, fmt.Errorf("orden %s (%s → %s): %w", order.OrderNumber, previous, target, err)
	}

	switch target {
	case entity.SalesStatusConfirmed:
		err = uc.reserveStock(ctx, order, now)
	case entity.SalesStatusShipped:
		err = uc.shipStock(ctx, order, now)
	case entity.SalesStatusDelivered:
		err = uc.attributeToCustomer(ctx, order, now)
	case entity.SalesStatusCancelled:
		if previous == entity.SalesStatusConfirmed || previous == entity.SalesStatusProcessing {
			err = uc.releaseStock(ctx, order, now)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("guardando orden %s: %w", id, err)
	}
	return order, nil
}

func (uc *SalesOrderUseCase) reserveStock(ctx context.Context, order *entity.SalesOrder, at time.Time) error {
	return uc.eachProduct(ctx, order, func(product *entity.Product, item *entity.OrderItem) error {
		if product.Inventory.AvailableStock < item.Quantity {
			return fmt.Errorf("%w: existencias insuficientes de %s (disponible %.2f, pedido %.2f)",
				entity.ErrValidation, product.SKU, product.Inventory.AvailableStock, item.Quantity)
		}
		product.Inventory.ReservedStock += item.Quantity
		product.RecalculateInventory()
		product.UpdatedAt = at
		return nil
	})
}

func (uc *SalesOrderUseCase) releaseStock(ctx context.Context, order *entity.SalesOrder, at time.Time) error {
	return uc.eachProduct(ctx, order, func(product *entity.Product, item *entity.OrderItem) error {
		product.Inventory.ReservedStock -= item.Quantity
		if product.Inventory.ReservedStock < 0 {
			product.Inventory.ReservedStock = 0
		}
		product.RecalculateInventory()
		product.UpdatedAt = at
		return nil
	})
}

// shipStock descuenta de la bodega de la orden (o de la primera ubicación con
// existencias cuando la orden no fija bodega) y libera la reserva.
func (uc *SalesOrderUseCase) shipStock(ctx context.Context, order *entity.SalesOrder, at time.Time) error {
	return uc.eachProduct(ctx, order, func(product *entity.Product, item *entity.OrderItem) error {
		remaining := item.Quantity
		for i := range product.Inventory.Locations {
			loc := &product.Inventory.Locations[i]
			if order.WarehouseID != "" && loc.WarehouseID != order.WarehouseID {
				continue
			}
			take := remaining
			if loc.Quantity < take {
				take = loc.Quantity
			}
			loc.Quantity -= take
			remaining -= take
			if remaining <= 0 {
				break
			}
		}
		if remaining > 0 {
			return fmt.Errorf("%w: no hay existencias suficientes de %s para despachar",
				entity.ErrValidation, product.SKU)
		}
		product.Inventory.ReservedStock -= item.Quantity
		if product.Inventory.ReservedStock < 0 {
			product.Inventory.ReservedStock = 0
		}
		item.ShippedQuantity = item.Quantity
		product.RecalculateInventory()
		product.UpdatedAt = at
		return nil
	})
}

func (uc *SalesOrderUseCase) attributeToCustomer(ctx context.Context, order *entity.SalesOrder, at time.Time) error {
	customer, err := uc.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return fmt.Errorf("resolviendo cliente %s: %w", order.CustomerID, err)
	}
	customer.ApplyOrder(order.Financial.GrandTotal, order.Dates.OrderDate)
	customer.UpdatedAt = at
	if err := uc.customers.Update(ctx, customer); err != nil {
		return fmt.Errorf("actualizando métricas del cliente %s: %w", customer.ID, err)
	}
	return nil
}

// eachProduct carga, muta y persiste cada producto de la orden.
func (uc *SalesOrderUseCase) eachProduct(ctx context.Context, order *entity.SalesOrder, mutate func(*entity.Product, *entity.OrderItem) error) error {
	for i := range order.Items {
		item := &order.Items[i]
		product, err := uc.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("resolviendo producto %s: %w", item.ProductID, err)
		}
		if err := mutate(product, item); err != nil {
			return err
		}
		if err := uc.products.Update(ctx, product); err != nil {
			return fmt.Errorf("actualizando producto %s: %w", product.ID, err)
		}
	}
	return nil
}

// newOrderNumber número legible: prefijo, fecha y sufijo aleatorio corto.
func newOrderNumber(prefix string, at time.Time) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), strings.ToUpper(suffix))
}
