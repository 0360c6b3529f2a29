package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// listOpts orden descendente por fecha de orden, con paginación.
func listOpts(limit, offset int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "dates.orderDate", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
}

// SalesOrderRepo repositorio MongoDB de órdenes de venta.
type SalesOrderRepo struct {
	coll *mongo.Collection
}

// NewSalesOrderRepo construye el repositorio.
func NewSalesOrderRepo(db *mongo.Database) *SalesOrderRepo {
	return &SalesOrderRepo{coll: db.Collection(repository.CollSalesOrders)}
}

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// Create inserta la orden.
func (r *SalesOrderRepo) Create(ctx context.Context, order *entity.SalesOrder) error {
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("mongodb: insertando orden de venta: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

// Update reemplaza el documento completo.
func (r *SalesOrderRepo) Update(ctx context.Context, order *entity.SalesOrder) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando orden de venta %s: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista órdenes de la empresa, más recientes primero.
func (r *SalesOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID}, listOpts(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando órdenes de venta: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*entity.SalesOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando órdenes de venta: %w", err)
	}
	return orders, nil
}

// PurchaseOrderRepo repositorio MongoDB de órdenes de compra.
type PurchaseOrderRepo struct {
	coll *mongo.Collection
}

// NewPurchaseOrderRepo construye el repositorio.
func NewPurchaseOrderRepo(db *mongo.Database) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{coll: db.Collection(repository.CollPurchaseOrders)}
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// Create inserta la orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("mongodb: insertando orden de compra: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

// Update reemplaza el documento completo.
func (r *PurchaseOrderRepo) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando orden de compra %s: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista órdenes de la empresa, más recientes primero.
func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID}, listOpts(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando órdenes de compra: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*entity.PurchaseOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando órdenes de compra: %w", err)
	}
	return orders, nil
}
