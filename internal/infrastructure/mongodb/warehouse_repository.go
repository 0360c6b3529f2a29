package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// WarehouseRepo repositorio MongoDB de bodegas.
type WarehouseRepo struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// NewWarehouseRepo construye el repositorio.
func NewWarehouseRepo(db *mongo.Database) *WarehouseRepo {
	return &WarehouseRepo{
		coll:   db.Collection(repository.CollWarehouses),
		client: db.Client(),
	}
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// Create inserta la bodega.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	if _, err := r.coll.InsertOne(ctx, warehouse); err != nil {
		return fmt.Errorf("mongodb: insertando bodega: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&warehouse); err != nil {
		return nil, mapErr(err)
	}
	return &warehouse, nil
}

// Update reemplaza el documento completo. settings.isDefault se preserva tal
// como venga en la entidad; el marcado atómico vive en SetDefault.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": warehouse.ID}, warehouse)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando bodega %s: %w", warehouse.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista las bodegas activas de la empresa.
func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Warehouse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando bodegas: %w", err)
	}
	defer cursor.Close(ctx)

	var warehouses []*entity.Warehouse
	if err := cursor.All(ctx, &warehouses); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando bodegas: %w", err)
	}
	return warehouses, nil
}

// SoftDelete desactiva la bodega.
func (r *WarehouseRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongodb: desactivando bodega %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// SetDefault marca la bodega como predeterminada y desmarca las demás de la
// empresa. Desmarcar y marcar van dentro de una misma transacción: dos
// SetDefault concurrentes se serializan y la empresa termina con exactamente
// una bodega marcada.
func (r *WarehouseRepo) SetDefault(ctx context.Context, companyID, warehouseID string) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongodb: abriendo sesión: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now().UTC()
		if _, err := r.coll.UpdateMany(sc,
			bson.M{"companyId": companyID, "settings.isDefault": true},
			bson.M{"$set": bson.M{"settings.isDefault": false, "updatedAt": now}},
		); err != nil {
			return nil, fmt.Errorf("mongodb: desmarcando bodegas de %s: %w", companyID, err)
		}

		res, err := r.coll.UpdateOne(sc,
			bson.M{"_id": warehouseID, "companyId": companyID},
			bson.M{"$set": bson.M{"settings.isDefault": true, "updatedAt": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("mongodb: marcando bodega %s: %w", warehouseID, err)
		}
		if res.MatchedCount == 0 {
			// Aborta la transacción: el desmarcado previo no queda a medias.
			return nil, entity.ErrNotFound
		}
		return nil, nil
	})
	return err
}
