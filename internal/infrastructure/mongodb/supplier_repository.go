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

// SupplierRepo repositorio MongoDB de proveedores.
type SupplierRepo struct {
	coll *mongo.Collection
}

// NewSupplierRepo construye el repositorio.
func NewSupplierRepo(db *mongo.Database) *SupplierRepo {
	return &SupplierRepo{coll: db.Collection(repository.CollSuppliers)}
}

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// Create inserta el proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if _, err := r.coll.InsertOne(ctx, supplier); err != nil {
		return fmt.Errorf("mongodb: insertando proveedor: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&supplier); err != nil {
		return nil, mapErr(err)
	}
	return &supplier, nil
}

// Update reemplaza el documento completo.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": supplier.ID}, supplier)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando proveedor %s: %w", supplier.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista proveedores activos de la empresa, ordenados por nombre.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando proveedores: %w", err)
	}
	defer cursor.Close(ctx)

	var suppliers []*entity.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando proveedores: %w", err)
	}
	return suppliers, nil
}

// SoftDelete desactiva el proveedor.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongodb: desactivando proveedor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
