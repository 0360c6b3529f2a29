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

// ProductRepo repositorio MongoDB de productos.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepo construye el repositorio.
func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{coll: db.Collection(repository.CollProducts)}
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Create inserta el producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("mongodb: insertando producto: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

// Update reemplaza el documento completo.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando producto %s: %w", product.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos activos de la empresa, ordenados por nombre.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando productos: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando productos: %w", err)
	}
	return products, nil
}

// ListByCategory lista productos activos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, companyID, categoryID string) ([]*entity.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{
		"companyId":   companyID,
		"category.id": categoryID,
		"isActive":    true,
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando productos por categoría: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando productos: %w", err)
	}
	return products, nil
}

// SoftDelete desactiva el producto sin borrar el documento.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongodb: desactivando producto %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
