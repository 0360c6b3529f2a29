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

// CategoryRepo repositorio MongoDB de categorías.
type CategoryRepo struct {
	coll *mongo.Collection
}

// NewCategoryRepo construye el repositorio.
func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(repository.CollCategories)}
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// Create inserta la categoría.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("mongodb: insertando categoría: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, mapErr(err)
	}
	return &category, nil
}

// Update reemplaza el documento completo.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando categoría %s: %w", category.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany devuelve todas las categorías activas de la empresa,
// ordenadas por ruta (el árbol completo, sin paginar).
func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "path", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando categorías: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando categorías: %w", err)
	}
	return categories, nil
}

// ListChildren devuelve las subcategorías activas directas.
func (r *CategoryRepo) ListChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"parentId": parentID, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando subcategorías: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando subcategorías: %w", err)
	}
	return categories, nil
}

// SoftDelete desactiva la categoría.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongodb: desactivando categoría %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
