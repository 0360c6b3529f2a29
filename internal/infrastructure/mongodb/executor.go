package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// Executor implementa repository.AggregationExecutor sobre MongoDB.
type Executor struct {
	db *mongo.Database
}

// NewExecutor construye el ejecutor.
func NewExecutor(db *mongo.Database) *Executor {
	return &Executor{db: db}
}

var _ repository.AggregationExecutor = (*Executor)(nil)

// Aggregate ejecuta el pipeline y decodifica todos los documentos del cursor
// en results (puntero a slice).
func (e *Executor) Aggregate(ctx context.Context, collection string, pipeline []bson.M, results interface{}) error {
	cursor, err := e.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("mongodb: aggregate en %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("mongodb: decodificando cursor de %s: %w", collection, err)
	}
	return nil
}

// Distinct devuelve los valores distintos de un campo bajo un filtro.
func (e *Executor) Distinct(ctx context.Context, collection, field string, filter bson.M) ([]interface{}, error) {
	values, err := e.db.Collection(collection).Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("mongodb: distinct %s.%s: %w", collection, field, err)
	}
	return values, nil
}
