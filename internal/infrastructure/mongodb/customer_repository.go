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

// CustomerRepo repositorio MongoDB de clientes.
type CustomerRepo struct {
	coll *mongo.Collection
}

// NewCustomerRepo construye el repositorio.
func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{coll: db.Collection(repository.CollCustomers)}
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// Create inserta el cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("mongodb: insertando cliente: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&customer); err != nil {
		return nil, mapErr(err)
	}
	return &customer, nil
}

// Update reemplaza el documento completo.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": customer.ID}, customer)
	if err != nil {
		return fmt.Errorf("mongodb: actualizando cliente %s: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ListByCompany lista clientes activos de la empresa, ordenados por nombre.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listando clientes: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []*entity.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("mongodb: decodificando clientes: %w", err)
	}
	return customers, nil
}

// SoftDelete desactiva el cliente.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongodb: desactivando cliente %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
