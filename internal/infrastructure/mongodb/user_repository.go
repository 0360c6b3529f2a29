package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// UserRepo repositorio MongoDB de usuarios.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo construye el repositorio.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(repository.CollUsers)}
}

var _ repository.UserRepository = (*UserRepo)(nil)

// Create inserta el usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("mongodb: insertando usuario: %w", err)
	}
	return nil
}

// GetByID busca por _id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

// GetByEmail busca por email dentro de una empresa.
func (r *UserRepo) GetByEmail(ctx context.Context, companyID, email string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"companyId": companyID, "email": email}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

// FindByEmail busca global por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}
