// Package mongodb implementa los puertos de persistencia sobre MongoDB:
// repositorios por colección y el ejecutor de pipelines de agregación que
// consume el núcleo de analítica.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/pkg/config"
)

// Connect abre la conexión, verifica con ping y devuelve la base de datos.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: conectando: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return client.Database(cfg.Database), nil
}

// Disconnect cierra la conexión del cliente de la base dada.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

// mapErr traduce errores del driver a centinelas del dominio.
func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.ErrNotFound
	}
	return err
}
