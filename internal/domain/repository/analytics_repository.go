package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Nombres de colecciones sobre las que se construyen los pipelines.
const (
	CollSalesOrders    = "sales_orders"
	CollPurchaseOrders = "purchase_orders"
	CollProducts       = "products"
	CollCustomers      = "customers"
	CollSuppliers      = "suppliers"
	CollWarehouses     = "warehouses"
	CollCategories     = "categories"
	CollUsers          = "users"
)

// AggregationExecutor puerto de ejecución de pipelines de agregación.
//
// El núcleo de analítica construye pipelines como []bson.M puros y los delega
// aquí; cualquier datastore con match / group / unwind / project / sort /
// limit / distinct sirve como implementación. results debe ser un puntero a
// slice (se decodifican todos los documentos del cursor).
type AggregationExecutor interface {
	Aggregate(ctx context.Context, collection string, pipeline []bson.M, results interface{}) error
	// Distinct devuelve los valores distintos de un campo bajo un filtro.
	// Alimenta las opciones dinámicas de filtros de reportes.
	Distinct(ctx context.Context, collection, field string, filter bson.M) ([]interface{}, error)
}
