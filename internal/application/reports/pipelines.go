package reports

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/internal/domain/repository"
)

// Pipelines propios del catálogo de reportes que no forman parte de los
// dashboards. Siguen las mismas reglas que los builders de analytics: puros,
// deterministas, toda división con guarda y empates resueltos por _id.

// lowStockPipeline productos activos con existencias bajo su punto de reorden.
func lowStockPipeline(f analytics.Filters) (string, []bson.M) {
	match := bson.M{
		"companyId": f.CompanyID,
		"isActive":  true,
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{"$inventory.currentStock", 0}},
			bson.M{"$lte": bson.A{"$inventory.currentStock", "$inventory.reorderPoint"}},
		}},
	}
	if f.Category != "" {
		match["category.name"] = f.Category
	}
	if f.Warehouse != "" {
		match["inventory.locations.warehouseId"] = f.Warehouse
	}

	return repository.CollProducts, []bson.M{
		{"$match": match},
		{"$project": bson.M{
			"_id":             1,
			"sku":             1,
			"name":            1,
			"stock":           "$inventory.currentStock",
			"reorderPoint":    "$inventory.reorderPoint",
			"reorderQuantity": "$inventory.reorderQuantity",
			"value": bson.M{"$multiply": bson.A{
				"$inventory.currentStock", "$pricing.cost",
			}},
		}},
		{"$sort": bson.D{{Key: "stock", Value: 1}, {Key: "_id", Value: 1}}},
	}
}

// purchaseBaseMatch match común de órdenes de compra: empresa, estados no
// cancelados/borrador y rango de fechas cuando hay período.
func purchaseBaseMatch(f analytics.Filters) bson.M {
	match := bson.M{
		"companyId": f.CompanyID,
		"status": bson.M{"$nin": bson.A{
			entity.PurchaseStatusDraft, entity.PurchaseStatusCancelled,
		}},
	}
	if len(f.Status) > 0 {
		match["status"] = bson.M{"$in": f.Status}
	}
	if f.Warehouse != "" {
		match["warehouseId"] = f.Warehouse
	}
	if f.HasPeriod {
		match["dates.orderDate"] = bson.M{"$gte": f.Start, "$lte": f.End}
	}
	return match
}

// purchasesByStatusPipeline órdenes de compra agrupadas por estado.
func purchasesByStatusPipeline(f analytics.Filters) (string, []bson.M) {
	return repository.CollPurchaseOrders, []bson.M{
		{"$match": purchaseBaseMatch(f)},
		{"$group": bson.M{
			"_id":    "$status",
			"orders": bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$financial.grandTotal"},
		}},
		{"$sort": bson.D{{Key: "amount", Value: -1}, {Key: "_id", Value: 1}}},
	}
}

// supplierOrdersPipeline monto comprado por proveedor, descendente.
func supplierOrdersPipeline(f analytics.Filters) (string, []bson.M) {
	return repository.CollPurchaseOrders, []bson.M{
		{"$match": purchaseBaseMatch(f)},
		{"$group": bson.M{
			"_id":    bson.M{"$ifNull": bson.A{"$supplierName", "$supplierId"}},
			"orders": bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$financial.grandTotal"},
		}},
		{"$project": bson.M{
			"_id":    1,
			"orders": 1,
			"amount": 1,
			"avgAmount": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$orders", 0}},
				0,
				bson.M{"$divide": bson.A{"$amount", "$orders"}},
			}},
		}},
		{"$sort": bson.D{{Key: "amount", Value: -1}, {Key: "_id", Value: 1}}},
	}
}

// topCustomersPipeline ranking de clientes por ingreso sobre órdenes de venta.
func topCustomersPipeline(f analytics.Filters) (string, []bson.M) {
	limit := f.Limit
	if limit <= 0 {
		limit = topCustomersLimit
	}

	match := bson.M{
		"companyId": f.CompanyID,
		"status": bson.M{"$nin": bson.A{
			entity.SalesStatusDraft, entity.SalesStatusCancelled,
		}},
	}
	if len(f.Status) > 0 {
		match["status"] = bson.M{"$in": f.Status}
	}
	if f.Channel != "" {
		match["channel"] = f.Channel
	}
	if f.HasPeriod {
		match["dates.orderDate"] = bson.M{"$gte": f.Start, "$lte": f.End}
	}

	return repository.CollSalesOrders, []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":     bson.M{"$ifNull": bson.A{"$customerName", "$customerId"}},
			"segment": bson.M{"$first": bson.M{"$ifNull": bson.A{"$customerType", entity.CustomerTypeB2C}}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$financial.grandTotal"},
		}},
		{"$project": bson.M{
			"_id":     1,
			"segment": 1,
			"orders":  1,
			"revenue": 1,
			"avgOrderValue": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$orders", 0}},
				0,
				bson.M{"$divide": bson.A{"$revenue", "$orders"}},
			}},
		}},
		{"$sort": bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}},
		{"$limit": limit},
	}
}
