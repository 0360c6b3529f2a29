package analytics

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// Claves de bucket del pipeline de KPIs de ventas.
const (
	bucketCurrent    = "current"
	bucketComparison = "comparison"
)

// defaultTopLimit límite por defecto en pipelines de ranking (top-N).
const defaultTopLimit = 5

// excludedSalesStatuses estados que nunca cuentan como venta en métricas.
var excludedSalesStatuses = []string{entity.SalesStatusDraft, entity.SalesStatusCancelled}

// lineRevenue ingreso de mercadería de una orden: suma de los totales de
// línea (subtotal − descuento + impuesto), sin despacho ni otros cargos.
// Todos los pipelines de ventas acumulan esta misma expresión, de modo que
// el total de KPIs, la serie temporal y los desgloses por categoría o
// producto suman sobre la misma base y cuadran entre sí.
var lineRevenue = bson.M{"$sum": "$items.total"}

// baseOrderMatch etapa $match común a todos los pipelines de ventas:
// empresa, estados válidos y filtros de dimensión presentes. Un filtro de
// status explícito reemplaza la exclusión por defecto de draft/cancelled.
func baseOrderMatch(f Filters) bson.M {
	match := bson.M{
		"companyId": f.CompanyID,
		"status":    bson.M{"$nin": excludedSalesStatuses},
	}
	if len(f.Status) > 0 {
		match["status"] = bson.M{"$in": f.Status}
	}
	if f.Warehouse != "" {
		match["warehouseId"] = f.Warehouse
	}
	if f.Channel != "" {
		match["channel"] = f.Channel
	}
	if f.SalesRep != "" {
		match["salesPersonId"] = f.SalesRep
	}
	if f.MinAmount > 0 {
		match["financial.grandTotal"] = bson.M{"$gte": f.MinAmount}
	}
	return match
}

// currentPeriodMatch añade el rango de fechas del período actual al match base.
func currentPeriodMatch(f Filters) bson.M {
	match := baseOrderMatch(f)
	if f.HasPeriod {
		match["dates.orderDate"] = bson.M{"$gte": f.Start, "$lte": f.End}
	}
	return match
}

// guardedDivide expresión $cond que devuelve 0 cuando el denominador es 0.
// Obligatoria en cada sitio de división dentro de un pipeline.
func guardedDivide(numerator, denominator interface{}) bson.M {
	return bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{denominator, 0}},
		0,
		bson.M{"$divide": bson.A{numerator, denominator}},
	}}
}

// SalesKPIsPipeline construye el pipeline de KPIs de venta.
//
// Calcula el bucket "current" y el "comparison" en una sola pasada: el match
// cubre la unión de ambos rangos y el _id del group se decide con $cond según
// a qué rango pertenece la fecha del documento. Así ambos buckets observan
// exactamente el mismo conjunto de filtros y se ejecutan atómicamente entre
// sí. Sin período solicitado solo existe el bucket current (histórico total).
func SalesKPIsPipeline(f Filters) []bson.M {
	match := baseOrderMatch(f)
	groupID := interface{}(bucketCurrent)
	if f.HasPeriod {
		match["dates.orderDate"] = bson.M{"$gte": f.ComparisonStart, "$lte": f.End}
		groupID = bson.M{"$cond": bson.A{
			bson.M{"$gte": bson.A{"$dates.orderDate", f.Start}},
			bucketCurrent,
			bucketComparison,
		}}
	}

	return []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":       groupID,
			"revenue":   bson.M{"$sum": lineRevenue},
			"subtotal":  bson.M{"$sum": "$financial.subtotal"},
			"tax":       bson.M{"$sum": "$financial.totalTax"},
			"orders":    bson.M{"$sum": 1},
			"customers": bson.M{"$addToSet": "$customerId"},
		}},
		{"$project": bson.M{
			"_id":             1,
			"revenue":         1,
			"subtotal":        1,
			"tax":             1,
			"orders":          1,
			"uniqueCustomers": bson.M{"$size": "$customers"},
			"avgOrderValue":   guardedDivide("$revenue", "$orders"),
		}},
	}
}

// SalesTrendPipeline serie temporal de ventas por bucket de calendario.
//
// El bucket se trunca con $dateToString según GroupBy (day/week/month) y la
// salida queda ordenada ascendente por clave de bucket: los consumidores de
// gráficas no necesitan reordenar.
func SalesTrendPipeline(f Filters) []bson.M {
	format := "%Y-%m-%d"
	switch f.GroupBy {
	case "week":
		format = "%Y-%U"
	case "month":
		format = "%Y-%m"
	}

	return []bson.M{
		{"$match": currentPeriodMatch(f)},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": format,
				"date":   "$dates.orderDate",
			}},
			"revenue":   bson.M{"$sum": lineRevenue},
			"orders":    bson.M{"$sum": 1},
			"customers": bson.M{"$addToSet": "$customerId"},
		}},
		{"$project": bson.M{
			"_id":             1,
			"revenue":         1,
			"orders":          1,
			"uniqueCustomers": bson.M{"$size": "$customers"},
			"avgOrderValue":   guardedDivide("$revenue", "$orders"),
		}},
		{"$sort": bson.M{"_id": 1}},
	}
}

// TopProductsPipeline ranking de productos por ingreso descendente.
//
// Desenrolla las líneas porque la métrica es por ítem. El empate en revenue
// se resuelve con _id ascendente como clave secundaria: el orden queda
// estable y documentado (el datastore no garantiza sort estable por sí solo).
func TopProductsPipeline(f Filters) []bson.M {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	pipeline := []bson.M{
		{"$match": currentPeriodMatch(f)},
		{"$unwind": "$items"},
	}
	if f.Category != "" {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"items.category": f.Category}})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":      "$items.productId",
			"sku":      bson.M{"$first": "$items.sku"},
			"name":     bson.M{"$first": "$items.name"},
			"category": bson.M{"$first": "$items.category"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": "$items.total"},
			"cost": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.quantity", "$items.costPrice"},
			}},
		}},
		bson.M{"$project": bson.M{
			"_id": 1, "sku": 1, "name": 1, "category": 1,
			"quantity": 1, "revenue": 1,
			"profit": bson.M{"$subtract": bson.A{"$revenue", "$cost"}},
			"marginPct": bson.M{"$multiply": bson.A{
				guardedDivide(bson.M{"$subtract": bson.A{"$revenue", "$cost"}}, "$revenue"),
				100,
			}},
		}},
		bson.M{"$sort": bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$limit": limit},
	)
	return pipeline
}

// CategoryPerformancePipeline desempeño por categoría de producto.
// Misma estructura que el top de productos pero agrupando por categoría y sin
// límite: la reconciliación de ingresos exige ver todas las categorías.
func CategoryPerformancePipeline(f Filters) []bson.M {
	pipeline := []bson.M{
		{"$match": currentPeriodMatch(f)},
		{"$unwind": "$items"},
	}
	if f.Category != "" {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"items.category": f.Category}})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":      bson.M{"$ifNull": bson.A{"$items.category", "Sin categoría"}},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": "$items.total"},
			"cost": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.quantity", "$items.costPrice"},
			}},
			"orders": bson.M{"$addToSet": "$_id"},
		}},
		bson.M{"$project": bson.M{
			"_id": 1, "quantity": 1, "revenue": 1,
			"orders": bson.M{"$size": "$orders"},
			"profit": bson.M{"$subtract": bson.A{"$revenue", "$cost"}},
			"marginPct": bson.M{"$multiply": bson.A{
				guardedDivide(bson.M{"$subtract": bson.A{"$revenue", "$cost"}}, "$revenue"),
				100,
			}},
		}},
		bson.M{"$sort": bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}},
	)
	return pipeline
}

// CustomerSegmentsPipeline segmentación B2B vs B2C con comparación de crecimiento.
//
// Agrupa por (segmento, mitad del período): la mitad reciente contra la mitad
// anterior produce el crecimiento por segmento en una sola pasada. El cálculo
// de growth y la razón B2B/B2C ocurren en post-procesamiento con las guardas
// de división del paquete.
func CustomerSegmentsPipeline(f Filters) []bson.M {
	segmentKey := bson.M{"$ifNull": bson.A{"$customerType", entity.CustomerTypeB2C}}
	groupID := interface{}(bson.M{"segment": segmentKey})
	if f.HasPeriod {
		midpoint := f.Start.Add(f.End.Sub(f.Start) / 2)
		groupID = bson.M{
			"segment": segmentKey,
			"half": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$dates.orderDate", midpoint}},
				"recent",
				"prior",
			}},
		}
	}

	return []bson.M{
		{"$match": currentPeriodMatch(f)},
		{"$group": bson.M{
			"_id":       groupID,
			"revenue":   bson.M{"$sum": lineRevenue},
			"orders":    bson.M{"$sum": 1},
			"customers": bson.M{"$addToSet": "$customerId"},
		}},
		{"$project": bson.M{
			"_id":             1,
			"revenue":         1,
			"orders":          1,
			"uniqueCustomers": bson.M{"$size": "$customers"},
			"avgOrderValue":   guardedDivide("$revenue", "$orders"),
		}},
		{"$sort": bson.M{"_id.segment": 1}},
	}
}
