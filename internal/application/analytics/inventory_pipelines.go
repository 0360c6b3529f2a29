package analytics

import "go.mongodb.org/mongo-driver/bson"

// baseProductMatch etapa $match común a los pipelines de inventario:
// empresa, productos activos y filtros de dimensión presentes.
func baseProductMatch(f Filters) bson.M {
	match := bson.M{
		"companyId": f.CompanyID,
		"isActive":  true,
	}
	// El filtro de categoría llega como nombre: es el valor que ofrece el
	// catálogo de filtros dinámicos y el mismo que denormalizan las líneas de
	// venta, así la dimensión significa lo mismo en ventas e inventario.
	if f.Category != "" {
		match["category.name"] = f.Category
	}
	if f.Warehouse != "" {
		match["inventory.locations.warehouseId"] = f.Warehouse
	}
	if f.Search != "" {
		match["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"sku": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.MinValue > 0 {
		match["inventory.stockValue"] = bson.M{"$gte": f.MinValue}
	}
	return match
}

// InventoryKPIsPipeline KPIs de inventario en una sola pasada.
//
// Los conteos por umbral se resuelven con sumas condicionales ($cond por
// comparación), de modo que una sola agrupación produce: ítems activos,
// bajo punto de reorden, sobrestock, agotados y valor total del inventario.
// Sobrestock = currentStock >= reorderPoint × OverstockMultiplier.
func InventoryKPIsPipeline(f Filters) []bson.M {
	return []bson.M{
		{"$match": baseProductMatch(f)},
		{"$group": bson.M{
			"_id":        nil,
			"totalItems": bson.M{"$sum": 1},
			"belowReorderPoint": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$gt": bson.A{"$inventory.currentStock", 0}},
					bson.M{"$lte": bson.A{"$inventory.currentStock", "$inventory.reorderPoint"}},
				}},
				1, 0,
			}}},
			"overstock": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{
					"$inventory.currentStock",
					bson.M{"$multiply": bson.A{"$inventory.reorderPoint", OverstockMultiplier}},
				}},
				1, 0,
			}}},
			"outOfStock": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$lte": bson.A{"$inventory.currentStock", 0}},
				1, 0,
			}}},
			"totalValue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$inventory.currentStock", "$pricing.cost"},
			}},
		}},
	}
}

// ABCValuePipeline todos los ítems activos ordenados por valor de inventario
// descendente (empate por _id ascendente). La clasificación A/B/C es un
// barrido acumulado inherentemente secuencial y vive en ClassifyABC: primero
// hay que fijar el orden, después recorrer el prefijo.
func ABCValuePipeline(f Filters) []bson.M {
	return []bson.M{
		{"$match": baseProductMatch(f)},
		{"$project": bson.M{
			"_id":   1,
			"sku":   1,
			"name":  1,
			"stock": "$inventory.currentStock",
			"value": bson.M{"$multiply": bson.A{"$inventory.currentStock", "$pricing.cost"}},
		}},
		{"$sort": bson.D{{Key: "value", Value: -1}, {Key: "_id", Value: 1}}},
	}
}

// StockedProductsPipeline candidatos a stock muerto: productos activos con
// existencias. Primer paso de la consulta dependiente en dos fases (el
// segundo cruza ventas contra estos ids; ver DeadStockSalesPipeline).
func StockedProductsPipeline(f Filters) []bson.M {
	match := baseProductMatch(f)
	match["inventory.currentStock"] = bson.M{"$gt": 0}
	return []bson.M{
		{"$match": match},
		{"$project": bson.M{
			"_id":   1,
			"sku":   1,
			"name":  1,
			"stock": "$inventory.currentStock",
			"value": bson.M{"$multiply": bson.A{"$inventory.currentStock", "$pricing.cost"}},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
}

// DeadStockSalesPipeline actividad de venta de un conjunto de productos.
//
// Segundo paso dependiente: recibe los ids del primer paso y devuelve, por
// producto, la última fecha de venta histórica y las unidades vendidas dentro
// de la ventana móvil. Un producto ausente del resultado nunca se ha vendido
// ("Never sold" es un estado válido, distinto de "vendido hace mucho").
func DeadStockSalesPipeline(f Filters, productIDs []string, windowStart interface{}) []bson.M {
	match := baseOrderMatch(f)
	return []bson.M{
		{"$match": match},
		{"$unwind": "$items"},
		{"$match": bson.M{"items.productId": bson.M{"$in": productIDs}}},
		{"$group": bson.M{
			"_id":      "$items.productId",
			"lastSold": bson.M{"$max": "$dates.orderDate"},
			"soldInWindow": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$dates.orderDate", windowStart}},
				"$items.quantity",
				0,
			}}},
		}},
	}
}

// WarehouseDistributionPipeline valor de inventario por bodega.
//
// Desenrolla las ubicaciones por bodega y agrupa por warehouseId sumando
// cantidad × costo. Solo emite bodegas con al menos una coincidencia: el
// zero-fill de bodegas sin stock bajo el filtro actual se hace en el usecase
// contra el catálogo de bodegas.
func WarehouseDistributionPipeline(f Filters) []bson.M {
	pipeline := []bson.M{
		{"$match": baseProductMatch(f)},
		{"$unwind": "$inventory.locations"},
	}
	if f.Warehouse != "" {
		pipeline = append(pipeline, bson.M{"$match": bson.M{
			"inventory.locations.warehouseId": f.Warehouse,
		}})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":      "$inventory.locations.warehouseId",
			"quantity": bson.M{"$sum": "$inventory.locations.quantity"},
			"value": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$inventory.locations.quantity", "$pricing.cost"},
			}},
			"items": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.D{{Key: "value", Value: -1}, {Key: "_id", Value: 1}}},
	)
	return pipeline
}
