package analytics

// ABCItem ítem ya clasificado del análisis ABC.
type ABCItem struct {
	ProductID     string  `json:"product_id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Stock         float64 `json:"stock"`
	Value         float64 `json:"value"`
	ValuePct      float64 `json:"value_pct"`
	CumulativePct float64 `json:"cumulative_pct"`
	Class         string  `json:"class"` // A | B | C
}

// ClassifyABC clasifica ítems por porcentaje acumulado del valor total.
//
// Los ítems deben venir ordenados por valor descendente (ABCValuePipeline ya
// lo garantiza). El barrido es una suma de prefijos dependiente del orden:
// una sola pasada determinista, sin reordenar.
//
// Cortes: A ≤ ClassAThreshold, B ≤ ClassBThreshold, C el resto. El ítem que
// cruza exactamente el umbral pertenece a la clase inferior (80.0 → A).
// Con valor total cero todos los ítems quedan en C con porcentajes en cero.
func ClassifyABC(items []ABCItem) []ABCItem {
	var total float64
	for _, it := range items {
		total += it.Value
	}

	out := make([]ABCItem, len(items))
	var cumulative float64
	for i, it := range items {
		pct := SafeDivide(it.Value, total) * 100
		cumulative += pct

		class := "C"
		switch {
		case total == 0:
			// sin valor total no hay reparto significativo
		case cumulative <= ClassAThreshold:
			class = "A"
		case cumulative <= ClassBThreshold:
			class = "B"
		}

		it.ValuePct = Round2(pct)
		it.CumulativePct = Round2(cumulative)
		it.Class = class
		out[i] = it
	}
	return out
}
