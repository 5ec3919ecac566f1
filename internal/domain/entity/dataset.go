package entity

// Dataset el conjunto completo de datos del negocio. El llamador (capa de
// estado) es dueño de todas las colecciones; los motores de cálculo nunca
// retienen referencias entre invocaciones.
type Dataset struct {
	Ingredients       []Ingredient      `json:"ingredients"`
	Recipes           []Recipe          `json:"recipes"`
	Products          []Product         `json:"products"`
	Purchases         []Purchase        `json:"purchases"`
	ProductionBatches []ProductionBatch `json:"productionBatches"`
	Orders            []Order           `json:"orders"`
	Reports           []MonthlyReport   `json:"reports"`
	Settings          GlobalSettings    `json:"settings"`
}

// IngredientByID búsqueda lineal por ID; devuelve nil si no existe.
// Las colecciones son pequeñas (decenas), no vale la pena indexar.
func (d *Dataset) IngredientByID(id string) *Ingredient {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			return &d.Ingredients[i]
		}
	}
	return nil
}

// RecipeByID búsqueda lineal por ID; devuelve nil si no existe.
func (d *Dataset) RecipeByID(id string) *Recipe {
	for i := range d.Recipes {
		if d.Recipes[i].ID == id {
			return &d.Recipes[i]
		}
	}
	return nil
}

// ProductByID búsqueda lineal por ID; devuelve nil si no existe.
func (d *Dataset) ProductByID(id string) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// ReportByMonth devuelve el reporte de un mes ("YYYY-MM") o nil.
func (d *Dataset) ReportByMonth(month string) *MonthlyReport {
	for i := range d.Reports {
		if d.Reports[i].Month == month {
			return &d.Reports[i]
		}
	}
	return nil
}
