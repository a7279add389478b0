package model

import "time"

// Food represents one catalog item in the `foods` table. Nutrition
// values are stored per 100g. Items originate from an external import,
// hence the source url/id pair. CategoryID may be zero because the
// storage layer defaults it; the API requires it on create.
type Food struct {
	ID                  uint64    `json:"id"`
	SourceURL           string    `json:"source_url"`
	SourceID            int64     `json:"source_id"`
	Name                string    `json:"name"`
	CategoryName        string    `json:"category_name,omitempty"` // denormalized import label (foods.category)
	CategoryID          uint64    `json:"category_id"`
	EnergyKJ            float64   `json:"energy_kj"`
	CaloriesKcal        float64   `json:"calories_kcal"`
	ProteinG            float64   `json:"protein_g"`
	CarbohydrateG       float64   `json:"carbohydrate_g"`
	FatG                float64   `json:"fat_g"`
	SaturatedFatG       float64   `json:"saturated_fat_g"`
	MonounsaturatedFatG float64   `json:"monounsaturated_fat_g"`
	PolyunsaturatedFatG float64   `json:"polyunsaturated_fat_g"`
	CholesterolMg       float64   `json:"cholesterol_mg"`
	FiberG              float64   `json:"fiber_g"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Category is populated on reads that join the category tree.
	Category *FoodCategory `json:"category,omitempty"`
}
