package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/advenue/foodadmin/internal/model"
)

type FoodRepo struct{ DB *sql.DB }

func NewFoodRepo(db *sql.DB) *FoodRepo { return &FoodRepo{DB: db} }

// FoodFilter narrows the catalog listing. Name is a literal substring
// match (LIKE metacharacters escaped); CategoryID is an exact match
// when non-zero.
type FoodFilter struct {
	Name       string
	CategoryID uint64
	SortBy     string
	SortDir    string
}

var foodSortFields = map[string]bool{
	"id":                    true,
	"name":                  true,
	"source_id":             true,
	"category_id":           true,
	"energy_kj":             true,
	"calories_kcal":         true,
	"protein_g":             true,
	"carbohydrate_g":        true,
	"fat_g":                 true,
	"saturated_fat_g":       true,
	"monounsaturated_fat_g": true,
	"polyunsaturated_fat_g": true,
	"cholesterol_mg":        true,
	"fiber_g":               true,
	"created_at":            true,
}

// BuildFoodWhere renders the filter as a WHERE fragment over the
// aliased foods table `f`. Exported for the query tests.
func BuildFoodWhere(f FoodFilter) (string, []any) {
	where := []string{}
	args := []any{}
	if f.Name != "" {
		where = append(where, "f.name LIKE ?")
		args = append(args, "%"+EscapeLike(f.Name)+"%")
	}
	if f.CategoryID != 0 {
		where = append(where, "f.category_id=?")
		args = append(args, f.CategoryID)
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// FoodOrderClause renders the filter's sort as an ORDER BY fragment.
// Exported for the query tests.
func FoodOrderClause(f FoodFilter) string {
	return orderClause(f.SortBy, f.SortDir, "name", foodSortFields)
}

const foodSelect = `SELECT f.id, f.source_url, f.source_id, f.name, f.category, f.category_id,
 f.energy_kj, f.calories_kcal, f.protein_g, f.carbohydrate_g, f.fat_g,
 f.saturated_fat_g, f.monounsaturated_fat_g, f.polyunsaturated_fat_g,
 f.cholesterol_mg, f.fiber_g, f.created_at, f.updated_at,
 c.id, c.parent_id, c.name, c.slug, c.description, c.image, c.level, c.created_at, c.updated_at
 FROM foods f LEFT JOIN food_categories c ON c.id = f.category_id`

type foodScanner interface{ Scan(dest ...any) error }

func scanFood(s foodScanner) (model.Food, error) {
	var (
		fd           model.Food
		sourceURL    sql.NullString
		name         sql.NullString
		categoryName sql.NullString
		nutrition    [10]sql.NullFloat64
		catID        sql.NullInt64
		catParent    sql.NullInt64
		catName      sql.NullString
		catSlug      sql.NullString
		catDesc      sql.NullString
		catImage     sql.NullString
		catLevel     sql.NullInt64
		catCreated   sql.NullTime
		catUpdated   sql.NullTime
	)
	err := s.Scan(&fd.ID, &sourceURL, &fd.SourceID, &name, &categoryName, &fd.CategoryID,
		&nutrition[0], &nutrition[1], &nutrition[2], &nutrition[3], &nutrition[4],
		&nutrition[5], &nutrition[6], &nutrition[7], &nutrition[8], &nutrition[9],
		&fd.CreatedAt, &fd.UpdatedAt,
		&catID, &catParent, &catName, &catSlug, &catDesc, &catImage, &catLevel, &catCreated, &catUpdated)
	if err != nil {
		return model.Food{}, err
	}
	fd.SourceURL = sourceURL.String
	fd.Name = name.String
	fd.CategoryName = categoryName.String
	fd.EnergyKJ = nutrition[0].Float64
	fd.CaloriesKcal = nutrition[1].Float64
	fd.ProteinG = nutrition[2].Float64
	fd.CarbohydrateG = nutrition[3].Float64
	fd.FatG = nutrition[4].Float64
	fd.SaturatedFatG = nutrition[5].Float64
	fd.MonounsaturatedFatG = nutrition[6].Float64
	fd.PolyunsaturatedFatG = nutrition[7].Float64
	fd.CholesterolMg = nutrition[8].Float64
	fd.FiberG = nutrition[9].Float64
	if catID.Valid {
		cat := model.FoodCategory{
			ID:          uint64(catID.Int64),
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDesc.String,
			Image:       catImage.String,
			Level:       uint8(catLevel.Int64),
			CreatedAt:   catCreated.Time,
			UpdatedAt:   catUpdated.Time,
		}
		if catParent.Valid {
			p := uint64(catParent.Int64)
			cat.ParentID = &p
		}
		fd.Category = &cat
	}
	return fd, nil
}

// Count returns the number of foods matching the filter. Both
// pagination modes report this alongside the page window.
func (r *FoodRepo) Count(ctx context.Context, f FoodFilter) (int64, error) {
	where, args := BuildFoodWhere(f)
	var total int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods f"+where, args...).Scan(&total)
	return total, err
}

// List returns the window of foods selected by offset/limit under the
// filter's ordering. A window past the last row yields an empty slice.
func (r *FoodRepo) List(ctx context.Context, f FoodFilter, offset, limit int) ([]model.Food, error) {
	where, args := BuildFoodWhere(f)
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx, foodSelect+where+FoodOrderClause(f)+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := []model.Food{}
	for rows.Next() {
		fd, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, fd)
	}
	return foods, rows.Err()
}

// GetByID fetches one food with its category joined, or ErrNotFound.
func (r *FoodRepo) GetByID(ctx context.Context, id uint64) (model.Food, error) {
	fd, err := scanFood(r.DB.QueryRowContext(ctx, foodSelect+" WHERE f.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Food{}, ErrNotFound
	}
	return fd, err
}

// ListByCategory returns every food in one category.
func (r *FoodRepo) ListByCategory(ctx context.Context, categoryID uint64) ([]model.Food, error) {
	rows, err := r.DB.QueryContext(ctx, foodSelect+" WHERE f.category_id=? ORDER BY f.name ASC", categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := []model.Food{}
	for rows.Next() {
		fd, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, fd)
	}
	return foods, rows.Err()
}

// Create inserts a food and fills in its assigned ID.
func (r *FoodRepo) Create(ctx context.Context, fd *model.Food) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO foods (source_url, source_id, name, category, category_id,
		 energy_kj, calories_kcal, protein_g, carbohydrate_g, fat_g,
		 saturated_fat_g, monounsaturated_fat_g, polyunsaturated_fat_g,
		 cholesterol_mg, fiber_g) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		fd.SourceURL, fd.SourceID, fd.Name, fd.CategoryName, fd.CategoryID,
		fd.EnergyKJ, fd.CaloriesKcal, fd.ProteinG, fd.CarbohydrateG, fd.FatG,
		fd.SaturatedFatG, fd.MonounsaturatedFatG, fd.PolyunsaturatedFatG,
		fd.CholesterolMg, fd.FiberG)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fd.ID = uint64(id)
	return nil
}

// FoodPatch carries the optional fields of a partial update; nil
// pointers are left untouched.
type FoodPatch struct {
	SourceURL           *string
	SourceID            *int64
	Name                *string
	CategoryID          *uint64
	EnergyKJ            *float64
	CaloriesKcal        *float64
	ProteinG            *float64
	CarbohydrateG       *float64
	FatG                *float64
	SaturatedFatG       *float64
	MonounsaturatedFatG *float64
	PolyunsaturatedFatG *float64
	CholesterolMg       *float64
	FiberG              *float64
}

// Update applies a partial update. A patch with no fields set is a
// no-op success.
func (r *FoodRepo) Update(ctx context.Context, id uint64, p FoodPatch) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if p.SourceURL != nil {
		add("source_url", *p.SourceURL)
	}
	if p.SourceID != nil {
		add("source_id", *p.SourceID)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.CategoryID != nil {
		add("category_id", *p.CategoryID)
	}
	if p.EnergyKJ != nil {
		add("energy_kj", *p.EnergyKJ)
	}
	if p.CaloriesKcal != nil {
		add("calories_kcal", *p.CaloriesKcal)
	}
	if p.ProteinG != nil {
		add("protein_g", *p.ProteinG)
	}
	if p.CarbohydrateG != nil {
		add("carbohydrate_g", *p.CarbohydrateG)
	}
	if p.FatG != nil {
		add("fat_g", *p.FatG)
	}
	if p.SaturatedFatG != nil {
		add("saturated_fat_g", *p.SaturatedFatG)
	}
	if p.MonounsaturatedFatG != nil {
		add("monounsaturated_fat_g", *p.MonounsaturatedFatG)
	}
	if p.PolyunsaturatedFatG != nil {
		add("polyunsaturated_fat_g", *p.PolyunsaturatedFatG)
	}
	if p.CholesterolMg != nil {
		add("cholesterol_mg", *p.CholesterolMg)
	}
	if p.FiberG != nil {
		add("fiber_g", *p.FiberG)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE foods SET "+strings.Join(set, ", ")+", updated_at=NOW() WHERE id=?", args...)
	return err
}

// Delete removes a food row. Missing rows report ErrNotFound.
func (r *FoodRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM foods WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
