package repository

import (
	"context"
	"database/sql"

	"github.com/advenue/foodadmin/internal/model"
)

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

const categoryColumns = "id,parent_id,name,slug,description,image,level,created_at,updated_at"

// All returns every category ordered by name.
func (r *CategoryRepo) All(ctx context.Context) ([]model.FoodCategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM food_categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []model.FoodCategory{}
	for rows.Next() {
		var (
			c      model.FoodCategory
			parent sql.NullInt64
			desc   sql.NullString
			image  sql.NullString
		)
		if err := rows.Scan(&c.ID, &parent, &c.Name, &c.Slug, &desc, &image, &c.Level,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if parent.Valid {
			p := uint64(parent.Int64)
			c.ParentID = &p
		}
		c.Description = desc.String
		c.Image = image.String
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Exists reports whether a category id is present. The food create
// validation uses this for its exists rule.
func (r *CategoryRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM food_categories WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
