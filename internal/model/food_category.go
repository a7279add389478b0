package model

import "time"

// FoodCategory is a node in the self-referencing category tree.
// Root categories have a null parent; deleting a parent sets the
// children's ParentID to null at the database layer (ON DELETE SET NULL),
// the tree never cascades.
type FoodCategory struct {
	ID          uint64    `json:"id"`
	ParentID    *uint64   `json:"parent_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Level       uint8     `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
