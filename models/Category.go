package models

import (
	"gorm.io/gorm"
)

// Category groups articles for navigation. Deleting one must not delete its
// articles; the FK on Article is nullable and set to NULL instead.
type Category struct {
	gorm.Model
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"column:sort_order;default:0"`
}
