package models

import (
	"gorm.io/gorm"
)

// Page is a CMS-managed public page. Content holds the fallback HTML blob
// (or a JSON payload for special pages like the home welcome box); the real
// body lives in the ordered Sections.
type Page struct {
	gorm.Model
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Title       string    `json:"title"`
	Content     string    `json:"content" gorm:"type:text"`
	IsPublished bool      `json:"isPublished"`
	Sections    []Section `json:"sections,omitempty" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}
