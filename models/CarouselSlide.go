package models

import (
	"gorm.io/gorm"
)

// CarouselSlide is one slide of the home-page hero rotation. The public site
// only shows active slides, lowest sort_order first, capped to three.
type CarouselSlide struct {
	gorm.Model
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	Order    int    `json:"order" gorm:"column:sort_order;default:0"`
	IsActive bool   `json:"isActive" gorm:"index"`
}
