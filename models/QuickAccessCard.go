package models

import (
	"time"

	"gorm.io/gorm"
)

// QuickAccessCard is a home-page shortcut tile. Campaign cards carry an end
// date and disappear from the public listing once it passes.
type QuickAccessCard struct {
	gorm.Model
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Link        string     `json:"link"`
	Order       int        `json:"order" gorm:"column:sort_order;default:0"`
	IsActive    bool       `json:"isActive" gorm:"index"`
	IsCampaign  bool       `json:"isCampaign" gorm:"default:false"`
	CampaignEnd *time.Time `json:"campaignEnd"`
}

// Expired reports whether a campaign card has passed its end date.
func (c *QuickAccessCard) Expired(now time.Time) bool {
	return c.IsCampaign && c.CampaignEnd != nil && c.CampaignEnd.Before(now)
}
