package routes

import (
	"net/http"
	"time"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetQuickAccessCards is the public home-page tile listing: active cards,
// expired campaigns filtered out.
func GetQuickAccessCards(ctx iris.Context) {
	var cards []models.QuickAccessCard
	err := storage.DB.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&cards).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	visible := make([]models.QuickAccessCard, 0, len(cards))
	for _, card := range cards {
		if card.Expired(now) {
			continue
		}
		visible = append(visible, card)
	}

	ctx.JSON(iris.Map{"cards": visible})
}

// AdminListQuickAccessCards lists every card, expired and inactive included.
func AdminListQuickAccessCards(ctx iris.Context) {
	var cards []models.QuickAccessCard
	if err := storage.DB.Order("sort_order ASC, id ASC").Find(&cards).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"cards": cards})
}

type quickAccessCardInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Link        string     `json:"link" validate:"required"`
	Order       *int       `json:"order"`
	IsActive    *bool      `json:"isActive"`
	IsCampaign  *bool      `json:"isCampaign"`
	CampaignEnd *time.Time `json:"campaignEnd"`
}

// POST /api/admin/quick-access
func AdminCreateQuickAccessCard(ctx iris.Context) {
	var input quickAccessCardInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	}
	card := models.QuickAccessCard{
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		Link:        input.Link,
		Order:       order,
		IsActive:    input.IsActive == nil || *input.IsActive,
		IsCampaign:  input.IsCampaign != nil && *input.IsCampaign,
		CampaignEnd: input.CampaignEnd,
	}
	if err := storage.DB.Create(&card).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "quick_access.create", "quick_access_card", card.ID, nil, card)
	ctx.JSON(iris.Map{"card": card})
}

// PATCH /api/admin/quick-access/{id}
func AdminUpdateQuickAccessCard(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var card models.QuickAccessCard
	if err := storage.DB.First(&card, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Card not found", ctx)
		return
	}

	var input quickAccessCardInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := card
	card.Title = input.Title
	card.Description = input.Description
	card.Icon = input.Icon
	card.Link = input.Link
	if input.Order != nil {
		card.Order = *input.Order
	}
	if input.IsActive != nil {
		card.IsActive = *input.IsActive
	}
	if input.IsCampaign != nil {
		card.IsCampaign = *input.IsCampaign
	}
	card.CampaignEnd = input.CampaignEnd

	if err := storage.DB.Save(&card).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "quick_access.update", "quick_access_card", card.ID, before, card)
	ctx.JSON(iris.Map{"card": card})
}

// DELETE /api/admin/quick-access/{id}
func AdminDeleteQuickAccessCard(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var card models.QuickAccessCard
	if err := storage.DB.First(&card, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Card not found", ctx)
		return
	}

	if err := storage.DB.Delete(&card).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "quick_access.delete", "quick_access_card", card.ID, card, nil)
	ctx.JSON(iris.Map{"success": true})
}

// AdminMoveQuickAccessCard swaps sort order with the neighboring card inside
// a transaction.
func AdminMoveQuickAccessCard(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input moveInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var card models.QuickAccessCard
	if err := storage.DB.First(&card, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Card not found", ctx)
		return
	}

	var neighbor models.QuickAccessCard
	q := storage.DB.Where("id <> ?", card.ID)
	if input.Direction == "up" {
		q = q.Where("(sort_order < ?) OR (sort_order = ? AND id < ?)", card.Order, card.Order, card.ID).
			Order("sort_order DESC, id DESC")
	} else {
		q = q.Where("(sort_order > ?) OR (sort_order = ? AND id > ?)", card.Order, card.Order, card.ID).
			Order("sort_order ASC, id ASC")
	}
	if err := q.First(&neighbor).Error; err != nil {
		ctx.JSON(iris.Map{"success": true, "card": card})
		return
	}

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QuickAccessCard{}).Where("id = ?", card.ID).
			Update("sort_order", neighbor.Order).Error; err != nil {
			return err
		}
		return tx.Model(&models.QuickAccessCard{}).Where("id = ?", neighbor.ID).
			Update("sort_order", card.Order).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	card.Order, neighbor.Order = neighbor.Order, card.Order
	utils.Audit(ctx, "quick_access.move", "quick_access_card", card.ID, nil, input.Direction)
	ctx.JSON(iris.Map{"success": true, "card": card})
}
