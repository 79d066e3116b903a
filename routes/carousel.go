package routes

import (
	"net/http"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetCarouselSlides is the public hero rotation: active slides only, capped
// to the first three by order.
func GetCarouselSlides(ctx iris.Context) {
	var slides []models.CarouselSlide
	err := storage.DB.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").Limit(3).
		Find(&slides).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"slides": slides})
}

// AdminListCarouselSlides lists every slide, inactive included.
func AdminListCarouselSlides(ctx iris.Context) {
	var slides []models.CarouselSlide
	if err := storage.DB.Order("sort_order ASC, id ASC").Find(&slides).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"slides": slides})
}

type carouselSlideInput struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

// POST /api/admin/carousel
func AdminCreateCarouselSlide(ctx iris.Context) {
	var input carouselSlideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	}
	slide := models.CarouselSlide{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
		CTAText:  input.CTAText,
		CTALink:  input.CTALink,
		Order:    order,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if err := storage.DB.Create(&slide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "carousel.create", "carousel_slide", slide.ID, nil, slide)
	ctx.JSON(iris.Map{"slide": slide})
}

// PATCH /api/admin/carousel/{id}
func AdminUpdateCarouselSlide(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var slide models.CarouselSlide
	if err := storage.DB.First(&slide, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Slide not found", ctx)
		return
	}

	var input carouselSlideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := slide
	slide.Title = input.Title
	slide.Subtitle = input.Subtitle
	slide.ImageURL = input.ImageURL
	slide.CTAText = input.CTAText
	slide.CTALink = input.CTALink
	if input.Order != nil {
		slide.Order = *input.Order
	}
	if input.IsActive != nil {
		slide.IsActive = *input.IsActive
	}

	if err := storage.DB.Save(&slide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "carousel.update", "carousel_slide", slide.ID, before, slide)
	ctx.JSON(iris.Map{"slide": slide})
}

// DELETE /api/admin/carousel/{id}
func AdminDeleteCarouselSlide(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var slide models.CarouselSlide
	if err := storage.DB.First(&slide, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Slide not found", ctx)
		return
	}

	if err := storage.DB.Delete(&slide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "carousel.delete", "carousel_slide", slide.ID, slide, nil)
	ctx.JSON(iris.Map{"success": true})
}

type moveInput struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// AdminMoveCarouselSlide swaps sort order with the neighboring slide. Both
// updates run in one transaction so a crash can't leave a half swap.
func AdminMoveCarouselSlide(ctx iris.Context) {
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

	var slide models.CarouselSlide
	if err := storage.DB.First(&slide, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Slide not found", ctx)
		return
	}

	var neighbor models.CarouselSlide
	q := storage.DB.Where("id <> ?", slide.ID)
	if input.Direction == "up" {
		q = q.Where("(sort_order < ?) OR (sort_order = ? AND id < ?)", slide.Order, slide.Order, slide.ID).
			Order("sort_order DESC, id DESC")
	} else {
		q = q.Where("(sort_order > ?) OR (sort_order = ? AND id > ?)", slide.Order, slide.Order, slide.ID).
			Order("sort_order ASC, id ASC")
	}
	if err := q.First(&neighbor).Error; err != nil {
		// Already at the edge; nothing to swap.
		ctx.JSON(iris.Map{"success": true, "slide": slide})
		return
	}

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CarouselSlide{}).Where("id = ?", slide.ID).
			Update("sort_order", neighbor.Order).Error; err != nil {
			return err
		}
		return tx.Model(&models.CarouselSlide{}).Where("id = ?", neighbor.ID).
			Update("sort_order", slide.Order).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	slide.Order, neighbor.Order = neighbor.Order, slide.Order
	utils.Audit(ctx, "carousel.move", "carousel_slide", slide.ID, nil, input.Direction)
	ctx.JSON(iris.Map{"success": true, "slide": slide})
}
