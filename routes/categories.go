package routes

import (
	"net/http"
	"strings"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetCategories is the public navigation listing.
func GetCategories(ctx iris.Context) {
	var categories []models.Category
	if err := storage.DB.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"categories": categories})
}

type categoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
}

// POST /api/admin/categories
func AdminCreateCategory(ctx iris.Context) {
	var input categoryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	raw := strings.TrimSpace(input.Slug)
	if raw == "" {
		raw = input.Name
	}
	order := 0
	if input.Order != nil {
		order = *input.Order
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        utils.Slugify(raw),
		Description: input.Description,
		Order:       order,
	}
	if err := storage.DB.Create(&category).Error; err != nil {
		utils.CreateError(iris.StatusBadRequest, "slug_taken", "A category with that slug already exists", ctx)
		return
	}

	utils.Audit(ctx, "category.create", "category", category.ID, nil, category)
	ctx.JSON(iris.Map{"category": category})
}

// PATCH /api/admin/categories/{id}
func AdminUpdateCategory(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var category models.Category
	if err := storage.DB.First(&category, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Category not found", ctx)
		return
	}

	var input categoryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := category
	category.Name = input.Name
	category.Description = input.Description
	if input.Order != nil {
		category.Order = *input.Order
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		category.Slug = utils.Slugify(slug)
	}

	if err := storage.DB.Save(&category).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "category.update", "category", category.ID, before, category)
	ctx.JSON(iris.Map{"category": category})
}

// AdminDeleteCategory removes a category without touching its articles: their
// FK is cleared so deletion is never blocked.
func AdminDeleteCategory(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var category models.Category
	if err := storage.DB.First(&category, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Category not found", ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Article{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "category.delete", "category", category.ID, category, nil)
	ctx.JSON(iris.Map{"success": true})
}
