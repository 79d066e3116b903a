package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin CMS surface for pages and their sections. Any staff role may read;
// mutations are ADMIN only (enforced by route middleware in main.go).

var defaultPageTitles = map[string]string{
	"home":      "Inicio",
	"learn":     "Infórmate",
	"take-care": "Cuídate",
	"about":     "Sobre nosotros",
	"realities": "Realidades",
}

// getOrCreatePage keeps the section editors usable on a fresh database: the
// backing page is created the first time its editor is opened.
func getOrCreatePage(slug string) (*models.Page, error) {
	var page models.Page
	err := storage.DB.Where("slug = ?", slug).First(&page).Error
	if err == nil {
		return &page, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	title := defaultPageTitles[slug]
	if title == "" {
		title = slug
	}
	page = models.Page{Slug: slug, Title: title, Content: "", IsPublished: true}
	if err := storage.DB.Create(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GET /api/admin/pages
func AdminListPages(ctx iris.Context) {
	var pages []models.Page
	if err := storage.DB.Order("slug ASC").Find(&pages).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"pages": pages})
}

type pageInput struct {
	Slug        string `json:"slug" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"isPublished"`
}

// POST /api/admin/pages
func AdminCreatePage(ctx iris.Context) {
	var input pageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	page := models.Page{
		Slug:        utils.Slugify(input.Slug),
		Title:       input.Title,
		Content:     input.Content,
		IsPublished: input.IsPublished == nil || *input.IsPublished,
	}
	if err := storage.DB.Create(&page).Error; err != nil {
		utils.CreateError(iris.StatusBadRequest, "slug_taken", "A page with that slug already exists", ctx)
		return
	}

	utils.Audit(ctx, "page.create", "page", page.ID, nil, page)
	ctx.JSON(iris.Map{"page": page})
}

// GET /api/admin/pages/{slug}
func AdminGetPage(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var page models.Page
	err := storage.DB.Where("slug = ?", slug).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&page).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Page not found", ctx)
		return
	}
	ctx.JSON(iris.Map{"page": page})
}

type pageUpdateInput struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
}

// PATCH /api/admin/pages/{slug}
func AdminUpdatePage(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var page models.Page
	if err := storage.DB.Where("slug = ?", slug).First(&page).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Page not found", ctx)
		return
	}

	var input pageUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := page
	if input.Title != nil {
		page.Title = *input.Title
	}
	if input.Content != nil {
		page.Content = *input.Content
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}
	if err := storage.DB.Save(&page).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "page.update", "page", page.ID, before, page)
	ctx.JSON(iris.Map{"page": page})
}

// DELETE /api/admin/pages/{slug}. Sections go with the page.
func AdminDeletePage(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var page models.Page
	if err := storage.DB.Where("slug = ?", slug).First(&page).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Page not found", ctx)
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "page.delete", "page", page.ID, page, nil)
	ctx.JSON(iris.Map{"success": true})
}

// GET /api/admin/pages/{slug}/sections
func AdminListSections(ctx iris.Context) {
	page, err := getOrCreatePage(ctx.Params().Get("slug"))
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var sections []models.Section
	storage.DB.Where("page_id = ?", page.ID).Order("sort_order ASC, id ASC").Find(&sections)
	ctx.JSON(iris.Map{"sections": sections})
}

type sectionInput struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Order    *int            `json:"order"`
	Type     string          `json:"type" validate:"omitempty,oneof=CONTENT CARD_GRID FAQ ACCORDION"`
	Metadata json.RawMessage `json:"metadata"`
}

// POST /api/admin/pages/{slug}/sections
func AdminCreateSection(ctx iris.Context) {
	page, err := getOrCreatePage(ctx.Params().Get("slug"))
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var input sectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	sectionType := input.Type
	if sectionType == "" {
		sectionType = models.SectionContent
	}
	order := 0
	if input.Order != nil {
		order = *input.Order
	}

	section := models.Section{
		PageID:   page.ID,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Order:    order,
		Type:     sectionType,
		Metadata: datatypes.JSON(input.Metadata),
	}
	if err := section.ValidateMetadata(); err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_metadata", err.Error(), ctx)
		return
	}

	if err := storage.DB.Create(&section).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "section.create", "section", section.ID, nil, section)
	ctx.JSON(iris.Map{"section": section})
}

// PATCH /api/admin/sections/{id}
func AdminUpdateSection(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var section models.Section
	if err := storage.DB.First(&section, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Section not found", ctx)
		return
	}

	var input sectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := section
	if input.Title != "" {
		section.Title = strings.TrimSpace(input.Title)
	}
	if input.Content != "" {
		section.Content = input.Content
	}
	if input.Order != nil {
		section.Order = *input.Order
	}
	if input.Type != "" {
		section.Type = input.Type
	}
	if len(input.Metadata) > 0 {
		section.Metadata = datatypes.JSON(input.Metadata)
	}
	if err := section.ValidateMetadata(); err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_metadata", err.Error(), ctx)
		return
	}

	if err := storage.DB.Save(&section).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "section.update", "section", section.ID, before, section)
	ctx.JSON(iris.Map{"section": section})
}

// DELETE /api/admin/sections/{id}
func AdminDeleteSection(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var section models.Section
	if err := storage.DB.First(&section, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Section not found", ctx)
		return
	}

	if err := storage.DB.Delete(&section).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "section.delete", "section", section.ID, section, nil)
	ctx.JSON(iris.Map{"success": true})
}

// GET /api/admin/home/welcome
func AdminGetWelcome(ctx iris.Context) {
	var page models.Page
	if err := storage.DB.Where("slug = ?", "home").First(&page).Error; err != nil {
		ctx.JSON(iris.Map{"welcome": defaultWelcome})
		return
	}
	if welcome := safeParseWelcome(page.Content); welcome != nil {
		ctx.JSON(iris.Map{"welcome": welcome})
		return
	}
	ctx.JSON(iris.Map{"welcome": defaultWelcome})
}

type welcomeInput struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// PATCH /api/admin/home/welcome, stored as JSON in the home page content.
func AdminUpdateWelcome(ctx iris.Context) {
	var input welcomeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	title := strings.TrimSpace(input.Title)
	text := strings.TrimSpace(input.Text)
	if title == "" || text == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "title and text are required", ctx)
		return
	}

	page, err := getOrCreatePage("home")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	payload, _ := json.Marshal(welcomePayload{Title: title, Text: text})
	before := page.Content
	if err := storage.DB.Model(page).Update("content", string(payload)).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "page.update_welcome", "page", page.ID, before, string(payload))
	ctx.JSON(iris.Map{"welcome": welcomePayload{Title: title, Text: text}})
}

// GET /api/admin/cuidate, the take-care page CARD_GRID items.
func AdminGetCuidateCards(ctx iris.Context) {
	var page models.Page
	err := storage.DB.Where("slug = ?", "take-care").
		Preload("Sections", "type = ?", models.SectionCardGrid).
		First(&page).Error
	if err != nil || len(page.Sections) == 0 {
		ctx.JSON(iris.Map{"section": nil, "cards": []iris.Map{}})
		return
	}

	section := page.Sections[0]
	cards, _ := section.CardItems()
	ctx.JSON(iris.Map{"section": section, "cards": cards})
}

type cuidateInput struct {
	Cards []json.RawMessage `json:"cards"`
}

// PATCH /api/admin/cuidate replaces the card list, creating the backing
// section on first save.
func AdminUpdateCuidateCards(ctx iris.Context) {
	var input cuidateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Cards == nil {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "Cards must be an array", ctx)
		return
	}

	page, err := getOrCreatePage("take-care")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	metadata, _ := json.Marshal(iris.Map{"items": input.Cards})

	var section models.Section
	findErr := storage.DB.Where("page_id = ? AND type = ?", page.ID, models.SectionCardGrid).
		Order("sort_order ASC").First(&section).Error
	if findErr == gorm.ErrRecordNotFound {
		section = models.Section{
			PageID:   page.ID,
			Title:    "Métodos de cuidado y prevención",
			Type:     models.SectionCardGrid,
			Content:  "",
			Order:    0,
			Metadata: datatypes.JSON(metadata),
		}
		if err := storage.DB.Create(&section).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	} else if findErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	} else {
		if err := storage.DB.Model(&section).Update("metadata", datatypes.JSON(metadata)).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		section.Metadata = datatypes.JSON(metadata)
	}

	utils.Audit(ctx, "section.update_cards", "section", section.ID, nil, string(metadata))
	ctx.JSON(iris.Map{"section": section, "cards": input.Cards})
}
