package routes

import (
	"encoding/json"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Public content reads. Each section comes back with a resolved display
// payload so the renderer never has to interpret raw metadata itself.

type welcomePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// The public site still greets visitors when the CMS was never seeded.
var defaultWelcome = welcomePayload{
	Title: "Bienvenido/a a BE NURSE",
	Text: "Un espacio seguro para informarte y cuidarte. Aquí puedes resolver tus dudas sobre salud sexual, " +
		"acceder a información clara y hablar de forma anónima con profesionales de enfermería.",
}

func safeParseWelcome(content string) *welcomePayload {
	var parsed welcomePayload
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}
	if parsed.Title == "" || parsed.Text == "" {
		return nil
	}
	return &parsed
}

// GetPageBySlug returns a published page with its ordered, resolved sections.
func GetPageBySlug(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var page models.Page
	err := storage.DB.Where("slug = ? AND is_published = ?", slug, true).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&page).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Page not found", ctx)
		return
	}

	sections := make([]iris.Map, 0, len(page.Sections))
	for i := range page.Sections {
		s := &page.Sections[i]
		sections = append(sections, iris.Map{
			"id":       s.ID,
			"title":    s.Title,
			"content":  s.Content,
			"order":    s.Order,
			"type":     s.Type,
			"metadata": s.Metadata,
			"resolved": s.Resolve(),
		})
	}

	ctx.JSON(iris.Map{
		"page": iris.Map{
			"id":    page.ID,
			"slug":  page.Slug,
			"title": page.Title,
		},
		"sections": sections,
	})
}

// GetHomeWelcome returns the home welcome box; hard-coded copy when the page
// is missing or its content blob is not the expected JSON.
func GetHomeWelcome(ctx iris.Context) {
	var page models.Page
	err := storage.DB.Where("slug = ?", "home").First(&page).Error
	if err != nil {
		ctx.JSON(iris.Map{"welcome": defaultWelcome})
		return
	}

	if welcome := safeParseWelcome(page.Content); welcome != nil {
		ctx.JSON(iris.Map{"welcome": welcome})
		return
	}
	ctx.JSON(iris.Map{"welcome": defaultWelcome})
}
