package routes

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ListPublishedArticles is the public article listing. Optional filters:
// ?categoryId=, ?type=, ?featured=true.
func ListPublishedArticles(ctx iris.Context) {
	q := storage.DB.Where("is_published = ?", true).
		Preload("Category").Preload("Tags").
		Order("published_at DESC, created_at DESC")

	if categoryID, err := ctx.URLParamInt("categoryId"); err == nil && categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if articleType := ctx.URLParam("type"); articleType != "" {
		q = q.Where("article_type = ?", articleType)
	}
	if ctx.URLParam("featured") == "true" {
		q = q.Where("is_featured = ?", true)
	}

	var articles []models.Article
	if err := q.Find(&articles).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"articles": articles})
}

// GetArticleBySlug serves a single published article and counts the view.
// The increment is best-effort; draft reads never touch the counter.
func GetArticleBySlug(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var article models.Article
	err := storage.DB.Where("slug = ?", slug).
		Preload("Category").Preload("Tags").
		First(&article).Error
	if err != nil || !article.IsPublished {
		utils.CreateError(iris.StatusNotFound, "not_found", "Article not found", ctx)
		return
	}

	if err := storage.DB.Model(&article).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		log.Printf("articles: failed to count view for %q: %v", slug, err)
	}

	ctx.JSON(iris.Map{"article": article})
}

// AdminListArticles lists everything, drafts included.
func AdminListArticles(ctx iris.Context) {
	q := storage.DB.Preload("Category").Preload("Tags").Order("created_at DESC")
	if categoryID, err := ctx.URLParamInt("categoryId"); err == nil && categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}

	var articles []models.Article
	if err := q.Find(&articles).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"articles": articles})
}

type articleInput struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content" validate:"required"`
	ImageURL    string   `json:"imageUrl"`
	ArticleType string   `json:"articleType" validate:"omitempty,oneof=HISTORIA_REAL ARTICULO NOTICIA PREGUNTA_INCOMODA"`
	CategoryID  *uint    `json:"categoryId"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
	IsFeatured  *bool    `json:"isFeatured"`
}

// uniqueArticleSlug probes slug, slug-2, slug-3, ... against the uniqueness
// constraint instead of letting the insert fail on a duplicate title.
func uniqueArticleSlug(base string, excludeID uint) string {
	candidate := base
	for i := 2; i < 100; i++ {
		var count int64
		q := storage.DB.Model(&models.Article{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		q.Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

func resolveTags(names []string) []models.Tag {
	var tags []models.Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		storage.DB.Where("slug = ?", utils.Slugify(name)).
			Attrs(models.Tag{Name: name}).
			FirstOrCreate(&tag, models.Tag{Slug: utils.Slugify(name)})
		tags = append(tags, tag)
	}
	return tags
}

// AdminCreateArticle creates an article. Nurses may draft; only admins may
// publish (checked here because the route itself allows both roles).
func AdminCreateArticle(ctx iris.Context) {
	var input articleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	publish := input.IsPublished != nil && *input.IsPublished
	if publish && utils.RequestRole(ctx) != models.RoleAdmin {
		utils.CreateError(iris.StatusForbidden, "forbidden", "Only admins can publish articles", ctx)
		return
	}

	raw := strings.TrimSpace(input.Slug)
	if raw == "" {
		raw = input.Title
	}
	slug := uniqueArticleSlug(utils.Slugify(raw), 0)

	articleType := input.ArticleType
	if articleType == "" {
		articleType = models.ArticleArticulo
	}

	article := models.Article{
		Title:       input.Title,
		Slug:        slug,
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		ArticleType: articleType,
		CategoryID:  input.CategoryID,
		IsPublished: publish,
		IsFeatured:  input.IsFeatured != nil && *input.IsFeatured,
	}
	if publish {
		now := time.Now()
		article.PublishedAt = &now
	}
	if len(input.Tags) > 0 {
		article.Tags = resolveTags(input.Tags)
	}

	if err := storage.DB.Create(&article).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "article.create", "article", article.ID, nil, article)
	storage.DB.Preload("Category").Preload("Tags").First(&article, article.ID)
	ctx.JSON(iris.Map{"article": article})
}

// AdminUpdateArticle updates an article. Publish/unpublish is ADMIN only.
func AdminUpdateArticle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var article models.Article
	if err := storage.DB.First(&article, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Article not found", ctx)
		return
	}

	var input articleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.IsPublished != nil && *input.IsPublished != article.IsPublished &&
		utils.RequestRole(ctx) != models.RoleAdmin {
		utils.CreateError(iris.StatusForbidden, "forbidden", "Only admins can change publication state", ctx)
		return
	}

	before := article
	article.Title = input.Title
	article.Excerpt = input.Excerpt
	article.Content = input.Content
	article.ImageURL = input.ImageURL
	article.CategoryID = input.CategoryID
	if input.ArticleType != "" {
		article.ArticleType = input.ArticleType
	}
	if input.IsFeatured != nil {
		article.IsFeatured = *input.IsFeatured
	}
	if slugInput := strings.TrimSpace(input.Slug); slugInput != "" {
		normalized := utils.Slugify(slugInput)
		if normalized != article.Slug {
			article.Slug = uniqueArticleSlug(normalized, article.ID)
		}
	}
	if input.IsPublished != nil {
		if *input.IsPublished && !article.IsPublished {
			now := time.Now()
			article.PublishedAt = &now
		}
		article.IsPublished = *input.IsPublished
	}

	if err := storage.DB.Save(&article).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if input.Tags != nil {
		storage.DB.Model(&article).Association("Tags").Replace(resolveTags(input.Tags))
	}

	utils.Audit(ctx, "article.update", "article", article.ID, before, article)
	storage.DB.Preload("Category").Preload("Tags").First(&article, article.ID)
	ctx.JSON(iris.Map{"article": article})
}

// AdminDeleteArticle removes an article, ADMIN only.
func AdminDeleteArticle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var article models.Article
	if err := storage.DB.First(&article, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Article not found", ctx)
		return
	}

	if err := storage.DB.Delete(&article).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "article.delete", "article", article.ID, article, nil)
	ctx.JSON(iris.Map{"success": true})
}
