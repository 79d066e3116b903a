package routes

import (
	"net/http"
	"testing"

	"github.com/firdaus0729/nurse/models"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlesTestApp(t *testing.T, staffID uint, role string) *iris.Application {
	app := newTestApp()
	app.Get("/api/articles", ListPublishedArticles)
	app.Get("/api/articles/{slug}", GetArticleBySlug)

	admin := app.Party("/api/admin/articles", asStaff(staffID, role))
	admin.Get("/", AdminListArticles)
	admin.Post("/", AdminCreateArticle)
	admin.Patch("/{id:uint}", AdminUpdateArticle)
	admin.Delete("/{id:uint}", AdminDeleteArticle)

	mustBuild(t, app)
	return app
}

func TestGetArticleCountsViewsOnPublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	app := articlesTestApp(t, 1, models.RoleAdmin)

	published := models.Article{Title: "Publicado", Slug: "publicado", Content: "<p>hola</p>", ArticleType: models.ArticleArticulo, IsPublished: true}
	draft := models.Article{Title: "Borrador", Slug: "borrador", Content: "<p>wip</p>", ArticleType: models.ArticleArticulo, IsPublished: false}
	require.NoError(t, db.Create(&published).Error)
	require.NoError(t, db.Create(&draft).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/articles/publicado", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = doJSON(t, app, http.MethodGet, "/api/articles/publicado", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, app, http.MethodGet, "/api/articles/borrador", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code, "drafts are invisible to the public surface")

	require.NoError(t, db.First(&published, published.ID).Error)
	require.NoError(t, db.First(&draft, draft.ID).Error)
	assert.EqualValues(t, 2, published.ViewCount)
	assert.Zero(t, draft.ViewCount)
}

func TestListPublishedArticlesFilters(t *testing.T) {
	db := setupTestDB(t)
	app := articlesTestApp(t, 1, models.RoleAdmin)

	category := models.Category{Name: "Prevención", Slug: "prevencion"}
	require.NoError(t, db.Create(&category).Error)

	require.NoError(t, db.Create(&models.Article{Title: "A", Slug: "a", Content: "x", ArticleType: models.ArticleArticulo, CategoryID: &category.ID, IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.Article{Title: "B", Slug: "b", Content: "x", ArticleType: models.ArticleHistoriaReal, IsPublished: true, IsFeatured: true}).Error)
	require.NoError(t, db.Create(&models.Article{Title: "C", Slug: "c", Content: "x", ArticleType: models.ArticleArticulo, IsPublished: false}).Error)

	var body struct {
		Articles []models.Article `json:"articles"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &body)
	assert.Len(t, body.Articles, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/articles?featured=true", nil)
	decodeBody(t, resp, &body)
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "b", body.Articles[0].Slug)

	resp = doJSON(t, app, http.MethodGet, "/api/articles?type=ARTICULO", nil)
	decodeBody(t, resp, &body)
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "a", body.Articles[0].Slug)
}

func TestUniqueArticleSlugProbesSuffixes(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Article{Title: "Hola", Slug: "hola", Content: "x", ArticleType: models.ArticleArticulo}).Error)
	require.NoError(t, db.Create(&models.Article{Title: "Hola 2", Slug: "hola-2", Content: "x", ArticleType: models.ArticleArticulo}).Error)

	assert.Equal(t, "hola-3", uniqueArticleSlug("hola", 0))
	assert.Equal(t, "nuevo", uniqueArticleSlug("nuevo", 0))

	// An article keeps its own slug on update.
	var existing models.Article
	require.NoError(t, db.Where("slug = ?", "hola").First(&existing).Error)
	assert.Equal(t, "hola", uniqueArticleSlug("hola", existing.ID))
}

func TestNurseCannotPublish(t *testing.T) {
	db := setupTestDB(t)
	nurseApp := articlesTestApp(t, 2, models.RoleNurse)

	publish := true
	resp := doJSON(t, nurseApp, http.MethodPost, "/api/admin/articles", map[string]interface{}{
		"title":       "Intento",
		"content":     "<p>x</p>",
		"isPublished": publish,
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Drafting is allowed for nurses.
	resp = doJSON(t, nurseApp, http.MethodPost, "/api/admin/articles", map[string]interface{}{
		"title":   "Borrador de enfermera",
		"content": "<p>x</p>",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var article models.Article
	require.NoError(t, db.Where("slug = ?", "borrador-de-enfermera").First(&article).Error)
	assert.False(t, article.IsPublished)
	assert.Nil(t, article.PublishedAt)

	// Nor can a nurse flip the publication state afterwards.
	resp = doJSON(t, nurseApp, http.MethodPatch, "/api/admin/articles/1", map[string]interface{}{
		"title":       article.Title,
		"content":     article.Content,
		"isPublished": true,
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminPublishSetsPublishedAt(t *testing.T) {
	db := setupTestDB(t)
	app := articlesTestApp(t, 1, models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/articles", map[string]interface{}{
		"title":       "Métodos anticonceptivos",
		"content":     "<p>info</p>",
		"isPublished": true,
		"tags":        []string{"Prevención", "Salud"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var article models.Article
	require.NoError(t, db.Preload("Tags").Where("slug = ?", "metodos-anticonceptivos").First(&article).Error)
	assert.True(t, article.IsPublished)
	require.NotNil(t, article.PublishedAt)
	assert.Len(t, article.Tags, 2)
}
