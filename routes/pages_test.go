package routes

import (
	"net/http"
	"testing"

	"github.com/firdaus0729/nurse/models"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func pagesTestApp(t *testing.T) *iris.Application {
	app := newTestApp()
	app.Get("/api/pages/{slug}", GetPageBySlug)
	app.Get("/api/home/welcome", GetHomeWelcome)

	admin := app.Party("/api/admin/pages", asStaff(1, models.RoleAdmin))
	admin.Post("/", AdminCreatePage)
	admin.Get("/{slug}/sections", AdminListSections)
	admin.Post("/{slug}/sections", AdminCreateSection)

	mustBuild(t, app)
	return app
}

func TestGetPageResolvesSections(t *testing.T) {
	db := setupTestDB(t)
	app := pagesTestApp(t)

	page := models.Page{Slug: "aprende", Title: "Aprende", IsPublished: true}
	require.NoError(t, db.Create(&page).Error)
	require.NoError(t, db.Create(&models.Section{
		PageID: page.ID, Title: "Intro", Content: "<p>hola</p>", Order: 1, Type: models.SectionContent,
	}).Error)
	require.NoError(t, db.Create(&models.Section{
		PageID: page.ID, Title: "Dudas", Order: 0, Type: models.SectionFAQ,
		Metadata: datatypes.JSON(`{"items":[{"question":"q","answer":"a"}]}`),
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/pages/aprende", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Sections []struct {
			Title    string                 `json:"title"`
			Resolved models.ResolvedSection `json:"resolved"`
		} `json:"sections"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Sections, 2)
	// Ordered by sort_order, not insertion.
	assert.Equal(t, "Dudas", body.Sections[0].Title)
	assert.Equal(t, "faq", body.Sections[0].Resolved.Kind)
	assert.Equal(t, "Intro", body.Sections[1].Title)
	assert.Equal(t, "html", body.Sections[1].Resolved.Kind)
}

func TestGetPageHidesUnpublished(t *testing.T) {
	db := setupTestDB(t)
	app := pagesTestApp(t)

	require.NoError(t, db.Create(&models.Page{Slug: "borrador", Title: "Borrador", IsPublished: false}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/pages/borrador", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminCreateUnpublishedPageStaysHidden(t *testing.T) {
	db := setupTestDB(t)
	app := pagesTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/pages", map[string]interface{}{
		"slug":        "en-obras",
		"title":       "En obras",
		"isPublished": false,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var page models.Page
	require.NoError(t, db.Where("slug = ?", "en-obras").First(&page).Error)
	assert.False(t, page.IsPublished, "explicit isPublished:false must be stored as false")

	resp = doJSON(t, app, http.MethodGet, "/api/pages/en-obras", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHomeWelcomeFallback(t *testing.T) {
	db := setupTestDB(t)
	app := pagesTestApp(t)

	var body struct {
		Welcome welcomePayload `json:"welcome"`
	}

	// No home page at all.
	resp := doJSON(t, app, http.MethodGet, "/api/home/welcome", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &body)
	assert.Equal(t, defaultWelcome.Title, body.Welcome.Title)

	// Home page with garbage content still falls back.
	require.NoError(t, db.Create(&models.Page{Slug: "home", Title: "Inicio", IsPublished: true, Content: "not json"}).Error)
	resp = doJSON(t, app, http.MethodGet, "/api/home/welcome", nil)
	decodeBody(t, resp, &body)
	assert.Equal(t, defaultWelcome.Title, body.Welcome.Title)

	// Valid stored copy wins.
	require.NoError(t, db.Model(&models.Page{}).Where("slug = ?", "home").
		Update("content", `{"title":"Hola","text":"Bienvenida"}`).Error)
	resp = doJSON(t, app, http.MethodGet, "/api/home/welcome", nil)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Hola", body.Welcome.Title)
	assert.Equal(t, "Bienvenida", body.Welcome.Text)
}

func TestAdminCreateSectionValidatesMetadata(t *testing.T) {
	db := setupTestDB(t)
	app := pagesTestApp(t)

	require.NoError(t, db.Create(&models.Page{Slug: "aprende", Title: "Aprende", IsPublished: true}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/pages/aprende/sections", map[string]interface{}{
		"title":    "FAQ rota",
		"type":     models.SectionFAQ,
		"metadata": map[string]interface{}{"items": "no-es-lista"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid_metadata")

	var count int64
	db.Model(&models.Section{}).Count(&count)
	assert.Zero(t, count, "invalid sections must not be persisted")

	resp = doJSON(t, app, http.MethodPost, "/api/admin/pages/aprende/sections", map[string]interface{}{
		"title": "FAQ buena",
		"type":  models.SectionFAQ,
		"metadata": map[string]interface{}{
			"items": []map[string]string{{"question": "q", "answer": "a"}},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	db.Model(&models.Section{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
