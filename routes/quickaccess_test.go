package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/firdaus0729/nurse/models"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quickAccessTestApp(t *testing.T) *iris.Application {
	app := newTestApp()
	app.Get("/api/quick-access", GetQuickAccessCards)

	admin := app.Party("/api/admin/quick-access", asStaff(1, models.RoleAdmin))
	admin.Get("/", AdminListQuickAccessCards)
	admin.Post("/", AdminCreateQuickAccessCard)
	admin.Patch("/{id:uint}", AdminUpdateQuickAccessCard)
	admin.Delete("/{id:uint}", AdminDeleteQuickAccessCard)
	admin.Post("/{id:uint}/move", AdminMoveQuickAccessCard)

	mustBuild(t, app)
	return app
}

func TestPublicCardsFilterExpiredCampaigns(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Normal", Link: "/a", Order: 0, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Vigente", Link: "/b", Order: 1, IsActive: true, IsCampaign: true, CampaignEnd: &future}).Error)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Vencida", Link: "/c", Order: 2, IsActive: true, IsCampaign: true, CampaignEnd: &past}).Error)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Oculta", Link: "/d", Order: 3, IsActive: false}).Error)

	var body struct {
		Cards []models.QuickAccessCard `json:"cards"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/quick-access", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &body)

	require.Len(t, body.Cards, 2)
	assert.Equal(t, "Normal", body.Cards[0].Title)
	assert.Equal(t, "Vigente", body.Cards[1].Title)
}

func TestAdminListIncludesExpiredAndInactive(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Vencida", Link: "/c", IsActive: true, IsCampaign: true, CampaignEnd: &past}).Error)
	require.NoError(t, db.Create(&models.QuickAccessCard{Title: "Oculta", Link: "/d", IsActive: false}).Error)

	var body struct {
		Cards []models.QuickAccessCard `json:"cards"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/admin/quick-access", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &body)
	assert.Len(t, body.Cards, 2)
}

func TestAdminCreateInactiveCardStaysHidden(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/quick-access", map[string]interface{}{
		"title":    "Oculta",
		"link":     "/x",
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var card models.QuickAccessCard
	require.NoError(t, db.Where("title = ?", "Oculta").First(&card).Error)
	assert.False(t, card.IsActive, "explicit isActive:false must be stored as false")

	var body struct {
		Cards []models.QuickAccessCard `json:"cards"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/quick-access", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Cards)
}

func TestMoveSwapsSortOrder(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	first := models.QuickAccessCard{Title: "Primera", Link: "/1", Order: 0, IsActive: true}
	second := models.QuickAccessCard{Title: "Segunda", Link: "/2", Order: 1, IsActive: true}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/quick-access/%d/move", first.ID), map[string]string{"direction": "down"})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, db.First(&first, first.ID).Error)
	require.NoError(t, db.First(&second, second.ID).Error)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 0, second.Order)
}

func TestMoveAtEdgeIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	only := models.QuickAccessCard{Title: "Única", Link: "/1", Order: 0, IsActive: true}
	require.NoError(t, db.Create(&only).Error)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/quick-access/%d/move", only.ID), map[string]string{"direction": "up"})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, db.First(&only, only.ID).Error)
	assert.Equal(t, 0, only.Order)
}

func TestMoveRejectsUnknownDirection(t *testing.T) {
	db := setupTestDB(t)
	app := quickAccessTestApp(t)

	card := models.QuickAccessCard{Title: "Única", Link: "/1", Order: 0, IsActive: true}
	require.NoError(t, db.Create(&card).Error)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/quick-access/%d/move", card.ID), map[string]string{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
