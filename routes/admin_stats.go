package routes

import (
	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var totalConversations, openConversations, inProgressConversations, closedConversations int64
	storage.DB.Model(&models.Conversation{}).Count(&totalConversations)
	storage.DB.Model(&models.Conversation{}).Where("status = ?", models.ConversationOpen).Count(&openConversations)
	storage.DB.Model(&models.Conversation{}).Where("status = ?", models.ConversationInProgress).Count(&inProgressConversations)
	storage.DB.Model(&models.Conversation{}).Where("status = ?", models.ConversationClosed).Count(&closedConversations)

	var totalMessages int64
	storage.DB.Model(&models.Message{}).Count(&totalMessages)

	var publishedArticles, totalArticles int64
	storage.DB.Model(&models.Article{}).Count(&totalArticles)
	storage.DB.Model(&models.Article{}).Where("is_published = ?", true).Count(&publishedArticles)

	var totalPages int64
	storage.DB.Model(&models.Page{}).Count(&totalPages)

	ctx.JSON(iris.Map{
		"conversations": iris.Map{
			"total":      totalConversations,
			"open":       openConversations,
			"inProgress": inProgressConversations,
			"closed":     closedConversations,
		},
		"messages": iris.Map{
			"total": totalMessages,
		},
		"articles": iris.Map{
			"total":     totalArticles,
			"published": publishedArticles,
		},
		"pages": iris.Map{
			"total": totalPages,
		},
	})
}

// GET /api/admin/activity?page=&perPage=
func AdminActivity(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var total int64
	storage.DB.Model(&models.AuditLog{}).Count(&total)

	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs)

	utils.JSONPage(ctx, logs, page, perPage, total)
}
