package routes

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Staff side of the chat. Any authenticated role (ADMIN or NURSE) may read,
// reply and close; the admin chat view polls the feed endpoint.

// findConversation accepts either the internal numeric id (admin views) or
// the public uuid.
func findConversation(param string, dest *models.Conversation) error {
	if id, err := strconv.ParseUint(param, 10, 32); err == nil {
		return storage.DB.First(dest, uint(id)).Error
	}
	return storage.DB.Where("uuid = ?", param).First(dest).Error
}

// AdminListConversations lists conversations, newest activity first, with a
// first-message preview and message count per row.
func AdminListConversations(ctx iris.Context) {
	status := ctx.URLParam("status")

	q := storage.DB.Preload("User").Order("updated_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var conversations []models.Conversation
	if err := q.Find(&conversations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	result := make([]iris.Map, 0, len(conversations))
	for i := range conversations {
		c := &conversations[i]
		var preview models.Message
		storage.DB.Where("conversation_id = ?", c.ID).
			Order("created_at ASC, id ASC").First(&preview)
		var count int64
		storage.DB.Model(&models.Message{}).Where("conversation_id = ?", c.ID).Count(&count)

		row := iris.Map{
			"id":           c.ID,
			"uuid":         c.UUID,
			"status":       c.Status,
			"createdAt":    c.CreatedAt,
			"updatedAt":    c.UpdatedAt,
			"preview":      preview.Content,
			"messageCount": count,
		}
		if c.User != nil {
			row["user"] = iris.Map{"id": c.User.ID, "name": c.User.Name, "email": c.User.Email}
		}
		result = append(result, row)
	}

	ctx.JSON(iris.Map{"conversations": result})
}

// AdminGetConversation returns the full thread, ordered for display.
func AdminGetConversation(ctx iris.Context) {
	var conversation models.Conversation
	if err := findConversation(ctx.Params().Get("id"), &conversation); err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Conversation not found", ctx)
		return
	}

	var messages []models.Message
	storage.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC, id ASC").Find(&messages)

	ctx.JSON(iris.Map{
		"conversation": conversation,
		"messages":     messages,
	})
}

// AdminReplyToConversation appends a staff message. The first responder claims
// the conversation; the claim policy decides what a concurrent second reply
// does (see claimConversation).
func AdminReplyToConversation(ctx iris.Context) {
	var input chatMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	content := strings.TrimSpace(input.Message)
	if content == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "Message is required", ctx)
		return
	}

	var conversation models.Conversation
	if err := findConversation(ctx.Params().Get("id"), &conversation); err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Conversation not found", ctx)
		return
	}

	if conversation.IsClosed() {
		utils.CreateError(iris.StatusBadRequest, "conversation_closed", "Conversation is closed", ctx)
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		Content:        content,
		IsFromUser:     false,
	}
	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Model(&conversation).
		Update("status", models.ConversationInProgress).Error; err != nil {
		log.Printf("chat: failed to move conversation %d to IN_PROGRESS: %v", conversation.ID, err)
	}
	claimConversation(conversation.ID, utils.RequestUserID(ctx))

	ctx.JSON(iris.Map{
		"message": message,
		"success": true,
	})
}

// claimConversation assigns the replying staff member. Under the default
// first_responder policy the assignment is a conditional update on
// user_id IS NULL, so two staff racing to reply cannot overwrite each other;
// last_responder keeps the historical overwrite behavior.
func claimConversation(conversationID uint, staffID uint) {
	if staffID == 0 {
		return
	}
	q := storage.DB.Model(&models.Conversation{})
	if os.Getenv("CHAT_CLAIM_POLICY") == "last_responder" {
		q = q.Where("id = ?", conversationID)
	} else {
		q = q.Where("id = ? AND user_id IS NULL", conversationID)
	}
	if err := q.Update("user_id", staffID).Error; err != nil {
		log.Printf("chat: failed to claim conversation %d for staff %d: %v", conversationID, staffID, err)
	}
}

type updateConversationInput struct {
	Status string `json:"status" validate:"required,oneof=CLOSED"`
}

// AdminCloseConversation closes a conversation. Closing an already-closed
// conversation is a no-op, not an error; CLOSED is terminal.
func AdminCloseConversation(ctx iris.Context) {
	var input updateConversationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var conversation models.Conversation
	if err := findConversation(ctx.Params().Get("id"), &conversation); err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Conversation not found", ctx)
		return
	}

	if !conversation.IsClosed() {
		if err := storage.DB.Model(&conversation).Update("status", models.ConversationClosed).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.Audit(ctx, "conversation.close", "conversation", conversation.ID, nil, nil)
	}

	ctx.JSON(iris.Map{"success": true, "status": models.ConversationClosed})
}

// AdminChatFeed returns the latest conversations each with a capped ascending
// message window. The admin panel polls this for near-real-time updates.
func AdminChatFeed(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	perConversation := ctx.URLParamIntDefault("messagesPerConversation", 30)
	if perConversation <= 0 || perConversation > 200 {
		perConversation = 30
	}

	var conversations []models.Conversation
	err := storage.DB.Order("updated_at DESC").Limit(limit).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Find(&conversations).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for i := range conversations {
		if len(conversations[i].Messages) > perConversation {
			conversations[i].Messages = conversations[i].Messages[:perConversation]
		}
	}

	ctx.JSON(iris.Map{"conversations": conversations})
}
