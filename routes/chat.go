package routes

import (
	"log"
	"strings"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/services"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Public, unauthenticated chat surface. Visitors are identified only by the
// conversation UUID they get back from StartConversation and are expected to
// keep client-side; the numeric id never leaves the server.

type chatMessageInput struct {
	Message string `json:"message"`
}

// StartConversation creates a conversation with its first visitor message.
func StartConversation(ctx iris.Context) {
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

	conversation := models.Conversation{
		UUID:   uuid.NewString(),
		Status: models.ConversationOpen,
	}
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		message := models.Message{
			ConversationID: conversation.ID,
			Content:        content,
			IsFromUser:     true,
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Email is best-effort: the visitor's message is already stored.
	go services.NewNotificationService().NotifyNurses(conversation.ID, content)

	ctx.JSON(iris.Map{
		"conversationId": conversation.UUID,
		"message":        "Conversation created successfully",
	})
}

// GetConversation returns the conversation and its ordered messages. The
// public chat view polls this endpoint.
func GetConversation(ctx iris.Context) {
	publicID := ctx.Params().Get("uuid")

	var conversation models.Conversation
	err := storage.DB.Where("uuid = ?", publicID).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&conversation).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Conversation not found", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"conversation": iris.Map{
			"id":        conversation.UUID,
			"status":    conversation.Status,
			"createdAt": conversation.CreatedAt,
		},
		"messages": conversation.Messages,
	})
}

// PostVisitorMessage appends a visitor message to an existing conversation.
func PostVisitorMessage(ctx iris.Context) {
	publicID := ctx.Params().Get("uuid")

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
	if err := storage.DB.Where("uuid = ?", publicID).First(&conversation).Error; err != nil {
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
		IsFromUser:     true,
	}
	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if conversation.Status == models.ConversationOpen {
		if err := storage.DB.Model(&conversation).
			Update("status", models.ConversationInProgress).Error; err != nil {
			log.Printf("chat: failed to move conversation %d to IN_PROGRESS: %v", conversation.ID, err)
		}
	}

	go services.NewNotificationService().NotifyNurses(conversation.ID, content)

	ctx.JSON(iris.Map{
		"message": message,
		"success": true,
	})
}
