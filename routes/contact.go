package routes

import (
	"regexp"
	"strings"

	"github.com/firdaus0729/nurse/services"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContactForm relays a contact message to the staff list. Unlike the
// chat notification, delivery here is the whole point of the request, so a
// send failure is surfaced.
func SubmitContactForm(ctx iris.Context) {
	var input contactInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	if name == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "El nombre es obligatorio", ctx)
		return
	}
	if email == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "El email es obligatorio", ctx)
		return
	}
	if !emailPattern.MatchString(email) {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "El formato del email no es válido", ctx)
		return
	}
	if subject == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "El asunto es obligatorio", ctx)
		return
	}
	if message == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "El mensaje es obligatorio", ctx)
		return
	}

	if err := services.NewNotificationService().SendContactEmail(name, email, subject, message); err != nil {
		utils.CreateError(iris.StatusInternalServerError, "send_failed", "No se pudo enviar el mensaje", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
