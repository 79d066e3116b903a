package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, code string, message string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"error": code, "message": message})
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "not_found", "Resource not found", ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "internal_error", "An unexpected error occurred", ctx)
}

// HandleValidationErrors renders ReadJSON failures as a 400. Field-level
// validator errors get listed per field; anything else (malformed JSON) gets a
// generic message.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]iris.Map, 0, len(errs))
		for _, fieldErr := range errs {
			fields = append(fields, iris.Map{
				"field": strings.ToLower(fieldErr.Field()),
				"tag":   fieldErr.Tag(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":   "validation_error",
			"message": "Request validation failed",
			"fields":  fields,
		})
		return
	}
	CreateError(iris.StatusBadRequest, "bad_request", "Invalid request payload", ctx)
}
