package routes

import (
	"net/http"
	"strings"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
)

// Staff account management, ADMIN only.

// GET /api/admin/users
func AdminListUsers(ctx iris.Context) {
	var users []models.User
	if err := storage.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to list users")
		return
	}
	ctx.JSON(iris.Map{"users": users})
}

type createUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN NURSE"`
}

// POST /api/admin/users
func AdminCreateUser(ctx iris.Context) {
	var input createUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var existing models.User
	if count := storage.DB.Where("email = ?", email).Limit(1).Find(&existing).RowsAffected; count > 0 {
		utils.CreateError(iris.StatusBadRequest, "email_taken", "A user with that email already exists", ctx)
		return
	}

	hashed, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleNurse
	}
	user := models.User{Email: email, Password: hashed, Name: input.Name, Role: role}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.create", "user", user.ID, nil, user)
	ctx.JSON(iris.Map{"user": user})
}

type changeRoleInput struct {
	Role string `json:"role" validate:"required,oneof=ADMIN NURSE"`
}

// PATCH /api/admin/users/{id}/role
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input changeRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	before := user
	user.Role = input.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to update role")
		return
	}

	utils.Audit(ctx, "user.change_role", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"user": user})
}
