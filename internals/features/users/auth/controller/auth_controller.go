// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/features/users/auth/service"
	userDTO "keuangan_rqm_backend/internals/features/users/user/dto"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userUUID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var user userModel.UserModel
	if err := ac.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", userUUID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	return helper.JsonOK(c, "OK", userDTO.FromModel(user))
}
