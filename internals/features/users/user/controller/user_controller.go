// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	dto "keuangan_rqm_backend/internals/features/users/user/dto"
	m "keuangan_rqm_backend/internals/features/users/user/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Controller
========================= */

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

/* =========================
   Create
   POST /api/a/users
========================= */

func (ctl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Role == "" {
		req.Role = constants.RoleSantri
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	rec := req.ToModel(string(hashed))
	if err := rec.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Username sudah digunakan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Pengguna berhasil dibuat", dto.FromModel(rec))
}

/* =========================
   List
   GET /api/a/users?role=&active=&q=&page=&per_page=
========================= */

func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&m.UserModel{})

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("user_role = ?", strings.ToUpper(role))
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("user_is_active = ?", active == "true" || active == "1")
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_username) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []m.UserModel
	if err := q.Order("user_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModelSlice(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Students (untuk grid monitoring)
   GET /api/u/students
========================= */

func (ctl *UserController) ListStudents(c *fiber.Ctx) error {
	var rows []m.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_role = ? AND user_is_active = true", constants.RoleSantri).
		Order("user_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModelSlice(rows))
}

/* =========================
   Detail
   GET /api/a/users/:id
========================= */

func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	var rec m.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&rec, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromModel(rec))
}

/* =========================
   Patch
   PATCH /api/a/users/:id
========================= */

func (ctl *UserController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	var req dto.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rec m.UserModel
	tx := ctl.DB.WithContext(c.Context()).First(&rec, "user_id = ?", id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, tx.Error.Error())
	}

	req.ApplyPatch(&rec)
	if err := rec.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Pengguna berhasil diperbarui", dto.FromModel(rec))
}

/* =========================
   Delete (soft)
   DELETE /api/a/users/:id
========================= */

func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	res := ctl.DB.WithContext(c.Context()).Delete(&m.UserModel{}, "user_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Pengguna berhasil dihapus", fiber.Map{"id": id})
}
