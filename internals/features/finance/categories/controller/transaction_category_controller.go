// file: internals/features/finance/categories/controller/transaction_category_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	dto "keuangan_rqm_backend/internals/features/finance/categories/dto"
	m "keuangan_rqm_backend/internals/features/finance/categories/model"
	txModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Controller
========================= */

type TransactionCategoryController struct {
	DB *gorm.DB
}

func NewTransactionCategoryController(db *gorm.DB) *TransactionCategoryController {
	return &TransactionCategoryController{DB: db}
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
   POST /api/a/categories
========================= */

func (ctl *TransactionCategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateTransactionCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if req.Code == "" || req.Name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "code dan name wajib diisi")
	}
	if req.Type != string(m.CategoryTypeIncome) && req.Type != string(m.CategoryTypeExpense) {
		return helper.JsonError(c, fiber.StatusBadRequest, "type harus INCOME atau EXPENSE")
	}
	if req.DefaultAmount != nil && *req.DefaultAmount <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "default_amount harus lebih dari 0")
	}

	rec := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode kategori sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Kategori berhasil dibuat", dto.FromModel(rec))
}

/* =========================
   List
   GET /api/u/categories?active=&type=
   Disaring per role lewat show_to_admin / show_to_komite.
========================= */

func (ctl *TransactionCategoryController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&m.TransactionCategoryModel{})

	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("transaction_category_is_active = ?", active == "true" || active == "1")
	}
	if catType := strings.ToUpper(strings.TrimSpace(c.Query("type"))); catType != "" {
		q = q.Where("transaction_category_type = ?", catType)
	}

	switch c.Locals("userRole") {
	case constants.RoleAdmin:
		q = q.Where("transaction_category_show_to_admin = true")
	case constants.RoleKomite:
		q = q.Where("transaction_category_show_to_komite = true")
	}

	var rows []m.TransactionCategoryModel
	if err := q.Order("transaction_category_code ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromModelSlice(rows))
}

/* =========================
   Patch
   PATCH /api/a/categories/:id
   Kode tidak pernah berubah setelah dibuat.
========================= */

func (ctl *TransactionCategoryController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	var req dto.PatchTransactionCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.DefaultAmount != nil && *req.DefaultAmount <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "default_amount harus lebih dari 0")
	}

	var rec m.TransactionCategoryModel
	tx := ctl.DB.WithContext(c.Context()).
		First(&rec, "transaction_category_id = ?", id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, tx.Error.Error())
	}

	req.ApplyPatch(&rec)
	if err := ctl.DB.WithContext(c.Context()).Save(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Kategori berhasil diperbarui", dto.FromModel(rec))
}

/* =========================
   Delete (soft)
   DELETE /api/a/categories/:id
   Kategori sistem dan kategori yang masih direferensikan transaksi
   tidak bisa dihapus (jaga integritas agregasi).
========================= */

func (ctl *TransactionCategoryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	var rec m.TransactionCategoryModel
	tx := ctl.DB.WithContext(c.Context()).
		First(&rec, "transaction_category_id = ?", id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, tx.Error.Error())
	}

	if rec.TransactionCategoryIsSystem {
		return helper.JsonError(c, fiber.StatusForbidden, "Kategori sistem tidak bisa dihapus")
	}

	var refCount int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&txModel.TransactionModel{}).
		Where("transaction_type = ?", rec.TransactionCategoryCode).
		Count(&refCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if refCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict,
			"Kategori masih dipakai transaksi; nonaktifkan saja lewat is_active")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Delete(&m.TransactionCategoryModel{}, "transaction_category_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Kategori berhasil dihapus", fiber.Map{"id": id})
}
