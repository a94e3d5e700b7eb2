// file: internals/features/finance/transactions/controller/transaction_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	dto "keuangan_rqm_backend/internals/features/finance/transactions/dto"
	m "keuangan_rqm_backend/internals/features/finance/transactions/model"
	service "keuangan_rqm_backend/internals/features/finance/transactions/service"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Controller
========================= */

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

/* =========================
   Create
   POST /api/u/transactions
========================= */

func (ctl *TransactionController) Create(c *fiber.Ctx) error {
	creatorIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	creatorID, err := uuid.Parse(creatorIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	role, _ := c.Locals("userRole").(string)
	if role != constants.RoleAdmin && role != constants.RoleKomite {
		return helper.JsonError(c, fiber.StatusForbidden,
			constants.RoleErrorStaff("pencatatan transaksi"))
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date := time.Now()
	if s := strings.TrimSpace(req.Date); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
		}
		date = parsed
	}

	rec, err := service.Create(c.Context(), ctl.DB, service.CreateInput{
		CategoryCode: strings.ToUpper(strings.TrimSpace(req.CategoryCode)),
		Amount:       req.Amount,
		Description:  req.Description,
		Date:         date,
		StudentID:    req.StudentID,
		TeacherID:    req.TeacherID,
		CreatorID:    creatorID,
		CreatorRole:  role,
	})
	if err != nil {
		return mapCreateError(c, err)
	}

	return helper.JsonCreated(c, "Transaksi berhasil dicatat", dto.FromModel(*rec))
}

func mapCreateError(c *fiber.Ctx, err error) error {
	var dup *service.DuplicateMonthlyPaymentError
	var insufficient *service.InsufficientSavingsError

	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMissingStudent),
		errors.Is(err, service.ErrMissingTeacher):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTxConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &dup):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   List
   GET /api/u/transactions?category=&student_id=&month=&year=&handover_status=
========================= */

func (ctl *TransactionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&m.TransactionModel{})

	// non-staf hanya melihat transaksi yang menyangkut dirinya sendiri
	role, _ := c.Locals("userRole").(string)
	if role != constants.RoleAdmin && role != constants.RoleKomite {
		selfIDStr, _ := c.Locals("user_id").(string)
		selfID, err := uuid.Parse(selfIDStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if role == constants.RoleGuru {
			q = q.Where("transaction_teacher_id = ?", selfID)
		} else {
			q = q.Where("transaction_student_id = ?", selfID)
		}
	}

	if code := strings.ToUpper(strings.TrimSpace(c.Query("category"))); code != "" {
		q = q.Where("transaction_type = ?", code)
	}
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("transaction_student_id = ?", id)
	}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("handover_status"))); status != "" {
		q = q.Where("transaction_handover_status = ?", status)
	}
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "year tidak valid")
		}
		if monthStr := strings.TrimSpace(c.Query("month")); monthStr != "" {
			month, err := strconv.Atoi(monthStr)
			if err != nil || month < 1 || month > 12 {
				return helper.JsonError(c, fiber.StatusBadRequest, "month harus 1-12")
			}
			start, end := helper.MonthRangeOf(year, time.Month(month))
			q = q.Where("transaction_date >= ? AND transaction_date < ?", start, end)
		} else {
			start, end := helper.YearRange(year)
			q = q.Where("transaction_date >= ? AND transaction_date < ?", start, end)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []m.TransactionModel
	if err := q.Order("transaction_date DESC, transaction_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModelSlice(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Delete (soft)
   DELETE /api/a/transactions/:id
========================= */

func (ctl *TransactionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	res := ctl.DB.WithContext(c.Context()).
		Delete(&m.TransactionModel{}, "transaction_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Transaksi tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Transaksi berhasil dihapus", fiber.Map{"id": id})
}

/* =========================
   Handover
   POST /api/a/transactions/handover
========================= */

func (ctl *TransactionController) PerformHandover(c *fiber.Ctx) error {
	result, err := service.PerformHandover(c.Context(), ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Serah terima berhasil", result)
}

/* =========================
   Export rows (proyeksi datar untuk pelaporan)
   GET /api/a/transactions/export?year=
========================= */

func (ctl *TransactionController) ExportRows(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).
		Table("transactions AS t").
		Select(`t.transaction_id, t.transaction_date AS date,
			t.transaction_type AS category_code,
			c.transaction_category_name AS category_name,
			t.transaction_amount AS amount,
			t.transaction_description AS description,
			s.user_name AS student_name,
			g.user_name AS teacher_name,
			cr.user_name AS creator_name,
			t.transaction_creator_role AS creator_role,
			t.transaction_handover_status AS handover_status`).
		Joins(`LEFT JOIN transaction_categories c
			ON c.transaction_category_code = t.transaction_type
			AND c.transaction_category_deleted_at IS NULL`).
		Joins("LEFT JOIN users s ON s.user_id = t.transaction_student_id").
		Joins("LEFT JOIN users g ON g.user_id = t.transaction_teacher_id").
		Joins("LEFT JOIN users cr ON cr.user_id = t.transaction_created_by").
		Where("t.transaction_deleted_at IS NULL")

	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "year tidak valid")
		}
		start, end := helper.YearRange(year)
		q = q.Where("t.transaction_date >= ? AND t.transaction_date < ?", start, end)
	}

	var rows []dto.ExportRowDTO
	if err := q.Order("t.transaction_date ASC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", rows)
}
