// file: internals/features/finance/installments/controller/installment_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "keuangan_rqm_backend/internals/features/finance/installments/dto"
	service "keuangan_rqm_backend/internals/features/finance/installments/service"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Controller
========================= */

type InstallmentController struct {
	DB *gorm.DB
}

func NewInstallmentController(db *gorm.DB) *InstallmentController {
	return &InstallmentController{DB: db}
}

func mapInstallmentError(c *fiber.Ctx, err error) error {
	var outstanding *service.OutstandingBalanceError

	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotSantri),
		errors.Is(err, service.ErrInvalidAmount):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInstallmentNotEnabled):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &outstanding):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Enable
   POST /api/a/installments/enable
========================= */

func (ctl *InstallmentController) Enable(c *fiber.Ctx) error {
	var req dto.EnableInstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.StudentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	setting, err := service.Enable(c.Context(), ctl.DB, req.StudentID, req.DefaultAmount)
	if err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.JsonOK(c, "Cicilan berhasil diaktifkan", dto.SettingFromModel(*setting))
}

/* =========================
   Disable
   POST /api/a/installments/disable
========================= */

func (ctl *InstallmentController) Disable(c *fiber.Ctx) error {
	var req dto.DisableInstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.StudentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	if err := service.Disable(c.Context(), ctl.DB, req.StudentID, time.Now()); err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.JsonOK(c, "Cicilan berhasil dinonaktifkan", fiber.Map{
		"student_id": req.StudentID,
	})
}

/* =========================
   Record payment
   POST /api/a/installments/payments
========================= */

func (ctl *InstallmentController) RecordPayment(c *fiber.Ctx) error {
	creatorIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	creatorID, err := uuid.Parse(creatorIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.StudentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	payment, err := service.RecordPayment(c.Context(), ctl.DB, service.PaymentInput{
		StudentID:   req.StudentID,
		Year:        req.Year,
		Month:       req.Month,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   creatorID,
	})
	if err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.JsonCreated(c, "Cicilan berhasil dicatat", dto.PaymentFromModel(*payment))
}

/* =========================
   Monthly status
   GET /api/u/installments/:student_id/status?year=
========================= */

func (ctl *InstallmentController) MonthlyStatus(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	year := time.Now().Year()
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "year tidak valid")
		}
		year = parsed
	}

	statuses, err := service.MonthlyStatus(c.Context(), ctl.DB, studentID, year)
	if err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"student_id": studentID,
		"year":       year,
		"months":     statuses,
	})
}

/* =========================
   Update default amount
   PATCH /api/a/installments/amount
========================= */

func (ctl *InstallmentController) UpdateDefaultAmount(c *fiber.Ctx) error {
	var req dto.UpdateDefaultAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.StudentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	setting, err := service.UpdateDefaultAmount(c.Context(), ctl.DB, req.StudentID, req.Amount)
	if err != nil {
		return mapInstallmentError(c, err)
	}

	// Catatan: perubahan default tidak menulis ulang status bulan-bulan lalu
	return helper.JsonUpdated(c, "Nominal cicilan berhasil diperbarui", dto.SettingFromModel(*setting))
}
