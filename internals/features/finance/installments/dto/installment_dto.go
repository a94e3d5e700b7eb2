// file: internals/features/finance/installments/dto/installment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "keuangan_rqm_backend/internals/features/finance/installments/model"
)

/* =========================================================
   Response DTO
========================================================= */

type InstallmentSettingDTO struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	DefaultAmount int64     `json:"default_amount"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func SettingFromModel(s m.SppInstallmentSettingModel) InstallmentSettingDTO {
	return InstallmentSettingDTO{
		ID:            s.SppInstallmentSettingID,
		StudentID:     s.SppInstallmentSettingStudentID,
		DefaultAmount: s.SppInstallmentSettingDefaultAmount,
		IsActive:      s.SppInstallmentSettingIsActive,
		CreatedAt:     s.SppInstallmentSettingCreatedAt,
		UpdatedAt:     s.SppInstallmentSettingUpdatedAt,
	}
}

type InstallmentPaymentDTO struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"` // 0-11
	Amount      int64     `json:"amount"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func PaymentFromModel(p m.SppInstallmentPaymentModel) InstallmentPaymentDTO {
	return InstallmentPaymentDTO{
		ID:          p.SppInstallmentPaymentID,
		StudentID:   p.SppInstallmentPaymentStudentID,
		Year:        p.SppInstallmentPaymentYear,
		Month:       p.SppInstallmentPaymentMonth,
		Amount:      p.SppInstallmentPaymentAmount,
		Description: p.SppInstallmentPaymentDescription,
		CreatedBy:   p.SppInstallmentPaymentCreatedBy,
		CreatedAt:   p.SppInstallmentPaymentCreatedAt,
	}
}

/* =========================================================
   Requests
========================================================= */

type EnableInstallmentRequest struct {
	StudentID     uuid.UUID `json:"student_id"`
	DefaultAmount int64     `json:"default_amount"`
}

type DisableInstallmentRequest struct {
	StudentID uuid.UUID `json:"student_id"`
}

type RecordPaymentRequest struct {
	StudentID   uuid.UUID `json:"student_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"` // 0-11
	Amount      int64     `json:"amount"`
	Description *string   `json:"description,omitempty"`
}

type UpdateDefaultAmountRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	Amount    int64     `json:"amount"`
}
