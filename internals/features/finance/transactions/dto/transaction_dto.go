// file: internals/features/finance/transactions/dto/transaction_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "keuangan_rqm_backend/internals/features/finance/transactions/model"
)

/* =========================================================
   Response DTO
========================================================= */

type TransactionDTO struct {
	ID             uuid.UUID  `json:"id"`
	CategoryCode   string     `json:"category_code"`
	Amount         int64      `json:"amount"`
	Description    *string    `json:"description,omitempty"`
	Date           string     `json:"date"` // YYYY-MM-DD
	StudentID      *uuid.UUID `json:"student_id,omitempty"`
	TeacherID      *uuid.UUID `json:"teacher_id,omitempty"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatorRole    string     `json:"creator_role"`
	IsHandover     bool       `json:"is_handover"`
	HandoverStatus string     `json:"handover_status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromModel(t m.TransactionModel) TransactionDTO {
	return TransactionDTO{
		ID:             t.TransactionID,
		CategoryCode:   t.TransactionType,
		Amount:         t.TransactionAmount,
		Description:    t.TransactionDescription,
		Date:           t.DateTime().Format("2006-01-02"),
		StudentID:      t.TransactionStudentID,
		TeacherID:      t.TransactionTeacherID,
		CreatedBy:      t.TransactionCreatedBy,
		CreatorRole:    t.TransactionCreatorRole,
		IsHandover:     t.TransactionIsHandover,
		HandoverStatus: string(t.TransactionHandoverStatus),
		CreatedAt:      t.TransactionCreatedAt,
	}
}

func FromModelSlice(xs []m.TransactionModel) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromModel(it))
	}
	return out
}

/* =========================================================
   Create Request
========================================================= */

type CreateTransactionRequest struct {
	CategoryCode string     `json:"category_code"`
	Amount       int64      `json:"amount"`
	Description  *string    `json:"description,omitempty"`
	Date         string     `json:"date"` // YYYY-MM-DD; kosong = hari ini
	StudentID    *uuid.UUID `json:"student_id,omitempty"`
	TeacherID    *uuid.UUID `json:"teacher_id,omitempty"`
}

/* =========================================================
   Export row (proyeksi datar untuk pelaporan)
========================================================= */

type ExportRowDTO struct {
	TransactionID  uuid.UUID `json:"transaction_id"`
	Date           time.Time `json:"date"`
	CategoryCode   string    `json:"category_code"`
	CategoryName   *string   `json:"category_name,omitempty"`
	Amount         int64     `json:"amount"`
	Description    *string   `json:"description,omitempty"`
	StudentName    *string   `json:"student_name,omitempty"`
	TeacherName    *string   `json:"teacher_name,omitempty"`
	CreatorName    *string   `json:"creator_name,omitempty"`
	CreatorRole    string    `json:"creator_role"`
	HandoverStatus string    `json:"handover_status"`
}
