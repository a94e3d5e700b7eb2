// file: internals/features/finance/transactions/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type HandoverStatus string

const (
	HandoverNone      HandoverStatus = "NONE"
	HandoverPending   HandoverStatus = "PENDING"
	HandoverCompleted HandoverStatus = "COMPLETED"
)

/* =========================
   Model
   ========================= */

// TransactionModel adalah log transaksi; semua saldo diturunkan ulang dari
// tabel ini setiap kali dibaca, tidak ada saldo tersimpan.
type TransactionModel struct {
	TransactionID uuid.UUID `json:"transaction_id" gorm:"column:transaction_id;type:uuid;primaryKey"`

	// kode kategori (transaction_categories.transaction_category_code)
	TransactionType string `json:"transaction_type" gorm:"column:transaction_type;type:varchar(60);not null;index"`

	// rupiah bulat, selalu > 0; arah dana ditentukan kategori
	TransactionAmount      int64          `json:"transaction_amount" gorm:"column:transaction_amount;type:bigint;not null"`
	TransactionDescription *string        `json:"transaction_description,omitempty" gorm:"column:transaction_description;type:text"`
	TransactionDate        datatypes.Date `json:"transaction_date" gorm:"column:transaction_date;not null;index"`

	TransactionStudentID *uuid.UUID `json:"transaction_student_id,omitempty" gorm:"column:transaction_student_id;type:uuid;index"`
	TransactionTeacherID *uuid.UUID `json:"transaction_teacher_id,omitempty" gorm:"column:transaction_teacher_id;type:uuid"`

	TransactionCreatedBy   uuid.UUID `json:"transaction_created_by" gorm:"column:transaction_created_by;type:uuid;not null"`
	TransactionCreatorRole string    `json:"transaction_creator_role" gorm:"column:transaction_creator_role;type:varchar(10);not null"`

	// serah terima kas Admin → Komite; COMPLETED tidak pernah dibalik
	TransactionIsHandover     bool           `json:"transaction_is_handover" gorm:"column:transaction_is_handover;not null;default:false"`
	TransactionHandoverStatus HandoverStatus `json:"transaction_handover_status" gorm:"column:transaction_handover_status;type:varchar(10);not null;default:'NONE';index"`

	TransactionCreatedAt time.Time      `json:"transaction_created_at" gorm:"column:transaction_created_at;autoCreateTime"`
	TransactionUpdatedAt time.Time      `json:"transaction_updated_at" gorm:"column:transaction_updated_at;autoUpdateTime"`
	TransactionDeletedAt gorm.DeletedAt `json:"transaction_deleted_at,omitempty" gorm:"column:transaction_deleted_at;index"`
}

func (TransactionModel) TableName() string { return "transactions" }

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}

// DateTime mengembalikan tanggal transaksi sebagai time.Time.
func (t *TransactionModel) DateTime() time.Time {
	return time.Time(t.TransactionDate)
}
