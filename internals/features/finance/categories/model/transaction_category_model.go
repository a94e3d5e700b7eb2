// file: internals/features/finance/categories/model/transaction_category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type TransactionCategoryType string

const (
	CategoryTypeIncome  TransactionCategoryType = "INCOME"
	CategoryTypeExpense TransactionCategoryType = "EXPENSE"
)

/* =========================
   Model
   ========================= */

// TransactionCategoryModel merepresentasikan kategori transaksi (SPP, Kas,
// Tabungan, donasi, pengeluaran, dst). Kode kategori bersifat tetap setelah
// dibuat; semantik bucket disimpan eksplisit di kolom kind supaya rename
// nama tampilan tidak mengubah klasifikasi.
type TransactionCategoryModel struct {
	TransactionCategoryID uuid.UUID `json:"transaction_category_id" gorm:"column:transaction_category_id;type:uuid;primaryKey"`

	TransactionCategoryCode string                  `json:"transaction_category_code" gorm:"column:transaction_category_code;type:varchar(60);not null;uniqueIndex:uq_transaction_categories_code_alive,where:transaction_category_deleted_at IS NULL"`
	TransactionCategoryName string                  `json:"transaction_category_name" gorm:"column:transaction_category_name;type:text;not null"`
	TransactionCategoryType TransactionCategoryType `json:"transaction_category_type" gorm:"column:transaction_category_type;type:varchar(10);not null"`

	// Bucket semantik, diisi sekali saat kategori dibuat.
	// SPP | KAS | SAVINGS_DEPOSIT | SAVINGS_WITHDRAWAL | OTHER_INCOME | OTHER_EXPENSE
	TransactionCategoryKind string `json:"transaction_category_kind" gorm:"column:transaction_category_kind;type:varchar(20);not null"`

	TransactionCategoryIsActive bool `json:"transaction_category_is_active" gorm:"column:transaction_category_is_active;not null;default:true"`

	// NULL berarti pakai fallback kode (KAS/TABUNGAN wajib serah terima)
	TransactionCategoryRequiresHandover *bool `json:"transaction_category_requires_handover,omitempty" gorm:"column:transaction_category_requires_handover"`

	// > 0 mengunci nominal transaksi kategori ini
	TransactionCategoryDefaultAmount *int64 `json:"transaction_category_default_amount,omitempty" gorm:"column:transaction_category_default_amount;type:bigint"`

	TransactionCategoryShowToKomite bool `json:"transaction_category_show_to_komite" gorm:"column:transaction_category_show_to_komite;not null;default:true"`
	TransactionCategoryShowToAdmin  bool `json:"transaction_category_show_to_admin" gorm:"column:transaction_category_show_to_admin;not null;default:true"`
	TransactionCategoryIsSystem     bool `json:"transaction_category_is_system" gorm:"column:transaction_category_is_system;not null;default:false"`

	TransactionCategoryCreatedAt time.Time      `json:"transaction_category_created_at" gorm:"column:transaction_category_created_at;autoCreateTime"`
	TransactionCategoryUpdatedAt time.Time      `json:"transaction_category_updated_at" gorm:"column:transaction_category_updated_at;autoUpdateTime"`
	TransactionCategoryDeletedAt gorm.DeletedAt `json:"transaction_category_deleted_at,omitempty" gorm:"column:transaction_category_deleted_at;index"`
}

func (TransactionCategoryModel) TableName() string { return "transaction_categories" }

func (m *TransactionCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.TransactionCategoryID == uuid.Nil {
		m.TransactionCategoryID = uuid.New()
	}
	return nil
}
