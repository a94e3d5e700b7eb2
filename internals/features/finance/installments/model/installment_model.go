// file: internals/features/finance/installments/model/installment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Pengaturan cicilan SPP
   ========================= */

// SppInstallmentSettingModel: satu baris per santri. Selama aktif, aturan
// "satu SPP per bulan" dilewati dan pembayaran dicatat sebagai cicilan.
type SppInstallmentSettingModel struct {
	SppInstallmentSettingID uuid.UUID `json:"spp_installment_setting_id" gorm:"column:spp_installment_setting_id;type:uuid;primaryKey"`

	SppInstallmentSettingStudentID uuid.UUID `json:"spp_installment_setting_student_id" gorm:"column:spp_installment_setting_student_id;type:uuid;not null;uniqueIndex:uq_spp_installment_settings_student_alive,where:spp_installment_setting_deleted_at IS NULL"`

	SppInstallmentSettingDefaultAmount int64 `json:"spp_installment_setting_default_amount" gorm:"column:spp_installment_setting_default_amount;type:bigint;not null"`
	SppInstallmentSettingIsActive      bool  `json:"spp_installment_setting_is_active" gorm:"column:spp_installment_setting_is_active;not null;default:true"`

	SppInstallmentSettingCreatedAt time.Time      `json:"spp_installment_setting_created_at" gorm:"column:spp_installment_setting_created_at;autoCreateTime"`
	SppInstallmentSettingUpdatedAt time.Time      `json:"spp_installment_setting_updated_at" gorm:"column:spp_installment_setting_updated_at;autoUpdateTime"`
	SppInstallmentSettingDeletedAt gorm.DeletedAt `json:"spp_installment_setting_deleted_at,omitempty" gorm:"column:spp_installment_setting_deleted_at;index"`
}

func (SppInstallmentSettingModel) TableName() string { return "spp_installment_settings" }

func (m *SppInstallmentSettingModel) BeforeCreate(tx *gorm.DB) error {
	if m.SppInstallmentSettingID == uuid.Nil {
		m.SppInstallmentSettingID = uuid.New()
	}
	return nil
}

/* =========================
   Pembayaran cicilan SPP
   ========================= */

// SppInstallmentPaymentModel: append-only; beberapa pembayaran boleh jatuh
// di (santri, tahun, bulan) yang sama dan dijumlahkan saat menghitung status.
type SppInstallmentPaymentModel struct {
	SppInstallmentPaymentID uuid.UUID `json:"spp_installment_payment_id" gorm:"column:spp_installment_payment_id;type:uuid;primaryKey"`

	SppInstallmentPaymentStudentID uuid.UUID `json:"spp_installment_payment_student_id" gorm:"column:spp_installment_payment_student_id;type:uuid;not null;index"`

	SppInstallmentPaymentYear int `json:"spp_installment_payment_year" gorm:"column:spp_installment_payment_year;not null"`
	// bulan 0-11, Januari = 0
	SppInstallmentPaymentMonth int `json:"spp_installment_payment_month" gorm:"column:spp_installment_payment_month;not null"`

	SppInstallmentPaymentAmount      int64   `json:"spp_installment_payment_amount" gorm:"column:spp_installment_payment_amount;type:bigint;not null"`
	SppInstallmentPaymentDescription *string `json:"spp_installment_payment_description,omitempty" gorm:"column:spp_installment_payment_description;type:text"`

	SppInstallmentPaymentCreatedBy uuid.UUID `json:"spp_installment_payment_created_by" gorm:"column:spp_installment_payment_created_by;type:uuid;not null"`

	SppInstallmentPaymentCreatedAt time.Time `json:"spp_installment_payment_created_at" gorm:"column:spp_installment_payment_created_at;autoCreateTime"`
}

func (SppInstallmentPaymentModel) TableName() string { return "spp_installment_payments" }

func (m *SppInstallmentPaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.SppInstallmentPaymentID == uuid.Nil {
		m.SppInstallmentPaymentID = uuid.New()
	}
	return nil
}
