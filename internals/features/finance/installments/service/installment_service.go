// file: internals/features/finance/installments/service/installment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "keuangan_rqm_backend/internals/features/finance/installments/model"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Errors
   ========================= */

var (
	ErrStudentNotFound       = errors.New("Santri tidak ditemukan")
	ErrNotSantri             = errors.New("Cicilan hanya bisa diaktifkan untuk akun santri")
	ErrInstallmentNotEnabled = errors.New("Santri ini belum punya cicilan aktif")
	ErrInvalidAmount         = errors.New("Nominal harus lebih dari 0")
)

// OutstandingBalanceError: cicilan tidak bisa dinonaktifkan selama bulan
// berjalan belum lunas.
type OutstandingBalanceError struct {
	Remaining int64
}

func (e *OutstandingBalanceError) Error() string {
	return fmt.Sprintf("Cicilan bulan ini belum lunas, sisa %s. Lunasi dulu sebelum menonaktifkan.",
		helper.FormatRupiah(e.Remaining))
}

/* =========================
   Status bulanan (pure)
   ========================= */

const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

type MonthStatus struct {
	Month     int    `json:"month"` // 0-11, Januari = 0
	TotalPaid int64  `json:"total_paid"`
	Status    string `json:"status"`
	Remaining int64  `json:"remaining"`
}

// StatusFor menurunkan status satu bulan dari total cicilan terhadap
// default_amount. Kelebihan bayar tetap "paid" dengan remaining 0.
func StatusFor(defaultAmount, totalPaid int64) (string, int64) {
	switch {
	case totalPaid >= defaultAmount:
		return StatusPaid, 0
	case totalPaid > 0:
		return StatusPartial, defaultAmount - totalPaid
	default:
		return StatusUnpaid, defaultAmount
	}
}

/* =========================
   Queries
   ========================= */

// ActiveSetting mengembalikan pengaturan cicilan aktif milik santri, atau
// (nil, nil) bila tidak ada.
func ActiveSetting(db *gorm.DB, studentID uuid.UUID) (*m.SppInstallmentSettingModel, error) {
	var setting m.SppInstallmentSettingModel
	err := db.
		Where("spp_installment_setting_student_id = ? AND spp_installment_setting_is_active = true", studentID).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func monthPaidTotal(db *gorm.DB, studentID uuid.UUID, year, month int) (int64, error) {
	var total int64
	err := db.Model(&m.SppInstallmentPaymentModel{}).
		Where("spp_installment_payment_student_id = ? AND spp_installment_payment_year = ? AND spp_installment_payment_month = ?",
			studentID, year, month).
		Select("COALESCE(SUM(spp_installment_payment_amount), 0)").
		Scan(&total).Error
	return total, err
}

/* =========================
   Operations
   ========================= */

// Enable mengaktifkan (atau memperbarui) cicilan SPP untuk satu santri.
func Enable(ctx context.Context, db *gorm.DB, studentID uuid.UUID, defaultAmount int64) (*m.SppInstallmentSettingModel, error) {
	if defaultAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "user_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if !user.IsSantri() {
		return nil, ErrNotSantri
	}

	var setting m.SppInstallmentSettingModel
	err := db.WithContext(ctx).
		Where("spp_installment_setting_student_id = ?", studentID).
		First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = m.SppInstallmentSettingModel{
			SppInstallmentSettingStudentID:     studentID,
			SppInstallmentSettingDefaultAmount: defaultAmount,
			SppInstallmentSettingIsActive:      true,
		}
		if err := db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		setting.SppInstallmentSettingDefaultAmount = defaultAmount
		setting.SppInstallmentSettingIsActive = true
		if err := db.WithContext(ctx).Save(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}

// Disable menonaktifkan cicilan. Syarat: total cicilan bulan berjalan sudah
// menutup default_amount; riwayat pembayaran tetap disimpan.
func Disable(ctx context.Context, db *gorm.DB, studentID uuid.UUID, now time.Time) error {
	setting, err := ActiveSetting(db.WithContext(ctx), studentID)
	if err != nil {
		return err
	}
	if setting == nil {
		return ErrInstallmentNotEnabled
	}

	total, err := monthPaidTotal(db.WithContext(ctx), studentID, now.Year(), int(now.Month())-1)
	if err != nil {
		return err
	}
	if total < setting.SppInstallmentSettingDefaultAmount {
		return &OutstandingBalanceError{Remaining: setting.SppInstallmentSettingDefaultAmount - total}
	}

	setting.SppInstallmentSettingIsActive = false
	return db.WithContext(ctx).Save(setting).Error
}

type PaymentInput struct {
	StudentID   uuid.UUID
	Year        int
	Month       int // 0-11
	Amount      int64
	Description *string
	CreatedBy   uuid.UUID
}

// RecordPayment menambah satu baris cicilan. Kelebihan bayar dibiarkan
// (statusnya jadi "paid" dengan surplus informatif).
func RecordPayment(ctx context.Context, db *gorm.DB, in PaymentInput) (*m.SppInstallmentPaymentModel, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Month < 0 || in.Month > 11 {
		return nil, errors.New("Bulan harus di antara 0 dan 11")
	}

	setting, err := ActiveSetting(db.WithContext(ctx), in.StudentID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrInstallmentNotEnabled
	}

	payment := m.SppInstallmentPaymentModel{
		SppInstallmentPaymentStudentID:   in.StudentID,
		SppInstallmentPaymentYear:        in.Year,
		SppInstallmentPaymentMonth:       in.Month,
		SppInstallmentPaymentAmount:      in.Amount,
		SppInstallmentPaymentDescription: in.Description,
		SppInstallmentPaymentCreatedBy:   in.CreatedBy,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// MonthlyStatus menghitung status 12 bulan untuk satu santri pada satu tahun.
// Status dihitung terhadap default_amount yang berlaku SAAT DIBACA (snapshot
// semantics; perubahan default tidak menulis ulang riwayat).
func MonthlyStatus(ctx context.Context, db *gorm.DB, studentID uuid.UUID, year int) ([]MonthStatus, error) {
	setting, err := ActiveSetting(db.WithContext(ctx), studentID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrInstallmentNotEnabled
	}

	var payments []m.SppInstallmentPaymentModel
	if err := db.WithContext(ctx).
		Where("spp_installment_payment_student_id = ? AND spp_installment_payment_year = ?", studentID, year).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	var sums [12]int64
	for _, p := range payments {
		if p.SppInstallmentPaymentMonth >= 0 && p.SppInstallmentPaymentMonth <= 11 {
			sums[p.SppInstallmentPaymentMonth] += p.SppInstallmentPaymentAmount
		}
	}

	out := make([]MonthStatus, 0, 12)
	for mo := 0; mo < 12; mo++ {
		status, remaining := StatusFor(setting.SppInstallmentSettingDefaultAmount, sums[mo])
		out = append(out, MonthStatus{
			Month:     mo,
			TotalPaid: sums[mo],
			Status:    status,
			Remaining: remaining,
		})
	}
	return out, nil
}

// UpdateDefaultAmount mengganti default_amount pada pengaturan aktif.
func UpdateDefaultAmount(ctx context.Context, db *gorm.DB, studentID uuid.UUID, amount int64) (*m.SppInstallmentSettingModel, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	setting, err := ActiveSetting(db.WithContext(ctx), studentID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrInstallmentNotEnabled
	}
	setting.SppInstallmentSettingDefaultAmount = amount
	if err := db.WithContext(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
