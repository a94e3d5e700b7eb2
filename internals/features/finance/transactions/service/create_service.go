// file: internals/features/finance/transactions/service/create_service.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	balService "keuangan_rqm_backend/internals/features/finance/balances/service"
	catModel "keuangan_rqm_backend/internals/features/finance/categories/model"
	catService "keuangan_rqm_backend/internals/features/finance/categories/service"
	instService "keuangan_rqm_backend/internals/features/finance/installments/service"
	m "keuangan_rqm_backend/internals/features/finance/transactions/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

type CreateInput struct {
	CategoryCode string
	Amount       int64
	Description  *string
	Date         time.Time
	StudentID    *uuid.UUID
	TeacherID    *uuid.UUID
	CreatorID    uuid.UUID
	CreatorRole  string
}

// Create menjalankan seluruh pipeline validasi lalu menyimpan transaksi.
// Semua langkah cek + insert berjalan di dalam SATU transaksi SERIALIZABLE:
// pada isolasi default (READ COMMITTED) dua submit bersamaan untuk (santri,
// bulan) yang sama masih bisa sama-sama membaca "belum ada" lalu sama-sama
// insert. Dengan SERIALIZABLE salah satunya gagal commit (SQLSTATE 40001)
// dan dipetakan ke error duplikat di bawah.
func Create(ctx context.Context, db *gorm.DB, in CreateInput) (*m.TransactionModel, error) {
	var created *m.TransactionModel
	var kind catService.Kind

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Resolve kategori by code; harus ada dan aktif
		var cat catModel.TransactionCategoryModel
		err := tx.
			Where("transaction_category_code = ? AND transaction_category_is_active = true", in.CategoryCode).
			First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCategory
		}
		if err != nil {
			return err
		}

		// default_amount > 0 mengunci nominal
		if cat.TransactionCategoryDefaultAmount != nil && *cat.TransactionCategoryDefaultAmount > 0 {
			in.Amount = *cat.TransactionCategoryDefaultAmount
		}
		if in.Amount <= 0 {
			return ErrInvalidAmount
		}

		kind = catService.KindOf(cat)

		// 2) SPP/Kas wajib santri
		if (kind.IsSpp() || kind.IsKas()) && in.StudentID == nil {
			return ErrMissingStudent
		}

		// 3) SPP: cek duplikat bulanan, KECUALI santri punya cicilan aktif
		if kind.IsSpp() && in.StudentID != nil {
			setting, err := instService.ActiveSetting(tx, *in.StudentID)
			if err != nil {
				return err
			}
			if setting == nil {
				dup, err := hasMonthlyPayment(tx, *in.StudentID, in.Date, catService.KindSpp)
				if err != nil {
					return err
				}
				if dup {
					return &DuplicateMonthlyPaymentError{Label: "SPP"}
				}
			}
		}

		// 4) Kas: cek duplikat bulanan (tanpa pengecualian cicilan)
		if kind.IsKas() && in.StudentID != nil {
			dup, err := hasMonthlyPayment(tx, *in.StudentID, in.Date, catService.KindKas)
			if err != nil {
				return err
			}
			if dup {
				return &DuplicateMonthlyPaymentError{Label: "Kas"}
			}
		}

		// 5) Kategori "santri" / setoran tabungan kanonik wajib santri
		if catService.RequiresStudent(cat) && in.StudentID == nil {
			return ErrMissingStudent
		}

		// 6) Kategori "guru" / honorarium kanonik wajib guru
		if catService.RequiresTeacher(cat) && in.TeacherID == nil {
			return ErrMissingTeacher
		}

		// 7) Penarikan tabungan: saldo santri harus cukup
		if catService.IsSavingsWithdrawalFor(cat) && in.StudentID != nil {
			balance, err := balService.StudentSavingsBalance(tx, *in.StudentID)
			if err != nil {
				return err
			}
			if balance < in.Amount {
				return &InsufficientSavingsError{Current: balance}
			}
		}

		// 8) Serah terima: hanya setoran kas fisik yang diterima Admin
		isHandover := in.CreatorRole == constants.RoleAdmin && catService.RequiresHandover(cat)
		status := m.HandoverNone
		if isHandover {
			status = m.HandoverPending
		}

		// 9) Insert
		rec := m.TransactionModel{
			TransactionType:           cat.TransactionCategoryCode,
			TransactionAmount:         in.Amount,
			TransactionDescription:    in.Description,
			TransactionDate:           datatypes.Date(in.Date),
			TransactionStudentID:      in.StudentID,
			TransactionTeacherID:      in.TeacherID,
			TransactionCreatedBy:      in.CreatorID,
			TransactionCreatorRole:    in.CreatorRole,
			TransactionIsHandover:     isHandover,
			TransactionHandoverStatus: status,
		}
		if err := tx.Create(&rec).Error; err != nil {
			// constraint storage tetap otoritatif bila cek di atas kecolongan
			if isUniqueViolation(err) && (kind.IsSpp() || kind.IsKas()) {
				label := "Kas"
				if kind.IsSpp() {
					label = "SPP"
				}
				return &DuplicateMonthlyPaymentError{Label: label}
			}
			return err
		}
		created = &rec
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		// konflik serialisasi muncul saat commit, di luar closure
		if isSerializationFailure(err) {
			if kind.IsSpp() || kind.IsKas() {
				label := "Kas"
				if kind.IsSpp() {
					label = "SPP"
				}
				return nil, &DuplicateMonthlyPaymentError{Label: label}
			}
			return nil, ErrTxConflict
		}
		return nil, err
	}
	return created, nil
}

// hasMonthlyPayment memeriksa apakah santri sudah punya transaksi dengan
// kind tersebut (lewat semua kode kategori yang se-bucket) dalam bulan
// kalender tanggal transaksi.
func hasMonthlyPayment(tx *gorm.DB, studentID uuid.UUID, date time.Time, kind catService.Kind) (bool, error) {
	idx, err := balService.CategoryIndex(tx)
	if err != nil {
		return false, err
	}
	codes := make([]string, 0, 2)
	for code, cat := range idx {
		if catService.KindOf(cat) == kind {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return false, nil
	}

	start, end := helper.MonthRange(date)
	var count int64
	err = tx.Model(&m.TransactionModel{}).
		Where("transaction_student_id = ? AND transaction_type IN ? AND transaction_date >= ? AND transaction_date < ?",
			studentID, codes, start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// isSerializationFailure mengenali kegagalan commit SERIALIZABLE
// (SQLSTATE 40001) lintas driver lewat pesan error.
func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "could not serialize")
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
