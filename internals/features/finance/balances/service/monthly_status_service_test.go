// file: internals/features/finance/balances/service/monthly_status_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	catService "keuangan_rqm_backend/internals/features/finance/categories/service"
	instModel "keuangan_rqm_backend/internals/features/finance/installments/model"
	txModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
)

func seedInstallment(t *testing.T, db *gorm.DB, studentID uuid.UUID, defaultAmount int64) {
	t.Helper()
	setting := instModel.SppInstallmentSettingModel{
		SppInstallmentSettingStudentID:     studentID,
		SppInstallmentSettingDefaultAmount: defaultAmount,
		SppInstallmentSettingIsActive:      true,
	}
	if err := db.Create(&setting).Error; err != nil {
		t.Fatalf("seed cicilan: %v", err)
	}
}

func seedInstallmentPayment(t *testing.T, db *gorm.DB, studentID uuid.UUID, year, month int, amount int64) {
	t.Helper()
	payment := instModel.SppInstallmentPaymentModel{
		SppInstallmentPaymentStudentID: studentID,
		SppInstallmentPaymentYear:      year,
		SppInstallmentPaymentMonth:     month,
		SppInstallmentPaymentAmount:    amount,
		SppInstallmentPaymentCreatedBy: uuid.New(),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed cicilan bayar: %v", err)
	}
}

func TestMonthlyPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	ahmad := seedSantri(t, db, "ahmad", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	budi := seedSantri(t, db, "budi", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	// ahmad bayar SPP + Kas langsung di Maret
	insertTx(t, db, catService.CodeSpp, 150000, constants.RoleKomite, txModel.HandoverNone, &ahmad)
	insertTx(t, db, catService.CodeKas, 10000, constants.RoleKomite, txModel.HandoverNone, &ahmad)

	// budi pakai cicilan: Maret lunas (2x50000), April baru separuh
	seedInstallment(t, db, budi, 100000)
	seedInstallmentPayment(t, db, budi, 2025, 2, 50000)
	seedInstallmentPayment(t, db, budi, 2025, 2, 50000)
	seedInstallmentPayment(t, db, budi, 2025, 3, 40000)

	rows, err := MonthlyPaymentStatus(db, 2025)
	if err != nil {
		t.Fatalf("grid monitoring: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("jumlah baris = %d, mau 2", len(rows))
	}

	// urutan mengikuti pembuatan akun
	if rows[0].StudentID != ahmad || rows[1].StudentID != budi {
		t.Fatal("urutan baris harus ahmad lalu budi")
	}

	if rows[0].Installment {
		t.Fatal("ahmad tidak pakai cicilan")
	}
	if !rows[0].Spp[2] || !rows[0].Kas[2] {
		t.Fatalf("ahmad Maret: spp=%v kas=%v, mau true/true", rows[0].Spp[2], rows[0].Kas[2])
	}
	if rows[0].Spp[3] {
		t.Fatal("ahmad April harus belum bayar")
	}

	if !rows[1].Installment {
		t.Fatal("budi pakai cicilan")
	}
	if !rows[1].Spp[2] {
		t.Fatal("budi Maret harus lunas lewat cicilan")
	}
	if rows[1].Spp[3] {
		t.Fatal("budi April belum menutup tarif, harus belum lunas")
	}
	if rows[1].Kas[2] {
		t.Fatal("budi belum pernah bayar kas")
	}
}
