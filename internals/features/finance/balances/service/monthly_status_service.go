// file: internals/features/finance/balances/service/monthly_status_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	instModel "keuangan_rqm_backend/internals/features/finance/installments/model"
	txModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
	helper "keuangan_rqm_backend/internals/helpers"
)

// StudentPaymentStatus: grid 12 bulan lunas/belum per santri (index 0 = Januari).
type StudentPaymentStatus struct {
	StudentID   uuid.UUID
	StudentName string
	Spp         [12]bool
	Kas         [12]bool
	Installment bool // true bila status SPP dihitung dari cicilan
}

// MonthlyPaymentStatus membangun grid monitoring pembayaran SPP & Kas satu
// tahun. Untuk santri dengan cicilan aktif, status SPP dihitung dari total
// cicilan bulan itu terhadap default_amount; selain itu dari ada/tidaknya
// transaksi SPP langsung di bulan tersebut.
func MonthlyPaymentStatus(db *gorm.DB, year int) ([]StudentPaymentStatus, error) {
	idx, err := CategoryIndex(db)
	if err != nil {
		return nil, err
	}

	var students []userModel.UserModel
	if err := db.
		Where("user_role = ? AND user_is_active = true", constants.RoleSantri).
		Order("user_created_at ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	start, end := helper.YearRange(year)
	var txs []txModel.TransactionModel
	if err := db.
		Where("transaction_student_id IS NOT NULL AND transaction_date >= ? AND transaction_date < ?", start, end).
		Find(&txs).Error; err != nil {
		return nil, err
	}

	// cicilan aktif per santri
	var settings []instModel.SppInstallmentSettingModel
	if err := db.
		Where("spp_installment_setting_is_active = true").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	activeSetting := make(map[uuid.UUID]int64, len(settings))
	for _, s := range settings {
		activeSetting[s.SppInstallmentSettingStudentID] = s.SppInstallmentSettingDefaultAmount
	}

	// total cicilan per (santri, bulan) untuk tahun tsb
	var payments []instModel.SppInstallmentPaymentModel
	if err := db.
		Where("spp_installment_payment_year = ?", year).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	paidSum := make(map[uuid.UUID][12]int64)
	for _, p := range payments {
		if p.SppInstallmentPaymentMonth < 0 || p.SppInstallmentPaymentMonth > 11 {
			continue
		}
		sums := paidSum[p.SppInstallmentPaymentStudentID]
		sums[p.SppInstallmentPaymentMonth] += p.SppInstallmentPaymentAmount
		paidSum[p.SppInstallmentPaymentStudentID] = sums
	}

	// transaksi SPP/Kas langsung per (santri, bulan)
	type mark struct{ spp, kas [12]bool }
	direct := make(map[uuid.UUID]*mark)
	for _, t := range txs {
		kind, ok := lookupKind(idx, t)
		if !ok || (!kind.IsSpp() && !kind.IsKas()) {
			continue
		}
		mo := int(t.DateTime().Month()) - 1
		if mo < 0 || mo > 11 {
			continue
		}
		mk := direct[*t.TransactionStudentID]
		if mk == nil {
			mk = &mark{}
			direct[*t.TransactionStudentID] = mk
		}
		if kind.IsSpp() {
			mk.spp[mo] = true
		} else {
			mk.kas[mo] = true
		}
	}

	out := make([]StudentPaymentStatus, 0, len(students))
	for _, s := range students {
		row := StudentPaymentStatus{
			StudentID:   s.UserID,
			StudentName: s.UserName,
		}
		defaultAmount, hasInstallment := activeSetting[s.UserID]
		row.Installment = hasInstallment

		mk := direct[s.UserID]
		sums := paidSum[s.UserID]
		for mo := 0; mo < 12; mo++ {
			if hasInstallment {
				row.Spp[mo] = sums[mo] >= defaultAmount
			} else if mk != nil {
				row.Spp[mo] = mk.spp[mo]
			}
			if mk != nil {
				row.Kas[mo] = mk.kas[mo]
			}
		}
		out = append(out, row)
	}
	return out, nil
}
