// file: internals/features/finance/balances/service/balance_service.go
package service

import (
	"log"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	catModel "keuangan_rqm_backend/internals/features/finance/categories/model"
	catService "keuangan_rqm_backend/internals/features/finance/categories/service"
	txModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
)

// Semua operasi di package ini read-only dan menghitung ulang dari log
// transaksi setiap dipanggil; tidak ada saldo yang disimpan.

/* =========================
   Index kategori
   ========================= */

func CategoryIndex(db *gorm.DB) (map[string]catModel.TransactionCategoryModel, error) {
	var cats []catModel.TransactionCategoryModel
	if err := db.Find(&cats).Error; err != nil {
		return nil, err
	}
	idx := make(map[string]catModel.TransactionCategoryModel, len(cats))
	for _, c := range cats {
		idx[c.TransactionCategoryCode] = c
	}
	return idx, nil
}

// lookupKind mengembalikan kind transaksi; transaksi dengan kategori yang
// sudah tidak dikenal DIKECUALIKAN dari agregasi (bukan dianggap INCOME
// seperti perilaku lama) dan dicatat sebagai warning.
func lookupKind(idx map[string]catModel.TransactionCategoryModel, t txModel.TransactionModel) (catService.Kind, bool) {
	cat, ok := idx[t.TransactionType]
	if !ok {
		log.Printf("[WARN] kategori tidak dikenal: %q (transaksi %s dilewati dari agregasi)",
			t.TransactionType, t.TransactionID)
		return "", false
	}
	return catService.KindOf(cat), true
}

/* =========================
   Filter visibilitas per role (serah terima)
   ========================= */

// VisibleToRole menerapkan aturan serah terima:
//   - dana di tangan Admin  = transaksi buatan Admin yang belum COMPLETED
//   - dana di tangan Komite = transaksi buatan Komite + buatan Admin yang COMPLETED
func VisibleToRole(t txModel.TransactionModel, role string) bool {
	switch role {
	case constants.RoleAdmin:
		return t.TransactionCreatorRole == constants.RoleAdmin &&
			t.TransactionHandoverStatus != txModel.HandoverCompleted
	case constants.RoleKomite:
		if t.TransactionCreatorRole == constants.RoleKomite {
			return true
		}
		return t.TransactionCreatorRole == constants.RoleAdmin &&
			t.TransactionHandoverStatus == txModel.HandoverCompleted
	}
	return false
}

/* =========================
   Saldo operasional
   ========================= */

// OperationalBalance = pemasukan (bukan tabungan, bukan SPP) − pengeluaran
// (bukan tabungan), disaring per role lewat aturan serah terima.
// Bucket kind hanya menentukan apa yang dikecualikan; arah dana mengikuti
// tipe kategori tersimpan, supaya kategori EXPENSE yang kebetulan masuk
// bucket KAS lewat heuristik nama tetap dibukukan sebagai pengeluaran.
func OperationalBalance(db *gorm.DB, role string) (int64, error) {
	idx, err := CategoryIndex(db)
	if err != nil {
		return 0, err
	}

	var txs []txModel.TransactionModel
	if err := db.Find(&txs).Error; err != nil {
		return 0, err
	}

	var total int64
	for _, t := range txs {
		if !VisibleToRole(t, role) {
			continue
		}
		kind, ok := lookupKind(idx, t)
		if !ok || kind.IsSavings() || kind.IsSpp() {
			continue // tabungan dan SPP dibukukan terpisah dari kas operasional
		}
		if idx[t.TransactionType].TransactionCategoryType == catModel.CategoryTypeExpense {
			total -= t.TransactionAmount
		} else {
			total += t.TransactionAmount
		}
	}
	return total, nil
}

/* =========================
   Saldo tabungan
   ========================= */

// SavingsBalance: setoran − penarikan seluruh lembaga.
func SavingsBalance(db *gorm.DB) (int64, error) {
	return savingsBalanceFiltered(db, nil)
}

// StudentSavingsBalance: setoran − penarikan untuk satu santri.
func StudentSavingsBalance(db *gorm.DB, studentID uuid.UUID) (int64, error) {
	return savingsBalanceFiltered(db, &studentID)
}

func savingsBalanceFiltered(db *gorm.DB, studentID *uuid.UUID) (int64, error) {
	idx, err := CategoryIndex(db)
	if err != nil {
		return 0, err
	}

	q := db.Model(&txModel.TransactionModel{})
	if studentID != nil {
		q = q.Where("transaction_student_id = ?", *studentID)
	}
	var txs []txModel.TransactionModel
	if err := q.Find(&txs).Error; err != nil {
		return 0, err
	}

	var total int64
	for _, t := range txs {
		kind, ok := lookupKind(idx, t)
		if !ok {
			continue
		}
		switch kind {
		case catService.KindSavingsDeposit:
			total += t.TransactionAmount
		case catService.KindSavingsWithdrawal:
			total -= t.TransactionAmount
		}
	}
	return total, nil
}

/* =========================
   Dana tertahan di Admin
   ========================= */

// PendingAtAdmin: total transaksi buatan Admin yang masih PENDING serah terima.
func PendingAtAdmin(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&txModel.TransactionModel{}).
		Where("transaction_creator_role = ? AND transaction_handover_status = ?",
			constants.RoleAdmin, txModel.HandoverPending).
		Select("COALESCE(SUM(transaction_amount), 0)").
		Scan(&total).Error
	return total, err
}

/* =========================
   Penabung teratas
   ========================= */

type TopSaver struct {
	StudentID   uuid.UUID
	StudentName string
	Balance     int64
}

// TopSavers mengurutkan santri berdasarkan saldo tabungan menurun.
// Seri dipecah dengan urutan pembuatan akun supaya hasil deterministik.
func TopSavers(db *gorm.DB, limit int) ([]TopSaver, error) {
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

	var txs []txModel.TransactionModel
	if err := db.Where("transaction_student_id IS NOT NULL").Find(&txs).Error; err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]int64, len(students))
	for _, t := range txs {
		kind, ok := lookupKind(idx, t)
		if !ok {
			continue
		}
		switch kind {
		case catService.KindSavingsDeposit:
			balances[*t.TransactionStudentID] += t.TransactionAmount
		case catService.KindSavingsWithdrawal:
			balances[*t.TransactionStudentID] -= t.TransactionAmount
		}
	}

	out := make([]TopSaver, 0, len(students))
	for _, s := range students {
		out = append(out, TopSaver{
			StudentID:   s.UserID,
			StudentName: s.UserName,
			Balance:     balances[s.UserID],
		})
	}

	// sort stabil: input sudah terurut user_created_at ASC
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance > out[j].Balance
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
