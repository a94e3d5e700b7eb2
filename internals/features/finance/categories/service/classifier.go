// file: internals/features/finance/categories/service/classifier.go
package service

import (
	"strings"

	m "keuangan_rqm_backend/internals/features/finance/categories/model"
)

/* =========================
   Kind (bucket semantik)
   ========================= */

type Kind string

const (
	KindSpp               Kind = "SPP"
	KindKas               Kind = "KAS"
	KindSavingsDeposit    Kind = "SAVINGS_DEPOSIT"
	KindSavingsWithdrawal Kind = "SAVINGS_WITHDRAWAL"
	KindOtherIncome       Kind = "OTHER_INCOME"
	KindOtherExpense      Kind = "OTHER_EXPENSE"
)

// Kode kategori kanonik (seed bawaan sistem)
const (
	CodeSpp               = "SPP"
	CodeCicilanSpp        = "CICILAN_SPP"
	CodeKas               = "KAS"
	CodeUangKas           = "UANG_KAS"
	CodeTabungan          = "TABUNGAN"
	CodePenarikanTabungan = "PENARIKAN_TABUNGAN"
	CodeHonorGuru         = "HONOR_GURU"
)

func (k Kind) IsSavings() bool { return k == KindSavingsDeposit || k == KindSavingsWithdrawal }
func (k Kind) IsSpp() bool     { return k == KindSpp }
func (k Kind) IsKas() bool     { return k == KindKas }

// IsIncome: SPP, Kas, setoran tabungan, dan pendapatan lain masuk kas;
// penarikan tabungan dan pengeluaran lain keluar kas.
func (k Kind) IsIncome() bool {
	switch k {
	case KindSpp, KindKas, KindSavingsDeposit, KindOtherIncome:
		return true
	}
	return false
}

/* =========================
   Resolusi kind
   ========================= */

// ResolveKind memetakan (kode, nama, tipe) ke satu bucket semantik.
// Urutan preseden: Tabungan > SPP > Kas > fallback tipe tersimpan.
// Pencocokan nama case-insensitive. Dipakai sekali saat kategori dibuat
// (atau sebagai fallback untuk baris lama yang belum punya kolom kind).
func ResolveKind(code, name string, catType m.TransactionCategoryType) Kind {
	lname := strings.ToLower(name)

	switch {
	case code == CodeTabungan || code == CodePenarikanTabungan || strings.Contains(lname, "tabungan"):
		if code == CodePenarikanTabungan || catType == m.CategoryTypeExpense {
			return KindSavingsWithdrawal
		}
		return KindSavingsDeposit

	case code == CodeSpp || code == CodeCicilanSpp || strings.Contains(lname, "spp"):
		return KindSpp

	case code == CodeKas || code == CodeUangKas || strings.Contains(lname, "kas"):
		return KindKas
	}

	if catType == m.CategoryTypeExpense {
		return KindOtherExpense
	}
	return KindOtherIncome
}

// KindOf membaca kolom kind; baris lama tanpa kind jatuh ke heuristik.
func KindOf(cat m.TransactionCategoryModel) Kind {
	if cat.TransactionCategoryKind != "" {
		return Kind(cat.TransactionCategoryKind)
	}
	return ResolveKind(cat.TransactionCategoryCode, cat.TransactionCategoryName, cat.TransactionCategoryType)
}

/* =========================
   Aturan turunan kategori
   ========================= */

// RequiresHandover: flag eksplisit kalau ada, selain itu fallback kode KAS/TABUNGAN.
func RequiresHandover(cat m.TransactionCategoryModel) bool {
	if cat.TransactionCategoryRequiresHandover != nil {
		return *cat.TransactionCategoryRequiresHandover
	}
	return cat.TransactionCategoryCode == CodeTabungan || cat.TransactionCategoryCode == CodeKas
}

// RequiresStudent: SPP/Kas selalu butuh santri; begitu juga setoran tabungan
// kanonik dan kategori yang namanya menyebut "santri".
func RequiresStudent(cat m.TransactionCategoryModel) bool {
	k := KindOf(cat)
	if k.IsSpp() || k.IsKas() {
		return true
	}
	if cat.TransactionCategoryCode == CodeTabungan {
		return true
	}
	return strings.Contains(strings.ToLower(cat.TransactionCategoryName), "santri")
}

// RequiresTeacher: honorarium kanonik atau kategori yang namanya menyebut "guru".
func RequiresTeacher(cat m.TransactionCategoryModel) bool {
	if cat.TransactionCategoryCode == CodeHonorGuru {
		return true
	}
	return strings.Contains(strings.ToLower(cat.TransactionCategoryName), "guru")
}

// IsSavingsWithdrawalFor: kategori EXPENSE bernama tabungan dengan santri
// terpasang = penarikan tabungan yang harus dicek saldonya.
func IsSavingsWithdrawalFor(cat m.TransactionCategoryModel) bool {
	return cat.TransactionCategoryType == m.CategoryTypeExpense &&
		strings.Contains(strings.ToLower(cat.TransactionCategoryName), "tabungan")
}
