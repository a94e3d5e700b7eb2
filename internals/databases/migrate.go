package database

import (
	"log"

	"gorm.io/gorm"

	categoryModel "keuangan_rqm_backend/internals/features/finance/categories/model"
	categoryService "keuangan_rqm_backend/internals/features/finance/categories/service"
	installmentModel "keuangan_rqm_backend/internals/features/finance/installments/model"
	transactionModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
)

// AutoMigrate membuat/menyesuaikan seluruh tabel aplikasi.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&categoryModel.TransactionCategoryModel{},
		&transactionModel.TransactionModel{},
		&installmentModel.SppInstallmentSettingModel{},
		&installmentModel.SppInstallmentPaymentModel{},
	)
}

// SeedDefaultCategories menanam kategori sistem yang dipakai alur inti
// (SPP, kas, tabungan). Idempotent: kategori yang sudah ada dilewati.
func SeedDefaultCategories(db *gorm.DB) error {
	boolPtr := func(b bool) *bool { return &b }

	defaults := []categoryModel.TransactionCategoryModel{
		{
			TransactionCategoryCode:             categoryService.CodeSpp,
			TransactionCategoryName:             "SPP Bulanan",
			TransactionCategoryType:             categoryModel.CategoryTypeIncome,
			TransactionCategoryKind:             string(categoryService.KindSpp),
			TransactionCategoryRequiresHandover: boolPtr(false),
		},
		{
			TransactionCategoryCode:             categoryService.CodeKas,
			TransactionCategoryName:             "Uang Kas Santri",
			TransactionCategoryType:             categoryModel.CategoryTypeIncome,
			TransactionCategoryKind:             string(categoryService.KindKas),
			TransactionCategoryRequiresHandover: boolPtr(true),
		},
		{
			TransactionCategoryCode:             categoryService.CodeTabungan,
			TransactionCategoryName:             "Tabungan Santri",
			TransactionCategoryType:             categoryModel.CategoryTypeIncome,
			TransactionCategoryKind:             string(categoryService.KindSavingsDeposit),
			TransactionCategoryRequiresHandover: boolPtr(true),
		},
		{
			TransactionCategoryCode:             categoryService.CodePenarikanTabungan,
			TransactionCategoryName:             "Penarikan Tabungan Santri",
			TransactionCategoryType:             categoryModel.CategoryTypeExpense,
			TransactionCategoryKind:             string(categoryService.KindSavingsWithdrawal),
			TransactionCategoryRequiresHandover: boolPtr(false),
		},
		{
			TransactionCategoryCode:             categoryService.CodeHonorGuru,
			TransactionCategoryName:             "Honor Guru",
			TransactionCategoryType:             categoryModel.CategoryTypeExpense,
			TransactionCategoryKind:             string(categoryService.KindOtherExpense),
			TransactionCategoryRequiresHandover: boolPtr(false),
		},
	}

	for i := range defaults {
		cat := &defaults[i]
		cat.TransactionCategoryIsActive = true
		cat.TransactionCategoryIsSystem = true
		cat.TransactionCategoryShowToAdmin = true
		cat.TransactionCategoryShowToKomite = true

		var count int64
		if err := db.Model(&categoryModel.TransactionCategoryModel{}).
			Where("transaction_category_code = ?", cat.TransactionCategoryCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(cat).Error; err != nil {
			return err
		}
		log.Printf("[INFO] seed kategori sistem: %s", cat.TransactionCategoryCode)
	}
	return nil
}
