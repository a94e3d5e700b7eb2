// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	balanceController "keuangan_rqm_backend/internals/features/finance/balances/controller"
	categoryController "keuangan_rqm_backend/internals/features/finance/categories/controller"
	installmentController "keuangan_rqm_backend/internals/features/finance/installments/controller"
	transactionController "keuangan_rqm_backend/internals/features/finance/transactions/controller"
)

func FinanceRoutes(authed fiber.Router, admin fiber.Router, db *gorm.DB) {
	catCtl := categoryController.NewTransactionCategoryController(db)
	txCtl := transactionController.NewTransactionController(db)
	instCtl := installmentController.NewInstallmentController(db)
	balCtl := balanceController.NewBalanceController(db)

	// ===== Kategori =====
	authed.Get("/categories", catCtl.List)
	admin.Post("/categories", catCtl.Create)
	admin.Patch("/categories/:id", catCtl.Patch)
	admin.Delete("/categories/:id", catCtl.Delete)

	// ===== Transaksi =====
	authed.Post("/transactions", txCtl.Create) // role dicek di controller
	authed.Get("/transactions", txCtl.List)
	admin.Delete("/transactions/:id", txCtl.Delete)
	admin.Post("/transactions/handover", txCtl.PerformHandover)
	admin.Get("/transactions/export", txCtl.ExportRows)

	// ===== Cicilan SPP =====
	authed.Get("/installments/:student_id/status", instCtl.MonthlyStatus)
	admin.Post("/installments/enable", instCtl.Enable)
	admin.Post("/installments/disable", instCtl.Disable)
	admin.Post("/installments/payments", instCtl.RecordPayment)
	admin.Patch("/installments/amount", instCtl.UpdateDefaultAmount)

	// ===== Saldo & monitoring =====
	authed.Get("/balances/operational", balCtl.Operational)
	authed.Get("/balances/savings", balCtl.Savings)
	authed.Get("/balances/savings/:student_id", balCtl.StudentSavings)
	admin.Get("/balances/pending", balCtl.PendingAtAdmin)
	authed.Get("/monitoring/payments", balCtl.MonthlyPaymentStatus)
	authed.Get("/monitoring/top-savers", balCtl.TopSavers)
}
