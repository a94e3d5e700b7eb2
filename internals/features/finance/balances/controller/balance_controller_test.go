// file: internals/features/finance/balances/controller/balance_controller_test.go
package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"keuangan_rqm_backend/internals/constants"
	catModel "keuangan_rqm_backend/internals/features/finance/categories/model"
	catService "keuangan_rqm_backend/internals/features/finance/categories/service"
	instModel "keuangan_rqm_backend/internals/features/finance/installments/model"
	txModel "keuangan_rqm_backend/internals/features/finance/transactions/model"
	userModel "keuangan_rqm_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&catModel.TransactionCategoryModel{},
		&txModel.TransactionModel{},
		&instModel.SppInstallmentSettingModel{},
		&instModel.SppInstallmentPaymentModel{},
	); err != nil {
		t.Fatalf("migrasi: %v", err)
	}

	cat := catModel.TransactionCategoryModel{
		TransactionCategoryCode:     catService.CodeTabungan,
		TransactionCategoryName:     "Tabungan Santri",
		TransactionCategoryType:     catModel.CategoryTypeIncome,
		TransactionCategoryKind:     string(catService.KindSavingsDeposit),
		TransactionCategoryIsActive: true,
	}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed kategori: %v", err)
	}
	return db
}

func seedSantri(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName:     name,
		UserUsername: name,
		UserPassword: "rahasia-test",
		UserRole:     constants.RoleSantri,
		UserIsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed santri %s: %v", name, err)
	}
	return u.UserID
}

func seedDeposit(t *testing.T, db *gorm.DB, studentID uuid.UUID, amount int64) {
	t.Helper()
	rec := txModel.TransactionModel{
		TransactionType:        catService.CodeTabungan,
		TransactionAmount:      amount,
		TransactionDate:        datatypes.Date(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
		TransactionStudentID:   &studentID,
		TransactionCreatedBy:   uuid.New(),
		TransactionCreatorRole: constants.RoleKomite,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed setoran: %v", err)
	}
}

// newApp memasang endpoint dengan role/user_id tiruan di Locals, seperti
// yang diisi AuthMiddleware pada request asli.
func newApp(db *gorm.DB, role string, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	ctl := NewBalanceController(db)
	app.Get("/balances/savings", ctl.Savings)
	app.Get("/balances/savings/:student_id", ctl.StudentSavings)
	app.Get("/monitoring/payments", ctl.MonthlyPaymentStatus)
	app.Get("/monitoring/top-savers", ctl.TopSavers)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s status = %d, mau 200", path, resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return body
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data bukan object: %v", body["data"])
	}
	return data
}

func TestSavings_NonStaffGetsZero(t *testing.T) {
	db := newTestDB(t)
	ahmad := seedSantri(t, db, "ahmad")
	seedDeposit(t, db, ahmad, 100000)

	if got := dataMap(t, getJSON(t, newApp(db, constants.RoleKomite, uuid.New()), "/balances/savings"))["balance"].(float64); got != 100000 {
		t.Fatalf("saldo untuk komite = %v, mau 100000", got)
	}
	for _, role := range []string{constants.RoleSantri, constants.RoleGuru} {
		if got := dataMap(t, getJSON(t, newApp(db, role, ahmad), "/balances/savings"))["balance"].(float64); got != 0 {
			t.Fatalf("saldo lembaga untuk %s = %v, mau 0", role, got)
		}
	}
}

func TestStudentSavings_SantriSeesOnlyOwn(t *testing.T) {
	db := newTestDB(t)
	ahmad := seedSantri(t, db, "ahmad")
	budi := seedSantri(t, db, "budi")
	seedDeposit(t, db, ahmad, 100000)
	seedDeposit(t, db, budi, 30000)

	app := newApp(db, constants.RoleSantri, ahmad)
	if got := dataMap(t, getJSON(t, app, "/balances/savings/"+ahmad.String()))["balance"].(float64); got != 100000 {
		t.Fatalf("saldo sendiri = %v, mau 100000", got)
	}
	if got := dataMap(t, getJSON(t, app, "/balances/savings/"+budi.String()))["balance"].(float64); got != 0 {
		t.Fatalf("saldo santri lain = %v, mau 0", got)
	}

	// staf tetap bisa melihat semua santri
	staff := newApp(db, constants.RoleAdmin, uuid.New())
	if got := dataMap(t, getJSON(t, staff, "/balances/savings/"+budi.String()))["balance"].(float64); got != 30000 {
		t.Fatalf("saldo budi untuk admin = %v, mau 30000", got)
	}
}

func TestMonitoring_NonStaffGetsEmpty(t *testing.T) {
	db := newTestDB(t)
	ahmad := seedSantri(t, db, "ahmad")
	seedDeposit(t, db, ahmad, 100000)

	santri := newApp(db, constants.RoleSantri, ahmad)

	body := getJSON(t, santri, "/monitoring/payments?year=2025")
	if students := dataMap(t, body)["students"].([]any); len(students) != 0 {
		t.Fatalf("grid untuk santri = %d baris, mau kosong", len(students))
	}
	if savers := getJSON(t, santri, "/monitoring/top-savers")["data"].([]any); len(savers) != 0 {
		t.Fatalf("top savers untuk santri = %d baris, mau kosong", len(savers))
	}

	staff := newApp(db, constants.RoleKomite, uuid.New())
	body = getJSON(t, staff, "/monitoring/payments?year=2025")
	if students := dataMap(t, body)["students"].([]any); len(students) != 1 {
		t.Fatalf("grid untuk komite = %d baris, mau 1", len(students))
	}
	if savers := getJSON(t, staff, "/monitoring/top-savers")["data"].([]any); len(savers) != 1 {
		t.Fatalf("top savers untuk komite = %d baris, mau 1", len(savers))
	}
}
