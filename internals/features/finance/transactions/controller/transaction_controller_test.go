// file: internals/features/finance/transactions/controller/transaction_controller_test.go
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
	m "keuangan_rqm_backend/internals/features/finance/transactions/model"
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
	if err := db.AutoMigrate(&userModel.UserModel{}, &m.TransactionModel{}); err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

func insertTx(t *testing.T, db *gorm.DB, code string, amount int64, studentID, teacherID *uuid.UUID) {
	t.Helper()
	rec := m.TransactionModel{
		TransactionType:        code,
		TransactionAmount:      amount,
		TransactionDate:        datatypes.Date(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
		TransactionStudentID:   studentID,
		TransactionTeacherID:   teacherID,
		TransactionCreatedBy:   uuid.New(),
		TransactionCreatorRole: constants.RoleKomite,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("insert transaksi: %v", err)
	}
}

func listAs(t *testing.T, db *gorm.DB, role string, userID uuid.UUID) []any {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	app.Get("/transactions", NewTransactionController(db).List)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/transactions", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rows, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("data bukan list: %v", body["data"])
	}
	return rows
}

func TestList_NonStaffScopedToOwnRows(t *testing.T) {
	db := newTestDB(t)
	ahmad := uuid.New()
	budi := uuid.New()
	guru := uuid.New()

	insertTx(t, db, "SPP", 150000, &ahmad, nil)
	insertTx(t, db, "KAS", 10000, &ahmad, nil)
	insertTx(t, db, "SPP", 150000, &budi, nil)
	insertTx(t, db, "HONOR_GURU", 500000, nil, &guru)

	if rows := listAs(t, db, constants.RoleKomite, uuid.New()); len(rows) != 4 {
		t.Fatalf("komite melihat %d baris, mau 4", len(rows))
	}
	if rows := listAs(t, db, constants.RoleSantri, ahmad); len(rows) != 2 {
		t.Fatalf("ahmad melihat %d baris, mau 2 (hanya miliknya)", len(rows))
	}
	if rows := listAs(t, db, constants.RoleSantri, budi); len(rows) != 1 {
		t.Fatalf("budi melihat %d baris, mau 1", len(rows))
	}
	if rows := listAs(t, db, constants.RoleGuru, guru); len(rows) != 1 {
		t.Fatalf("guru melihat %d baris, mau 1 (honornya sendiri)", len(rows))
	}
}
