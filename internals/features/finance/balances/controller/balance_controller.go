// file: internals/features/finance/balances/controller/balance_controller.go
package controller

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	dto "keuangan_rqm_backend/internals/features/finance/balances/dto"
	service "keuangan_rqm_backend/internals/features/finance/balances/service"
	helper "keuangan_rqm_backend/internals/helpers"
)

/* =========================
   Controller

   Endpoint dashboard bersifat read-only dan tidak pernah melempar error
   ke UI: kalau query gagal, kembalikan nilai nol dan catat warning supaya
   degradasinya tetap terlihat di log.
========================= */

type BalanceController struct {
	DB *gorm.DB
}

func NewBalanceController(db *gorm.DB) *BalanceController {
	return &BalanceController{DB: db}
}

func balanceOrZero(what string, value int64, err error) int64 {
	if err != nil {
		log.Printf("[WARN] dashboard %s gagal dihitung, tampilkan 0: %v", what, err)
		return 0
	}
	return value
}

// isStaff: hanya admin/komite yang boleh melihat angka lembaga; role lain
// mendapat nol/kosong, bukan error.
func isStaff(role string) bool {
	return role == constants.RoleAdmin || role == constants.RoleKomite
}

/* =========================
   Saldo operasional
   GET /api/u/balances/operational
========================= */

func (ctl *BalanceController) Operational(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)

	value, err := service.OperationalBalance(ctl.DB.WithContext(c.Context()), role)
	value = balanceOrZero("saldo operasional", value, err)

	return helper.JsonOK(c, "OK", dto.BalanceDTO{
		Balance:   value,
		Formatted: helper.FormatRupiah(value),
	})
}

/* =========================
   Saldo tabungan lembaga
   GET /api/u/balances/savings
========================= */

func (ctl *BalanceController) Savings(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)

	var value int64
	if isStaff(role) {
		v, err := service.SavingsBalance(ctl.DB.WithContext(c.Context()))
		value = balanceOrZero("saldo tabungan", v, err)
	}

	return helper.JsonOK(c, "OK", dto.BalanceDTO{
		Balance:   value,
		Formatted: helper.FormatRupiah(value),
	})
}

/* =========================
   Saldo tabungan per santri
   GET /api/u/balances/savings/:student_id
========================= */

func (ctl *BalanceController) StudentSavings(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid UUID in path")
	}

	// santri hanya boleh melihat saldonya sendiri
	role, _ := c.Locals("userRole").(string)
	selfID, _ := c.Locals("user_id").(string)
	allowed := isStaff(role) ||
		(role == constants.RoleSantri && selfID == studentID.String())

	var value int64
	if allowed {
		v, qerr := service.StudentSavingsBalance(ctl.DB.WithContext(c.Context()), studentID)
		value = balanceOrZero("saldo tabungan santri", v, qerr)
	}

	return helper.JsonOK(c, "OK", dto.StudentBalanceDTO{
		StudentID: studentID,
		Balance:   value,
		Formatted: helper.FormatRupiah(value),
	})
}

/* =========================
   Dana tertahan di Admin
   GET /api/a/balances/pending
========================= */

func (ctl *BalanceController) PendingAtAdmin(c *fiber.Ctx) error {
	value, err := service.PendingAtAdmin(ctl.DB.WithContext(c.Context()))
	value = balanceOrZero("dana pending serah terima", value, err)

	return helper.JsonOK(c, "OK", dto.BalanceDTO{
		Balance:   value,
		Formatted: helper.FormatRupiah(value),
	})
}

/* =========================
   Grid monitoring pembayaran
   GET /api/u/monitoring/payments?year=
========================= */

func (ctl *BalanceController) MonthlyPaymentStatus(c *fiber.Ctx) error {
	year := time.Now().Year()
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "year tidak valid")
		}
		year = parsed
	}

	var rows []service.StudentPaymentStatus
	if role, _ := c.Locals("userRole").(string); isStaff(role) {
		var err error
		rows, err = service.MonthlyPaymentStatus(ctl.DB.WithContext(c.Context()), year)
		if err != nil {
			log.Printf("[WARN] grid monitoring %d gagal dihitung, tampilkan kosong: %v", year, err)
			rows = nil
		}
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"year":     year,
		"students": dto.MonthlyStatusFromService(rows),
	})
}

/* =========================
   Penabung teratas
   GET /api/u/monitoring/top-savers?limit=
========================= */

func (ctl *BalanceController) TopSavers(c *fiber.Ctx) error {
	limit := 10
	if limitStr := strings.TrimSpace(c.Query("limit")); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return helper.JsonError(c, fiber.StatusBadRequest, "limit tidak valid")
		}
		limit = parsed
	}

	var rows []service.TopSaver
	if role, _ := c.Locals("userRole").(string); isStaff(role) {
		var err error
		rows, err = service.TopSavers(ctl.DB.WithContext(c.Context()), limit)
		if err != nil {
			log.Printf("[WARN] top savers gagal dihitung, tampilkan kosong: %v", err)
			rows = nil
		}
	}

	return helper.JsonOK(c, "OK", dto.TopSaversFromService(rows))
}
