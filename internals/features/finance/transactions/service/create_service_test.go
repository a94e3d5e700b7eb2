// file: internals/features/finance/transactions/service/create_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"keuangan_rqm_backend/internals/constants"
	database "keuangan_rqm_backend/internals/databases"
	catModel "keuangan_rqm_backend/internals/features/finance/categories/model"
	catService "keuangan_rqm_backend/internals/features/finance/categories/service"
	instService "keuangan_rqm_backend/internals/features/finance/installments/service"
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
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	if err := database.SeedDefaultCategories(db); err != nil {
		t.Fatalf("seed kategori: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName:     name,
		UserUsername: name,
		UserPassword: "rahasia-test",
		UserRole:     role,
		UserIsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u.UserID
}

func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&m.TransactionModel{}).Count(&n).Error; err != nil {
		t.Fatalf("hitung transaksi: %v", err)
	}
	return n
}

func TestCreate_SppMonthlyUniqueness(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	santri := seedUser(t, db, "ahmad", constants.RoleSantri)
	ctx := context.Background()

	in := CreateInput{
		CategoryCode: catService.CodeSpp,
		Amount:       150000,
		Date:         time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		StudentID:    &santri,
		CreatorID:    admin,
		CreatorRole:  constants.RoleAdmin,
	}
	if _, err := Create(ctx, db, in); err != nil {
		t.Fatalf("SPP pertama harus sukses: %v", err)
	}

	// bulan yang sama → ditolak, dan tidak ada baris baru
	in.Date = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	_, err := Create(ctx, db, in)
	var dup *DuplicateMonthlyPaymentError
	if !errors.As(err, &dup) {
		t.Fatalf("SPP kedua di bulan sama harus duplikat, dapat: %v", err)
	}
	if dup.Label != "SPP" {
		t.Fatalf("label duplikat = %q, mau SPP", dup.Label)
	}
	if got := countTransactions(t, db); got != 1 {
		t.Fatalf("transaksi tersimpan = %d, mau 1", got)
	}

	// bulan berikutnya → sukses lagi
	in.Date = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if _, err := Create(ctx, db, in); err != nil {
		t.Fatalf("SPP bulan April harus sukses: %v", err)
	}
	if got := countTransactions(t, db); got != 2 {
		t.Fatalf("transaksi tersimpan = %d, mau 2", got)
	}
}

func TestCreate_SppInstallmentExemption(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	santri := seedUser(t, db, "budi", constants.RoleSantri)
	ctx := context.Background()

	if _, err := instService.Enable(ctx, db, santri, 150000); err != nil {
		t.Fatalf("aktifkan cicilan: %v", err)
	}

	in := CreateInput{
		CategoryCode: catService.CodeSpp,
		Amount:       50000,
		Date:         time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		StudentID:    &santri,
		CreatorID:    admin,
		CreatorRole:  constants.RoleAdmin,
	}
	if _, err := Create(ctx, db, in); err != nil {
		t.Fatalf("setoran cicilan pertama: %v", err)
	}
	// cicilan aktif → aturan satu-SPP-per-bulan dilewati
	in.Date = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	if _, err := Create(ctx, db, in); err != nil {
		t.Fatalf("setoran cicilan kedua di bulan sama harus boleh: %v", err)
	}
}

func TestCreate_KasMonthlyUniqueness(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	santri := seedUser(t, db, "citra", constants.RoleSantri)
	ctx := context.Background()

	// cicilan aktif TIDAK mengecualikan kas
	if _, err := instService.Enable(ctx, db, santri, 150000); err != nil {
		t.Fatalf("aktifkan cicilan: %v", err)
	}

	in := CreateInput{
		CategoryCode: catService.CodeKas,
		Amount:       10000,
		Date:         time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		StudentID:    &santri,
		CreatorID:    admin,
		CreatorRole:  constants.RoleAdmin,
	}
	if _, err := Create(ctx, db, in); err != nil {
		t.Fatalf("kas pertama: %v", err)
	}
	in.Date = time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
	_, err := Create(ctx, db, in)
	var dup *DuplicateMonthlyPaymentError
	if !errors.As(err, &dup) || dup.Label != "Kas" {
		t.Fatalf("kas kedua di bulan sama harus duplikat Kas, dapat: %v", err)
	}
}

func TestCreate_CategoryGuards(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	santri := seedUser(t, db, "dewi", constants.RoleSantri)
	guru := seedUser(t, db, "ustadz", constants.RoleGuru)
	ctx := context.Background()
	date := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{
			name: "kategori tidak dikenal",
			in: CreateInput{
				CategoryCode: "TIDAK_ADA", Amount: 10000, Date: date,
				CreatorID: admin, CreatorRole: constants.RoleAdmin,
			},
			wantErr: ErrInvalidCategory,
		},
		{
			name: "SPP tanpa santri",
			in: CreateInput{
				CategoryCode: catService.CodeSpp, Amount: 150000, Date: date,
				CreatorID: admin, CreatorRole: constants.RoleAdmin,
			},
			wantErr: ErrMissingStudent,
		},
		{
			name: "honor guru tanpa guru",
			in: CreateInput{
				CategoryCode: catService.CodeHonorGuru, Amount: 500000, Date: date,
				CreatorID: admin, CreatorRole: constants.RoleAdmin,
			},
			wantErr: ErrMissingTeacher,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(ctx, db, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, mau %v", err, tt.wantErr)
			}
		})
	}

	// honor guru dengan guru terpasang → sukses
	if _, err := Create(ctx, db, CreateInput{
		CategoryCode: catService.CodeHonorGuru, Amount: 500000, Date: date,
		TeacherID: &guru, CreatorID: admin, CreatorRole: constants.RoleAdmin,
	}); err != nil {
		t.Fatalf("honor guru valid: %v", err)
	}

	// kategori nonaktif diperlakukan seperti tidak ada
	if err := db.Model(&catModel.TransactionCategoryModel{}).
		Where("transaction_category_code = ?", catService.CodeKas).
		Update("transaction_category_is_active", false).Error; err != nil {
		t.Fatalf("nonaktifkan kategori: %v", err)
	}
	_, err := Create(ctx, db, CreateInput{
		CategoryCode: catService.CodeKas, Amount: 10000, Date: date,
		StudentID: &santri, CreatorID: admin, CreatorRole: constants.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("kategori nonaktif: err = %v, mau %v", err, ErrInvalidCategory)
	}
}

func TestCreate_DefaultAmountLock(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	ctx := context.Background()

	locked := int64(25000)
	cat := catModel.TransactionCategoryModel{
		TransactionCategoryCode:          "IURAN_UJIAN",
		TransactionCategoryName:          "Iuran Ujian Semester",
		TransactionCategoryType:          catModel.CategoryTypeIncome,
		TransactionCategoryKind:          string(catService.KindOtherIncome),
		TransactionCategoryIsActive:      true,
		TransactionCategoryDefaultAmount: &locked,
	}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed kategori: %v", err)
	}

	rec, err := Create(ctx, db, CreateInput{
		CategoryCode: "IURAN_UJIAN",
		Amount:       99, // diabaikan, nominal dikunci default_amount
		Date:         time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		CreatorID:    admin,
		CreatorRole:  constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.TransactionAmount != locked {
		t.Fatalf("amount = %d, mau %d (dikunci default_amount)", rec.TransactionAmount, locked)
	}
}

func TestCreate_SavingsWithdrawalGuard(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	santri := seedUser(t, db, "eka", constants.RoleSantri)
	ctx := context.Background()

	deposit := CreateInput{
		CategoryCode: catService.CodeTabungan,
		Amount:       100000,
		Date:         time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		StudentID:    &santri,
		CreatorID:    admin,
		CreatorRole:  constants.RoleAdmin,
	}
	if _, err := Create(ctx, db, deposit); err != nil {
		t.Fatalf("setoran tabungan: %v", err)
	}

	withdraw := deposit
	withdraw.CategoryCode = catService.CodePenarikanTabungan
	withdraw.Amount = 150000
	withdraw.Date = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

	_, err := Create(ctx, db, withdraw)
	var insufficient *InsufficientSavingsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("penarikan melebihi saldo harus ditolak, dapat: %v", err)
	}
	if insufficient.Current != 100000 {
		t.Fatalf("saldo di error = %d, mau 100000", insufficient.Current)
	}
	// penolakan tidak boleh menyisakan baris
	if got := countTransactions(t, db); got != 1 {
		t.Fatalf("transaksi tersimpan = %d, mau 1", got)
	}

	withdraw.Amount = 60000
	if _, err := Create(ctx, db, withdraw); err != nil {
		t.Fatalf("penarikan dalam batas saldo: %v", err)
	}
}

// Dua submit bersamaan untuk (santri, bulan) yang sama diserialisasi oleh
// isolasi SERIALIZABLE; yang kalah gagal commit dengan SQLSTATE 40001 dan
// harus dikenali supaya bisa dipetakan ke error duplikat.
func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlstate 40001",
			errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), true},
		{"pesan tanpa kode",
			errors.New("pq: could not serialize access due to read/write dependencies among transactions"), true},
		{"unique violation bukan konflik serialisasi",
			errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), false},
		{"error lain", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSerializationFailure(tt.err); got != tt.want {
				t.Fatalf("isSerializationFailure(%v) = %v, mau %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreate_HandoverDerivation(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	komite := seedUser(t, db, "komite", constants.RoleKomite)
	santriA := seedUser(t, db, "fajar", constants.RoleSantri)
	santriB := seedUser(t, db, "gita", constants.RoleSantri)
	ctx := context.Background()
	date := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	// Admin menerima kas fisik → PENDING
	rec, err := Create(ctx, db, CreateInput{
		CategoryCode: catService.CodeKas, Amount: 10000, Date: date,
		StudentID: &santriA, CreatorID: admin, CreatorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("kas admin: %v", err)
	}
	if !rec.TransactionIsHandover || rec.TransactionHandoverStatus != m.HandoverPending {
		t.Fatalf("kas admin: is_handover=%v status=%s, mau true/PENDING",
			rec.TransactionIsHandover, rec.TransactionHandoverStatus)
	}

	// Komite menerima sendiri → tidak ada serah terima
	rec, err = Create(ctx, db, CreateInput{
		CategoryCode: catService.CodeKas, Amount: 10000, Date: date,
		StudentID: &santriB, CreatorID: komite, CreatorRole: constants.RoleKomite,
	})
	if err != nil {
		t.Fatalf("kas komite: %v", err)
	}
	if rec.TransactionIsHandover || rec.TransactionHandoverStatus != m.HandoverNone {
		t.Fatalf("kas komite: is_handover=%v status=%s, mau false/NONE",
			rec.TransactionIsHandover, rec.TransactionHandoverStatus)
	}

	// SPP tidak wajib serah terima walau dicatat Admin
	rec, err = Create(ctx, db, CreateInput{
		CategoryCode: catService.CodeSpp, Amount: 150000, Date: date,
		StudentID: &santriA, CreatorID: admin, CreatorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("spp admin: %v", err)
	}
	if rec.TransactionIsHandover || rec.TransactionHandoverStatus != m.HandoverNone {
		t.Fatalf("spp admin: is_handover=%v status=%s, mau false/NONE",
			rec.TransactionIsHandover, rec.TransactionHandoverStatus)
	}
}
