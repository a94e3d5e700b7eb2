// file: internals/features/finance/transactions/service/errors.go
package service

import (
	"errors"
	"fmt"

	helper "keuangan_rqm_backend/internals/helpers"
)

// Error validasi pembuatan transaksi. Pesan dipakai apa adanya di UI,
// jadi ditulis dalam bahasa Indonesia.
var (
	ErrInvalidCategory = errors.New("Kategori tidak ditemukan atau sudah tidak aktif")
	ErrInvalidAmount   = errors.New("Nominal harus lebih dari 0")
	ErrMissingStudent  = errors.New("Kategori ini membutuhkan data santri")
	ErrMissingTeacher  = errors.New("Kategori ini membutuhkan data guru")
	ErrTxConflict      = errors.New("Pencatatan bentrok dengan transaksi lain, silakan coba lagi")
)

// DuplicateMonthlyPaymentError: sudah ada pembayaran SPP/Kas untuk santri
// tersebut di bulan yang sama.
type DuplicateMonthlyPaymentError struct {
	Label string // "SPP" atau "Kas"
}

func (e *DuplicateMonthlyPaymentError) Error() string {
	if e.Label == "SPP" {
		return "Pembayaran SPP untuk bulan ini sudah tercatat. " +
			"Gunakan fitur cicilan jika santri membayar bertahap."
	}
	return fmt.Sprintf("Pembayaran %s untuk bulan ini sudah tercatat.", e.Label)
}

// InsufficientSavingsError: penarikan melebihi saldo tabungan santri.
type InsufficientSavingsError struct {
	Current int64
}

func (e *InsufficientSavingsError) Error() string {
	return fmt.Sprintf("Saldo tabungan tidak mencukupi. Saldo saat ini: %s",
		helper.FormatRupiah(e.Current))
}
