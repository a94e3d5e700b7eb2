// file: internals/helpers/format_test.go
package helper

import (
	"testing"
	"time"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{1500000, "Rp 1.500.000"},
		{1234567890, "Rp 1.234.567.890"},
		{-25000, "-Rp 25.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, mau %q", tt.amount, got, tt.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2025, time.March, 17, 13, 45, 0, 0, time.UTC))
	if !start.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}

	// Desember harus melewati pergantian tahun
	start, end = MonthRangeOf(2025, time.December)
	if !start.Equal(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)) ||
		!end.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Desember = [%v, %v)", start, end)
	}
}

func TestYearRange(t *testing.T) {
	start, end := YearRange(2025)
	if !start.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) ||
		!end.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("YearRange(2025) = [%v, %v)", start, end)
	}
}
