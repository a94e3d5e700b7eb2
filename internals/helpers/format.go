// file: internals/helpers/format.go
package helper

import "strconv"

// FormatRupiah menampilkan nominal dalam format "Rp 1.500.000".
// Nominal disimpan sebagai integer rupiah (tanpa sen).
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n > 3 {
		var b []byte
		for i, ch := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				b = append(b, '.')
			}
			b = append(b, ch)
		}
		s = string(b)
	}

	if neg {
		return "-Rp " + s
	}
	return "Rp " + s
}
