// file: internals/helpers/month.go
package helper

import "time"

// MonthRange mengembalikan [awal bulan, awal bulan berikutnya) untuk tanggal t.
// Batas atas eksklusif supaya aman dipakai di query `>= start AND < end`.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0)
	return start, end
}

// MonthRangeOf sama seperti MonthRange tetapi dari (tahun, bulan 1-12).
func MonthRangeOf(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end
}

// YearRange mengembalikan [1 Januari, 1 Januari tahun berikutnya).
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return start, end
}
