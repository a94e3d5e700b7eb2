// file: internals/features/finance/balances/dto/balance_dto.go
package dto

import (
	"github.com/google/uuid"

	service "keuangan_rqm_backend/internals/features/finance/balances/service"
)

type BalanceDTO struct {
	Balance   int64  `json:"balance"`
	Formatted string `json:"formatted"`
}

type StudentBalanceDTO struct {
	StudentID uuid.UUID `json:"student_id"`
	Balance   int64     `json:"balance"`
	Formatted string    `json:"formatted"`
}

type TopSaverDTO struct {
	Rank        int       `json:"rank"`
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Balance     int64     `json:"balance"`
}

func TopSaversFromService(xs []service.TopSaver) []TopSaverDTO {
	out := make([]TopSaverDTO, 0, len(xs))
	for i, it := range xs {
		out = append(out, TopSaverDTO{
			Rank:        i + 1,
			StudentID:   it.StudentID,
			StudentName: it.StudentName,
			Balance:     it.Balance,
		})
	}
	return out
}

type MonthlyStatusRowDTO struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Spp         [12]bool  `json:"spp"`
	Kas         [12]bool  `json:"kas"`
	Installment bool      `json:"installment"`
}

func MonthlyStatusFromService(xs []service.StudentPaymentStatus) []MonthlyStatusRowDTO {
	out := make([]MonthlyStatusRowDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, MonthlyStatusRowDTO{
			StudentID:   it.StudentID,
			StudentName: it.StudentName,
			Spp:         it.Spp,
			Kas:         it.Kas,
			Installment: it.Installment,
		})
	}
	return out
}
