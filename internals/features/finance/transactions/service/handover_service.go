// file: internals/features/finance/transactions/service/handover_service.go
package service

import (
	"context"

	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	m "keuangan_rqm_backend/internals/features/finance/transactions/model"
)

type HandoverResult struct {
	Count int64 `json:"count"`
	Total int64 `json:"total"`
}

// PerformHandover memindahkan SEMUA transaksi Admin yang masih PENDING ke
// COMPLETED dalam satu transaksi database (atomik dari sisi pemanggil).
// COMPLETED bersifat terminal dan tidak pernah dibalik.
func PerformHandover(ctx context.Context, db *gorm.DB) (*HandoverResult, error) {
	result := &HandoverResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&m.TransactionModel{}).
			Where("transaction_creator_role = ? AND transaction_handover_status = ?",
				constants.RoleAdmin, m.HandoverPending).
			Count(&result.Count).Error; err != nil {
			return err
		}
		if err := tx.Model(&m.TransactionModel{}).
			Where("transaction_creator_role = ? AND transaction_handover_status = ?",
				constants.RoleAdmin, m.HandoverPending).
			Select("COALESCE(SUM(transaction_amount), 0)").
			Scan(&result.Total).Error; err != nil {
			return err
		}
		if result.Count == 0 {
			return nil
		}

		return tx.Model(&m.TransactionModel{}).
			Where("transaction_creator_role = ? AND transaction_handover_status = ?",
				constants.RoleAdmin, m.HandoverPending).
			Update("transaction_handover_status", m.HandoverCompleted).Error
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}
