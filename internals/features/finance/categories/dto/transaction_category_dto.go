// file: internals/features/finance/categories/dto/transaction_category_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "keuangan_rqm_backend/internals/features/finance/categories/model"
	service "keuangan_rqm_backend/internals/features/finance/categories/service"
)

/* =========================================================
   Response DTO
========================================================= */

type TransactionCategoryDTO struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Type             string    `json:"type"` // INCOME | EXPENSE
	Kind             string    `json:"kind"`
	IsActive         bool      `json:"is_active"`
	RequiresHandover *bool     `json:"requires_handover,omitempty"`
	DefaultAmount    *int64    `json:"default_amount,omitempty"`
	ShowToKomite     bool      `json:"show_to_komite"`
	ShowToAdmin      bool      `json:"show_to_admin"`
	IsSystem         bool      `json:"is_system"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromModel(g m.TransactionCategoryModel) TransactionCategoryDTO {
	return TransactionCategoryDTO{
		ID:               g.TransactionCategoryID,
		Code:             g.TransactionCategoryCode,
		Name:             g.TransactionCategoryName,
		Type:             string(g.TransactionCategoryType),
		Kind:             g.TransactionCategoryKind,
		IsActive:         g.TransactionCategoryIsActive,
		RequiresHandover: g.TransactionCategoryRequiresHandover,
		DefaultAmount:    g.TransactionCategoryDefaultAmount,
		ShowToKomite:     g.TransactionCategoryShowToKomite,
		ShowToAdmin:      g.TransactionCategoryShowToAdmin,
		IsSystem:         g.TransactionCategoryIsSystem,
		CreatedAt:        g.TransactionCategoryCreatedAt,
		UpdatedAt:        g.TransactionCategoryUpdatedAt,
	}
}

func FromModelSlice(xs []m.TransactionCategoryModel) []TransactionCategoryDTO {
	out := make([]TransactionCategoryDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromModel(it))
	}
	return out
}

/* =========================================================
   Create Request
========================================================= */

type CreateTransactionCategoryRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"` // INCOME | EXPENSE

	// Opsional; kalau kosong di-resolve dari kode/nama/tipe
	Kind *string `json:"kind,omitempty"`

	IsActive         *bool  `json:"is_active,omitempty"` // default true
	RequiresHandover *bool  `json:"requires_handover,omitempty"`
	DefaultAmount    *int64 `json:"default_amount,omitempty"`
	ShowToKomite     *bool  `json:"show_to_komite,omitempty"` // default true
	ShowToAdmin      *bool  `json:"show_to_admin,omitempty"`  // default true
}

func (r CreateTransactionCategoryRequest) ToModel() m.TransactionCategoryModel {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	showKomite := true
	if r.ShowToKomite != nil {
		showKomite = *r.ShowToKomite
	}
	showAdmin := true
	if r.ShowToAdmin != nil {
		showAdmin = *r.ShowToAdmin
	}

	catType := m.TransactionCategoryType(r.Type)

	kind := ""
	if r.Kind != nil && *r.Kind != "" {
		kind = *r.Kind
	} else {
		kind = string(service.ResolveKind(r.Code, r.Name, catType))
	}

	return m.TransactionCategoryModel{
		TransactionCategoryCode:             r.Code,
		TransactionCategoryName:             r.Name,
		TransactionCategoryType:             catType,
		TransactionCategoryKind:             kind,
		TransactionCategoryIsActive:         isActive,
		TransactionCategoryRequiresHandover: r.RequiresHandover,
		TransactionCategoryDefaultAmount:    r.DefaultAmount,
		TransactionCategoryShowToKomite:     showKomite,
		TransactionCategoryShowToAdmin:      showAdmin,
	}
}

/* =========================================================
   Patch Request (code & kind tidak bisa diganti)
========================================================= */

type PatchTransactionCategoryRequest struct {
	Name             *string `json:"name,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	RequiresHandover *bool   `json:"requires_handover,omitempty"`
	DefaultAmount    *int64  `json:"default_amount,omitempty"`
	ShowToKomite     *bool   `json:"show_to_komite,omitempty"`
	ShowToAdmin      *bool   `json:"show_to_admin,omitempty"`
}

func (r PatchTransactionCategoryRequest) ApplyPatch(rec *m.TransactionCategoryModel) {
	if r.Name != nil {
		rec.TransactionCategoryName = *r.Name
	}
	if r.IsActive != nil {
		rec.TransactionCategoryIsActive = *r.IsActive
	}
	if r.RequiresHandover != nil {
		rec.TransactionCategoryRequiresHandover = r.RequiresHandover
	}
	if r.DefaultAmount != nil {
		rec.TransactionCategoryDefaultAmount = r.DefaultAmount
	}
	if r.ShowToKomite != nil {
		rec.TransactionCategoryShowToKomite = *r.ShowToKomite
	}
	if r.ShowToAdmin != nil {
		rec.TransactionCategoryShowToAdmin = *r.ShowToAdmin
	}
}
