// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "keuangan_rqm_backend/internals/features/users/user/model"
)

/* =========================================================
   Response DTO
========================================================= */

type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	HalaqahID  *uuid.UUID `json:"halaqah_id,omitempty"`
	ShiftID    *uuid.UUID `json:"shift_id,omitempty"`
	ParentName *string    `json:"parent_name,omitempty"`
	Subject    *string    `json:"subject,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromModel(u m.UserModel) UserDTO {
	return UserDTO{
		ID:         u.UserID,
		Name:       u.UserName,
		Username:   u.UserUsername,
		Role:       u.UserRole,
		HalaqahID:  u.UserHalaqahID,
		ShiftID:    u.UserShiftID,
		ParentName: u.UserParentName,
		Subject:    u.UserSubject,
		IsActive:   u.UserIsActive,
		CreatedAt:  u.UserCreatedAt,
		UpdatedAt:  u.UserUpdatedAt,
	}
}

func FromModelSlice(xs []m.UserModel) []UserDTO {
	out := make([]UserDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromModel(it))
	}
	return out
}

/* =========================================================
   Create Request
========================================================= */

type CreateUserRequest struct {
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	Role       string     `json:"role"` // ADMIN | KOMITE | SANTRI | GURU
	HalaqahID  *uuid.UUID `json:"halaqah_id,omitempty"`
	ShiftID    *uuid.UUID `json:"shift_id,omitempty"`
	ParentName *string    `json:"parent_name,omitempty"`
	Subject    *string    `json:"subject,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"` // default true
}

func (r CreateUserRequest) ToModel(hashedPassword string) m.UserModel {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return m.UserModel{
		UserName:       r.Name,
		UserUsername:   r.Username,
		UserPassword:   hashedPassword,
		UserRole:       r.Role,
		UserHalaqahID:  r.HalaqahID,
		UserShiftID:    r.ShiftID,
		UserParentName: r.ParentName,
		UserSubject:    r.Subject,
		UserIsActive:   isActive,
	}
}

/* =========================================================
   Patch Request
========================================================= */

type PatchUserRequest struct {
	Name       *string    `json:"name,omitempty"`
	Role       *string    `json:"role,omitempty"`
	HalaqahID  *uuid.UUID `json:"halaqah_id,omitempty"`
	ShiftID    *uuid.UUID `json:"shift_id,omitempty"`
	ParentName *string    `json:"parent_name,omitempty"`
	Subject    *string    `json:"subject,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

// ApplyPatch menerapkan field yang dikirim saja (username tidak bisa diganti)
func (r PatchUserRequest) ApplyPatch(u *m.UserModel) {
	if r.Name != nil {
		u.UserName = *r.Name
	}
	if r.Role != nil {
		u.UserRole = *r.Role
	}
	if r.HalaqahID != nil {
		u.UserHalaqahID = r.HalaqahID
	}
	if r.ShiftID != nil {
		u.UserShiftID = r.ShiftID
	}
	if r.ParentName != nil {
		u.UserParentName = r.ParentName
	}
	if r.Subject != nil {
		u.UserSubject = r.Subject
	}
	if r.IsActive != nil {
		u.UserIsActive = *r.IsActive
	}
}
