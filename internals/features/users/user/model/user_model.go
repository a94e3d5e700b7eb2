// file: internals/features/users/user/model/user_model.go
package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel merepresentasikan tabel users di database.
// Santri, guru, komite, dan admin semuanya disimpan di tabel ini,
// dibedakan lewat user_role.
type UserModel struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserName     string    `json:"user_name" gorm:"column:user_name;size:100;not null" validate:"required,min=3,max=100"`
	UserUsername string    `json:"user_username" gorm:"column:user_username;size:50;not null;uniqueIndex:uq_users_username_alive,where:user_deleted_at IS NULL" validate:"required,min=3,max=50"`
	UserPassword string    `json:"-" gorm:"column:user_password;not null" validate:"required,min=6"`
	UserRole     string    `json:"user_role" gorm:"column:user_role;type:varchar(10);not null;default:'SANTRI'" validate:"required,oneof=ADMIN KOMITE SANTRI GURU"`

	// khusus santri
	UserHalaqahID  *uuid.UUID `json:"user_halaqah_id,omitempty" gorm:"column:user_halaqah_id;type:uuid"`
	UserShiftID    *uuid.UUID `json:"user_shift_id,omitempty" gorm:"column:user_shift_id;type:uuid"`
	UserParentName *string    `json:"user_parent_name,omitempty" gorm:"column:user_parent_name;type:text"`

	// khusus guru
	UserSubject *string `json:"user_subject,omitempty" gorm:"column:user_subject;type:text"`

	UserIsActive bool `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }

// BeforeCreate memastikan PK terisi walau DB tidak punya gen_random_uuid()
// (mis. SQLite saat test).
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

func (u *UserModel) IsSantri() bool { return u.UserRole == constants.RoleSantri }
func (u *UserModel) IsGuru() bool   { return u.UserRole == constants.RoleGuru }

// Validate memeriksa apakah input sesuai aturan yang telah didefinisikan
func (u *UserModel) Validate() error {
	if u.UserRole == "" {
		u.UserRole = constants.RoleSantri
	}
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError mengubah error validasi menjadi pesan yang lebih jelas
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msg := ""
	for _, fieldErr := range validationErrs {
		if msg != "" {
			msg += "; "
		}
		switch fieldErr.Tag() {
		case "required":
			msg += fieldErr.Field() + " wajib diisi."
		case "min":
			msg += fieldErr.Field() + " minimal " + fieldErr.Param() + " karakter."
		case "max":
			msg += fieldErr.Field() + " maksimal " + fieldErr.Param() + " karakter."
		case "oneof":
			msg += fieldErr.Field() + " harus salah satu dari: " + fieldErr.Param() + "."
		default:
			msg += fieldErr.Field() + " tidak valid."
		}
	}
	return errors.New(msg)
}
