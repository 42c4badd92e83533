package entity

import (
	"fmt"
	"time"

	"jobplus/internal/auth"

	"gorm.io/gorm"
)

// UserRole 用户角色
type UserRole int

const (
	UserRoleNormal  UserRole = 10
	UserRoleCompany UserRole = 20
	UserRoleAdmin   UserRole = 30
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleNormal, UserRoleCompany, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string {
	switch r {
	case UserRoleNormal:
		return "normal"
	case UserRoleCompany:
		return "company"
	case UserRoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// DbUser represents a persisted account: job seeker, company owner or admin.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"column:username;type:varchar(32);index;not null" json:"username" validate:"required,max=32"`
	Email        string    `gorm:"column:email;type:varchar(64);uniqueIndex;not null" json:"email" validate:"required,max=64"`
	PasswordHash string    `gorm:"column:password;type:varchar(256);not null" json:"-" validate:"required,max=256"`
	Phone        string    `gorm:"column:phone;type:varchar(16)" json:"phone" validate:"max=16"`
	RealName     string    `gorm:"column:realname;type:varchar(64)" json:"realname" validate:"max=64"`
	Role         UserRole  `gorm:"column:role;type:smallint;index;not null;default:10" json:"role" validate:"oneof=10 20 30"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"is_active"`
	JobTitle     string    `gorm:"column:job;type:varchar(64)" json:"job" validate:"max=64"`
	ResumeURL    string    `gorm:"column:resume_url;type:varchar(255)" json:"resume_url" validate:"max=255"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "user"
}

// SetPassword stores a salted one-way hash of plain.
func (u *DbUser) SetPassword(plain string) error {
	hashed, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *DbUser) CheckPassword(plain string) bool {
	if u == nil {
		return false
	}
	return auth.CheckPassword(u.PasswordHash, plain)
}

func (u *DbUser) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

func (u *DbUser) IsCompany() bool {
	return u != nil && u.Role == UserRoleCompany
}

// Validate checks column-level constraints only.
func (u *DbUser) Validate() error {
	return validateRecord(u.TableName(), u)
}

// BeforeCreate 插入前补全默认角色并校验字段
func (u *DbUser) BeforeCreate(tx *gorm.DB) error {
	if u.Role == 0 {
		u.Role = UserRoleNormal
	}
	return u.Validate()
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Role       UserRole `json:"role" form:"role" query:"role"`
	Keyword    string   `json:"keyword" form:"keyword" query:"keyword"`
	ActiveOnly bool     `json:"active_only" form:"active_only" query:"active_only"`
}
