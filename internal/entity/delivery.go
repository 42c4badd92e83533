package entity

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DeliveryStatus 投递状态
type DeliveryStatus int

const (
	DeliveryStatusWaiting  DeliveryStatus = 1
	DeliveryStatusRejected DeliveryStatus = 2
	DeliveryStatusAccepted DeliveryStatus = 3
)

// Valid reports whether s is one of the known statuses.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusWaiting, DeliveryStatusRejected, DeliveryStatusAccepted:
		return true
	}
	return false
}

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusWaiting:
		return "waiting"
	case DeliveryStatusRejected:
		return "rejected"
	case DeliveryStatusAccepted:
		return "accepted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DbDelivery 简历投递记录。
//
// JobID 和 UserID 在关联记录删除后置空，投递记录保留。CompanyID 是冗余字段，不带外键。
// 关联的用户和职位不会自动加载，需要调用方通过 GetUserByID / GetJobByID 显式获取。
type DbDelivery struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID     *uint          `gorm:"column:job_id;index" json:"job_id"`
	Job       *DbJob         `gorm:"foreignKey:JobID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	UserID    *uint          `gorm:"column:user_id;index" json:"user_id"`
	User      *DbUser        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	CompanyID uint           `gorm:"column:company_id;index" json:"company_id"`
	Status    DeliveryStatus `gorm:"column:status;type:smallint;not null;default:1" json:"status" validate:"oneof=1 2 3"`
	Response  string         `gorm:"column:response;type:varchar(256)" json:"response" validate:"max=256"`
}

// TableName 指定表名
func (DbDelivery) TableName() string {
	return "delivery"
}

// Validate checks column-level constraints only.
func (d *DbDelivery) Validate() error {
	return validateRecord(d.TableName(), d)
}

// BeforeCreate 新投递默认处于等待状态
func (d *DbDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.Status == 0 {
		d.Status = DeliveryStatusWaiting
	}
	return d.Validate()
}

// DeliveryQuery 投递记录筛选条件，零值字段不参与过滤。
type DeliveryQuery struct {
	BaseParams
	JobID     uint           `json:"job_id" form:"job_id" query:"job_id"`
	UserID    uint           `json:"user_id" form:"user_id" query:"user_id"`
	CompanyID uint           `json:"company_id" form:"company_id" query:"company_id"`
	Status    DeliveryStatus `json:"status" form:"status" query:"status"`
}
