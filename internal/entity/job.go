package entity

import (
	"time"

	"gorm.io/gorm"
)

// DbJob 职位，归属于唯一的企业；企业删除时级联删除。
type DbJob struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"column:jobname;type:varchar(64);not null" json:"jobname" validate:"required,max=64"`
	SalaryMin   int    `gorm:"column:salary_min" json:"salary_min"`
	SalaryMax   int    `gorm:"column:salary_max" json:"salary_max"`
	Experience  int    `gorm:"column:experience" json:"experience"`
	Degree      string `gorm:"column:degree;type:varchar(64)" json:"degree" validate:"max=64"`
	Location    string `gorm:"column:location;type:varchar(64)" json:"location" validate:"max=64"`
	Tag         string `gorm:"column:job_tag;type:varchar(64)" json:"job_tag" validate:"max=64"`
	Description string `gorm:"column:job_description;type:varchar(256)" json:"job_description" validate:"max=256"`
	Requirement string `gorm:"column:job_requirement;type:varchar(256)" json:"job_requirement" validate:"max=256"`
	Online      bool   `gorm:"column:online;not null" json:"online"`

	CompanyID uint `gorm:"column:company_id;index;not null" json:"company_id" validate:"required"`
	// Company 仅用于声明外键约束。
	Company *DbCompanyDetail `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// TableName 指定表名
func (DbJob) TableName() string {
	return "job"
}

// Validate checks column-level constraints only.
func (j *DbJob) Validate() error {
	return validateRecord(j.TableName(), j)
}

// BeforeCreate 插入前校验字段
func (j *DbJob) BeforeCreate(tx *gorm.DB) error {
	return j.Validate()
}

// JobQuery supports listing jobs with pagination.
type JobQuery struct {
	BaseParams
	CompanyID  uint   `json:"company_id" form:"company_id" query:"company_id"`
	OnlineOnly bool   `json:"online_only" form:"online_only" query:"online_only"`
	Keyword    string `json:"keyword" form:"keyword" query:"keyword"`
}
