package entity

import (
	"time"

	"gorm.io/gorm"
)

// DbCompanyDetail 企业详情，可选地一对一归属于某个用户。
// 用户被删除时 user_id 置空，企业本身保留。
type DbCompanyDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Logo             string `gorm:"column:logo;type:varchar(256);not null" json:"logo" validate:"required,max=256"`
	Site             string `gorm:"column:site;type:varchar(128);not null" json:"site" validate:"required,max=128"`
	Location         string `gorm:"column:location;type:varchar(24);not null" json:"location" validate:"required,max=24"`
	Description      string `gorm:"column:description;type:varchar(100)" json:"description" validate:"max=100"`
	About            string `gorm:"column:about;type:varchar(1024)" json:"about" validate:"max=1024"`
	Tags             string `gorm:"column:tags;type:varchar(128)" json:"tags" validate:"max=128"`
	Stack            string `gorm:"column:stack;type:varchar(128)" json:"stack" validate:"max=128"`
	TeamIntroduction string `gorm:"column:team_introduction;type:varchar(256)" json:"team_introduction" validate:"max=256"`
	Welfares         string `gorm:"column:welfares;type:varchar(256)" json:"welfares" validate:"max=256"`
	Field            string `gorm:"column:field;type:varchar(128)" json:"field" validate:"max=128"`
	FinanceStage     string `gorm:"column:finance_stage;type:varchar(128)" json:"finance_stage" validate:"max=128"`

	UserID *uint `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	// User 仅用于声明外键约束，读取时请通过仓库显式查询。
	User *DbUser `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
}

// TableName 指定表名
func (DbCompanyDetail) TableName() string {
	return "company"
}

// Validate checks column-level constraints only.
func (c *DbCompanyDetail) Validate() error {
	return validateRecord(c.TableName(), c)
}

// BeforeCreate 插入前校验字段
func (c *DbCompanyDetail) BeforeCreate(tx *gorm.DB) error {
	return c.Validate()
}

// CompanyQuery supports listing companies with pagination.
type CompanyQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}
