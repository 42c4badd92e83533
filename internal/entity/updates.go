package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Username     *string
	Phone        *string
	RealName     *string
	Role         *UserRole
	JobTitle     *string
	ResumeURL    *string
	PasswordHash *string
	IsActive     *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Username != nil {
		updates["username"] = *u.Username
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.RealName != nil {
		updates["realname"] = *u.RealName
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.JobTitle != nil {
		updates["job"] = *u.JobTitle
	}
	if u.ResumeURL != nil {
		updates["resume_url"] = *u.ResumeURL
	}
	if u.PasswordHash != nil {
		updates["password"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// CompanyUpdates 企业更新字段
type CompanyUpdates struct {
	Logo             *string
	Site             *string
	Location         *string
	Description      *string
	About            *string
	Tags             *string
	Stack            *string
	TeamIntroduction *string
	Welfares         *string
	Field            *string
	FinanceStage     *string
	// UserID 非 nil 时更新归属用户；指向 0 表示解除归属。
	UserID *uint
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u CompanyUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Logo != nil {
		updates["logo"] = *u.Logo
	}
	if u.Site != nil {
		updates["site"] = *u.Site
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.About != nil {
		updates["about"] = *u.About
	}
	if u.Tags != nil {
		updates["tags"] = *u.Tags
	}
	if u.Stack != nil {
		updates["stack"] = *u.Stack
	}
	if u.TeamIntroduction != nil {
		updates["team_introduction"] = *u.TeamIntroduction
	}
	if u.Welfares != nil {
		updates["welfares"] = *u.Welfares
	}
	if u.Field != nil {
		updates["field"] = *u.Field
	}
	if u.FinanceStage != nil {
		updates["finance_stage"] = *u.FinanceStage
	}
	if u.UserID != nil {
		if *u.UserID == 0 {
			updates["user_id"] = nil
		} else {
			updates["user_id"] = *u.UserID
		}
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u CompanyUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// JobUpdates 职位更新字段
type JobUpdates struct {
	Title       *string
	SalaryMin   *int
	SalaryMax   *int
	Experience  *int
	Degree      *string
	Location    *string
	Tag         *string
	Description *string
	Requirement *string
	Online      *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u JobUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["jobname"] = *u.Title
	}
	if u.SalaryMin != nil {
		updates["salary_min"] = *u.SalaryMin
	}
	if u.SalaryMax != nil {
		updates["salary_max"] = *u.SalaryMax
	}
	if u.Experience != nil {
		updates["experience"] = *u.Experience
	}
	if u.Degree != nil {
		updates["degree"] = *u.Degree
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	}
	if u.Tag != nil {
		updates["job_tag"] = *u.Tag
	}
	if u.Description != nil {
		updates["job_description"] = *u.Description
	}
	if u.Requirement != nil {
		updates["job_requirement"] = *u.Requirement
	}
	if u.Online != nil {
		updates["online"] = *u.Online
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u JobUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
