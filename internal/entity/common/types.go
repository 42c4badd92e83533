package common

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Meta 包含分页元数据。
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// BaseParams 包含通用的分页和排序参数。
type BaseParams struct {
	PageSize int64  `json:"page_size" form:"page_size" query:"page_size"`
	Page     int64  `json:"page" form:"page" query:"page"`
	SortBy   string `json:"sort_by" form:"sort_by" query:"sort_by"`
	SortDesc bool   `json:"sort_desc" form:"sort_desc" query:"sort_desc"`
}

// Pagination 返回规范化后的页码和每页条数。
func (p BaseParams) Pagination() (page, pageSize int) {
	page = int(p.Page)
	if page <= 0 {
		page = 1
	}
	pageSize = int(p.PageSize)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset 返回当前页的起始偏移量。
func (p BaseParams) Offset() int {
	page, pageSize := p.Pagination()
	return (page - 1) * pageSize
}
