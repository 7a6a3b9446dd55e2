package dto

// Pagination - блок пагинации в ответах списков
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination считает totalPages = ceil(total/limit).
// Страница за пределами totalPages дает пустой список с честными totals.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 200
)

// NormalizePageLimit приводит параметры страницы к безопасным значениям
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
