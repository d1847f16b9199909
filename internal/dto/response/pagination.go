package response

type PaginatedResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func NewPaginatedResponse[T any](items []T, page, limit, total int) *PaginatedResponse[T] {
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	if items == nil {
		items = []T{}
	}
	return &PaginatedResponse[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: pages,
	}
}
