package dto

// PaginatedResponse wraps any list endpoint's page of results.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginatedResponse creates a paginated response
func NewPaginatedResponse[T any](data []T, total, page, pageSize int) *PaginatedResponse[T] {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ListResponse is the limit/offset shape used by the user collection.
type ListResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}
