package dtos

// PaginationInfo is the server-reported position of a page.
type PaginationInfo struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Page is the list envelope: {items, page, size, totalElements, totalPages}.
type Page[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Info returns the pagination part of the page.
func (p *Page[T]) Info() PaginationInfo {
	return PaginationInfo{
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// SinglePage wraps an unpaginated collection as one page.
// An empty collection reports zero pages.
func SinglePage[T any](items []T) *Page[T] {
	totalPages := 0
	if len(items) > 0 {
		totalPages = 1
	}
	return &Page[T]{
		Items:         items,
		Page:          0,
		Size:          len(items),
		TotalElements: len(items),
		TotalPages:    totalPages,
	}
}

// TotalPagesFor computes ceil(total/size); size <= 0 yields 0.
func TotalPagesFor(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
