// Package pagination - расчёты для элементов управления страницами.
// Pages are zero-based; item positions shown to the user are one-based.
package pagination

import "fmt"

// Ограничения размера страницы.
const (
	DefaultPageSize   = 10
	MinPageSize       = 1
	MaxPageSize       = 100
	DefaultPageIndex  = 0
	DefaultMaxVisible = 5
)

// StartIndex returns the one-based number of the first item on page.
func StartIndex(page, size int) int {
	return page*size + 1
}

// EndIndex returns the one-based number of the last item on page.
func EndIndex(page, size, totalElements int) int {
	return min((page+1)*size, totalElements)
}

// ShouldShow reports whether paging controls are needed.
func ShouldShow(totalPages int) bool {
	return totalPages > 1
}

// PageRange returns up to maxVisible page indexes around current, shifted
// left near the end so the window stays full when possible.
//
//	PageRange(2, 10, 5) // [0 1 2 3 4]
//	PageRange(8, 10, 5) // [5 6 7 8 9]
func PageRange(current, totalPages, maxVisible int) []int {
	if maxVisible <= 0 || totalPages <= 0 {
		return []int{}
	}

	half := maxVisible / 2
	start := max(0, current-half)
	end := min(totalPages, start+maxVisible)
	if end-start < maxVisible {
		start = max(0, end-maxVisible)
	}

	pages := make([]int, 0, end-start)
	for p := start; p < end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// FormatInfo renders "Showing 1-10 of 25"; zero items give "Showing 0-0 of 0".
func FormatInfo(page, size, totalElements int) string {
	if totalElements == 0 {
		return "Showing 0-0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", StartIndex(page, size), EndIndex(page, size, totalElements), totalElements)
}

// FormatPage renders "Page 1 of 3" for a zero-based page.
func FormatPage(page, totalPages int) string {
	return fmt.Sprintf("Page %d of %d", page+1, totalPages)
}

// ClampSize keeps size within MinPageSize..MaxPageSize; zero or less means DefaultPageSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}
