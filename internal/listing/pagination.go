package listing

import (
	"fmt"
	"strconv"
)

// windowSize is how many numbered page links the control shows at most.
const windowSize = 5

// PageItem is one entry in the pagination control. The active page's item is
// rendered inert: it carries no disabled marker but clicking it is a no-op.
type PageItem struct {
	Label    string
	Page     int
	Disabled bool
	Active   bool
}

// Window builds the pagination control for the given zero-based current page:
// first / previous / up to five numbered links centered on the current page /
// next / last. The numbered window is clamped so it never starts before page
// zero or extends past the last page. An out-of-range current page yields a
// window against the real page range rather than mutating the page itself.
func Window(page, totalPages int) []PageItem {
	atFirst := page == 0
	atLast := page >= totalPages-1 // also true when totalPages == 0

	items := make([]PageItem, 0, windowSize+4)
	items = append(items,
		PageItem{Label: "«", Page: 0, Disabled: atFirst},
		PageItem{Label: "‹", Page: max(0, page-1), Disabled: atFirst},
	)

	start := max(0, page-windowSize/2)
	end := min(totalPages-1, start+windowSize-1)
	realStart := max(0, min(start, max(0, totalPages-windowSize)))
	for p := realStart; p <= end; p++ {
		items = append(items, PageItem{
			Label:  strconv.Itoa(p + 1), // display is 1-based
			Page:   p,
			Active: p == page,
		})
	}

	items = append(items,
		PageItem{Label: "›", Page: min(totalPages-1, page+1), Disabled: atLast},
		PageItem{Label: "»", Page: max(0, totalPages-1), Disabled: atLast},
	)
	return items
}

// ClampPage bounds a target page to [0, totalPages-1] (or 0 when there are
// no pages). Page navigation clamps instead of resetting to the first page.
func ClampPage(page, totalPages int) int {
	last := max(0, totalPages-1)
	return min(max(0, page), last)
}

// TotalPagesFor derives the page count from an element count, ceil(n/s).
func TotalPagesFor(totalElements, size int) int {
	if size <= 0 {
		return 0
	}
	return (totalElements + size - 1) / size
}

// Summary renders the "Showing X-Y of N customers" line under the table.
func Summary(page, size, totalElements int) string {
	start := 0
	if totalElements > 0 {
		start = page*size + 1
	}
	end := min((page+1)*size, totalElements)
	return fmt.Sprintf("Showing %d-%d of %d customers. Use the search above to refine results.", start, end, totalElements)
}
