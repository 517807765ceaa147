package flight

const PageSize = 10

// PageMeta describes one rendered page. Item indexes are 1-based and both
// zero when there is nothing to show.
type PageMeta struct {
	CurrentPage    int `json:"current_page"`
	TotalPages     int `json:"total_pages"`
	FirstItemIndex int `json:"first_item_index"`
	LastItemIndex  int `json:"last_item_index"`
	TotalCount     int `json:"total_count"`
}

// Paginate slices one page out of flights. A requested page outside
// [1, totalPages] is ignored and currentPage is shown instead; currentPage
// itself is clamped into range.
func Paginate(flights []Flight, currentPage, requestedPage int) ([]Flight, PageMeta) {
	total := len(flights)
	totalPages := (total + PageSize - 1) / PageSize

	page := currentPage
	if requestedPage >= 1 && requestedPage <= totalPages {
		page = requestedPage
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	meta := PageMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
	if total == 0 {
		return []Flight{}, meta
	}

	start := (page - 1) * PageSize
	end := min(start+PageSize, total)

	meta.FirstItemIndex = start + 1
	meta.LastItemIndex = end

	items := make([]Flight, end-start)
	copy(items, flights[start:end])
	return items, meta
}
