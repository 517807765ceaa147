package flight

// ViewState is the caller's current filter, sort and page selection. It is a
// value: every change returns a new ViewState.
type ViewState struct {
	Filters ActiveFilters `json:"filters"`
	SortKey SortKey       `json:"sort_key"`
	Page    int           `json:"page"`
}

func NewViewState(key SortKey) ViewState {
	return ViewState{SortKey: ParseSortKey(string(key)), Page: 1}
}

// WithFilters replaces the filters and goes back to the first page.
func (v ViewState) WithFilters(f ActiveFilters) ViewState {
	v.Filters = f.clone()
	v.Page = 1
	return v
}

// WithSort replaces the sort key and keeps the page.
func (v ViewState) WithSort(key SortKey) ViewState {
	v.Filters = v.Filters.clone()
	v.SortKey = ParseSortKey(string(key))
	return v
}

type RefineResult struct {
	Items []Flight  `json:"items"`
	Meta  PageMeta  `json:"meta"`
	View  ViewState `json:"view"`
}

// Refine runs Filter, Sort and Paginate in that order over the full result
// list. requestedPage outside the available range leaves view.Page in place;
// pass 0 to render the current page.
func Refine(flights []Flight, view ViewState, requestedPage int) RefineResult {
	filtered := Filter(flights, view.Filters)
	sorted := Sort(filtered, view.SortKey)
	items, meta := Paginate(sorted, view.Page, requestedPage)

	next := view
	next.Filters = view.Filters.clone()
	next.SortKey = ParseSortKey(string(view.SortKey))
	next.Page = meta.CurrentPage

	return RefineResult{Items: items, Meta: meta, View: next}
}
