package pagination

// Meta contains metadata about paginated results.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates pagination metadata from a page state and total count.
func NewMeta(p PageState, totalCount int) Meta {
	currentPage := p.Page
	if currentPage < MinPage {
		currentPage = MinPage
	}

	totalPages := TotalPages(totalCount, p.PageSize)

	return Meta{
		CurrentPage: currentPage,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

// FirstItem returns the 1-based position of the first item on the page, or 0
// when the page is empty.
func (m Meta) FirstItem() int {
	if m.TotalItems == 0 || m.PageSize <= 0 {
		return 0
	}
	first := (m.CurrentPage-1)*m.PageSize + 1
	if first > m.TotalItems {
		return 0
	}
	return first
}

// LastItem returns the 1-based position of the last item on the page, or 0
// when the page is empty.
func (m Meta) LastItem() int {
	first := m.FirstItem()
	if first == 0 {
		return 0
	}
	return min(first+m.PageSize-1, m.TotalItems)
}
