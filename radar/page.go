package radar

// Page is one page of a paginated listing. It is replaced wholesale on
// every successful load, never patched.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

// PageCount returns the backend-reported total_pages, falling back to
// ceil(total/pageSize) when the field is absent from the response.
func (p Page[T]) PageCount() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
