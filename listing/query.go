package listing

// PageSizes are the page-size choices offered by every listing.
var PageSizes = []int{10, 20, 50}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter is one entity-specific filter (status, category_id, team_id,
// role). Order is preserved so encoded requests stay deterministic.
type Filter struct {
	Key   string
	Value string
}

// Query is the full query state of one listing: pagination, sorting, free
// text search and entity-specific filters.
type Query struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
	Filters   []Filter
}

// Filter returns the value for key, or "".
func (q Query) Filter(key string) string {
	for _, f := range q.Filters {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func (q Query) withFilter(key, value string) Query {
	filters := make([]Filter, len(q.Filters))
	copy(filters, q.Filters)
	q.Filters = filters
	for i := range q.Filters {
		if q.Filters[i].Key == key {
			q.Filters[i].Value = value
			return q
		}
	}
	q.Filters = append(q.Filters, Filter{Key: key, Value: value})
	return q
}
