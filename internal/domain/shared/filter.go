package shared

// Default paging applied by Normalize
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Filter carries list options down to a repository. Filters holds exact
// matches keyed by column; their meaning is up to each repository.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is the first page ordered by creation time, newest first
func DefaultFilter() Filter {
	return Filter{OrderBy: "created_at", OrderDir: "desc"}.Normalize("", "")
}

// Normalize fills unset paging and ordering. orderBy and orderDir are used
// only when the filter has none.
func (f Filter) Normalize(orderBy, orderDir string) Filter {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = orderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = orderDir
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f
}

// Where adds an exact match, skipping empty strings
func (f *Filter) Where(key string, value any) {
	if s, ok := value.(string); ok && s == "" {
		return
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[key] = value
}

// Offset is the number of rows before the current page
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
