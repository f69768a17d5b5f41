package availability

import "strings"

// Filter selects a status bucket for books or loans.
type Filter string

const (
	FilterAll        Filter = ""
	FilterOverdue    Filter = "overdue"
	FilterCheckedOut Filter = "checked_out"
	FilterAvailable  Filter = "available"
)

// ParseFilter maps the ?filter= value. Unknown values mean "all".
func ParseFilter(raw string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterOverdue:
		return FilterOverdue
	case FilterCheckedOut:
		return FilterCheckedOut
	case FilterAvailable:
		return FilterAvailable
	default:
		return FilterAll
	}
}

func (f Filter) String() string {
	if f == FilterAll {
		return "all"
	}
	return string(f)
}
