package utils

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetPaginationParams resolves optional offset/limit query values into
// concrete pagination bounds. Nil or invalid values fall back to the
// defaults, and the limit is clamped to the maximum page size.
func GetPaginationParams(offset, limit *int) (int, int) {
	resolvedOffset := 0
	if offset != nil && *offset >= 0 {
		resolvedOffset = *offset
	}

	resolvedLimit := defaultPageSize
	if limit != nil && *limit > 0 {
		resolvedLimit = min(*limit, maxPageSize)
	}

	return resolvedOffset, resolvedLimit
}
