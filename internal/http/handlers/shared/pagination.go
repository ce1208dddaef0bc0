package shared

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return NormalizePaginationWithin(page, pageSize, 1, 100, 20)
}

// NormalizePaginationWithin 归一化分页参数，并把每页条数收敛到给定区间。
func NormalizePaginationWithin(page, pageSize, minSize, maxSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize < minSize {
		pageSize = minSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
