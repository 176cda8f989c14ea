package services

// 分页约定：页码从 1 起始，越界的切片直接返回空，不视为错误。

const (
	defaultPage  = 1
	defaultLimit = 10
)

// paginate 返回 [(page-1)*limit, page*limit) 区间的切片。
func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// totalPages 计算 ceil(n/limit)；n 为过滤后的数量而非全量。
func totalPages(n, limit int) int {
	return (n + limit - 1) / limit
}

func normalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}
