package query

import "sales-service/internal/models"

// Paginate slices one page out of rows. pageSize is clamped to
// [1, MaxPageSize] and an out of range page is moved to the nearest valid
// page rather than rejected. The returned items are copies.
func Paginate(rows []models.Transaction, page, pageSize int) models.PageResult {
	pageSize = ClampPageSize(pageSize)
	total := len(rows)

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]models.Transaction, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, rows[i].Clone())
	}

	return models.PageResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
