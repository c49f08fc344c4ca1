package query

import (
	"sort"
	"strings"
	"time"

	"sales-service/internal/models"
)

// Sort returns a stably ordered copy of rows. Missing dates order before any
// valid date and missing numbers count as zero. SortNone, or any key Sort
// does not know, keeps the input order.
func Sort(rows []models.Transaction, by SortKey, order SortOrder) []models.Transaction {
	cmp := comparator(by)
	if cmp == nil {
		return rows
	}
	dir := 1
	if order == Desc {
		dir = -1
	}

	sorted := make([]models.Transaction, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(&sorted[i], &sorted[j])*dir < 0
	})
	return sorted
}

func comparator(by SortKey) func(a, b *models.Transaction) int {
	switch by {
	case SortByDate:
		return func(a, b *models.Transaction) int {
			return compareTime(dateOrZero(a.Date), dateOrZero(b.Date))
		}
	case SortByQuantity:
		return func(a, b *models.Transaction) int {
			return compareFloat(float64(intOrZero(a.Quantity)), float64(intOrZero(b.Quantity)))
		}
	case SortByFinalAmount:
		return func(a, b *models.Transaction) int {
			return compareFloat(floatOrZero(a.FinalAmount), floatOrZero(b.FinalAmount))
		}
	case SortByCustomerName:
		return func(a, b *models.Transaction) int {
			return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
		}
	}
	return nil
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return CalendarDate(*t)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
