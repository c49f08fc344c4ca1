package query

import (
	"testing"

	"sales-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSortFinalAmountDescNilAsZero(t *testing.T) {
	rows := []models.Transaction{
		{ID: "100", FinalAmount: floatPtr(100)},
		{ID: "nil", FinalAmount: nil},
		{ID: "300", FinalAmount: floatPtr(300)},
	}

	assert.Equal(t, []string{"300", "100", "nil"}, ids(Sort(rows, SortByFinalAmount, Desc)))
	assert.Equal(t, []string{"nil", "100", "300"}, ids(Sort(rows, SortByFinalAmount, Asc)))
}

func TestSortByDateMissingFirst(t *testing.T) {
	got := Sort(fixtureRows(), SortByDate, Asc)
	assert.Equal(t, []string{"4", "2", "1", "5", "3"}, ids(got))
}

func TestSortByQuantity(t *testing.T) {
	got := Sort(fixtureRows(), SortByQuantity, Desc)
	assert.Equal(t, []string{"3", "5", "1", "2", "4"}, ids(got))
}

func TestSortByCustomerNameCaseInsensitive(t *testing.T) {
	rows := []models.Transaction{
		{ID: "b", CustomerName: "bob"},
		{ID: "A", CustomerName: "Alice"},
		{ID: "c", CustomerName: "Carol"},
	}
	assert.Equal(t, []string{"A", "b", "c"}, ids(Sort(rows, SortByCustomerName, Asc)))
}

func TestSortIsStableOnTies(t *testing.T) {
	rows := []models.Transaction{
		{ID: "x1", Quantity: intPtr(2)},
		{ID: "y1", Quantity: intPtr(1)},
		{ID: "x2", Quantity: intPtr(2)},
		{ID: "y2", Quantity: intPtr(1)},
		{ID: "x3", Quantity: intPtr(2)},
	}

	assert.Equal(t, []string{"y1", "y2", "x1", "x2", "x3"}, ids(Sort(rows, SortByQuantity, Asc)))
	assert.Equal(t, []string{"x1", "x2", "x3", "y1", "y2"}, ids(Sort(rows, SortByQuantity, Desc)))
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	rows := fixtureRows()
	assert.Equal(t, ids(rows), ids(Sort(rows, SortNone, Desc)))
	assert.Equal(t, ids(rows), ids(Sort(rows, SortKey("price"), Asc)))
}

func TestSortDoesNotReorderInput(t *testing.T) {
	rows := fixtureRows()
	before := ids(rows)
	_ = Sort(rows, SortByFinalAmount, Desc)
	assert.Equal(t, before, ids(rows))
}
