package service

import (
	"context"
	"testing"
	"time"

	"sales-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metadataRows() []models.Transaction {
	return []models.Transaction{
		{ID: "1", CustomerRegion: "North", Gender: "Female", ProductCategory: "Beauty", Tags: "organic, skincare", PaymentMethod: "UPI", Age: intPtr(34), Date: datePtr("2023-03-10")},
		{ID: "2", CustomerRegion: "south", Gender: "Male", ProductCategory: "Electronics", Tags: "gadgets", PaymentMethod: "Credit Card", Age: intPtr(19), Date: datePtr("2021-07-01")},
		{ID: "3", CustomerRegion: "NORTH ", Gender: "female", ProductCategory: "beauty", Tags: "Organic", PaymentMethod: "Cash"},
		{ID: "4", CustomerRegion: "", Gender: "Male", ProductCategory: "Clothing", Tags: "", PaymentMethod: "UPI", Age: intPtr(61), Date: datePtr("2024-12-31")},
	}
}

func TestBuildMetadata(t *testing.T) {
	m := BuildMetadata(metadataRows())

	assert.Equal(t, []string{"North", "south"}, m.Regions)
	assert.Equal(t, []string{"Female", "Male"}, m.Genders)
	assert.Equal(t, []string{"Beauty", "Clothing", "Electronics"}, m.ProductCategories)
	assert.Equal(t, []string{"gadgets", "organic", "skincare"}, m.Tags)
	assert.Equal(t, []string{"Cash", "Credit Card", "UPI"}, m.PaymentMethods)

	require.NotNil(t, m.AgeRange.Min)
	require.NotNil(t, m.AgeRange.Max)
	assert.Equal(t, 19, *m.AgeRange.Min)
	assert.Equal(t, 61, *m.AgeRange.Max)

	require.NotNil(t, m.DateRange.From)
	require.NotNil(t, m.DateRange.To)
	assert.Equal(t, "2021-07-01", m.DateRange.From.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", m.DateRange.To.Format("2006-01-02"))
}

func TestBuildMetadataEmpty(t *testing.T) {
	m := BuildMetadata(nil)

	assert.NotNil(t, m.Regions)
	assert.Empty(t, m.Regions)
	assert.Nil(t, m.AgeRange.Min)
	assert.Nil(t, m.DateRange.From)
}

func TestMetadataServiceMemoizes(t *testing.T) {
	st := &countingStore{rows: metadataRows()}
	svc := NewMetadataService(st, time.Minute)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	first.Regions[0] = "mutated"

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "North", second.Regions[0])
	assert.Equal(t, 1, st.Calls())

	svc.Invalidate()
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Calls())
}

func TestMetadataServiceStoreError(t *testing.T) {
	st := &countingStore{err: errStoreDown}
	svc := NewMetadataService(st, time.Minute)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrRowStoreUnavailable)
}
