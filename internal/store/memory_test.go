package store

import (
	"context"
	"errors"
	"testing"

	"sales-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	rows []models.Transaction
	err  error
}

func (s stubSource) Rows(ctx context.Context) ([]models.Transaction, error) {
	return s.rows, s.err
}

func TestMemoryStoreSnapshotIsPrivate(t *testing.T) {
	in := []models.Transaction{{ID: "1"}, {ID: "2"}}
	m := NewMemoryStore(in)
	in[0].ID = "changed"

	rows, err := m.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", rows[0].ID)

	n, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStoreReplaceKeepsOldSnapshot(t *testing.T) {
	m := NewMemoryStore([]models.Transaction{{ID: "old"}})
	before, _ := m.Rows(context.Background())

	m.Replace([]models.Transaction{{ID: "new1"}, {ID: "new2"}})
	after, _ := m.Rows(context.Background())

	assert.Equal(t, "old", before[0].ID)
	assert.Len(t, after, 2)
}

func TestMemoryStoreLoad(t *testing.T) {
	m := NewMemoryStore(nil)

	n, err := m.Load(context.Background(), stubSource{rows: []models.Transaction{{ID: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = m.Load(context.Background(), stubSource{err: errors.New("down")})
	assert.Error(t, err)

	rows, _ := m.Rows(context.Background())
	assert.Len(t, rows, 1)
}

func TestMemoryStoreHonorsCancellation(t *testing.T) {
	m := NewMemoryStore([]models.Transaction{{ID: "1"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Rows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
