package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sales-service/internal/cache"
	"sales-service/internal/models"
)

type countingStore struct {
	mu    sync.Mutex
	rows  []models.Transaction
	err   error
	calls int
}

func (s *countingStore) Rows(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *countingStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errStoreDown = errors.New("connection refused")

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// makeRows builds n rows with ascending quantities and alternating regions
func makeRows(n int) []models.Transaction {
	regions := []string{"North", "South"}
	rows := make([]models.Transaction, n)
	for i := range rows {
		rows[i] = models.Transaction{
			ID:             fmt.Sprintf("%d", i+1),
			CustomerName:   fmt.Sprintf("Customer %02d", i+1),
			PhoneNumber:    fmt.Sprintf("+91 90000 %05d", i+1),
			CustomerRegion: regions[i%2],
			Quantity:       intPtr(i + 1),
			FinalAmount:    floatPtr(float64(100 * (i + 1))),
			Date:           datePtr("2023-01-01"),
		}
	}
	return rows
}

type testService struct {
	svc   *SalesService
	store *countingStore
	clock *fakeClock
}

func newTestService(rows []models.Transaction, exportLimit int) *testService {
	clock := newFakeClock()

	pages := cache.New(cache.DefaultTTL, (*models.PageResult).Clone)
	pages.SetClock(clock.Now)
	exports := cache.New(cache.DefaultTTL, (*models.ExportResult).Clone)
	exports.SetClock(clock.Now)

	st := &countingStore{rows: rows}
	return &testService{
		svc:   NewSalesService(st, NewLocalCache(pages), NewLocalCache(exports), exportLimit),
		store: st,
		clock: clock,
	}
}

func ids(rows []models.Transaction) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
