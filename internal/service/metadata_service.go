package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sales-service/internal/cache"
	"sales-service/internal/models"
	"sales-service/internal/query"
	"sales-service/internal/store"
	"sales-service/internal/util"
)

const metadataKey = "metadata"

// MetadataService lists the filter options present in the dataset
type MetadataService struct {
	rows  store.RowStore
	cache *cache.TTLCache[*models.Metadata]
}

// NewMetadataService creates a metadata service memoized for ttl
func NewMetadataService(rows store.RowStore, ttl time.Duration) *MetadataService {
	return &MetadataService{
		rows:  rows,
		cache: cache.New(ttl, (*models.Metadata).Clone),
	}
}

// Get returns the distinct option values and observed bounds
func (s *MetadataService) Get(ctx context.Context) (*models.Metadata, error) {
	ctx, span := util.StartSpan(ctx, "MetadataService.Get")
	defer span.End()

	if m, ok := s.cache.Get(metadataKey); ok {
		util.QueryCacheTotal.WithLabelValues("metadata", "hit").Inc()
		return m, nil
	}
	util.QueryCacheTotal.WithLabelValues("metadata", "miss").Inc()

	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRowStoreUnavailable, err)
	}

	m := BuildMetadata(rows)
	s.cache.Put(metadataKey, m)
	return m, nil
}

// Invalidate drops the memoized metadata
func (s *MetadataService) Invalidate() {
	s.cache.Purge()
}

// BuildMetadata collects the sorted distinct values of every filterable
// field. Values are de-duplicated case-insensitively; the first spelling
// seen is kept.
func BuildMetadata(rows []models.Transaction) *models.Metadata {
	regions := newOptionSet()
	genders := newOptionSet()
	categories := newOptionSet()
	tags := newOptionSet()
	payments := newOptionSet()

	m := &models.Metadata{}
	for i := range rows {
		r := &rows[i]
		regions.add(r.CustomerRegion)
		genders.add(r.Gender)
		categories.add(r.ProductCategory)
		payments.add(r.PaymentMethod)
		for _, tag := range query.SplitTags(r.Tags) {
			tags.add(tag)
		}

		if r.Age != nil {
			if m.AgeRange.Min == nil || *r.Age < *m.AgeRange.Min {
				age := *r.Age
				m.AgeRange.Min = &age
			}
			if m.AgeRange.Max == nil || *r.Age > *m.AgeRange.Max {
				age := *r.Age
				m.AgeRange.Max = &age
			}
		}
		if r.Date != nil {
			if m.DateRange.From == nil || r.Date.Before(*m.DateRange.From) {
				d := *r.Date
				m.DateRange.From = &d
			}
			if m.DateRange.To == nil || r.Date.After(*m.DateRange.To) {
				d := *r.Date
				m.DateRange.To = &d
			}
		}
	}

	m.Regions = regions.sorted()
	m.Genders = genders.sorted()
	m.ProductCategories = categories.sorted()
	m.Tags = tags.sorted()
	m.PaymentMethods = payments.sorted()
	return m
}

type optionSet struct {
	seen   map[string]struct{}
	values []string
}

func newOptionSet() *optionSet {
	return &optionSet{seen: make(map[string]struct{})}
}

func (o *optionSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	o.values = append(o.values, v)
}

func (o *optionSet) sorted() []string {
	out := append([]string{}, o.values...)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
