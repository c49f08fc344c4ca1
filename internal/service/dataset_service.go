package service

import (
	"context"
	"fmt"

	"sales-service/internal/models"
	"sales-service/internal/store"
	"sales-service/internal/util"

	"go.uber.org/zap"
)

// DatasetService swaps in a fresh dataset snapshot and drops every result
// computed from the previous one
type DatasetService struct {
	target   *store.MemoryStore
	source   store.RowStore
	sales    *SalesService
	metadata *MetadataService
	logger   *zap.Logger
}

// NewDatasetService creates a dataset service. A nil source means the
// dataset is read live and a reload only invalidates caches.
func NewDatasetService(
	target *store.MemoryStore,
	source store.RowStore,
	sales *SalesService,
	metadata *MetadataService,
) *DatasetService {
	return &DatasetService{
		target:   target,
		source:   source,
		sales:    sales,
		metadata: metadata,
		logger:   util.GetLogger(),
	}
}

// Reload refreshes the snapshot from the source and purges caches
func (s *DatasetService) Reload(ctx context.Context) (int, error) {
	ctx, span := util.StartSpan(ctx, "DatasetService.Reload")
	defer span.End()

	count := -1
	if s.target != nil && s.source != nil {
		n, err := s.target.Load(ctx, s.source)
		if err != nil {
			util.DatasetReloadsTotal.WithLabelValues("failed").Inc()
			span.RecordError(err)
			return 0, fmt.Errorf("%w: %v", ErrRowStoreUnavailable, err)
		}
		count = n
		util.DatasetRows.Set(float64(n))
	}

	// Caches are dropped after the swap. Query results now carry the cache
	// generation in their key, so a fetch that read the old snapshot cannot
	// repopulate them. Metadata has no generation; a concurrent Get may
	// store stale options, bounded by the cache TTL.
	if s.metadata != nil {
		s.metadata.Invalidate()
	}
	if s.sales != nil {
		if err := s.sales.InvalidateCache(ctx); err != nil {
			util.DatasetReloadsTotal.WithLabelValues("failed").Inc()
			return count, err
		}
	}

	util.DatasetReloadsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Dataset reloaded", zap.Int("rows", count))
	return count, nil
}

// HandleDatasetReloaded reacts to a dataset event published by the ingester
func (s *DatasetService) HandleDatasetReloaded(ctx context.Context, event *models.DatasetReloadedEvent) error {
	s.logger.Info("Dataset reload event received",
		zap.String("event_id", event.EventID),
		zap.String("source", event.Source),
		zap.Int("row_count", event.RowCount))

	n, err := s.Reload(ctx)
	if err != nil {
		return err
	}
	if n >= 0 && event.RowCount > 0 && n != event.RowCount {
		s.logger.Warn("Reloaded row count differs from event",
			zap.Int("expected", event.RowCount),
			zap.Int("actual", n))
	}
	return nil
}
