package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"sales-service/internal/models"
	"sales-service/internal/query"
	"sales-service/internal/store"
	"sales-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var (
	// ErrRowStoreUnavailable is returned when the dataset cannot be read
	ErrRowStoreUnavailable = errors.New("row store unavailable")
	// ErrPipeline is returned when a pipeline stage fails unexpectedly
	ErrPipeline = errors.New("pipeline failure")
)

const (
	kindPage   = "page"
	kindExport = "export"
)

// SalesService runs queries over the dataset and memoizes their results
type SalesService struct {
	rows        store.RowStore
	pages       ResultCache[*models.PageResult]
	exports     ResultCache[*models.ExportResult]
	exportLimit int
	logger      *zap.Logger

	// generation prefixes every cache key and is bumped by InvalidateCache,
	// so a result computed from a replaced snapshot is stored under a key
	// no later lookup uses
	generation atomic.Uint64
}

// NewSalesService creates a sales service. exportLimit caps the number of
// exported rows; zero or less exports every match.
func NewSalesService(
	rows store.RowStore,
	pages ResultCache[*models.PageResult],
	exports ResultCache[*models.ExportResult],
	exportLimit int,
) *SalesService {
	if exportLimit < 0 {
		exportLimit = 0
	}
	return &SalesService{
		rows:        rows,
		pages:       pages,
		exports:     exports,
		exportLimit: exportLimit,
		logger:      util.GetLogger(),
	}
}

// FetchPage returns one page of the transactions matching raw
func (s *SalesService) FetchPage(ctx context.Context, raw query.RawQuery) (*models.PageResult, error) {
	ctx, span := util.StartSpan(ctx, "SalesService.FetchPage")
	defer span.End()

	util.SalesQueriesTotal.WithLabelValues(kindPage).Inc()

	q := query.Normalize(raw)
	sig := s.cacheKey(q.Signature())

	if cached, ok := s.pages.Get(ctx, sig); ok {
		util.QueryCacheTotal.WithLabelValues(kindPage, "hit").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	util.QueryCacheTotal.WithLabelValues(kindPage, "miss").Inc()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	start := time.Now()
	ordered, err := s.run(ctx, q, sig)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var page models.PageResult
	err = runStage(stagePaginate, func() {
		page = query.Paginate(ordered, q.Page, q.PageSize)
	})
	if err != nil {
		s.logStageFailure(sig, err)
		span.RecordError(err)
		return nil, err
	}
	util.PipelineDuration.WithLabelValues(kindPage).Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("result.total", page.Total),
		attribute.Int("result.page", page.Page),
	)

	result := &page
	s.pages.Put(ctx, sig, result)
	return result, nil
}

// FetchExport returns every transaction matching raw in sorted order,
// ignoring pagination. When an export cap is configured the result holds at
// most that many rows and is marked as truncated.
func (s *SalesService) FetchExport(ctx context.Context, raw query.RawQuery) (*models.ExportResult, error) {
	ctx, span := util.StartSpan(ctx, "SalesService.FetchExport")
	defer span.End()

	util.SalesQueriesTotal.WithLabelValues(kindExport).Inc()

	q := query.Normalize(raw)
	sig := s.cacheKey(q.ExportSignature())

	if cached, ok := s.exports.Get(ctx, sig); ok {
		util.QueryCacheTotal.WithLabelValues(kindExport, "hit").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	util.QueryCacheTotal.WithLabelValues(kindExport, "miss").Inc()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	start := time.Now()
	ordered, err := s.run(ctx, q, sig)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	util.PipelineDuration.WithLabelValues(kindExport).Observe(time.Since(start).Seconds())

	result := &models.ExportResult{
		Items: ordered,
		Total: len(ordered),
		Limit: s.exportLimit,
	}
	if s.exportLimit > 0 && len(ordered) > s.exportLimit {
		result.Items = ordered[:s.exportLimit]
		result.Truncated = true
		util.ExportTruncatedTotal.Inc()
		s.logger.Warn("Export truncated",
			zap.String("signature", sig),
			zap.Int("total", len(ordered)),
			zap.Int("limit", s.exportLimit))
	}
	if result.Items == nil {
		result.Items = []models.Transaction{}
	}

	span.SetAttributes(
		attribute.Int("result.total", result.Total),
		attribute.Bool("result.truncated", result.Truncated),
	)

	s.exports.Put(ctx, sig, result)
	return result.Clone(), nil
}

// InvalidateCache drops every memoized result. Lookups that start afterwards
// never see an entry written by a fetch that started before.
func (s *SalesService) InvalidateCache(ctx context.Context) error {
	s.generation.Add(1)
	if err := s.pages.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge page cache: %w", err)
	}
	if err := s.exports.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge export cache: %w", err)
	}
	s.logger.Info("Query caches purged")
	return nil
}

func (s *SalesService) cacheKey(signature string) string {
	return fmt.Sprintf("g%d:%s", s.generation.Load(), signature)
}

// run fetches the dataset and applies search, filter and sort
func (s *SalesService) run(ctx context.Context, q query.Query, sig string) ([]models.Transaction, error) {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		util.PipelineErrorsTotal.WithLabelValues("fetch").Inc()
		s.logger.Error("Failed to read dataset", zap.String("signature", sig), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRowStoreUnavailable, err)
	}

	criteria := query.CriteriaFrom(q)

	err = runStage(stageSearch, func() {
		rows = query.Search(rows, q.Search)
	})
	if err == nil {
		err = runStage(stageFilter, func() {
			rows = query.Filter(rows, criteria)
		})
	}
	if err == nil {
		err = runStage(stageSort, func() {
			rows = query.Sort(rows, q.SortBy, q.SortOrder)
		})
	}
	if err != nil {
		s.logStageFailure(sig, err)
		return nil, err
	}
	return rows, nil
}

func (s *SalesService) logStageFailure(sig string, err error) {
	var se *StageError
	stage := "unknown"
	if errors.As(err, &se) {
		stage = se.Stage
	}
	util.PipelineErrorsTotal.WithLabelValues(stage).Inc()
	s.logger.Error("Pipeline stage failed",
		zap.String("signature", sig),
		zap.String("stage", stage),
		zap.Error(err))
}
