// Package reconcile implements the matching pipeline: an exact pass over
// the category search fields, a fuzzy pass over normalized text, then
// deduplication, ranking, and truncation to the query limit.
package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
	"github.com/culturegraph/reconcile/internal/metrics"
)

// Result wraps the candidate list of one query for the protocol response.
type Result struct {
	Candidates []match.Candidate `json:"result"`
}

// Service matches query text against the record dataset.
type Service struct {
	source RecordSource
	log    *zap.Logger

	thresholds   match.Thresholds
	defaultLimit int
	maxLimit     int
	workers      int
}

// New creates a reconciliation service with default thresholds and limits.
func New(source RecordSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source:       source,
		log:          log,
		thresholds:   match.DefaultThresholds(),
		defaultLimit: match.DefaultLimit,
		maxLimit:     match.MaxLimit,
		workers:      4,
	}
}

// WithThresholds overrides the fuzzy admission and confidence cutoffs.
func (s *Service) WithThresholds(t match.Thresholds) *Service {
	s.thresholds = t
	return s
}

// WithLimits overrides the default and maximum per-query result counts.
func (s *Service) WithLimits(def, max int) *Service {
	if def > 0 {
		s.defaultLimit = def
	}
	if max > 0 {
		s.maxLimit = max
	}
	return s
}

// WithWorkers overrides the batch worker pool size.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// ProcessBatch runs every query of a batch and keys the results by query
// id. A panicking query yields an empty result list without affecting its
// siblings; a store failure fails the whole batch.
func (s *Service) ProcessBatch(ctx context.Context, batch map[string]match.Query) (map[string]Result, error) {
	metrics.BatchSizes.Observe(float64(len(batch)))

	out := make(map[string]Result, len(batch))
	if len(batch) == 0 {
		return out, nil
	}

	type job struct {
		id    string
		query match.Query
	}
	jobs := make(chan job)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		batchErr error
	)

	for i := 0; i < min(s.workers, len(batch)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				candidates, err := s.reconcileIsolated(ctx, j.id, j.query)
				mu.Lock()
				if err != nil {
					if batchErr == nil {
						batchErr = err
					}
				} else {
					out[j.id] = Result{Candidates: candidates}
				}
				mu.Unlock()
			}
		}()
	}

	for id, q := range batch {
		jobs <- job{id: id, query: q}
	}
	close(jobs)
	wg.Wait()

	if batchErr != nil {
		return nil, batchErr
	}
	return out, nil
}

// reconcileIsolated contains a panic to the query that raised it.
func (s *Service) reconcileIsolated(ctx context.Context, id string, q match.Query) (candidates []match.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("query panicked",
				zap.String("query_id", id),
				zap.Any("panic", r),
			)
			candidates = []match.Candidate{}
			err = nil
		}
	}()
	return s.Reconcile(ctx, q)
}

// Reconcile matches a single query and returns ranked candidates. The
// result slice is never nil.
func (s *Service) Reconcile(ctx context.Context, q match.Query) ([]match.Candidate, error) {
	start := time.Now()
	label := q.TypeID
	if label == "" {
		label = "all"
	}

	candidates, err := s.match(ctx, q)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(label, "error").Inc()
		return nil, err
	}

	metrics.QueriesTotal.WithLabelValues(label, "ok").Inc()
	metrics.QueryDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	metrics.CandidatesReturned.WithLabelValues(label).Observe(float64(len(candidates)))
	return candidates, nil
}

func (s *Service) match(ctx context.Context, q match.Query) ([]match.Candidate, error) {
	results := []match.Candidate{}
	if strings.TrimSpace(q.Text) == "" {
		return results, nil
	}

	limit := s.clampLimit(q.Limit)
	categories := categoriesFor(q.TypeID)
	seen := make(map[string]bool)

	// Exact pass: case-insensitive equality against any search field.
	lowered := strings.ToLower(q.Text)
	for _, cat := range categories {
		recs, err := s.source.AllRecords(ctx, cat)
		if err != nil {
			return nil, fmt.Errorf("exact pass %s: %w", cat, err)
		}
		for _, rec := range recs {
			if !s.exactMatch(rec, lowered) || seen[rec.ID()] {
				continue
			}
			cand, err := Project(rec, 100, true)
			if err != nil {
				s.log.Warn("skipping unprojectable record", zap.String("id", rec.ID()), zap.Error(err))
				continue
			}
			seen[rec.ID()] = true
			results = append(results, cand)
		}
	}

	// Fuzzy pass only when the exact pass left room.
	if len(results) < limit {
		metrics.FuzzyScansTotal.WithLabelValues("scanned").Inc()

		normalized := match.Normalize(q.Text)
		var pool []match.Candidate
		for _, cat := range categories {
			recs, err := s.source.AllRecords(ctx, cat)
			if err != nil {
				return nil, fmt.Errorf("fuzzy pass %s: %w", cat, err)
			}
			for _, rec := range recs {
				if seen[rec.ID()] {
					continue
				}
				score := bestFieldScore(normalized, rec)
				if score <= s.thresholds.Fuzzy {
					continue
				}
				cand, err := Project(rec, score, score > s.thresholds.Confident)
				if err != nil {
					s.log.Warn("skipping unprojectable record", zap.String("id", rec.ID()), zap.Error(err))
					continue
				}
				pool = append(pool, cand)
			}
		}

		sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })
		if remaining := limit - len(results); len(pool) > remaining {
			pool = pool[:remaining]
		}
		results = append(results, pool...)
	} else {
		metrics.FuzzyScansTotal.WithLabelValues("skipped").Inc()
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Service) exactMatch(rec record.Record, loweredQuery string) bool {
	for _, field := range rec.SearchValues() {
		if field != "" && strings.ToLower(field) == loweredQuery {
			return true
		}
	}
	return false
}

// bestFieldScore returns the highest similarity of the normalized query
// against any non-empty search field.
func bestFieldScore(normalizedQuery string, rec record.Record) int {
	best := 0
	for _, field := range rec.SearchValues() {
		if field == "" {
			continue
		}
		if score := match.Ratio(normalizedQuery, match.Normalize(field)); score > best {
			best = score
		}
	}
	return best
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

// categoriesFor resolves a protocol type id to the categories to scan.
// Empty means all; an unrecognized id matches nothing.
func categoriesFor(typeID string) []record.Category {
	if typeID == "" {
		return record.Categories()
	}
	cat, ok := record.FromTypeID(typeID)
	if !ok {
		return nil
	}
	return []record.Category{cat}
}
