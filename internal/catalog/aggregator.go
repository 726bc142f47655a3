package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultPageBudget     = 5
	DefaultMaxConcurrency = 25
	memoSize              = 64
)

// SearchCategories are the listings a search fans out over, page 1 only
var SearchCategories = []domain.Category{
	domain.PopularMovies,
	domain.NowPlayingMovies,
	domain.TopRatedMovies,
	domain.TrendingMoviesDay,
	domain.PopularTV,
	domain.TopRatedTV,
}

// Options configures an Aggregator
type Options struct {
	PageBudget     int           // Pages fetched per sub-path
	MaxConcurrency int           // In-flight requests per call
	CacheTTL       time.Duration // 0 disables memoization
}

// Aggregator fans out paginated listing requests and merges the results
// into a collection that is unique by item ID
type Aggregator struct {
	repo           domain.CatalogRepository
	logger         *slog.Logger
	pageBudget     int
	maxConcurrency int
	memo           *expirable.LRU[string, []domain.CatalogItem]
}

// NewAggregator creates a new aggregator
func NewAggregator(repo domain.CatalogRepository, opts Options, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageBudget <= 0 {
		opts.PageBudget = DefaultPageBudget
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}

	a := &Aggregator{
		repo:           repo,
		logger:         logger,
		pageBudget:     opts.PageBudget,
		maxConcurrency: opts.MaxConcurrency,
	}
	if opts.CacheTTL > 0 {
		a.memo = expirable.NewLRU[string, []domain.CatalogItem](memoSize, nil, opts.CacheTTL)
	}
	return a
}

// pageRequest is one (sub-path, page) pair of a fan-out
type pageRequest struct {
	path string
	page int
}

// Aggregate fetches every page of every sub-path of category and returns the
// merged items ordered by policy. Failed pages are logged and skipped, as are
// pages cut off by a deadline; the only error is context.Canceled, when the
// call was cancelled or superseded.
func (a *Aggregator) Aggregate(ctx context.Context, category domain.Category, policy domain.SortPolicy) ([]domain.CatalogItem, error) {
	paths := category.Paths()
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownCategory, int(category))
	}

	key := fmt.Sprintf("%s|%s|%d", category.Tag(), policy, a.pageBudget)
	if items, ok := a.cached(key); ok {
		a.logger.Debug("aggregate cache hit", "category", category.Tag())
		return items, nil
	}

	merged, err := a.fanOut(ctx, expand(paths, a.pageBudget))
	if err != nil {
		return nil, err
	}

	items := merged.Sorted(policy)
	if ctx.Err() == nil {
		a.store(key, items)
	}
	a.logger.Info("aggregated category", "category", category.Tag(), "count", len(items))
	return items, nil
}

// Search fans out over SearchCategories at page 1, then keeps the items whose
// display title contains query (case-insensitive), ordered by relevance.
// A blank query returns the whole merged set ordered by title.
func (a *Aggregator) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	var paths []string
	for _, c := range SearchCategories {
		paths = append(paths, c.Paths()...)
	}

	merged, err := a.fanOut(ctx, expand(paths, 1))
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return merged.Sorted(domain.SortByTitle), nil
	}

	results := FilterByTitle(merged.Values(), query)
	SortItemsForQuery(results, query)
	a.logger.Debug("search complete", "query", query, "candidates", merged.Len(), "results", len(results))
	return results, nil
}

// fanOut issues every request concurrently, waits for all of them, and
// returns the merged set
func (a *Aggregator) fanOut(ctx context.Context, requests []pageRequest) (*ItemSet, error) {
	merged := NewItemSet()

	p := pool.New().WithMaxGoroutines(a.maxConcurrency)
	for _, req := range requests {
		p.Go(func() {
			items, err := a.repo.FetchPage(ctx, req.path, req.page)
			if err != nil {
				if !superseded(ctx) {
					a.logger.Warn("dropping failed page", "path", req.path, "page", req.page, "error", err)
				}
				return
			}
			merged.Merge(items)
		})
	}
	p.Wait()

	// A deadline only drops the pages still in flight
	if superseded(ctx) {
		return nil, ctx.Err()
	}
	return merged, nil
}

// superseded reports whether ctx was cancelled, as opposed to timed out
func superseded(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// expand builds one request per page for each path
func expand(paths []string, pageBudget int) []pageRequest {
	requests := make([]pageRequest, 0, len(paths)*pageBudget)
	for _, path := range paths {
		for page := 1; page <= pageBudget; page++ {
			requests = append(requests, pageRequest{path: path, page: page})
		}
	}
	return requests
}

func (a *Aggregator) cached(key string) ([]domain.CatalogItem, bool) {
	if a.memo == nil {
		return nil, false
	}
	items, ok := a.memo.Get(key)
	if !ok {
		return nil, false
	}
	return append([]domain.CatalogItem(nil), items...), true
}

func (a *Aggregator) store(key string, items []domain.CatalogItem) {
	if a.memo == nil {
		return
	}
	a.memo.Add(key, append([]domain.CatalogItem(nil), items...))
}

// Invalidate drops memoized results so the next call refetches
func (a *Aggregator) Invalidate() {
	if a.memo != nil {
		a.memo.Purge()
	}
}

// ItemSet is a collection keyed by item ID, safe for concurrent writers.
// A later Merge of an existing ID replaces the earlier record.
type ItemSet struct {
	mu    sync.Mutex
	items map[int]domain.CatalogItem
}

// NewItemSet creates an empty set
func NewItemSet() *ItemSet {
	return &ItemSet{items: make(map[int]domain.CatalogItem)}
}

// Merge adds items, overwriting records that share an ID
func (s *ItemSet) Merge(items []domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.items[item.ID] = item
	}
}

// Len returns the number of unique items
func (s *ItemSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Values returns the items in unspecified order
func (s *ItemSet) Values() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CatalogItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out
}

// Sorted returns the items ordered by policy
func (s *ItemSet) Sorted(policy domain.SortPolicy) []domain.CatalogItem {
	items := s.Values()
	SortItems(items, policy)
	return items
}
