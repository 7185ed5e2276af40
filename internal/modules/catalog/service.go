package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Fetcher interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Service holds the product snapshot for the process. Load degrades to an
// empty list on any fetch failure: the storefront renders "no products"
// instead of an error page, and the failure only shows up in the logs.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu       sync.RWMutex
	products []Product
	byID     map[string]Product
	loadedAt time.Time
}

func NewService(f Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: f, logger: logger, byID: map[string]Product{}}
}

func (s *Service) Load(ctx context.Context) {
	items, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog fetch failed, serving empty list", "err", err)
		items = nil
	}

	byID := make(map[string]Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = items
	s.byID = byID
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "catalog loaded", "count", len(items))
}

// Products returns a copy of the current snapshot.
func (s *Service) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// LoadedAt reports when the snapshot was last (re)loaded; ok is false before
// the first Load completes.
func (s *Service) LoadedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, !s.loadedAt.IsZero()
}
