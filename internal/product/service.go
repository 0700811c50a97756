package product

import (
	"context"
	"log/slog"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	GetByCode(ctx context.Context, code string) (Product, error)
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	SoftDelete(ctx context.Context, code string) error
	Restore(ctx context.Context, code string) error
}

// Service exposes catalog lookups to handlers and to the export pipeline.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo RepositoryPort, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

type cachedListing struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// GetByCode resolves an active product. Used by the export pipeline to decide
// unit semantics per consolidated line.
func (s *Service) GetByCode(ctx context.Context, code string) (Product, error) {
	return s.repo.GetByCode(ctx, code)
}

// List returns a product page through the read-through cache. Cache failures
// fall back to the repository so listings keep working without Redis.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	key, err := s.cache.ListKey(ctx, filters)
	if err != nil {
		s.logger.Warn("product cache key", slog.Any("error", err))
		return s.repo.List(ctx, filters)
	}

	var listing cachedListing
	err = s.cache.FetchJSON(ctx, key, &listing, func(ctx context.Context) (interface{}, error) {
		products, total, err := s.repo.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		return cachedListing{Products: products, Total: total}, nil
	})
	if err != nil {
		s.logger.Warn("product cache fetch", slog.Any("error", err))
		return s.repo.List(ctx, filters)
	}
	return listing.Products, listing.Total, nil
}

// SoftDelete hides a product from the pipelines and invalidates listings.
func (s *Service) SoftDelete(ctx context.Context, code string) error {
	if err := s.repo.SoftDelete(ctx, code); err != nil {
		return err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("product cache bump", slog.Any("error", err))
	}
	return nil
}

// Restore brings a soft-deleted product back and invalidates listings.
func (s *Service) Restore(ctx context.Context, code string) error {
	if err := s.repo.Restore(ctx, code); err != nil {
		return err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("product cache bump", slog.Any("error", err))
	}
	return nil
}
