package entry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codimuz/Nova-pasta-sub000/internal/product"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	Insert(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, filters ListFilters) ([]Entry, error)
}

// ProductLookupPort resolves catalog products for name snapshots.
type ProductLookupPort interface {
	GetByCode(ctx context.Context, code string) (product.Product, error)
}

// ErrUnknownProduct indicates the entry references a code not in the catalog.
var ErrUnknownProduct = errors.New("entry: unknown product code")

// Service records loss entries.
type Service struct {
	repo     RepositoryPort
	products ProductLookupPort
	validate *validator.Validate
}

// NewService builds Service.
func NewService(repo RepositoryPort, products ProductLookupPort) *Service {
	return &Service{
		repo:     repo,
		products: products,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Record validates the request, snapshots the product name and stores the
// entry. The entry date defaults to today when omitted.
func (s *Service) Record(ctx context.Context, req CreateRequest) (Entry, error) {
	if req.Quantity < 0 {
		return Entry{}, ErrInvalidQuantity
	}
	if err := s.validate.Struct(req); err != nil {
		return Entry{}, fmt.Errorf("entry: invalid request: %w", err)
	}

	p, err := s.products.GetByCode(ctx, req.ProductCode)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Entry{}, ErrUnknownProduct
		}
		return Entry{}, err
	}

	entryDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EntryDate != "" {
		entryDate, err = time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return Entry{}, fmt.Errorf("entry: invalid entry date: %w", err)
		}
	}

	return s.repo.Insert(ctx, Entry{
		ProductCode: p.Code,
		ProductName: p.Name,
		Quantity:    req.Quantity,
		ReasonID:    req.ReasonID,
		EntryDate:   entryDate,
	})
}

// List returns entries matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Entry, error) {
	return s.repo.List(ctx, filters)
}
