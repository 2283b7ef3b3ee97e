package catalog

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"gorm.io/gorm"
)

// Listing bounds. Out-of-range requests are clamped, not rejected.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ListInput holds raw listing parameters before normalization.
type ListInput struct {
	Query  string
	Limit  *int
	Offset *int
}

// Service exposes catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, input ListInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID int64) (*ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListInput) ([]ProductDTO, error) {
	limit := DefaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := 0
	if input.Offset != nil && *input.Offset > 0 {
		offset = *input.Offset
	}

	rows, err := s.repo.ListAvailable(ctx, ListQuery{
		Search: input.Query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, fmt.Sprintf("product %d not found", productID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDTO(product), nil
}
