package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

var ErrProductNameRequired = errors.New("product name is required")

type ProductService struct {
	Products core.ProductRepository
	Stores   core.StoreRepository
	Brands   core.BrandRepository
}

func (s *ProductService) Create(ctx context.Context, userID int64, p *core.Product) (*core.Product, error) {
	if err := s.validate(ctx, p, userID); err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, productID, userID int64, p *core.Product) (*core.Product, error) {
	if err := s.validate(ctx, p, userID); err != nil {
		return nil, err
	}
	existing, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	// el producto a pisar también tiene que ser del caller; si no, sale
	// como not-found igual que SetDeleted
	cur, err := s.Stores.GetByID(ctx, existing.StoreID)
	if err != nil {
		return nil, err
	}
	if cur.UserID != userID {
		return nil, core.ErrNotFound
	}
	existing.StoreID = p.StoreID
	existing.BrandID = p.BrandID
	existing.Name = p.Name
	existing.Price = p.Price
	existing.ImageURL = p.ImageURL
	existing.Deleted = p.Deleted
	if err := s.Products.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return existing, nil
}

// SetDeletionStatus borra o recupera (soft delete) un producto del caller.
// Nil-safe para el caso "no es tuyo": sale como not-found.
func (s *ProductService) SetDeletionStatus(ctx context.Context, productID int64, deleted bool, userID int64) (*core.Product, error) {
	return s.Products.SetDeleted(ctx, productID, deleted, userID)
}

// List es el hub de filtrado de productos: sirve a dueños (userID) y a
// visitantes (storeID público, no-borrados).
func (s *ProductService) List(ctx context.Context, f core.ProductFilter) ([]*core.Product, error) {
	return s.Products.List(ctx, f)
}

// validate chequea nombre y que los ids referencien una tienda del caller
// y una marca existente.
func (s *ProductService) validate(ctx context.Context, p *core.Product, userID int64) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}
	st, err := s.Stores.GetByID(ctx, p.StoreID)
	if err != nil {
		if err == core.ErrNotFound {
			return ErrInvalidRefs
		}
		return err
	}
	if st.UserID != userID {
		return ErrInvalidRefs
	}
	if _, err := s.Brands.GetByID(ctx, p.BrandID); err != nil {
		if err == core.ErrNotFound {
			return ErrInvalidRefs
		}
		return err
	}
	return nil
}
