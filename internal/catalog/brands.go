package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/dotcart/internal/cache"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

var ErrBrandNameRequired = errors.New("brand name is required")

const (
	brandsCacheKey = "catalog:brands"
	brandsCacheTTL = 5 * time.Minute
)

// BrandService lista marcas con read-through cache: el catálogo de marcas
// cambia poco y se lee en cada render de productos. También administra la
// asignación marca<->tienda (qué marcas lleva cada tienda).
type BrandService struct {
	Brands      core.BrandRepository
	Stores      core.StoreRepository
	StoreBrands core.StoreBrandRepository
	Cache       cache.Client

	sf singleflight.Group
}

func (s *BrandService) ListAll(ctx context.Context) ([]*core.Brand, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, brandsCacheKey); err == nil {
			var out []*core.Brand
			if json.Unmarshal([]byte(raw), &out) == nil {
				return out, nil
			}
			// entrada corrupta: seguimos al repo y la pisamos
		}
	}

	// singleflight colapsa misses concurrentes en una sola query
	v, err, _ := s.sf.Do(brandsCacheKey, func() (any, error) {
		out, err := s.Brands.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if s.Cache != nil {
			if raw, err := json.Marshal(out); err == nil {
				if err := s.Cache.Set(ctx, brandsCacheKey, string(raw), brandsCacheTTL); err != nil {
					logger.Named("catalog").Warn("brand cache set failed", logger.Err(err))
				}
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*core.Brand), nil
}

func (s *BrandService) Create(ctx context.Context, name string) (*core.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBrandNameRequired
	}
	b := &core.Brand{Name: name}
	if err := s.Brands.Create(ctx, b); err != nil {
		if err == core.ErrConflict {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("create brand: %w", err)
	}
	if s.Cache != nil {
		_ = s.Cache.Delete(ctx, brandsCacheKey)
	}
	return b, nil
}

// Assign asigna una marca a una tienda del caller. Idempotente: si el par
// ya existe lo devuelve tal cual. Tienda ajena o inexistente, o marca
// inexistente, salen como ErrNotFound.
func (s *BrandService) Assign(ctx context.Context, userID, storeID, brandID int64) (*core.StoreBrand, error) {
	if err := s.ownedStore(ctx, storeID, userID); err != nil {
		return nil, err
	}
	if _, err := s.Brands.GetByID(ctx, brandID); err != nil {
		return nil, err
	}

	if sb, err := s.StoreBrands.Get(ctx, storeID, brandID); err == nil {
		return sb, nil
	} else if err != core.ErrNotFound {
		return nil, err
	}

	sb := &core.StoreBrand{StoreID: storeID, BrandID: brandID}
	if err := s.StoreBrands.Create(ctx, sb); err != nil {
		if err == core.ErrConflict {
			// carrera con otro assign del mismo par: ya está asignado
			return sb, nil
		}
		return nil, fmt.Errorf("assign brand: %w", err)
	}
	return sb, nil
}

// Unassign quita una marca de una tienda del caller. ErrNotFound si la
// relación no existe o la tienda no es del caller.
func (s *BrandService) Unassign(ctx context.Context, userID, storeID, brandID int64) (*core.StoreBrand, error) {
	if err := s.ownedStore(ctx, storeID, userID); err != nil {
		return nil, err
	}
	sb, err := s.StoreBrands.Get(ctx, storeID, brandID)
	if err != nil {
		return nil, err
	}
	if err := s.StoreBrands.Delete(ctx, storeID, brandID); err != nil {
		return nil, err
	}
	return sb, nil
}

// ListByStore lista las marcas que lleva una tienda. Lectura pública para
// usuarios autenticados, como el catálogo de marcas.
func (s *BrandService) ListByStore(ctx context.Context, storeID int64) ([]*core.Brand, error) {
	if _, err := s.Stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.StoreBrands.ListBrandsByStore(ctx, storeID)
}

func (s *BrandService) ownedStore(ctx context.Context, storeID, userID int64) error {
	st, err := s.Stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if st.UserID != userID {
		return core.ErrNotFound
	}
	return nil
}
