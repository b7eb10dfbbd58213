// Package catalog implementa las reglas de negocio del storefront:
// tiendas, productos, marcas y direcciones. Los chequeos de ownership
// fallan como not-found para no revelar existencia de recursos ajenos.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

var (
	ErrNameRequired = errors.New("store name is required")
	ErrNameTaken    = errors.New("store name already exists")
	ErrInvalidRefs  = errors.New("invalid store or brand reference")
)

type StoreService struct {
	Stores core.StoreRepository
}

func (s *StoreService) Get(ctx context.Context, storeID int64) (*core.Store, error) {
	return s.Stores.GetByID(ctx, storeID)
}

func (s *StoreService) ListByUser(ctx context.Context, userID int64) ([]*core.Store, error) {
	return s.Stores.ListByUser(ctx, userID)
}

func (s *StoreService) ListAll(ctx context.Context) ([]*core.Store, error) {
	return s.Stores.ListAll(ctx)
}

func (s *StoreService) Create(ctx context.Context, userID int64, name, logoURL string, active bool) (*core.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	exists, err := s.Stores.NameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("name exists: %w", err)
	}
	if exists {
		return nil, ErrNameTaken
	}

	st := &core.Store{UserID: userID, Name: name, LogoURL: logoURL, Active: active}
	if err := s.Stores.Create(ctx, st); err != nil {
		if err == core.ErrConflict {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("create store: %w", err)
	}
	return st, nil
}

// Update exige que la tienda pertenezca al caller; al renombrar re-chequea
// unicidad del nombre.
func (s *StoreService) Update(ctx context.Context, storeID, userID int64, name, logoURL string, active bool) (*core.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	st, err := s.owned(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if st.Name != name {
		exists, err := s.Stores.NameExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("name exists: %w", err)
		}
		if exists {
			return nil, ErrNameTaken
		}
	}

	st.Name = name
	st.LogoURL = logoURL
	st.Active = active
	if err := s.Stores.Update(ctx, st); err != nil {
		if err == core.ErrConflict {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("update store: %w", err)
	}
	return st, nil
}

func (s *StoreService) Delete(ctx context.Context, storeID, userID int64) error {
	if _, err := s.owned(ctx, storeID, userID); err != nil {
		return err
	}
	return s.Stores.Delete(ctx, storeID)
}

// owned devuelve la tienda sólo si pertenece al usuario; ErrNotFound si no
// existe o es de otro.
func (s *StoreService) owned(ctx context.Context, storeID, userID int64) (*core.Store, error) {
	st, err := s.Stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.UserID != userID {
		return nil, core.ErrNotFound
	}
	return st, nil
}
