package catalog

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type AddressService struct {
	Addresses core.AddressRepository
	Stores    core.StoreRepository
}

func (s *AddressService) ListByStore(ctx context.Context, storeID, userID int64) ([]*core.Address, error) {
	if err := s.checkStore(ctx, storeID, userID); err != nil {
		return nil, err
	}
	return s.Addresses.ListByStore(ctx, storeID)
}

func (s *AddressService) Create(ctx context.Context, userID int64, a *core.Address) (*core.Address, error) {
	if err := s.checkStore(ctx, a.StoreID, userID); err != nil {
		return nil, err
	}
	if err := s.Addresses.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, addressID, userID int64, a *core.Address) (*core.Address, error) {
	existing, err := s.Addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	// La dirección tiene que seguir apuntando a una tienda del caller.
	if err := s.checkStore(ctx, a.StoreID, userID); err != nil {
		return nil, err
	}
	existing.StoreID = a.StoreID
	existing.Line = a.Line
	existing.City = a.City
	existing.State = a.State
	existing.ZipCode = a.ZipCode
	existing.Active = a.Active
	if err := s.Addresses.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	return existing, nil
}

func (s *AddressService) Delete(ctx context.Context, addressID, userID int64) error {
	a, err := s.Addresses.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if err := s.checkStore(ctx, a.StoreID, userID); err != nil {
		return err
	}
	return s.Addresses.Delete(ctx, addressID)
}

// checkStore valida que la tienda exista y sea del usuario; not-found en
// caso contrario.
func (s *AddressService) checkStore(ctx context.Context, storeID, userID int64) error {
	st, err := s.Stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if st.UserID != userID {
		return core.ErrNotFound
	}
	return nil
}
