// Package memory implementa core.Repository en memoria.
// Pensado para tests unitarios; no apto para producción.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type Store struct {
	mu sync.RWMutex

	users       map[int64]*core.User
	stores      map[int64]*core.Store
	brands      map[int64]*core.Brand
	storeBrands map[core.StoreBrand]bool
	products    map[int64]*core.Product
	addresses   map[int64]*core.Address

	nextID int64
}

func New() *Store {
	return &Store{
		users:       map[int64]*core.User{},
		stores:      map[int64]*core.Store{},
		brands:      map[int64]*core.Brand{},
		storeBrands: map[core.StoreBrand]bool{},
		products:    map[int64]*core.Product{},
		addresses:   map[int64]*core.Address{},
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

func (s *Store) Users() core.UserRepository             { return &userRepo{s} }
func (s *Store) Stores() core.StoreRepository           { return &storeRepo{s} }
func (s *Store) Brands() core.BrandRepository           { return &brandRepo{s} }
func (s *Store) StoreBrands() core.StoreBrandRepository { return &storeBrandRepo{s} }
func (s *Store) Products() core.ProductRepository       { return &productRepo{s} }
func (s *Store) Addresses() core.AddressRepository      { return &addressRepo{s} }

func (s *Store) nid() int64 {
	s.nextID++
	return s.nextID
}

// ───────── users ─────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *core.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if strings.EqualFold(e.Email, u.Email) {
			return core.ErrConflict
		}
	}
	u.ID = r.s.nid()
	u.Email = strings.ToLower(u.Email)
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*core.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == core.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepo) Update(ctx context.Context, u *core.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	cp.Email = strings.ToLower(cp.Email)
	r.s.users[u.ID] = &cp
	return nil
}

// ───────── stores ─────────

type storeRepo struct{ s *Store }

func (r *storeRepo) Create(ctx context.Context, st *core.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.stores {
		if e.Name == st.Name {
			return core.ErrConflict
		}
	}
	st.ID = r.s.nid()
	cp := *st
	r.s.stores[st.ID] = &cp
	return nil
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*core.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *storeRepo) NameExists(ctx context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.stores {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *storeRepo) ListByUser(ctx context.Context, userID int64) ([]*core.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Store
	for _, e := range r.s.stores {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *storeRepo) ListAll(ctx context.Context) ([]*core.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Store
	for _, e := range r.s.stores {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *storeRepo) Update(ctx context.Context, st *core.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stores[st.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *st
	r.s.stores[st.ID] = &cp
	return nil
}

func (r *storeRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stores[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.s.stores, id)
	// cascade como el FK en Postgres
	for sb := range r.s.storeBrands {
		if sb.StoreID == id {
			delete(r.s.storeBrands, sb)
		}
	}
	return nil
}

// ───────── brands ─────────

type brandRepo struct{ s *Store }

func (r *brandRepo) Create(ctx context.Context, b *core.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.brands {
		if e.Name == b.Name {
			return core.ErrConflict
		}
	}
	b.ID = r.s.nid()
	cp := *b
	r.s.brands[b.ID] = &cp
	return nil
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*core.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *brandRepo) ListAll(ctx context.Context) ([]*core.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Brand
	for _, e := range r.s.brands {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// ───────── store-brand ─────────

type storeBrandRepo struct{ s *Store }

func (r *storeBrandRepo) Get(ctx context.Context, storeID, brandID int64) (*core.StoreBrand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sb := core.StoreBrand{StoreID: storeID, BrandID: brandID}
	if !r.s.storeBrands[sb] {
		return nil, core.ErrNotFound
	}
	return &sb, nil
}

func (r *storeBrandRepo) Create(ctx context.Context, sb *core.StoreBrand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.storeBrands[*sb] {
		return core.ErrConflict
	}
	r.s.storeBrands[*sb] = true
	return nil
}

func (r *storeBrandRepo) Delete(ctx context.Context, storeID, brandID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sb := core.StoreBrand{StoreID: storeID, BrandID: brandID}
	if !r.s.storeBrands[sb] {
		return core.ErrNotFound
	}
	delete(r.s.storeBrands, sb)
	return nil
}

func (r *storeBrandRepo) ListBrandsByStore(ctx context.Context, storeID int64) ([]*core.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Brand
	for sb := range r.s.storeBrands {
		if sb.StoreID != storeID {
			continue
		}
		if b, ok := r.s.brands[sb.BrandID]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ───────── products ─────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *core.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nid()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*core.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) List(ctx context.Context, f core.ProductFilter) ([]*core.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Product
	for _, p := range r.s.products {
		if f.StoreID != nil && p.StoreID != *f.StoreID {
			continue
		}
		if f.Deleted != nil && p.Deleted != *f.Deleted {
			continue
		}
		if f.UserID != nil {
			st, ok := r.s.stores[p.StoreID]
			if !ok || st.UserID != *f.UserID {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *core.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) SetDeleted(ctx context.Context, productID int64, deleted bool, userID int64) (*core.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return nil, core.ErrNotFound
	}
	st, ok := r.s.stores[p.StoreID]
	if !ok || st.UserID != userID {
		return nil, core.ErrNotFound
	}
	p.Deleted = deleted
	cp := *p
	return &cp, nil
}

// ───────── addresses ─────────

type addressRepo struct{ s *Store }

func (r *addressRepo) Create(ctx context.Context, a *core.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.nid()
	cp := *a
	r.s.addresses[a.ID] = &cp
	return nil
}

func (r *addressRepo) GetByID(ctx context.Context, id int64) (*core.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.addresses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *addressRepo) ListByStore(ctx context.Context, storeID int64) ([]*core.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*core.Address
	for _, a := range r.s.addresses {
		if a.StoreID == storeID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *addressRepo) Update(ctx context.Context, a *core.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.addresses[a.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *a
	r.s.addresses[a.ID] = &cp
	return nil
}

func (r *addressRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.addresses[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.s.addresses, id)
	return nil
}
