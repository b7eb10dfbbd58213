package core

import "context"

// Repository es la capa de persistencia genérica. Las operaciones devuelven
// ErrNotFound / ErrConflict; cualquier otro error es transitorio y se
// propaga sin reintentos (la capa llamadora decide la política).
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	Users() UserRepository
	Stores() StoreRepository
	Brands() BrandRepository
	StoreBrands() StoreBrandRepository
	Products() ProductRepository
	Addresses() AddressRepository
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByEmail compara case-insensitive.
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// Update persiste password_hash, email_confirmed, recovery_token y
	// los campos de perfil. La atomicidad read-modify-write del token la
	// gobierna esta capa.
	Update(ctx context.Context, u *User) error
}

type StoreRepository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id int64) (*Store, error)
	NameExists(ctx context.Context, name string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*Store, error)
	ListAll(ctx context.Context) ([]*Store, error)
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id int64) error
}

type BrandRepository interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id int64) (*Brand, error)
	ListAll(ctx context.Context) ([]*Brand, error)
}

type StoreBrandRepository interface {
	Get(ctx context.Context, storeID, brandID int64) (*StoreBrand, error)
	// Create devuelve ErrConflict si el par ya existe.
	Create(ctx context.Context, sb *StoreBrand) error
	Delete(ctx context.Context, storeID, brandID int64) error
	ListBrandsByStore(ctx context.Context, storeID int64) ([]*Brand, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	// SetDeleted cambia el soft-delete sólo si el producto pertenece a una
	// tienda del usuario; ErrNotFound en caso contrario.
	SetDeleted(ctx context.Context, productID int64, deleted bool, userID int64) (*Product, error)
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	GetByID(ctx context.Context, id int64) (*Address, error)
	ListByStore(ctx context.Context, storeID int64) ([]*Address, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id int64) error
}
