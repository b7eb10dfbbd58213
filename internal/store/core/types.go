package core

// User es la identidad de cuenta. PasswordHash es un PHC autodescriptivo y
// nunca se serializa hacia afuera ni se loguea.
//
// RecoveryToken está multiplexado entre confirmación de email y reset de
// password: "" es el estado canónico "sin token activo"; un valor no vacío
// es un secreto random de un solo uso. EmailConfirmed sólo transiciona
// false -> true, nunca al revés.
type User struct {
	ID             int64
	Email          string
	PasswordHash   string
	EmailConfirmed bool
	RecoveryToken  string
	FirstName      string
	LastName       string
	AvatarURL      string
}

type Store struct {
	ID      int64
	UserID  int64 // dueño
	Name    string
	LogoURL string
	Active  bool
}

type Brand struct {
	ID   int64
	Name string
}

// StoreBrand es la relación many-to-many tienda<->marca: qué marcas lleva
// cada tienda. No tiene id propio; la clave es el par (StoreID, BrandID).
type StoreBrand struct {
	StoreID int64
	BrandID int64
}

type Product struct {
	ID       int64
	StoreID  int64
	BrandID  int64
	Name     string
	Price    float64
	ImageURL string
	Deleted  bool // soft delete
}

type Address struct {
	ID      int64
	StoreID int64
	Line    string
	City    string
	State   string
	ZipCode string
	Active  bool
}

// ProductFilter filtra el listado de productos. Punteros nil = sin filtro.
// UserID restringe a productos de tiendas del usuario (para dueños).
type ProductFilter struct {
	StoreID *int64
	Deleted *bool
	UserID  *int64
}
