package catalog_test

import (
	"context"
	"testing"

	"github.com/dropDatabas3/dotcart/internal/cache"
	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/store/core"
	"github.com/dropDatabas3/dotcart/internal/store/memory"
)

func seedStore(t *testing.T, repo *memory.Store, userID int64, name string) *core.Store {
	t.Helper()
	st := &core.Store{UserID: userID, Name: name, Active: true}
	if err := repo.Stores().Create(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	return st
}

func seedBrand(t *testing.T, repo *memory.Store, name string) *core.Brand {
	t.Helper()
	b := &core.Brand{Name: name}
	if err := repo.Brands().Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestStoreService_CreateUniqueName(t *testing.T) {
	repo := memory.New()
	svc := &catalog.StoreService{Stores: repo.Stores()}
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "Kiosco Centro", "", true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, 2, "Kiosco Centro", "", true); err != catalog.ErrNameTaken {
		t.Fatalf("got %v, want ErrNameTaken", err)
	}
	if _, err := svc.Create(ctx, 1, "   ", "", true); err != catalog.ErrNameRequired {
		t.Fatalf("got %v, want ErrNameRequired", err)
	}
}

func TestStoreService_UpdateOwnershipAndRename(t *testing.T) {
	repo := memory.New()
	svc := &catalog.StoreService{Stores: repo.Stores()}
	ctx := context.Background()

	mine := seedStore(t, repo, 1, "Mía")
	seedStore(t, repo, 2, "Ajena")

	// actualizar tienda de otro: not-found, sin revelar que existe
	if _, err := svc.Update(ctx, mine.ID, 2, "Robada", "", true); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	// renombrar a un nombre tomado choca
	if _, err := svc.Update(ctx, mine.ID, 1, "Ajena", "", true); err != catalog.ErrNameTaken {
		t.Fatalf("got %v, want ErrNameTaken", err)
	}
	// renombrar manteniendo el propio nombre no choca consigo mismo
	if _, err := svc.Update(ctx, mine.ID, 1, "Mía", "logo.png", false); err != nil {
		t.Fatal(err)
	}
}

func TestStoreService_DeleteOwnerOnly(t *testing.T) {
	repo := memory.New()
	svc := &catalog.StoreService{Stores: repo.Stores()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")
	if err := svc.Delete(ctx, st.ID, 2); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, st.ID, 1); err != nil {
		t.Fatal(err)
	}
}

func TestProductService_ValidateRefs(t *testing.T) {
	repo := memory.New()
	svc := &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")
	other := seedStore(t, repo, 2, "Ajena")
	b := seedBrand(t, repo, "Acme")

	// tienda de otro usuario
	if _, err := svc.Create(ctx, 1, &core.Product{StoreID: other.ID, BrandID: b.ID, Name: "X"}); err != catalog.ErrInvalidRefs {
		t.Fatalf("got %v, want ErrInvalidRefs", err)
	}
	// marca inexistente
	if _, err := svc.Create(ctx, 1, &core.Product{StoreID: st.ID, BrandID: 999, Name: "X"}); err != catalog.ErrInvalidRefs {
		t.Fatalf("got %v, want ErrInvalidRefs", err)
	}
	// nombre vacío
	if _, err := svc.Create(ctx, 1, &core.Product{StoreID: st.ID, BrandID: b.ID, Name: " "}); err != catalog.ErrProductNameRequired {
		t.Fatalf("got %v, want ErrProductNameRequired", err)
	}

	p, err := svc.Create(ctx, 1, &core.Product{StoreID: st.ID, BrandID: b.ID, Name: "Gaseosa", Price: 3.5})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 {
		t.Fatal("product id not assigned")
	}
}

func TestProductService_SoftDeleteOwnerGated(t *testing.T) {
	repo := memory.New()
	svc := &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")
	b := seedBrand(t, repo, "Acme")
	p, err := svc.Create(ctx, 1, &core.Product{StoreID: st.ID, BrandID: b.ID, Name: "Gaseosa"})
	if err != nil {
		t.Fatal(err)
	}

	// otro usuario no puede borrar
	if _, err := svc.SetDeletionStatus(ctx, p.ID, true, 2); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	deleted, err := svc.SetDeletionStatus(ctx, p.ID, true, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted.Deleted {
		t.Fatal("product not marked deleted")
	}

	// el soft delete es reversible
	restored, err := svc.SetDeletionStatus(ctx, p.ID, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Deleted {
		t.Fatal("product still deleted after restore")
	}
}

func TestProductService_ListFilters(t *testing.T) {
	repo := memory.New()
	svc := &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}
	ctx := context.Background()

	st1 := seedStore(t, repo, 1, "Mía")
	st2 := seedStore(t, repo, 2, "Ajena")
	b := seedBrand(t, repo, "Acme")

	mustCreate := func(userID int64, p *core.Product) *core.Product {
		out, err := svc.Create(ctx, userID, p)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	pa := mustCreate(1, &core.Product{StoreID: st1.ID, BrandID: b.ID, Name: "A"})
	mustCreate(1, &core.Product{StoreID: st1.ID, BrandID: b.ID, Name: "B"})
	mustCreate(2, &core.Product{StoreID: st2.ID, BrandID: b.ID, Name: "C"})
	if _, err := svc.SetDeletionStatus(ctx, pa.ID, true, 1); err != nil {
		t.Fatal(err)
	}

	fFalse := false
	visible, err := svc.List(ctx, core.ProductFilter{StoreID: &st1.ID, Deleted: &fFalse})
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 1 || visible[0].Name != "B" {
		t.Fatalf("visible = %v", visible)
	}

	uid := int64(1)
	mine, err := svc.List(ctx, core.ProductFilter{UserID: &uid})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("mine = %d products, want 2", len(mine))
	}
}

func TestBrandService_CacheReadThrough(t *testing.T) {
	repo := memory.New()
	cc := cache.NewMemory("test:", 0)
	svc := &catalog.BrandService{Brands: repo.Brands(), Cache: cc}
	ctx := context.Background()

	seedBrand(t, repo, "Acme")

	first, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d brands", len(first))
	}

	// alta detrás del servicio: invisible hasta invalidar
	seedBrand(t, repo, "Globex")
	cached, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 1 {
		t.Fatalf("cache miss: got %d brands, want stale 1", len(cached))
	}

	// crear vía el servicio invalida el cache
	if _, err := svc.Create(ctx, "Initech"); err != nil {
		t.Fatal(err)
	}
	fresh, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 3 {
		t.Fatalf("got %d brands after invalidation, want 3", len(fresh))
	}
}

func TestProductService_UpdateCannotStealProduct(t *testing.T) {
	repo := memory.New()
	svc := &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}
	ctx := context.Background()

	mine := seedStore(t, repo, 1, "Mía")
	other := seedStore(t, repo, 2, "Ajena")
	b := seedBrand(t, repo, "Acme")

	p, err := svc.Create(ctx, 2, &core.Product{StoreID: other.ID, BrandID: b.ID, Name: "Gaseosa"})
	if err != nil {
		t.Fatal(err)
	}

	// re-apuntar un producto ajeno a una tienda propia: not-found
	if _, err := svc.Update(ctx, p.ID, 1, &core.Product{StoreID: mine.ID, BrandID: b.ID, Name: "Robada"}); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	// el dueño sí puede actualizar
	upd, err := svc.Update(ctx, p.ID, 2, &core.Product{StoreID: other.ID, BrandID: b.ID, Name: "Gaseosa 2L", Price: 5})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Name != "Gaseosa 2L" {
		t.Fatalf("name = %q", upd.Name)
	}
}

func TestBrandService_AssignOwnerGated(t *testing.T) {
	repo := memory.New()
	svc := &catalog.BrandService{Brands: repo.Brands(), Stores: repo.Stores(), StoreBrands: repo.StoreBrands()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")
	b := seedBrand(t, repo, "Acme")

	// tienda de otro usuario: not-found
	if _, err := svc.Assign(ctx, 2, st.ID, b.ID); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	// marca inexistente: not-found
	if _, err := svc.Assign(ctx, 1, st.ID, 999); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	sb, err := svc.Assign(ctx, 1, st.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sb.StoreID != st.ID || sb.BrandID != b.ID {
		t.Fatalf("store-brand = %+v", sb)
	}

	// asignar dos veces es idempotente
	again, err := svc.Assign(ctx, 1, st.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.StoreID != st.ID || again.BrandID != b.ID {
		t.Fatalf("store-brand = %+v", again)
	}

	carried, err := svc.ListByStore(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(carried) != 1 || carried[0].Name != "Acme" {
		t.Fatalf("carried = %v", carried)
	}
}

func TestBrandService_Unassign(t *testing.T) {
	repo := memory.New()
	svc := &catalog.BrandService{Brands: repo.Brands(), Stores: repo.Stores(), StoreBrands: repo.StoreBrands()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")
	b := seedBrand(t, repo, "Acme")

	// sin relación previa: not-found
	if _, err := svc.Unassign(ctx, 1, st.ID, b.ID); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if _, err := svc.Assign(ctx, 1, st.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	// otro usuario no puede desasignar
	if _, err := svc.Unassign(ctx, 2, st.ID, b.ID); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	sb, err := svc.Unassign(ctx, 1, st.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sb.StoreID != st.ID || sb.BrandID != b.ID {
		t.Fatalf("store-brand = %+v", sb)
	}

	carried, err := svc.ListByStore(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(carried) != 0 {
		t.Fatalf("carried = %v after unassign", carried)
	}
}

func TestAddressService_OwnershipGate(t *testing.T) {
	repo := memory.New()
	svc := &catalog.AddressService{Addresses: repo.Addresses(), Stores: repo.Stores()}
	ctx := context.Background()

	st := seedStore(t, repo, 1, "Mía")

	if _, err := svc.Create(ctx, 2, &core.Address{StoreID: st.ID, Line: "Calle 1"}); err != core.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	a, err := svc.Create(ctx, 1, &core.Address{StoreID: st.ID, Line: "Calle 1", City: "Córdoba", Active: true})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ListByStore(ctx, st.ID, 2); err != core.ErrNotFound {
		t.Fatalf("list: got %v, want ErrNotFound", err)
	}
	list, err := svc.ListByStore(ctx, st.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d addresses", len(list))
	}

	if err := svc.Delete(ctx, a.ID, 2); err != core.ErrNotFound {
		t.Fatalf("delete: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, a.ID, 1); err != nil {
		t.Fatal(err)
	}
}
