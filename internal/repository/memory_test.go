package repository

import (
	"context"
	"testing"
	"time"

	"tienda/internal/domain"
)

func newProduct(name string, price float64, cat domain.Category, sizes []string, featured bool, stock int64) domain.Product {
	return domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    cat,
		Sizes:       sizes,
		Featured:    featured,
		Stock:       stock,
	}
}

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := newProduct("Camiseta Basic", 19.99, domain.CategoryCamisetas, []string{"S", "M"}, false, 5)
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = 24.99
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_DecrementStock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := newProduct("Abrigo", 189.99, domain.CategoryAbrigos, []string{"M"}, false, 5)
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", got.Stock)
	}

	// remaining stock is short, the decrement must be rejected whole
	if err := store.DecrementStock(ctx, p.ID, 3); err != ErrInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock must stay 2, got %v", got.Stock)
	}

	if err := store.DecrementStock(ctx, "missing", 1); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(name string, price float64, cat domain.Category, sizes []string, featured bool) {
		p := newProduct(name, price, cat, sizes, featured, 10)
		if err := store.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}
	add("Camiseta Oversize", 29.99, domain.CategoryCamisetas, []string{"S", "M", "L"}, true)
	add("Pantalón Cargo", 79.99, domain.CategoryPantalones, []string{"M", "L"}, false)
	add("Sneakers Urban", 119.99, domain.CategoryCalzado, []string{"40", "41"}, true)

	// category
	list, _ := store.List(ctx, ProductFilter{Category: domain.CategoryCamisetas})
	if len(list) != 1 || list[0].Name != "Camiseta Oversize" {
		t.Fatalf("category filter: %v", list)
	}

	// featured
	ft := true
	list, _ = store.List(ctx, ProductFilter{Featured: &ft})
	if len(list) != 2 {
		t.Fatalf("featured filter: %v", len(list))
	}

	// price range
	min, max := 50.0, 100.0
	list, _ = store.List(ctx, ProductFilter{MinPrice: &min, MaxPrice: &max})
	if len(list) != 1 || list[0].Name != "Pantalón Cargo" {
		t.Fatalf("price filter: %v", list)
	}

	// size membership
	list, _ = store.List(ctx, ProductFilter{Size: "41"})
	if len(list) != 1 || list[0].Name != "Sneakers Urban" {
		t.Fatalf("size filter: %v", list)
	}

	// case-insensitive search over name or description
	list, _ = store.List(ctx, ProductFilter{Search: "CARGO"})
	if len(list) != 1 || list[0].Name != "Pantalón Cargo" {
		t.Fatalf("search filter: %v", list)
	}

	// combined with AND
	list, _ = store.List(ctx, ProductFilter{Category: domain.CategoryCalzado, Size: "S"})
	if len(list) != 0 {
		t.Fatalf("combined filter must be empty: %v", list)
	}

	// no filter: newest first
	list, _ = store.List(ctx, ProductFilter{})
	if len(list) != 3 || list[0].Name != "Sneakers Urban" {
		t.Fatalf("ordering: %v", list)
	}
}

func TestMemoryCarts_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	carts := NewMemoryCarts(store)

	if _, err := carts.GetByUser(ctx, "u1"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	c := domain.Cart{UserID: "u1"}
	if err := carts.Create(ctx, &c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" || c.Items == nil {
		t.Fatalf("cart not initialised: %+v", c)
	}

	c.Items = append(c.Items, domain.CartItem{ID: "i1", ProductID: "p1", Quantity: 2, Size: "M"})
	if err := carts.Update(ctx, &c); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := carts.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("items not persisted: %+v", got.Items)
	}
}

func TestMemoryOrders_ListByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	for _, userID := range []string{"u1", "u2", "u1"} {
		o := domain.Order{UserID: userID, Status: domain.OrderStatusPending}
		if err := orders.Create(ctx, &o); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}

	mine, _ := orders.List(ctx, "u1")
	if len(mine) != 2 {
		t.Fatalf("expected 2 orders for u1, got %d", len(mine))
	}
	if mine[0].CreatedAt.Before(mine[1].CreatedAt) {
		t.Fatalf("orders must be newest first")
	}

	all, _ := orders.List(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 orders total, got %d", len(all))
	}
}

func TestMemoryTx_TransactionalCheckoutWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)
	carts := NewMemoryCarts(store)

	p := newProduct("Vestido Midi", 89.99, domain.CategoryVestidos, []string{"S"}, false, 5)
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}
	c := domain.Cart{UserID: "u1", Items: []domain.CartItem{{ID: "i1", ProductID: p.ID, Quantity: 3, Size: "S"}}}
	if err := carts.Create(ctx, &c); err != nil {
		t.Fatal(err)
	}

	// emulate atomic checkout: order insert + stock decrement + cart clear
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		o := domain.Order{UserID: "u1", Status: domain.OrderStatusPending}
		if err := orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
			return err
		}
		c.Items = []domain.CartItem{}
		return carts.Update(ctx, &c)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	pp, _ := store.GetByID(context.Background(), p.ID)
	if pp.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", pp.Stock)
	}
	cc, _ := carts.GetByUser(context.Background(), "u1")
	if len(cc.Items) != 0 {
		t.Fatalf("cart not cleared")
	}
}

func TestMemoryUsers_EmailIndex(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := NewMemoryUsers(store)

	u := domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser}
	if err := users.Create(ctx, &u); err != nil {
		t.Fatal(err)
	}

	got, err := users.GetByEmail(ctx, "ana@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("get by email: %v", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
