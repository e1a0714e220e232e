package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tienda/internal/auth"
	"tienda/internal/domain"
	"tienda/internal/repository"
)

type env struct {
	store   *repository.MemoryStore
	catalog *CatalogService
	cart    *CartService
	orders  *OrderService
	auth    *AuthService
}

func setup(t *testing.T) *env {
	t.Helper()
	store := repository.NewMemoryStore()
	carts := repository.NewMemoryCarts(store)
	ordersRepo := repository.NewMemoryOrders(store)
	users := repository.NewMemoryUsers(store)
	tx := repository.NewMemoryTx(store)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return &env{
		store:   store,
		catalog: NewCatalogService(store, nil),
		cart:    NewCartService(carts, store, tx),
		orders:  NewOrderService(ordersRepo, carts, store, tx),
		auth:    NewAuthService(users, tokens),
	}
}

func seedProduct(t *testing.T, e *env, name string, price float64, sizes []string, stock int64) *domain.Product {
	t.Helper()
	p, err := e.catalog.Create(context.Background(), domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    domain.CategoryCamisetas,
		Sizes:       sizes,
		Images:      []string{"https://img.example/" + name + ".jpg"},
		Stock:       stock,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

var testAddr = domain.ShippingAddress{
	FullName:   "Ana García",
	Address:    "Calle Mayor 1",
	City:       "Madrid",
	PostalCode: "28001",
	Country:    "ES",
}

func TestCheckout_HappyPath(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"S", "M"}, 10)

	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 2, "M"); err != nil {
		t.Fatalf("add item: %v", err)
	}

	o, err := e.orders.Checkout(ctx, "u1", testAddr)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("status expected pending, got %v", o.Status)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 || o.Items[0].Size != "M" {
		t.Fatalf("snapshot items wrong: %+v", o.Items)
	}
	if o.Items[0].Name != "Camiseta" || o.Items[0].Image == "" {
		t.Fatalf("snapshot must copy name and first image: %+v", o.Items[0])
	}
	if o.Total != 59.98 {
		t.Fatalf("total expected 59.98, got %v", o.Total)
	}

	// stock decremented
	pp, _ := e.store.GetByID(ctx, p.ID)
	if pp.Stock != 8 {
		t.Fatalf("stock expected 8, got %v", pp.Stock)
	}

	// cart is empty afterwards
	cart, err := e.cart.GetOrCreate(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart must be empty after checkout: %+v", cart.Items)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	if _, err := e.orders.Checkout(ctx, "u1", testAddr); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error on missing cart, got %v", err)
	}

	// explicitly cleared cart behaves the same
	if _, err := e.cart.Clear(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Checkout(ctx, "u1", testAddr); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error on empty cart, got %v", err)
	}

	if list, _ := e.orders.ListOrders(ctx, "u1", false); len(list) != 0 {
		t.Fatalf("no order must be created: %v", list)
	}
}

func TestCheckout_IncompleteAddress(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 10)
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 1, "M"); err != nil {
		t.Fatal(err)
	}

	addr := testAddr
	addr.PostalCode = "  "
	if _, err := e.orders.Checkout(ctx, "u1", addr); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// nothing was touched
	pp, _ := e.store.GetByID(ctx, p.ID)
	if pp.Stock != 10 {
		t.Fatalf("stock must be untouched, got %v", pp.Stock)
	}
	cart, _ := e.cart.GetOrCreate(ctx, "u1")
	if len(cart.Items) != 1 {
		t.Fatalf("cart must be untouched: %+v", cart.Items)
	}
}

func TestCheckout_RejectsOversell(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 5)

	// first checkout of 3 succeeds, stock 5 -> 2
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 3, "M"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Checkout(ctx, "u1", testAddr); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	pp, _ := e.store.GetByID(ctx, p.ID)
	if pp.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", pp.Stock)
	}

	// second checkout of 3 must be rejected whole, stock never goes negative
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 3, "M"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Checkout(ctx, "u1", testAddr); !errors.Is(err, ErrNotEnoughStock) {
		t.Fatalf("expected not enough stock, got %v", err)
	}
	pp, _ = e.store.GetByID(ctx, p.ID)
	if pp.Stock != 2 {
		t.Fatalf("stock must stay 2, got %v", pp.Stock)
	}

	// the failed checkout left the cart intact and created no second order
	cart, _ := e.cart.GetOrCreate(ctx, "u1")
	if len(cart.Items) != 1 {
		t.Fatalf("cart must survive a failed checkout: %+v", cart.Items)
	}
	list, _ := e.orders.ListOrders(ctx, "u1", false)
	if len(list) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(list))
	}
}

func TestCheckout_TotalImmuneToPriceChange(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 10)
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 2, "M"); err != nil {
		t.Fatal(err)
	}
	o, err := e.orders.Checkout(ctx, "u1", testAddr)
	if err != nil {
		t.Fatal(err)
	}

	// repricing the product must not touch the created order
	upd := *p
	upd.Price = 99.99
	if _, err := e.catalog.Update(ctx, upd); err != nil {
		t.Fatal(err)
	}

	got, err := e.orders.GetOrder(ctx, o.ID, "u1", false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 59.98 || got.Items[0].Price != 29.99 {
		t.Fatalf("order snapshot changed: total=%v price=%v", got.Total, got.Items[0].Price)
	}
}

func TestGetOrder_Ownership(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 10)
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 1, "M"); err != nil {
		t.Fatal(err)
	}
	o, err := e.orders.Checkout(ctx, "u1", testAddr)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.orders.GetOrder(ctx, o.ID, "u2", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for another user, got %v", err)
	}
	if _, err := e.orders.GetOrder(ctx, o.ID, "u2", true); err != nil {
		t.Fatalf("admin must see any order: %v", err)
	}
	if _, err := e.orders.GetOrder(ctx, "missing", "u1", false); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListOrders_AdminSeesAll(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 10)
	for _, user := range []string{"u1", "u2"} {
		if _, err := e.cart.AddItem(ctx, user, p.ID, 1, "M"); err != nil {
			t.Fatal(err)
		}
		if _, err := e.orders.Checkout(ctx, user, testAddr); err != nil {
			t.Fatal(err)
		}
	}

	mine, _ := e.orders.ListOrders(ctx, "u1", false)
	if len(mine) != 1 {
		t.Fatalf("user must see only own orders, got %d", len(mine))
	}
	all, _ := e.orders.ListOrders(ctx, "u1", true)
	if len(all) != 2 {
		t.Fatalf("admin must see all orders, got %d", len(all))
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 10)
	if _, err := e.cart.AddItem(ctx, "u1", p.ID, 1, "M"); err != nil {
		t.Fatal(err)
	}
	o, err := e.orders.Checkout(ctx, "u1", testAddr)
	if err != nil {
		t.Fatal(err)
	}

	upd, err := e.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if upd.Status != domain.OrderStatusShipped {
		t.Fatalf("status expected shipped, got %v", upd.Status)
	}

	// transitions are deliberately non-monotonic
	upd, err = e.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusPending)
	if err != nil || upd.Status != domain.OrderStatusPending {
		t.Fatalf("backwards transition must be accepted: %v %v", err, upd)
	}

	if _, err := e.orders.UpdateStatus(ctx, o.ID, "misplaced"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
	if _, err := e.orders.UpdateStatus(ctx, "missing", domain.OrderStatusPaid); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
