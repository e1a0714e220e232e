package service

import (
	"context"
	"errors"
	"testing"

	"tienda/internal/domain"
	"tienda/internal/repository"
)

func TestCatalog_CreateValidation(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	base := domain.Product{
		Name:        "Camiseta",
		Description: "desc",
		Price:       29.99,
		Category:    domain.CategoryCamisetas,
		Sizes:       []string{"S", "M"},
		Stock:       5,
	}

	if _, err := e.catalog.Create(ctx, base); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	bad := base
	bad.Name = ""
	if _, err := e.catalog.Create(ctx, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name must fail, got %v", err)
	}

	bad = base
	bad.Price = -1
	if _, err := e.catalog.Create(ctx, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative price must fail, got %v", err)
	}

	bad = base
	bad.Category = "electronics"
	if _, err := e.catalog.Create(ctx, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown category must fail, got %v", err)
	}

	bad = base
	bad.Sizes = []string{"S", "XXXL"}
	if _, err := e.catalog.Create(ctx, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown size must fail, got %v", err)
	}

	bad = base
	bad.Stock = -5
	if _, err := e.catalog.Create(ctx, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative stock must fail, got %v", err)
	}
}

func TestCatalog_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := seedProduct(t, e, "Camiseta", 29.99, []string{"M"}, 5)

	upd := *p
	upd.Price = 34.99
	got, err := e.catalog.Update(ctx, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Price != 34.99 {
		t.Fatalf("price not updated: %v", got.Price)
	}

	missing := upd
	missing.ID = "missing"
	if _, err := e.catalog.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := e.catalog.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := e.catalog.Delete(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("double delete must be not found, got %v", err)
	}
}

func TestCatalog_ListPassesFilter(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	seedProduct(t, e, "Camiseta Polo", 45.99, []string{"M"}, 5)
	seedProduct(t, e, "Camiseta Basic", 19.99, []string{"M"}, 5)

	list, err := e.catalog.List(ctx, repository.ProductFilter{Search: "polo"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Camiseta Polo" {
		t.Fatalf("filter not applied: %+v", list)
	}
}
