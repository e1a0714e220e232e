package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tienda/internal/cache"
	"tienda/internal/domain"
	"tienda/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

const productCacheTTL = 5 * time.Minute

// CatalogService инкапсулирует бизнес-логику каталога.
// cache опционален: при nil сервис ходит только в репозиторий.
type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache) *CatalogService {
	return &CatalogService{repo: repo, cache: c}
}

func validateProduct(p domain.Product) error {
	if p.Name == "" || p.Description == "" {
		return fmt.Errorf("%w: name and description are required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	}
	if !domain.ValidCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	for _, s := range p.Sizes {
		if !domain.ValidSize(s) {
			return fmt.Errorf("%w: unknown size %q", ErrInvalidInput, s)
		}
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty product id", ErrInvalidInput)
	}
	if p := s.cacheGet(ctx, id); p != nil {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, p)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: empty product id", ErrInvalidInput)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	s.cacheDel(ctx, p.ID)
	return &cp, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty product id", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDel(ctx, id)
	return nil
}

func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}

// cache helpers: ошибки кэша не фатальны, пишем warn и идём в репозиторий
func (s *CatalogService) cacheGet(ctx context.Context, id string) *domain.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.GenerateKey("product", id))
	if err != nil {
		slog.WarnContext(ctx, "product cache get failed", "id", id, "err", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func (s *CatalogService) cacheSet(ctx context.Context, p *domain.Product) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey("product", p.ID), raw, productCacheTTL); err != nil {
		slog.WarnContext(ctx, "product cache set failed", "id", p.ID, "err", err)
	}
}

func (s *CatalogService) cacheDel(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.GenerateKey("product", id)); err != nil {
		slog.WarnContext(ctx, "product cache del failed", "id", id, "err", err)
	}
}
