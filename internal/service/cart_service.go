package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tienda/internal/domain"
	"tienda/internal/repository"
)

// CartService реализует операции над корзиной пользователя
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       repository.TxManager

	maxConcurrent int
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, tx repository.TxManager) *CartService {
	return &CartService{carts: carts, products: products, tx: tx, maxConcurrent: 10}
}

// GetOrCreate возвращает корзину пользователя, создавая пустую при отсутствии
func (s *CartService) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		cart = &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, cart)
}

// AddItem добавляет позицию; совпадение (товар, размер) увеличивает количество
// существующей позиции вместо дубля
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int64, size string) (*domain.Cart, error) {
	if productID == "" || quantity <= 0 || size == "" {
		return nil, fmt.Errorf("%w: productId, quantity and size are required", ErrInvalidInput)
	}

	var cart *domain.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if !hasSize(product.Sizes, size) {
			return fmt.Errorf("%w: size %q not available for this product", ErrInvalidInput, size)
		}

		cart, err = s.carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			cart = &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
			if err := s.carts.Create(ctx, cart); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID && cart.Items[i].Size == size {
				cart.Items[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, domain.CartItem{
				ID:        uuid.NewString(),
				ProductID: productID,
				Quantity:  quantity,
				Size:      size,
			})
		}
		return s.carts.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, cart)
}

// UpdateItemQuantity ставит количество позиции; значения меньше 1 поднимаются до 1
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int64) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				if quantity < 1 {
					quantity = 1
				}
				cart.Items[i].Quantity = quantity
				return s.carts.Update(ctx, cart)
			}
		}
		return fmt.Errorf("cart item: %w", repository.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, cart)
}

// RemoveItem убирает позицию; несуществующий itemID — тихий no-op
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
		return s.carts.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.resolveItems(ctx, cart)
}

// Clear опустошает корзину; идемпотентна, при отсутствии корзины отдаёт пустую
func (s *CartService) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			cart = &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
			return nil
		}
		if err != nil {
			return err
		}
		cart.Items = []domain.CartItem{}
		return s.carts.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// resolveItems подтягивает товары для отображения; удалённый товар
// оставляет позицию без Product
func (s *CartService) resolveItems(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i := range cart.Items {
		i := i
		g.Go(func() error {
			p, err := s.products.GetByID(ctx, cart.Items[i].ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			cart.Items[i].Product = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cart, nil
}

func hasSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
