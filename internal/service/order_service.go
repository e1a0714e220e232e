package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tienda/internal/domain"
	"tienda/internal/repository"
)

var (
	// ErrNotEnoughStock заказ требует больше, чем есть на складе
	ErrNotEnoughStock = errors.New("not enough stock")
	// ErrForbidden заказ принадлежит другому пользователю
	ErrForbidden = errors.New("forbidden")
)

// OrderService реализует оформление заказа и работу с историей заказов
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       repository.TxManager
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, products repository.ProductRepository, tx repository.TxManager) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products, tx: tx}
}

func validateAddress(a domain.ShippingAddress) error {
	for name, v := range map[string]string{
		"fullName":   a.FullName,
		"address":    a.Address,
		"city":       a.City,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: shipping address field %s is required", ErrInvalidInput, name)
		}
	}
	return nil
}

// Checkout превращает корзину в заказ: снимок позиций, сумма, списание
// остатков и очистка корзины — одной транзакцией. Нехватка остатка по любой
// позиции отменяет всё оформление.
func (s *OrderService) Checkout(ctx context.Context, userID string, addr domain.ShippingAddress) (*domain.Order, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && len(cart.Items) == 0) {
			return fmt.Errorf("%w: empty cart", ErrInvalidInput)
		}
		if err != nil {
			return err
		}

		// snapshot items and pre-check stock per product before any write
		items := make([]domain.OrderItem, 0, len(cart.Items))
		qtyByProduct := make(map[string]int64)
		stockByProduct := make(map[string]int64)
		var total float64
		for _, it := range cart.Items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			image := ""
			if len(p.Images) > 0 {
				image = p.Images[0]
			}
			items = append(items, domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.Quantity,
				Size:      it.Size,
				Image:     image,
			})
			total += p.Price * float64(it.Quantity)
			qtyByProduct[p.ID] += it.Quantity
			stockByProduct[p.ID] = p.Stock
		}
		for id, qty := range qtyByProduct {
			if stockByProduct[id] < qty {
				return ErrNotEnoughStock
			}
		}

		o := domain.Order{
			UserID:          userID,
			Items:           items,
			Total:           total,
			ShippingAddress: addr,
			Status:          domain.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}

		for id, qty := range qtyByProduct {
			if err := s.products.DecrementStock(ctx, id, qty); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return ErrNotEnoughStock
				}
				return err
			}
		}

		cart.Items = []domain.CartItem{}
		if err := s.carts.Update(ctx, cart); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListOrders отдаёт админу все заказы, пользователю — только его,
// от новых к старым
func (s *OrderService) ListOrders(ctx context.Context, userID string, isAdmin bool) ([]domain.Order, error) {
	if isAdmin {
		return s.orders.List(ctx, "")
	}
	return s.orders.List(ctx, userID)
}

// GetOrder возвращает заказ владельцу или админу
func (s *OrderService) GetOrder(ctx context.Context, id, userID string, isAdmin bool) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

// UpdateStatus перезаписывает статус любым из четырёх допустимых значений.
// Монотонность переходов намеренно не проверяется.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o.Status = status
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
