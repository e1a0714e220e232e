package repository

import (
	"context"
	"errors"
	"strings"

	"tienda/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock возвращается условным списанием, когда остатка не хватает
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductFilter параметры фильтрации каталога; критерии комбинируются через AND
type ProductFilter struct {
	Category domain.Category
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Size     string
	Search   string // подстрока в name ИЛИ description, без учёта регистра
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// List возвращает товары от новых к старым
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	// DecrementStock атомарно списывает qty, если stock >= qty,
	// иначе ErrInsufficientStock; остаток никогда не уходит в минус
	DecrementStock(ctx context.Context, id string, qty int64) error
}

// CartRepository интерфейс репозитория корзин, одна корзина на пользователя
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, c *domain.Cart) error
	Update(ctx context.Context, c *domain.Cart) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	// List возвращает заказы пользователя от новых к старым;
	// пустой userID — все заказы (админский список)
	List(ctx context.Context, userID string) ([]domain.Order, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи,
// для mongo — сессионная транзакция.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
