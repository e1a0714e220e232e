package domain

import "time"

// Category категория товара, фиксированный набор значений магазина
type Category string

const (
	CategoryCamisetas  Category = "camisetas"
	CategoryPantalones Category = "pantalones"
	CategoryVestidos   Category = "vestidos"
	CategoryAbrigos    Category = "abrigos"
	CategoryAccesorios Category = "accesorios"
	CategoryCalzado    Category = "calzado"
)

// Categories все допустимые категории
var Categories = []Category{
	CategoryCamisetas, CategoryPantalones, CategoryVestidos,
	CategoryAbrigos, CategoryAccesorios, CategoryCalzado,
}

func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Sizes все допустимые размеры (одежда и обувь)
var Sizes = []string{"XS", "S", "M", "L", "XL", "36", "37", "38", "39", "40", "41", "42"}

func ValidSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Product представляет товар каталога
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Category    Category  `json:"category" bson:"category"`
	Sizes       []string  `json:"sizes" bson:"sizes"`
	Images      []string  `json:"images" bson:"images"`
	Featured    bool      `json:"featured" bson:"featured"`
	Stock       int64     `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CartItem позиция корзины: товар + размер, не более одной на пару (товар, размер).
// Product заполняется сервисом при отдаче, в хранилище не пишется.
type CartItem struct {
	ID        string   `json:"id" bson:"_id"`
	ProductID string   `json:"productId" bson:"product"`
	Quantity  int64    `json:"quantity" bson:"quantity"`
	Size      string   `json:"size" bson:"size"`
	Product   *Product `json:"product,omitempty" bson:"-"`
}

// Cart корзина пользователя, одна на пользователя, создаётся лениво
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"user"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// OrderItem снимок товара на момент оформления: копия имени, цены и картинки,
// чтобы правки каталога не меняли историю заказов
type OrderItem struct {
	ProductID string  `json:"productId" bson:"product"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int64   `json:"quantity" bson:"quantity"`
	Size      string  `json:"size" bson:"size"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// ShippingAddress адрес доставки, все пять полей обязательны
type ShippingAddress struct {
	FullName   string `json:"fullName" bson:"fullName"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// Order заказ: неизменяем после создания, кроме статуса
type Order struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	UserID          string          `json:"userId" bson:"user"`
	Items           []OrderItem     `json:"items" bson:"items"`
	Total           float64         `json:"total" bson:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	Status          OrderStatus     `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User учётная запись; PasswordHash наружу не отдаётся
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
