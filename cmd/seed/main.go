// Наполняет mongo демо-каталогом и админской учёткой.
// Запуск: MONGO_URI=... go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/config"
	"tienda/internal/domain"
	"tienda/internal/repository"
)

var products = []domain.Product{
	{
		Name:        "Camiseta Oversize Essential",
		Description: "Camiseta de algodón orgánico corte oversize. Cómoda y versátil para el día a día.",
		Price:       29.99,
		Category:    domain.CategoryCamisetas,
		Sizes:       []string{"S", "M", "L", "XL"},
		Images:      []string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=600"},
		Featured:    true,
		Stock:       50,
	},
	{
		Name:        "Pantalón Cargo Urban",
		Description: "Pantalón cargo con múltiples bolsillos. Tela resistente y diseño urbano.",
		Price:       79.99,
		Category:    domain.CategoryPantalones,
		Sizes:       []string{"S", "M", "L", "XL"},
		Images:      []string{"https://images.unsplash.com/photo-1624378439575-d8705ad7ae80?w=600"},
		Featured:    true,
		Stock:       30,
	},
	{
		Name:        "Vestido Midi Minimal",
		Description: "Vestido midi de línea recta. Perfecto para ocasiones elegantes y casuales.",
		Price:       89.99,
		Category:    domain.CategoryVestidos,
		Sizes:       []string{"XS", "S", "M", "L"},
		Images:      []string{"https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=600"},
		Featured:    true,
		Stock:       25,
	},
	{
		Name:        "Abrigo Lana Oversize",
		Description: "Abrigo de lana merino, corte oversize. Ideal para temporada fría.",
		Price:       189.99,
		Category:    domain.CategoryAbrigos,
		Sizes:       []string{"S", "M", "L", "XL"},
		Images:      []string{"https://images.unsplash.com/photo-1539533018447-63fcce2678e3?w=600"},
		Featured:    true,
		Stock:       20,
	},
	{
		Name:        "Sneakers Urban White",
		Description: "Zapatillas urbanas en blanco. Suela de goma y diseño atemporal.",
		Price:       119.99,
		Category:    domain.CategoryCalzado,
		Sizes:       []string{"36", "37", "38", "39", "40", "41", "42"},
		Images:      []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=600"},
		Featured:    true,
		Stock:       40,
	},
	{
		Name:        "Camiseta Polo Classic",
		Description: "Polo clásico en algodón pima. Cuello ribeteado y botones.",
		Price:       45.99,
		Category:    domain.CategoryCamisetas,
		Sizes:       []string{"S", "M", "L", "XL"},
		Images:      []string{"https://images.unsplash.com/photo-1586363104862-3a5e2ab60d99?w=600"},
		Featured:    false,
		Stock:       35,
	},
	{
		Name:        "Gorro Beanie Rib",
		Description: "Gorro de punto acanalado. Un básico de invierno.",
		Price:       19.99,
		Category:    domain.CategoryAccesorios,
		Sizes:       []string{"M"},
		Images:      []string{"https://images.unsplash.com/photo-1576871337632-b9aef4c17ab9?w=600"},
		Featured:    false,
		Stock:       60,
	},
}

func main() {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	if _, err := db.Collection("products").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("wipe products: %v", err)
	}

	repo := repository.NewMongoProducts(db)
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Fatalf("insert product %q: %v", products[i].Name, err)
		}
	}
	log.Printf("inserted %d products", len(products))

	// админ создаётся один раз, повторный запуск его не трогает
	usersRepo := repository.NewMongoUsers(db)
	adminEmail := "admin@tienda.local"
	if _, err := usersRepo.GetByEmail(ctx, adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := domain.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := usersRepo.Create(ctx, &admin); err != nil {
		log.Fatalf("insert admin: %v", err)
	}
	log.Printf("admin user created: %s", adminEmail)
}
