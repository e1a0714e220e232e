package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tienda/internal/auth"
	"tienda/internal/service"
)

type Server struct {
	engine  *gin.Engine
	authSvc *service.AuthService
	catalog *service.CatalogService
	cart    *service.CartService
	orders  *service.OrderService
	tokens  *auth.TokenIssuer
}

func NewServer(
	authSvc *service.AuthService,
	catalog *service.CatalogService,
	cart *service.CartService,
	orders *service.OrderService,
	tokens *auth.TokenIssuer,
	frontendURL string,
) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), CORS(frontendURL))
	s := &Server{
		engine:  r,
		authSvc: authSvc,
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		tokens:  tokens,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// public
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)

	// authenticated
	authed := api.Group("/", RequireAuth(s.tokens))
	{
		authed.GET("/auth/me", s.me)

		cart := authed.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items/:itemId", s.updateCartItem)
		cart.DELETE("/items/:itemId", s.removeCartItem)
		cart.DELETE("", s.clearCart)

		orders := authed.Group("/orders")
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.POST("", s.checkout)
	}

	// admin only
	admin := api.Group("/", RequireAuth(s.tokens), RequireAdmin())
	{
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.DELETE("/products/:id", s.deleteProduct)
		admin.PATCH("/orders/:id/status", s.updateOrderStatus)
	}
}
