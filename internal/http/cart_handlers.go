package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
}

type updateCartItemReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Get cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Cart
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	userID, _ := currentUser(c)
	cart, err := s.cart.GetOrCreate(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Add cart item
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addCartItemReq true "Item"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	userID, _ := currentUser(c)
	cart, err := s.cart.AddItem(c, userID, req.ProductID, req.Quantity, req.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Update cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Param input body updateCartItemReq true "Quantity"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Router /cart/items/{itemId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	userID, _ := currentUser(c)
	cart, err := s.cart.UpdateItemQuantity(c, userID, c.Param("itemId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Router /cart/items/{itemId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	userID, _ := currentUser(c)
	cart, err := s.cart.RemoveItem(c, userID, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Clear cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Cart
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	userID, _ := currentUser(c)
	cart, err := s.cart.Clear(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
