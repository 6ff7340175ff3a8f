package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/microshop-platform/shopctl/internal/models"
)

// RegisterRequest is the account creation payload. Role is optional and
// defaults to CUSTOMER.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// ProductInput is the create/update payload for catalog entries.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload: " + err.Error()})
		return
	}

	user, err := s.store.CreateUser(req.Name, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	c.JSON(http.StatusCreated, user)
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListUsers())
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListProducts())
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product id must be a number"})
		return
	}

	product, ok := s.store.GetProduct(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) searchProducts(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Query parameter 'category' is required"})
		return
	}

	matched := s.store.SearchProducts(category)
	if matched == nil {
		matched = []models.Product{}
	}
	c.JSON(http.StatusOK, matched)
}

// requireAdmin runs after requireAuth and rejects non-admin accounts.
func (s *Server) requireAdmin(c *gin.Context) {
	claims := c.MustGet("claims").(*tokenClaims)
	if claims.Role != string(models.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Administrator access required"})
		return
	}
	c.Next()
}

func (s *Server) createProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload: " + err.Error()})
		return
	}

	product := s.store.CreateProduct(input)
	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("Product created")
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product id must be a number"})
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload: " + err.Error()})
		return
	}

	product, ok := s.store.UpdateProduct(id, input)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product id must be a number"})
		return
	}

	if !s.store.DeleteProduct(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	s.logger.Info().Int64("product_id", id).Msg("Product deleted")
	c.Status(http.StatusNoContent)
}
