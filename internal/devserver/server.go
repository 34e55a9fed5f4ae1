package devserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tradebinder/tradebinder/pkg/types"
)

// Server is a stub marketplace API for local development and integration
// tests. It implements every endpoint the client consumes over an
// in-memory dataset; nothing is persisted.
type Server struct {
	router *gin.Engine

	mu          sync.Mutex
	users       []types.User
	products    []types.Product
	collections []types.Collection
	inventory   map[string][]string
}

// New builds a stub server seeded with the given fixtures.
func New(fixtures *FixtureSet) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors())

	s := &Server{
		router:    router,
		inventory: make(map[string][]string),
	}
	if fixtures != nil {
		s.users = append(s.users, fixtures.Users...)
		s.products = append(s.products, fixtures.Products...)
		s.collections = append(s.collections, fixtures.Collections...)
		for userID, productIDs := range fixtures.Inventory {
			s.inventory[userID] = append([]string(nil), productIDs...)
		}
	}

	s.setupRoutes()
	return s
}

// Handler exposes the router for httptest-based callers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails.
func (s *Server) Start(addr string) error {
	logrus.WithField("address", addr).Info("starting stub marketplace server")
	if err := s.router.Run(addr); err != nil {
		return fmt.Errorf("stub marketplace server failed: %w", err)
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/users/:id", s.getUser)
	s.router.PATCH("/users/:id", s.updateUser)
	s.router.GET("/users/:id/inventory", s.getInventory)
	s.router.PATCH("/users/:id/inventory/:productId", s.addToInventory)
	s.router.DELETE("/users/:id/inventory/:productId", s.removeFromInventory)

	s.router.GET("/products", s.listProducts)
	s.router.GET("/products/:id", s.getProduct)
	s.router.POST("/products", s.createProduct)

	s.router.GET("/collections/user/:userId", s.listUserCollections)
	s.router.POST("/collections", s.createCollection)
	s.router.PATCH("/collections/:id/toggle-favorite", s.toggleFavorite)
	s.router.DELETE("/collections/:id", s.deleteCollection)
	s.router.POST("/collections/:id/add", s.addCard)
	s.router.DELETE("/collections/:id/remove/:cardId", s.removeCard)
	s.router.GET("/collections/:id/contains/:cardId", s.containsCard)
}

func (s *Server) findUser(id string) *types.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Server) findProduct(id string) *types.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *Server) findCollection(id string) *types.Collection {
	for i := range s.collections {
		if s.collections[i].ID == id {
			return &s.collections[i]
		}
	}
	return nil
}

func (s *Server) getUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(c.Param("id"))
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var patch types.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(c.Param("id"))
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	patch.Apply(user)
	c.JSON(http.StatusOK, user)
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := append([]types.Product{}, s.products...)
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.findProduct(c.Param("id"))
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "product name is required"})
		return
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, product)
	c.JSON(http.StatusCreated, product)
}

func (s *Server) listUserCollections(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := c.Param("userId")
	collections := []types.Collection{}
	for _, col := range s.collections {
		if col.OwnerID == userID {
			collections = append(collections, col)
		}
	}
	c.JSON(http.StatusOK, collections)
}

func (s *Server) createCollection(c *gin.Context) {
	var collection types.Collection
	if err := c.ShouldBindJSON(&collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if collection.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "collection name is required"})
		return
	}

	collection.ID = uuid.NewString()
	collection.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if collection.Cards == nil {
		collection.Cards = []types.CollectionItem{}
	}
	collection.CardCount = len(collection.Cards)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = append(s.collections, collection)
	c.JSON(http.StatusCreated, collection)
}

func (s *Server) toggleFavorite(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.findCollection(c.Param("id"))
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "collection not found"})
		return
	}
	collection.IsFavorite = !collection.IsFavorite
	c.JSON(http.StatusOK, collection)
}

func (s *Server) deleteCollection(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	for i := range s.collections {
		if s.collections[i].ID == id {
			s.collections = append(s.collections[:i], s.collections[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "collection not found"})
}

func (s *Server) addCard(c *gin.Context) {
	var payload struct {
		CardID string `json:"cardId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.CardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cardId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.findCollection(c.Param("id"))
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "collection not found"})
		return
	}
	if collection.ContainsCard(payload.CardID) {
		c.JSON(http.StatusConflict, gin.H{"message": "card already in collection"})
		return
	}

	collection.Cards = append(collection.Cards, types.CollectionItem{
		ProductID: payload.CardID,
		DateAdded: time.Now().UTC().Format(time.RFC3339),
	})
	collection.CardCount = len(collection.Cards)
	c.JSON(http.StatusOK, collection)
}

func (s *Server) removeCard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.findCollection(c.Param("id"))
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "collection not found"})
		return
	}

	cardID := c.Param("cardId")
	kept := []types.CollectionItem{}
	for _, item := range collection.Cards {
		if item.ProductID != cardID {
			kept = append(kept, item)
		}
	}
	collection.Cards = kept
	collection.CardCount = len(kept)
	c.Status(http.StatusNoContent)
}

func (s *Server) containsCard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.findCollection(c.Param("id"))
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "collection not found"})
		return
	}
	c.JSON(http.StatusOK, types.ContainsResponse{
		Contains: collection.ContainsCard(c.Param("cardId")),
	})
}

func (s *Server) getInventory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := c.Param("id")
	if s.findUser(userID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	products := []types.Product{}
	for _, productID := range s.inventory[userID] {
		if p := s.findProduct(productID); p != nil {
			products = append(products, *p)
		}
	}
	c.JSON(http.StatusOK, types.InventoryResponse{Inventory: products})
}

func (s *Server) addToInventory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := c.Param("id")
	productID := c.Param("productId")
	if s.findUser(userID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if s.findProduct(productID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}

	for _, id := range s.inventory[userID] {
		if id == productID {
			// already associated, keep the call idempotent
			c.Status(http.StatusNoContent)
			return
		}
	}
	s.inventory[userID] = append(s.inventory[userID], productID)
	c.Status(http.StatusNoContent)
}

func (s *Server) removeFromInventory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := c.Param("id")
	productID := c.Param("productId")
	if s.findUser(userID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	kept := s.inventory[userID][:0:0]
	for _, id := range s.inventory[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.inventory[userID] = kept
	c.Status(http.StatusNoContent)
}
