package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pizzabot/internal/chat"
	"pizzabot/internal/menu"
	"pizzabot/internal/models"
	"pizzabot/internal/monitoring"
	"pizzabot/internal/session"
)

// TokenHeader carries the session token on session-bound routes.
const TokenHeader = "X-Session-Token"

// OrderService is the order store as the dashboard uses it.
type OrderService interface {
	ListAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (models.Order, error)
	FindByNameFuzzy(ctx context.Context, query string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
}

// MenuView is the catalog as served to clients.
type MenuView interface {
	Items() []models.MenuItem
	LookupByID(id uint) (models.MenuItem, bool)
	PriceRanges() []menu.PriceRange
	Categories() []models.Category
}

// Options holds the server collaborators.
type Options struct {
	Engine   *chat.Engine
	Sessions *session.Registry
	Orders   OrderService
	Menu     MenuView
	Metrics  *monitoring.Metrics
	Logger   logrus.FieldLogger
	Currency string
}

// Server represents the HTTP API for chat, cart, checkout and the order dashboard
type Server struct {
	router   *gin.Engine
	engine   *chat.Engine
	sessions *session.Registry
	orders   OrderService
	menu     MenuView
	metrics  *monitoring.Metrics
	log      logrus.FieldLogger
	currency string
}

// NewServer creates a new API server instance
func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	s := &Server{
		router:   gin.New(),
		engine:   opts.Engine,
		sessions: opts.Sessions,
		orders:   opts.Orders,
		menu:     opts.Menu,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		currency: opts.Currency,
	}

	s.router.Use(gin.Recovery(), requestLogger(s.log), observeRequests(s.metrics))
	s.setupRoutes()
	return s
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Metrics returns the collectors the server records into.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Pizza Hut chat API is running"})
	})
	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	{
		// Conversation
		v1.POST("/sessions", s.CreateSession)
		v1.GET("/languages", s.ListLanguages)
		v1.GET("/menu", s.GetMenu)
		v1.GET("/menu/:id", s.GetMenuItem)
		v1.POST("/chat", s.Chat)

		// Cart and checkout
		v1.GET("/cart", s.GetCart)
		v1.POST("/cart/items", s.AddCartItem)
		v1.DELETE("/cart", s.ClearCart)
		v1.POST("/checkout", s.Checkout)

		// Order dashboard
		v1.GET("/orders", s.ListOrders)
		v1.GET("/orders/search", s.SearchOrders)
		v1.GET("/orders/:id", s.GetOrder)
		v1.PUT("/orders/:id/status", s.UpdateOrderStatus)

		v1.GET("/metrics", s.GetMetrics)
		v1.DELETE("/metrics", s.ResetMetrics)
	}
}

// GetMetrics returns the dashboard snapshot of service counters.
func (s *Server) GetMetrics(c *gin.Context) {
	s.metrics.SetActiveSessions(s.sessions.Len())
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

// ResetMetrics clears the dashboard snapshot.
func (s *Server) ResetMetrics(c *gin.Context) {
	s.metrics.ResetSnapshot()
	c.Status(http.StatusNoContent)
}
