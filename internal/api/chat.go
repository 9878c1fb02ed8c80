package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizzabot/internal/cart"
	"pizzabot/internal/chat"
	"pizzabot/internal/i18n"
	"pizzabot/internal/models"
)

type createSessionRequest struct {
	Language string `json:"language"`
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type addItemRequest struct {
	// Name of the menu item; empty adds the item on display.
	Name string `json:"name"`
}

type cartView struct {
	Items          []cart.Item      `json:"items"`
	Total          int64            `json:"total"`
	Currency       string           `json:"currency"`
	CurrentItem    *models.MenuItem `json:"current_item,omitempty"`
	PaymentMethods []string         `json:"payment_methods"`
}

// withSession runs fn on the session named by the request token. fn writes
// the success response; errors are mapped by respondError.
func (s *Server) withSession(c *gin.Context, fn func(*chat.Session) error) {
	token := tokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": TokenHeader + " header required"})
		return
	}
	if err := s.sessions.With(token, fn); err != nil {
		respondError(c, err)
	}
}

func (s *Server) cartView(sess *chat.Session) cartView {
	return cartView{
		Items:          sess.Cart.Items(),
		Total:          sess.Cart.Total(),
		Currency:       s.currency,
		CurrentItem:    sess.CurrentItem,
		PaymentMethods: s.engine.PaymentMethods(),
	}
}

// CreateSession starts a conversation and returns its token and greeting.
func (s *Server) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess, token, err := s.sessions.Create(req.Language)
	if err != nil {
		respondError(c, err)
		return
	}

	var welcome chat.Reply
	err = s.sessions.With(token, func(sess *chat.Session) error {
		welcome, err = s.engine.Welcome(sess)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":           token,
		"session_id":      sess.ID,
		"language":        sess.Language,
		"welcome":         welcome,
		"payment_methods": s.engine.PaymentMethods(),
	})
}

// ListLanguages returns the selectable reply languages.
func (s *Server) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": i18n.Languages, "default": i18n.English})
}

// GetMenu returns the catalog, its categories and per-category price ranges.
func (s *Server) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":        s.menu.Items(),
		"categories":   s.menu.Categories(),
		"price_ranges": s.menu.PriceRanges(),
		"currency":     s.currency,
	})
}

// GetMenuItem returns one menu item. Returns 404 if the item does not exist.
func (s *Server) GetMenuItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found := s.menu.LookupByID(id)
	if !found {
		respondError(c, fmt.Errorf("menu item %d: %w", id, models.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, item)
}

// Chat answers one message in the caller's session.
func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.withSession(c, func(sess *chat.Session) error {
		if req.Language != "" {
			sess.SetLanguage(req.Language)
		}
		reply, err := s.engine.Handle(c.Request.Context(), sess, req.Message)
		if err != nil {
			return err
		}
		s.metrics.ObserveIntent(string(reply.Intent))
		c.JSON(http.StatusOK, reply)
		return nil
	})
}

// GetCart returns the session cart.
func (s *Server) GetCart(c *gin.Context) {
	s.withSession(c, func(sess *chat.Session) error {
		c.JSON(http.StatusOK, s.cartView(sess))
		return nil
	})
}

// AddCartItem adds the named item, or the item on display, to the cart.
func (s *Server) AddCartItem(c *gin.Context) {
	var req addItemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.withSession(c, func(sess *chat.Session) error {
		var (
			reply chat.Reply
			err   error
		)
		if req.Name == "" {
			reply, err = s.engine.AddCurrentItem(sess)
		} else {
			reply, err = s.engine.AddItem(sess, req.Name)
		}
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply, "cart": s.cartView(sess)})
		return nil
	})
}

// ClearCart empties the session cart.
func (s *Server) ClearCart(c *gin.Context) {
	s.withSession(c, func(sess *chat.Session) error {
		reply, err := s.engine.ClearCart(sess)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply, "cart": s.cartView(sess)})
		return nil
	})
}

// Checkout places the cart as an order and returns the receipt.
func (s *Server) Checkout(c *gin.Context) {
	var form chat.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.withSession(c, func(sess *chat.Session) error {
		receipt, err := s.engine.Checkout(c.Request.Context(), sess, form)
		if err != nil {
			return err
		}
		s.metrics.ObserveOrderCreated(receipt.OrderID, receipt.Total)
		c.JSON(http.StatusCreated, receipt)
		return nil
	})
}

// tokenFromRequest reads the session token from the header or, for browser
// websockets, the token query parameter.
func tokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader(TokenHeader); token != "" {
		return token
	}
	return c.Query("token")
}
