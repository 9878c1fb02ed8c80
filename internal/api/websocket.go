package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pizzabot/internal/chat"
	"pizzabot/internal/logger"
	"pizzabot/internal/models"
)

const (
	wsReadLimit    = 64 * 1024
	wsPongWait     = 60 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the chat widget may be served from another origin
	},
}

// wsRequest is one client frame. Type is "chat" (default), "add" or "clear".
type wsRequest struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Name     string `json:"name"`
}

// wsResponse is one server frame.
type wsResponse struct {
	Type  string      `json:"type"`
	Reply *chat.Reply `json:"reply,omitempty"`
	Error string      `json:"error,omitempty"`
	Field string      `json:"field,omitempty"`
}

// wsConnection serializes writes from the read loop and the pinger.
type wsConnection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConnection) send(resp wsResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.conn.WriteJSON(resp)
}

func (w *wsConnection) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// handleWebSocket serves the chat over a websocket bound to one session.
func (s *Server) handleWebSocket(c *gin.Context) {
	token := tokenFromRequest(c)
	if _, err := s.sessions.ParseToken(token); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Warn("Failed to upgrade connection")
		return
	}
	ws := &wsConnection{conn: conn}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go s.pingLoop(ctx, ws)

	s.readLoop(ctx, ws, token)
}

func (s *Server) pingLoop(ctx context.Context, ws *wsConnection) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.ping(); err != nil {
				return
			}
		}
	}
}

func (s *Server) readLoop(ctx context.Context, ws *wsConnection, token string) {
	log := logger.FromContext(ctx)

	ws.conn.SetReadLimit(wsReadLimit)
	ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var req wsRequest
		if err := ws.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("WebSocket error")
			}
			return
		}
		ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))

		resp := s.handleFrame(ctx, token, req)
		if err := ws.send(resp); err != nil {
			log.WithError(err).Warn("Failed to write websocket frame")
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, token string, req wsRequest) wsResponse {
	var reply chat.Reply
	err := s.sessions.With(token, func(sess *chat.Session) error {
		if req.Language != "" {
			sess.SetLanguage(req.Language)
		}
		var err error
		switch req.Type {
		case "", "chat":
			reply, err = s.engine.Handle(ctx, sess, req.Message)
			if err == nil {
				s.metrics.ObserveIntent(string(reply.Intent))
			}
		case "add":
			if req.Name == "" {
				reply, err = s.engine.AddCurrentItem(sess)
			} else {
				reply, err = s.engine.AddItem(sess, req.Name)
			}
		case "clear":
			reply, err = s.engine.ClearCart(sess)
		default:
			err = models.NewValidationError("type", "unknown frame type "+req.Type)
		}
		return err
	})
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return wsResponse{Type: "error", Error: verr.Message, Field: verr.Field}
		}
		logger.FromContext(ctx).WithError(err).Error("Failed to handle websocket frame")
		return wsResponse{Type: "error", Error: err.Error()}
	}
	return wsResponse{Type: "reply", Reply: &reply}
}
