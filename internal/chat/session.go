package chat

import (
	"pizzabot/internal/cart"
	"pizzabot/internal/i18n"
	"pizzabot/internal/models"
)

// Role identifies who wrote a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Session is the state of one conversation. It is handed to every Engine call
// and must not be used by two calls at once.
type Session struct {
	ID       string
	Language string
	Cart     *cart.Cart
	Log      []Message
	// CurrentItem is the item on display, added by "add to cart".
	CurrentItem *models.MenuItem
}

// NewSession creates an empty session speaking language.
func NewSession(id, language string) *Session {
	return &Session{
		ID:       id,
		Language: i18n.NormalizeLanguage(language),
		Cart:     cart.New(),
	}
}

// SetLanguage switches the reply language; unknown languages become English.
func (s *Session) SetLanguage(language string) {
	s.Language = i18n.NormalizeLanguage(language)
}

func (s *Session) record(role Role, text string) {
	s.Log = append(s.Log, Message{Role: role, Text: text})
}

// History returns a copy of the conversation log.
func (s *Session) History() []Message {
	out := make([]Message, len(s.Log))
	copy(out, s.Log)
	return out
}
