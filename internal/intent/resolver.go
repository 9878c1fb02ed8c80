package intent

import (
	"strings"

	"pizzabot/internal/models"
)

// Intent is the classified purpose of a chat message
type Intent string

const (
	Track       Intent = "track"
	Cancel      Intent = "cancel"
	Checkout    Intent = "checkout"
	ItemInquiry Intent = "item_inquiry"
	BrowseMenu  Intent = "browse_menu"
	General     Intent = "general"
)

// All lists every intent in precedence order.
var All = []Intent{Track, Cancel, Checkout, ItemInquiry, BrowseMenu, General}

// DefaultNameBoost is added to an item's score when its full name appears in the text.
const DefaultNameBoost = 3

var (
	trackWords   = []string{"track", "status"}
	cancelWords  = []string{"cancel"}
	paymentWords = []string{"pay", "bill", "checkout", "money"}
	menuWords    = []string{"menu", "list", "show"}
	// removed from the text to leave the order lookup key
	trackNoise = []string{"track", "order"}
)

// Catalog is the menu the resolver scores against.
type Catalog interface {
	Items() []models.MenuItem
}

// Resolution is the outcome of resolving one message.
type Resolution struct {
	Intent Intent
	// Item is set when an item scored at least 1, whatever the intent.
	Item  *models.MenuItem
	Score int
	// TrackQuery is the order lookup key for Track.
	TrackQuery string
}

// Option configures a Resolver
type Option func(*Resolver)

// WithNameBoost sets the full-name bonus. Values below DefaultNameBoost are ignored.
func WithNameBoost(boost int) Option {
	return func(r *Resolver) {
		if boost >= DefaultNameBoost {
			r.nameBoost = boost
		}
	}
}

// WithPaymentKeywords adds payment-provider keywords that signal checkout.
func WithPaymentKeywords(keywords ...string) Option {
	return func(r *Resolver) {
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				r.paymentWords = append(r.paymentWords, kw)
			}
		}
	}
}

// Resolver classifies free text into an intent and a menu item. Matching is
// plain substring search over lower-cased text: short tags match inside longer
// words and, on equal scores, the item seen first in catalog order wins.
type Resolver struct {
	nameBoost    int
	paymentWords []string
}

// New creates a resolver with the default name boost and payment keywords.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		nameBoost:    DefaultNameBoost,
		paymentWords: append([]string(nil), paymentWords...),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NameBoost returns the configured full-name bonus.
func (r *Resolver) NameBoost() int {
	return r.nameBoost
}

// Resolve runs the intent checks in fixed precedence: track, cancel, checkout,
// item inquiry, browse menu, general. The first one that fires decides.
func (r *Resolver) Resolve(text string, catalog Catalog) Resolution {
	lower := strings.ToLower(text)

	var res Resolution
	if item, score, ok := r.MatchItem(lower, catalog.Items()); ok {
		res.Item = &item
		res.Score = score
	}

	switch {
	case containsAny(lower, trackWords):
		res.Intent = Track
		res.TrackQuery = TrackQuery(lower)
	case containsAny(lower, cancelWords):
		res.Intent = Cancel
	case containsAny(lower, r.paymentWords):
		res.Intent = Checkout
	case res.Item != nil:
		res.Intent = ItemInquiry
	case containsAny(lower, menuWords):
		res.Intent = BrowseMenu
	default:
		res.Intent = General
	}
	return res
}

// MatchItem scores every item against text: one point per tag found as a
// substring plus the name boost when the full name is found. The strictly
// highest score wins and must be at least 1.
func (r *Resolver) MatchItem(text string, items []models.MenuItem) (models.MenuItem, int, bool) {
	text = strings.ToLower(text)

	best := -1
	bestScore := 0
	for i := range items {
		score := r.Score(text, &items[i])
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < 1 {
		return models.MenuItem{}, 0, false
	}
	return items[best], bestScore, true
}

// Score computes the match score of one item against already lower-cased text.
func (r *Resolver) Score(text string, item *models.MenuItem) int {
	score := 0
	for _, tag := range item.Tags {
		if tag != "" && strings.Contains(text, tag) {
			score++
		}
	}
	if name := item.LowerName(); name != "" && strings.Contains(text, name) {
		score += r.nameBoost
	}
	return score
}

// TrackQuery strips "track" and "order" from text and returns the trimmed
// remainder with inner whitespace collapsed.
func TrackQuery(text string) string {
	q := strings.ToLower(text)
	for _, noise := range trackNoise {
		q = strings.ReplaceAll(q, noise, " ")
	}
	return strings.Join(strings.Fields(q), " ")
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
