package chat

import (
	"fmt"
	"strconv"
	"strings"

	"pizzabot/internal/generation"
	"pizzabot/internal/i18n"
	"pizzabot/internal/intent"
	"pizzabot/internal/menu"
	"pizzabot/internal/models"
)

// minTrackQuery is the shortest name key worth a lookup.
const minTrackQuery = 3

// Menu is the catalog view the chat layer needs.
type Menu interface {
	Items() []models.MenuItem
	PriceRanges() []menu.PriceRange
	LookupByName(name string) (models.MenuItem, bool)
}

// ResponseBuilder turns a resolution into localized reply text. It holds no
// per-conversation state.
type ResponseBuilder struct {
	table    *i18n.Table
	menu     Menu
	currency string
}

// NewResponseBuilder creates a builder over table and menu.
func NewResponseBuilder(table *i18n.Table, m Menu, currency string) *ResponseBuilder {
	return &ResponseBuilder{table: table, menu: m, currency: currency}
}

// Currency returns the currency label used in prices.
func (b *ResponseBuilder) Currency() string {
	return b.currency
}

// Table returns the localization table.
func (b *ResponseBuilder) Table() *i18n.Table {
	return b.table
}

// Build produces the reply for res. For Track, orders are the lookup result,
// newest first. General always yields the static fallback; see General for
// generated replies.
func (b *ResponseBuilder) Build(res intent.Resolution, language string, orders []models.Order) (string, error) {
	switch res.Intent {
	case intent.Track:
		return b.track(res.TrackQuery, language, orders)
	case intent.Cancel:
		return b.table.Get(i18n.KeyCancelInfo, language)
	case intent.Checkout:
		return b.table.Get(i18n.KeyCheckoutHint, language)
	case intent.ItemInquiry:
		if res.Item == nil {
			return "", fmt.Errorf("item inquiry without an item")
		}
		return b.table.Format(i18n.KeyItemFound, language,
			"name", res.Item.Name,
			"price", formatPrice(res.Item.Price),
			"currency", b.currency,
		)
	case intent.BrowseMenu:
		return b.MenuSummary(language)
	default:
		return b.table.Get(i18n.KeyGeneralFallback, language)
	}
}

// General returns the generated text when gen succeeded and the localized
// fallback otherwise.
func (b *ResponseBuilder) General(language string, gen generation.Result) (string, error) {
	if gen.OK() {
		return gen.Text, nil
	}
	return b.table.Get(i18n.KeyGeneralFallback, language)
}

// NeedsLookup reports whether a track key is specific enough to query orders:
// an order number, or a name of at least three characters.
func NeedsLookup(query string) bool {
	query = strings.TrimSpace(query)
	if _, ok := ParseOrderID(query); ok {
		return true
	}
	return len([]rune(query)) >= minTrackQuery
}

// ParseOrderID reads a track key such as "12" or "#12" as an order id.
func ParseOrderID(query string) (uint, bool) {
	query = strings.TrimPrefix(strings.TrimSpace(query), "#")
	if query == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(query, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (b *ResponseBuilder) track(query, language string, orders []models.Order) (string, error) {
	if !NeedsLookup(query) {
		return b.table.Get(i18n.KeyTrackHint, language)
	}
	if len(orders) == 0 {
		return b.table.Format(i18n.KeyTrackNotFound, language, "query", query)
	}

	latest := orders[0]
	status, err := b.StatusText(latest.Status, language)
	if err != nil {
		return "", err
	}
	return b.table.Format(i18n.KeyTrackFound, language,
		"id", strconv.FormatUint(uint64(latest.ID), 10),
		"customer", latest.CustomerName,
		"status", status,
		"total", formatPrice(latest.TotalAmount),
		"currency", b.currency,
		"items", strings.Join(latest.Items.Names(), ", "),
	)
}

// StatusText localizes an order status.
func (b *ResponseBuilder) StatusText(status models.OrderStatus, language string) (string, error) {
	var key string
	switch status {
	case models.OrderStatusPending:
		key = i18n.KeyStatusPending
	case models.OrderStatusCooking:
		key = i18n.KeyStatusCooking
	case models.OrderStatusDelivered:
		key = i18n.KeyStatusDelivered
	case models.OrderStatusCancelled:
		key = i18n.KeyStatusCancelled
	default:
		return string(status), nil
	}
	return b.table.Get(key, language)
}

// MenuSummary lists each category with its price range.
func (b *ResponseBuilder) MenuSummary(language string) (string, error) {
	ranges := b.menu.PriceRanges()
	lines := make([]string, 0, len(ranges))
	for _, r := range ranges {
		prices := formatPrice(r.Min)
		if r.Max != r.Min {
			prices += "-" + formatPrice(r.Max)
		}
		line, err := b.table.Format(i18n.KeyMenuLine, language,
			"category", string(r.Category),
			"prices", prices,
		)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return b.table.Format(i18n.KeyMenuSummary, language, "ranges", strings.Join(lines, ", "))
}

// WaiterPrompt is the prompt sent to the text generator for small talk.
func (b *ResponseBuilder) WaiterPrompt(language, input string) (string, error) {
	items := b.menu.Items()
	entries := make([]string, len(items))
	for i, item := range items {
		entries[i] = fmt.Sprintf("%s (%s)", item.Name, formatPrice(item.Price))
	}
	return b.table.Format(i18n.KeyWaiterPrompt, i18n.English,
		"language", language,
		"menu", strings.Join(entries, ", "),
		"input", input,
	)
}

// ImageCaption is the caption shown under an item picture.
func (b *ResponseBuilder) ImageCaption(item models.MenuItem, language string) (string, error) {
	return b.table.Format(i18n.KeyImageCaption, language,
		"name", item.Name,
		"price", formatPrice(item.Price),
		"currency", b.currency,
	)
}

func formatPrice(p int64) string {
	return strconv.FormatInt(p, 10)
}
