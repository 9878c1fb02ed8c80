package i18n

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pizzabot/internal/models"
)

// English is the fallback language for every key.
const English = "English"

// Message keys consulted by the chat engine.
const (
	KeyWelcome         = "welcome"
	KeyCheckoutHint    = "checkout_hint"
	KeyItemFound       = "item_found"
	KeyMenuSummary     = "menu_summary"
	KeyMenuLine        = "menu_line"
	KeyGeneralFallback = "general_fallback"
	KeyTrackHint       = "track_hint"
	KeyTrackFound      = "track_found"
	KeyTrackNotFound   = "track_not_found"
	KeyCancelInfo      = "cancel_info"
	KeyItemAdded       = "item_added"
	KeyNothingToAdd    = "nothing_to_add"
	KeyCartEmpty       = "cart_empty"
	KeyCartCleared     = "cart_cleared"
	KeyOrderPlaced     = "order_placed"
	KeyMissingFields   = "missing_fields"
	KeyImageCaption    = "image_caption"
	KeyWaiterPrompt    = "waiter_prompt"
	KeyReceiptHeader   = "receipt_header"
	KeyReceiptFooter   = "receipt_footer"
	KeyStatusPending   = "status_pending"
	KeyStatusCooking   = "status_cooking"
	KeyStatusDelivered = "status_delivered"
	KeyStatusCancelled = "status_cancelled"
)

// RequiredKeys must all have English text.
var RequiredKeys = []string{
	KeyWelcome, KeyCheckoutHint, KeyItemFound, KeyMenuSummary, KeyMenuLine,
	KeyGeneralFallback, KeyTrackHint, KeyTrackFound, KeyTrackNotFound, KeyCancelInfo,
	KeyItemAdded, KeyNothingToAdd, KeyCartEmpty, KeyCartCleared, KeyOrderPlaced,
	KeyMissingFields, KeyImageCaption, KeyWaiterPrompt, KeyReceiptHeader, KeyReceiptFooter,
	KeyStatusPending, KeyStatusCooking, KeyStatusDelivered, KeyStatusCancelled,
}

// Languages offered in the language picker.
var Languages = []string{
	"English", "Urdu", "Spanish", "French", "Arabic",
	"Chinese", "Hindi", "Russian", "Portuguese", "Japanese",
}

// Table maps message key to language to text.
type Table struct {
	entries map[string]map[string]string
}

// New builds a table from key → language → text entries and checks that every
// required key has an English text.
func New(entries map[string]map[string]string) (*Table, error) {
	t := &Table{entries: make(map[string]map[string]string, len(entries))}
	t.merge(entries)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the built-in table.
func Default() *Table {
	t, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return t
}

// Load returns the built-in table overridden by the YAML file at path. The
// file has the same key → language → text shape.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization file: %w", err)
	}

	var overrides map[string]map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse localization file: %w", err)
	}

	t := &Table{entries: make(map[string]map[string]string)}
	t.merge(builtin)
	t.merge(overrides)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) merge(entries map[string]map[string]string) {
	for key, langs := range entries {
		if t.entries[key] == nil {
			t.entries[key] = make(map[string]string, len(langs))
		}
		for lang, text := range langs {
			t.entries[key][normalizeLanguage(lang)] = text
		}
	}
}

// Validate reports a ConfigurationError for any required key without
// English text.
func (t *Table) Validate() error {
	var missing []string
	for _, key := range RequiredKeys {
		if t.entries[key][English] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.NewConfigurationError("localization keys without English text: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the text for key in language, falling back to English. A key
// with no English entry at all is a ConfigurationError.
func (t *Table) Get(key, language string) (string, error) {
	langs, ok := t.entries[key]
	if !ok {
		return "", models.NewConfigurationError("unknown localization key %q", key)
	}
	if text, ok := langs[normalizeLanguage(language)]; ok {
		return text, nil
	}
	if text, ok := langs[English]; ok {
		return text, nil
	}
	return "", models.NewConfigurationError("localization key %q has no English text", key)
}

// Format looks up key and substitutes {name} style placeholders from args,
// given as alternating name, value pairs.
func (t *Table) Format(key, language string, args ...string) (string, error) {
	text, err := t.Get(key, language)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return text, nil
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(text), nil
}

// HasLanguage reports whether language is one of the offered languages.
func HasLanguage(language string) bool {
	for _, lang := range Languages {
		if lang == normalizeLanguage(language) {
			return true
		}
	}
	return false
}

// normalizeLanguage maps "spanish" and " Spanish " to "Spanish". Unknown
// names are returned trimmed, so lookups simply miss and fall back.
func normalizeLanguage(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return English
	}
	for _, lang := range Languages {
		if strings.EqualFold(lang, language) {
			return lang
		}
	}
	return language
}

// NormalizeLanguage returns the canonical name of language, or English when
// it is not offered.
func NormalizeLanguage(language string) string {
	lang := normalizeLanguage(language)
	if !HasLanguage(lang) {
		return English
	}
	return lang
}
