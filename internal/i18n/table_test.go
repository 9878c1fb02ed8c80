package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/models"
)

func TestDefault_HasEveryRequiredKey(t *testing.T) {
	table := Default()
	for _, key := range RequiredKeys {
		text, err := table.Get(key, English)
		require.NoError(t, err, key)
		assert.NotEmpty(t, text, key)
	}
}

func TestGet_FallsBackToEnglish(t *testing.T) {
	table := Default()

	spanish, err := table.Get(KeyCartEmpty, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Tu carrito está vacío.", spanish)

	// Japanese has no entry for this key
	japanese, err := table.Get(KeyCartEmpty, "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "Your cart is empty.", japanese)

	// unknown language
	klingon, err := table.Get(KeyCartEmpty, "Klingon")
	require.NoError(t, err)
	assert.Equal(t, "Your cart is empty.", klingon)
}

func TestGet_LanguageIsCaseInsensitive(t *testing.T) {
	text, err := Default().Get(KeyCartEmpty, " spanish ")
	require.NoError(t, err)
	assert.Equal(t, "Tu carrito está vacío.", text)
}

func TestGet_UnknownKeyIsConfigurationError(t *testing.T) {
	_, err := Default().Get("no_such_key", English)
	assert.True(t, models.IsConfiguration(err))
}

func TestNew_MissingEnglishIsConfigurationError(t *testing.T) {
	entries := map[string]map[string]string{}
	for k, v := range builtin {
		entries[k] = v
	}
	entries[KeyCartEmpty] = map[string]string{"Spanish": "Tu carrito está vacío."}

	_, err := New(entries)
	require.Error(t, err)
	assert.True(t, models.IsConfiguration(err))
	assert.Contains(t, err.Error(), KeyCartEmpty)
}

func TestFormat_SubstitutesPlaceholders(t *testing.T) {
	text, err := Default().Format(KeyItemFound, English, "name", "Large Pizza", "price", "1500", "currency", "PKR")
	require.NoError(t, err)
	assert.Equal(t, "Here is your Large Pizza (1500 PKR). You can add it to your cart! 👉", text)
}

func TestLoad_OverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.yaml")
	content := "cart_empty:\n  English: Nothing here yet.\n  japanese: カートは空です。\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := Load(path)
	require.NoError(t, err)

	english, err := table.Get(KeyCartEmpty, English)
	require.NoError(t, err)
	assert.Equal(t, "Nothing here yet.", english)

	japanese, err := table.Get(KeyCartEmpty, "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "カートは空です。", japanese)

	// untouched keys keep the built-in text
	spanish, err := table.Get(KeyCartEmpty, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Tu carrito está vacío.", spanish)
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "French", NormalizeLanguage("french"))
	assert.Equal(t, English, NormalizeLanguage(""))
	assert.Equal(t, English, NormalizeLanguage("Klingon"))
}
