package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/menu"
	"pizzabot/internal/models"
)

type staticCatalog []models.MenuItem

func (c staticCatalog) Items() []models.MenuItem { return c }

func defaultCatalog(t *testing.T) *menu.Catalog {
	t.Helper()
	catalog, err := menu.NewCatalog(menu.DefaultItems())
	require.NoError(t, err)
	return catalog
}

func TestResolve_LargePizzaScenario(t *testing.T) {
	catalog := staticCatalog{{ID: 1, Name: "Large Pizza", Price: 1500, Tags: models.TagSet{"large", "pizza"}}}

	res := New().Resolve("I want a large pizza", catalog)

	require.NotNil(t, res.Item)
	assert.Equal(t, "Large Pizza", res.Item.Name)
	assert.Equal(t, ItemInquiry, res.Intent)
	assert.Equal(t, 1+1+DefaultNameBoost, res.Score)
}

func TestResolve_Precedence(t *testing.T) {
	catalog := defaultCatalog(t)
	r := New(WithPaymentKeywords("jazzcash"))

	tests := []struct {
		text string
		want Intent
	}{
		{"track order Ali", Track},
		{"what is the status of my pizza", Track},
		{"cancel my zinger burger", Cancel},
		{"track and cancel", Track},
		{"pay now", Checkout},
		{"Can I pay for the large pizza?", Checkout},
		{"checkout please", Checkout},
		{"I will send money via JazzCash", Checkout},
		{"jazzcash", Checkout},
		{"one zinger burger", ItemInquiry},
		{"show me a cola", ItemInquiry},
		{"show me the menu", BrowseMenu},
		{"list", BrowseMenu},
		{"hello there", General},
		{"", General},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.text, catalog).Intent)
		})
	}
}

func TestResolve_PayNowIgnoresCart(t *testing.T) {
	res := New().Resolve("pay now", defaultCatalog(t))
	assert.Equal(t, Checkout, res.Intent)
	assert.Nil(t, res.Item)
}

func TestResolve_TrackQuery(t *testing.T) {
	res := New().Resolve("Track Order   Ali Khan ", defaultCatalog(t))
	assert.Equal(t, Track, res.Intent)
	assert.Equal(t, "ali khan", res.TrackQuery)

	res = New().Resolve("track order", defaultCatalog(t))
	assert.Equal(t, "", res.TrackQuery)
}

func TestMatchItem_EveryTagAloneMatches(t *testing.T) {
	r := New()
	for _, item := range defaultCatalog(t).Items() {
		for _, tag := range item.Tags {
			single := staticCatalog{item}
			got, score, ok := r.MatchItem(tag, single)
			require.True(t, ok, "tag %q of %s did not match", tag, item.Name)
			assert.GreaterOrEqual(t, score, 1)
			assert.Equal(t, item.Name, got.Name)
		}
	}
}

func TestMatchItem_FirstSeenWinsTies(t *testing.T) {
	catalog := defaultCatalog(t)
	// "burger" alone scores 1 for every burger; Zinger is first in catalog order
	item, score, ok := New().MatchItem("burger", catalog.Items())
	require.True(t, ok)
	assert.Equal(t, 1, score)
	assert.Equal(t, "Zinger Burger", item.Name)
}

func TestMatchItem_FullNameBeatsTags(t *testing.T) {
	catalog := defaultCatalog(t)
	item, _, ok := New().MatchItem("a special burger please", catalog.Items())
	require.True(t, ok)
	assert.Equal(t, "Special Burger", item.Name)
}

func TestMatchItem_NoMatch(t *testing.T) {
	_, _, ok := New().MatchItem("good evening", defaultCatalog(t).Items())
	assert.False(t, ok)
}

func TestWithNameBoost_IgnoresSmallValues(t *testing.T) {
	assert.Equal(t, DefaultNameBoost, New(WithNameBoost(1)).NameBoost())
	assert.Equal(t, 5, New(WithNameBoost(5)).NameBoost())
}

func TestTrackQuery(t *testing.T) {
	assert.Equal(t, "ali", TrackQuery("track order Ali"))
	assert.Equal(t, "12", TrackQuery("TRACK 12"))
	assert.Equal(t, "status sara", TrackQuery("status sara"))
}
