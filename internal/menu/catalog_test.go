package menu

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/database/databasetest"
	"pizzabot/internal/models"
)

func TestLoad_SeedsEmptyDatabaseOnce(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	catalog, err := Load(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultItems()), catalog.Len())

	again, err := Load(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, catalog.Items(), again.Items())

	var count int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&count).Error)
	assert.EqualValues(t, len(DefaultItems()), count)
}

func TestLoad_KeepsExistingRows(t *testing.T) {
	db := databasetest.Open(t)
	custom := models.MenuItem{Name: "Garlic Bread", Category: "Side", Price: 200, Tags: models.TagSet{"garlic", "bread"}}
	require.NoError(t, db.Create(&custom).Error)

	catalog, err := Load(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())

	item, ok := catalog.LookupByName("garlic bread")
	require.True(t, ok)
	assert.Equal(t, int64(200), item.Price)
	assert.Equal(t, models.Category("Side"), item.Category)
}

func TestLoad_RejectsInvalidPersistedItem(t *testing.T) {
	db := databasetest.Open(t)
	bad := models.MenuItem{Name: "Free Water", Category: models.CategoryDrink, Price: 0, Tags: models.TagSet{"water"}}
	require.NoError(t, db.Create(&bad).Error)

	_, err := Load(context.Background(), db)
	assert.True(t, models.IsConfiguration(err), "expected configuration error, got %v", err)
}

func TestNewCatalog_EmptyTagsIsConfigurationError(t *testing.T) {
	_, err := NewCatalog([]models.MenuItem{{Name: "Mystery", Price: 100}})
	assert.True(t, models.IsConfiguration(err))
}

func TestNewCatalog_DuplicateNames(t *testing.T) {
	_, err := NewCatalog([]models.MenuItem{
		{Name: "FizzUp", Price: 80, Tags: models.TagSet{"fizzup"}},
		{Name: "fizzup", Price: 90, Tags: models.TagSet{"fizzup"}},
	})
	assert.True(t, models.IsConfiguration(err))
}

func TestCatalog_TagsIncludeNameWords(t *testing.T) {
	catalog, err := NewCatalog(DefaultItems())
	require.NoError(t, err)

	for _, item := range catalog.Items() {
		for _, w := range strings.Fields(item.LowerName()) {
			assert.True(t, item.Tags.Contains(w), "%s missing tag %q", item.Name, w)
		}
	}
}

func TestCatalog_LookupByName(t *testing.T) {
	catalog, err := NewCatalog(DefaultItems())
	require.NoError(t, err)

	item, ok := catalog.LookupByName("  ZINGER burger ")
	require.True(t, ok)
	assert.Equal(t, "Zinger Burger", item.Name)

	_, ok = catalog.LookupByName("Pasta")
	assert.False(t, ok)
}

func TestCatalog_PriceRanges(t *testing.T) {
	catalog, err := NewCatalog(DefaultItems())
	require.NoError(t, err)

	ranges := catalog.PriceRanges()
	require.Len(t, ranges, 3)
	assert.Equal(t, PriceRange{Category: models.CategoryPizza, Min: 500, Max: 1500}, ranges[0])
	assert.Equal(t, PriceRange{Category: models.CategoryBurger, Min: 250, Max: 600}, ranges[1])
	assert.Equal(t, PriceRange{Category: models.CategoryDrink, Min: 80, Max: 80}, ranges[2])
}
