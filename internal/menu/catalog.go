package menu

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/gorm"

	"pizzabot/internal/logger"
	"pizzabot/internal/models"
)

// DefaultItems is the menu seeded into an empty database.
func DefaultItems() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Large Pizza", Category: models.CategoryPizza, Price: 1500, ImagePath: "large_pizza.png", Tags: models.TagSet{"large", "pizza", "cheesy"}},
		{Name: "Medium Pizza", Category: models.CategoryPizza, Price: 1000, ImagePath: "medium_pizza.png", Tags: models.TagSet{"medium", "pizza"}},
		{Name: "Small Pizza", Category: models.CategoryPizza, Price: 500, ImagePath: "small_pizza.png", Tags: models.TagSet{"small", "pizza"}},
		{Name: "Zinger Burger", Category: models.CategoryBurger, Price: 600, ImagePath: "zinger_burger.png", Tags: models.TagSet{"zinger", "burger", "crispy"}},
		{Name: "Chicken Burger", Category: models.CategoryBurger, Price: 250, ImagePath: "normal_chicken_burger.png", Tags: models.TagSet{"chicken", "burger", "classic", "normal"}},
		{Name: "Special Burger", Category: models.CategoryBurger, Price: 380, ImagePath: "special_chicken_burger.png", Tags: models.TagSet{"special", "burger"}},
		{Name: "Cola Next", Category: models.CategoryDrink, Price: 80, ImagePath: "cola_drink.png", Tags: models.TagSet{"cola", "drink", "soda", "next"}},
		{Name: "FizzUp", Category: models.CategoryDrink, Price: 80, ImagePath: "cola_drink.png", Tags: models.TagSet{"fizzup", "drink"}},
	}
}

// Catalog is the in-memory menu for the lifetime of the process. Items are
// kept in database id order, which is also the order the resolver scores them.
type Catalog struct {
	items  []models.MenuItem
	byName map[string]int
}

// NewCatalog validates and normalizes items. An item with no tags or a
// non-positive price is a ConfigurationError.
func NewCatalog(items []models.MenuItem) (*Catalog, error) {
	c := &Catalog{
		items:  make([]models.MenuItem, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if err := models.ValidateMenuItem(&item); err != nil {
			return nil, err
		}
		item.Normalize()

		key := item.LowerName()
		if _, dup := c.byName[key]; dup {
			return nil, models.NewConfigurationError("duplicate menu item %q", item.Name)
		}
		c.byName[key] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Load seeds the default menu if the table is empty and builds a Catalog from
// the persisted rows. Calling it again returns the same rows.
func Load(ctx context.Context, db *gorm.DB) (*Catalog, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	if count == 0 {
		tx := db.Begin()
		for _, item := range DefaultItems() {
			item := item
			if err := tx.Create(&item).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to seed menu item %s: %w", item.Name, err)
			}
		}
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("failed to commit menu seed: %w", err)
		}
		log.WithField("items", len(DefaultItems())).Info("Menu seeded")
	}

	var items []models.MenuItem
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return NewCatalog(items)
}

// Items returns a copy of the menu in catalog order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// LookupByName finds an item by its full name, ignoring case.
func (c *Catalog) LookupByName(name string) (models.MenuItem, bool) {
	idx, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[idx], true
}

// LookupByID finds an item by its database id.
func (c *Catalog) LookupByID(id uint) (models.MenuItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// PriceRange is the cheapest and dearest price of a category.
type PriceRange struct {
	Category models.Category `json:"category"`
	Min      int64           `json:"min"`
	Max      int64           `json:"max"`
}

// PriceRanges summarizes the menu per category, in order of first appearance.
func (c *Catalog) PriceRanges() []PriceRange {
	index := make(map[models.Category]int)
	var ranges []PriceRange
	for _, item := range c.items {
		i, ok := index[item.Category]
		if !ok {
			index[item.Category] = len(ranges)
			ranges = append(ranges, PriceRange{Category: item.Category, Min: item.Price, Max: item.Price})
			continue
		}
		if item.Price < ranges[i].Min {
			ranges[i].Min = item.Price
		}
		if item.Price > ranges[i].Max {
			ranges[i].Max = item.Price
		}
	}
	return ranges
}

// Categories returns the distinct categories sorted by name.
func (c *Catalog) Categories() []models.Category {
	seen := make(map[models.Category]bool)
	var out []models.Category
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
