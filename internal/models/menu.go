package models

import (
	"strings"
)

// Category groups menu items on the menu board
type Category string

const (
	// Menu categories
	CategoryPizza  Category = "Pizza"
	CategoryBurger Category = "Burger"
	CategoryDrink  Category = "Drink"
)

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID        uint     `gorm:"primary_key" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	Category  Category `gorm:"not null" json:"category"`
	Price     int64    `gorm:"not null" json:"price"`
	ImagePath string   `gorm:"column:image_path" json:"image"`
	Tags      TagSet   `gorm:"type:text" json:"tags"`
}

// TableName sets the table name for MenuItem
func (MenuItem) TableName() string {
	return "menu"
}

// Normalize lower-cases and trims the tag set and merges in the words of the
// item's name, so every item can be matched by its own name.
func (mi *MenuItem) Normalize() {
	mi.Tags = TagSet{}.With(mi.Tags...).With(strings.Fields(mi.Name)...)
}

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return NewConfigurationError("menu item %d has no name", item.ID)
	}
	if item.Price <= 0 {
		return NewConfigurationError("menu item %q price must be greater than 0, got %d", item.Name, item.Price)
	}
	if len(item.Tags) == 0 {
		return NewConfigurationError("menu item %q has no tags", item.Name)
	}
	return nil
}

// LowerName returns the name as it is compared against chat text.
func (mi *MenuItem) LowerName() string {
	return strings.ToLower(strings.TrimSpace(mi.Name))
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category Category) bool {
	return strings.EqualFold(string(mi.Category), string(category))
}
