package cart

import (
	"pizzabot/internal/models"
)

// Item is the snapshot of a menu item held in a cart.
type Item struct {
	MenuItemID uint   `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ImagePath  string `json:"image"`
}

// FromMenuItem snapshots the fields a cart needs.
func FromMenuItem(mi models.MenuItem) Item {
	return Item{
		MenuItemID: mi.ID,
		Name:       mi.Name,
		Price:      mi.Price,
		ImagePath:  mi.ImagePath,
	}
}

// Cart is the per-conversation list of selected items. It is owned by one
// session and is not safe for concurrent use.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends item; the same item may be added more than once.
func (c *Cart) Add(item Item) {
	c.items = append(c.items, item)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total sums the item prices.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// OrderItems converts the cart into the snapshots stored with an order.
func (c *Cart) OrderItems() models.OrderItems {
	out := make(models.OrderItems, len(c.items))
	for i, item := range c.items {
		out[i] = models.OrderItem{Name: item.Name, Price: item.Price}
	}
	return out
}
