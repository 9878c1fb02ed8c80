package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// tagSeparator joins tags in the menu.tags column.
const tagSeparator = ", "

// TagSet is the set of lower-cased keywords of a menu item. It is stored as a
// delimiter-joined string and keeps insertion order.
type TagSet []string

// With returns the set extended by the normalized tags that are not present yet.
func (t TagSet) With(tags ...string) TagSet {
	out := append(TagSet(nil), t...)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || out.Contains(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Contains reports whether tag is in the set.
func (t TagSet) Contains(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Value converts the set to the joined string for storage
func (t TagSet) Value() (driver.Value, error) {
	return strings.Join(t, tagSeparator), nil
}

// Scan splits the stored string back into a set
func (t *TagSet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*t = TagSet{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return errors.New("unsupported type for TagSet")
	}

	*t = TagSet{}.With(strings.Split(raw, ",")...)
	return nil
}

// OrderItem is the name and price of a menu item copied into an order when it
// is placed. Later menu changes do not touch it.
type OrderItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OrderItems is the JSON-serialized item list of an order
type OrderItems []OrderItem

// Total sums the item prices.
func (items OrderItems) Total() int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// Names lists the item names in order.
func (items OrderItems) Names() []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// Value converts the list to a JSON string for storage
func (items OrderItems) Value() (driver.Value, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan converts the database value back to a list
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return errors.New("unsupported type for OrderItems")
	}
}
