package domain

import "time"

// Cart is the per-session aggregate of line items. One cart per user;
// it is never shared across sessions, so the methods are not locked.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges the quantity into an existing line with the same
// (product, variant) key, or appends a new line.
func (c *Cart) AddItem(item LineItem) {
	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the quantity of the line with the given key.
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID int64, variant string, quantity int32) {
	if quantity <= 0 {
		c.RemoveItem(productID, variant)
		return
	}
	key := LineKey{ProductID: productID, Variant: variant}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// RemoveItem deletes the line with the given key. Removing a line that
// does not exist is a no-op.
func (c *Cart) RemoveItem(productID int64, variant string) {
	key := LineKey{ProductID: productID, Variant: variant}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int32 {
	var n int32
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
