package cart

import (
	"sync"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

// Line is a cart entry: a product snapshot plus quantity and an optional
// selected flavor. Two lines with the same product but different flavors are
// distinct entries.
type Line struct {
	Product        domain.Product `json:"product"`
	Quantity       int            `json:"quantity"`
	SelectedFlavor string         `json:"selectedFlavor,omitempty"`
}

// Cart is the in-memory ordered ledger of lines for one session. State is
// not persisted across restarts. A small lock keeps concurrent requests for
// the same session safe; there is still logically one writer per session.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddToCart merges on the (product id, flavor) key: an existing line gets its
// quantity bumped by one, otherwise a new line with quantity 1 is appended.
func (c *Cart) AddToCart(product domain.Product, flavor string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID && c.lines[i].SelectedFlavor == flavor {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: 1, SelectedFlavor: flavor})
}

// RemoveFromCart removes every line matching the product id, regardless of
// flavor. Flavor-insensitive removal is intentional; per-flavor removal
// would need the flavor added to the key here.
func (c *Cart) RemoveFromCart(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// UpdateQuantity sets the quantity on lines matching the product id.
// A quantity of zero or below removes the line entirely; a line is never
// kept at quantity zero.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
		}
	}
}

// Clear empties the ledger, called after a successful order placement
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// TotalItems is the sum of quantities across all lines
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the cart subtotal: sum of price times quantity. No delivery
// fee or coupon discount is applied here.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, line := range c.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the ledger in insertion order
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot converts the ledger into order item records for placement
func (c *Cart) Snapshot() domain.OrderItems {
	lines := c.Lines()
	items := make(domain.OrderItems, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID:      line.Product.ID,
			Name:           line.Product.Name,
			NameAr:         line.Product.NameAr,
			Price:          line.Product.Price,
			Quantity:       line.Quantity,
			SelectedFlavor: line.SelectedFlavor,
			Image:          line.Product.Image,
		})
	}
	return items
}
