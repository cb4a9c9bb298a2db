// Package cart implements the client-side shopping cart model for the
// storefront kit: carts keyed by ID, their line items, coupons, and
// locally recalculated totals.
//
// The cart is a pure data holder with straight-line recalculation logic.
// It never talks to the network itself: mutations that must reach the
// server are expressed as dispatch requests by the host, and carts are
// refreshed from API responses via Load.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Item is a single cart line: a concrete SKU of a product, its quantity,
// and the unit prices the UI displays. Variations records the option
// selections the SKU was assembled from.
type Item struct {
	SKU        string            `json:"sku"`
	PID        string            `json:"pid"`
	Name       string            `json:"prod_name"`
	Qty        int               `json:"qty"`
	BasePrice  float64           `json:"base_price"`
	Price      float64           `json:"price"`
	Variations map[string]string `json:"variations,omitempty"`
}

// Summary holds the cart's running totals. ItemsTotal and BalanceDue are
// recalculated locally after every mutation; shipping, tax, and discount
// totals arrive from the server and are carried through untouched.
type Summary struct {
	ItemsTotal    float64 `json:"items_total"`
	ShippingTotal float64 `json:"shipping_total"`
	TaxTotal      float64 `json:"tax_total"`
	DiscountTotal float64 `json:"discount_total"`
	BalanceDue    float64 `json:"balance_due"`
}

// Preferences captures checkout choices the shopper has made so far.
type Preferences struct {
	ShippingID string `json:"shipping_id,omitempty"`
	PayBy      string `json:"payby,omitempty"`
}

// Cart is one shopper's cart as the client sees it.
type Cart struct {
	ID      string      `json:"cart_id"`
	Items   []Item      `json:"@ITEMS"`
	Sum     Summary     `json:"sum"`
	Want    Preferences `json:"want"`
	Coupons []string    `json:"coupons"`
}

// clone returns a deep copy so callers can hold a snapshot without racing
// against later mutations.
func (c *Cart) clone() *Cart {
	out := *c
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	for i, item := range out.Items {
		if item.Variations != nil {
			vars := make(map[string]string, len(item.Variations))
			for k, v := range item.Variations {
				vars[k] = v
			}
			out.Items[i].Variations = vars
		}
	}
	out.Coupons = append([]string(nil), c.Coupons...)
	return &out
}

// Manager owns every cart in the client session, keyed by cart ID.
// Safe for concurrent use; the mock API server mutates carts from
// concurrent request handlers.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewManager creates an empty cart manager.
func NewManager() *Manager {
	return &Manager{carts: make(map[string]*Cart)}
}

// Create initializes an empty cart under the given ID and returns a
// snapshot of it. An existing cart with the same ID is replaced.
func (m *Manager) Create(cartID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &Cart{ID: cartID, Items: []Item{}, Coupons: []string{}}
	m.carts[cartID] = c
	return c.clone()
}

// Load replaces or adds a cart from its JSON representation, typically an
// API response body. Returns the loaded cart's ID.
func (m *Manager) Load(data []byte) (string, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("failed to parse cart: %w", err)
	}
	if c.ID == "" {
		return "", fmt.Errorf("cart is missing cart_id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[c.ID] = &c
	return c.ID, nil
}

// Get returns a snapshot of the cart.
func (m *Manager) Get(cartID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}
	return c.clone(), nil
}

// AddItem appends an item to the cart, merging quantities when the SKU is
// already present, and recalculates totals. Returns the updated snapshot.
func (m *Manager) AddItem(cartID string, item Item) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].SKU == item.SKU {
			c.Items[i].Qty += item.Qty
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, item)
	}

	recalculate(c)
	return c.clone(), nil
}

// UpdateItem sets the quantity of the line with the given SKU. A quantity
// of zero removes the line. Returns the updated snapshot.
func (m *Manager) UpdateItem(cartID, sku string, qty int) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range c.Items {
		if c.Items[i].SKU == sku {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("item %s not found in cart", sku)
	}

	if qty == 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Qty = qty
	}

	recalculate(c)
	return c.clone(), nil
}

// RemoveItem deletes the line with the given SKU, if present, and
// recalculates totals. Returns the updated snapshot.
func (m *Manager) RemoveItem(cartID, sku string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.SKU != sku {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	recalculate(c)
	return c.clone(), nil
}

// AddCoupon records a coupon code on the cart, ignoring duplicates.
// The actual discount calculation happens server-side; the client only
// tracks which codes have been applied.
func (m *Manager) AddCoupon(cartID, coupon string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}

	for _, existing := range c.Coupons {
		if existing == coupon {
			return c.clone(), nil
		}
	}
	c.Coupons = append(c.Coupons, coupon)
	return c.clone(), nil
}

// ItemCount returns the total unit count across all lines.
func (m *Manager) ItemCount(cartID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range c.Items {
		count += item.Qty
	}
	return count, nil
}

// Clear empties the cart's items, coupons, and totals. Returns the cleared
// snapshot.
func (m *Manager) Clear(cartID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.lookup(cartID)
	if err != nil {
		return nil, err
	}

	c.Items = []Item{}
	c.Coupons = []string{}
	c.Sum = Summary{}
	return c.clone(), nil
}

// lookup resolves a cart by ID. Callers must hold m.mu.
func (m *Manager) lookup(cartID string) (*Cart, error) {
	c, ok := m.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s not found", cartID)
	}
	return c, nil
}

// recalculate refreshes ItemsTotal and BalanceDue from the current lines.
// Shipping, tax, and discount totals are server-provided and left alone.
func recalculate(c *Cart) {
	itemsTotal := 0.0
	for _, item := range c.Items {
		itemsTotal += item.Price * float64(item.Qty)
	}

	c.Sum.ItemsTotal = itemsTotal
	c.Sum.BalanceDue = itemsTotal + c.Sum.ShippingTotal + c.Sum.TaxTotal - c.Sum.DiscountTotal
}
