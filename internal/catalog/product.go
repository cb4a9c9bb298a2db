// Package catalog implements the client-side product model: loading
// product documents from API responses, assembling concrete SKUs from
// variation selections, pricing with option modifiers, and inventory
// lookups.
//
// SKU ASSEMBLY:
// A product's SKU space is its PID plus the selected option value of every
// declared variation, joined in declaration order: selecting "00" for the
// only variation of product "TEST" yields "TEST:00". Products without
// variations sell under their bare PID.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// basePriceAttrib is the product attribute carrying the base price, stored
// as a string in the upstream catalog format.
const basePriceAttrib = "zoovy:base_price"

// Option is one selectable value of a variation, with an optional price
// modifier applied on top of the product's base price.
type Option struct {
	V        string  `json:"v"`
	Prompt   string  `json:"prompt"`
	PriceMod float64 `json:"price_mod,omitempty"`
}

// Variation is one axis of product configuration (size, color, ...) with
// its selectable options.
type Variation struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Type    string   `json:"type"`
	Options []Option `json:"@options"`
}

// InventoryItem is the stock record for one concrete SKU. Availability
// fields are strings in the upstream format and passed through verbatim.
type InventoryItem struct {
	SKU       string `json:"SKU"`
	Available string `json:"AVAILABLE"`
	OnShelf   string `json:"ONSHELF"`
}

// Product is one catalog entry: its variations, per-SKU inventory, and the
// free-form attribute bag the upstream catalog attaches.
type Product struct {
	PID        string                     `json:"pid"`
	Variations []Variation                `json:"@variations"`
	Inventory  map[string]InventoryItem   `json:"@inventory"`
	Attribs    map[string]json.RawMessage `json:"%attribs"`
}

// Processor holds loaded products and answers SKU, price, and inventory
// questions about them. Safe for concurrent use.
type Processor struct {
	mu       sync.RWMutex
	products map[string]*Product
}

// NewProcessor creates an empty product processor.
func NewProcessor() *Processor {
	return &Processor{products: make(map[string]*Product)}
}

// Load parses a product document and stores it, replacing any previous
// product with the same PID. Returns the loaded PID.
func (p *Processor) Load(data []byte) (string, error) {
	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return "", fmt.Errorf("failed to parse product: %w", err)
	}
	if product.PID == "" {
		return "", fmt.Errorf("product is missing pid")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.products[product.PID] = &product
	return product.PID, nil
}

// SKU assembles the concrete SKU for a product given one selected option
// value per variation. Selections are keyed by variation ID; every
// declared variation must be selected. Products without variations sell
// under their bare PID.
//
// Example: SKU("TEST", map[string]string{"02": "00"}) -> "TEST:00"
func (p *Processor) SKU(pid string, selections map[string]string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return "", err
	}

	if len(product.Variations) == 0 {
		return pid, nil
	}

	parts := make([]string, 0, len(product.Variations))
	for _, variation := range product.Variations {
		selected, ok := selections[variation.ID]
		if !ok {
			return "", fmt.Errorf("missing selection for variation %s", variation.ID)
		}
		parts = append(parts, selected)
	}

	return pid + ":" + strings.Join(parts, ""), nil
}

// Price computes the final unit price for a selection: the base price
// attribute plus the price modifier of every selected option. Unselected
// variations contribute nothing, matching the upstream behavior where
// price preview updates as the shopper picks options.
func (p *Processor) Price(pid string, selections map[string]string) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return 0, err
	}

	price := basePrice(product)
	for _, variation := range product.Variations {
		selected, ok := selections[variation.ID]
		if !ok {
			continue
		}
		for _, option := range variation.Options {
			if option.V == selected {
				price += option.PriceMod
				break
			}
		}
	}

	return price, nil
}

// Inventory returns the stock record for a concrete SKU. The owning
// product is resolved from the SKU's PID prefix (everything before the
// first colon).
func (p *Processor) Inventory(sku string) (InventoryItem, error) {
	pid := sku
	if idx := strings.Index(sku, ":"); idx >= 0 {
		pid = sku[:idx]
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return InventoryItem{}, err
	}

	item, ok := product.Inventory[sku]
	if !ok {
		return InventoryItem{}, fmt.Errorf("inventory not found for SKU %s", sku)
	}
	return item, nil
}

// Product returns the loaded product document. Products are immutable
// once loaded, so a shallow copy is a safe snapshot.
func (p *Processor) Product(pid string) (*Product, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return nil, err
	}
	out := *product
	return &out, nil
}

// Variations returns the variation axes declared for a product.
func (p *Processor) Variations(pid string) ([]Variation, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return nil, err
	}
	return append([]Variation(nil), product.Variations...), nil
}

// Attribute returns the raw value of a product attribute.
func (p *Processor) Attribute(pid, name string) (json.RawMessage, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, err := p.lookup(pid)
	if err != nil {
		return nil, err
	}

	value, ok := product.Attribs[name]
	if !ok {
		return nil, fmt.Errorf("attribute %s not found for product %s", name, pid)
	}
	return value, nil
}

// lookup resolves a product by PID. Callers must hold p.mu.
func (p *Processor) lookup(pid string) (*Product, error) {
	product, ok := p.products[pid]
	if !ok {
		return nil, fmt.Errorf("product %s not found", pid)
	}
	return product, nil
}

// basePrice reads the base price attribute, tolerating its string
// encoding. Missing or unparseable values price at zero.
func basePrice(product *Product) float64 {
	raw, ok := product.Attribs[basePriceAttrib]
	if !ok {
		return 0
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		price, err := strconv.ParseFloat(asString, 64)
		if err != nil {
			return 0
		}
		return price
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber
	}
	return 0
}
