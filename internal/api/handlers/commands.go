// Package handlers implements the mock JSON API's endpoint handlers:
// the health probe, the batch endpoint, and the command executor that
// maps each _cmd to in-memory cart and catalog operations.
//
// Every command produces exactly one response document echoing the _cmd
// it answers. Command failures (unknown cart, missing params) become
// error documents in the response array rather than HTTP errors: only a
// malformed batch envelope fails the whole POST.
package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/anycommerce/storefront/internal/cart"
	"github.com/anycommerce/storefront/internal/catalog"
	"github.com/anycommerce/storefront/internal/dispatch"
	"github.com/anycommerce/storefront/internal/utils"
	"github.com/gin-gonic/gin"
)

// CommandHandler executes JSON API commands against the mock's in-memory
// cart and catalog state.
type CommandHandler struct {
	carts   *cart.Manager
	catalog *catalog.Processor
}

// NewCommandHandler creates a command handler over the given state.
func NewCommandHandler(carts *cart.Manager, catalog *catalog.Processor) *CommandHandler {
	return &CommandHandler{carts: carts, catalog: catalog}
}

// Execute runs one command and returns its response document.
func (h *CommandHandler) Execute(req dispatch.Request) gin.H {
	switch req.Cmd {
	case "cartCreate":
		return h.cartCreate(req)
	case "cartGet":
		return h.cartGet(req)
	case "cartItemAppend":
		return h.cartItemAppend(req)
	case "cartItemUpdate":
		return h.cartItemUpdate(req)
	case "cartItemRemove":
		return h.cartItemRemove(req)
	case "cartCouponAdd":
		return h.cartCouponAdd(req)
	case "cartEmpty":
		return h.cartEmpty(req)
	case "appProductGet":
		return h.productGet(req)
	case "appInventoryGet":
		return h.inventoryGet(req)
	default:
		return errorDoc(req, fmt.Errorf("unknown command %q", req.Cmd))
	}
}

// cartCreate initializes a cart. The caller may supply cart_id; otherwise
// the mock assigns one, mirroring platform-assigned cart IDs.
func (h *CommandHandler) cartCreate(req dispatch.Request) gin.H {
	var cartID string
	if _, err := req.Param("cart_id", &cartID); err != nil {
		return errorDoc(req, err)
	}
	if cartID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errorDoc(req, err)
		}
		cartID = id
	}

	return okDoc(req, gin.H{"cart": h.carts.Create(cartID)})
}

func (h *CommandHandler) cartGet(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}

	c, err := h.carts.Get(cartID)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

// cartItemAppend resolves the concrete SKU and price from the catalog
// before adding the line, so the cart document the client reads back
// carries priced lines the way the platform's would.
func (h *CommandHandler) cartItemAppend(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}
	pid, err := requireString(req, "pid")
	if err != nil {
		return errorDoc(req, err)
	}

	qty := 1
	if _, err := req.Param("qty", &qty); err != nil {
		return errorDoc(req, err)
	}
	if qty < 1 {
		return errorDoc(req, fmt.Errorf("qty must be at least 1, got %d", qty))
	}

	var selections map[string]string
	if _, err := req.Param("variations", &selections); err != nil {
		return errorDoc(req, err)
	}

	sku, err := h.catalog.SKU(pid, selections)
	if err != nil {
		return errorDoc(req, err)
	}
	price, err := h.catalog.Price(pid, selections)
	if err != nil {
		return errorDoc(req, err)
	}
	basePrice, err := h.catalog.Price(pid, nil)
	if err != nil {
		return errorDoc(req, err)
	}

	item := cart.Item{
		SKU:        sku,
		PID:        pid,
		Name:       h.productName(pid),
		Qty:        qty,
		BasePrice:  basePrice,
		Price:      price,
		Variations: selections,
	}

	c, err := h.carts.AddItem(cartID, item)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

func (h *CommandHandler) cartItemUpdate(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}
	sku, err := requireString(req, "sku")
	if err != nil {
		return errorDoc(req, err)
	}

	qty := -1
	if ok, err := req.Param("qty", &qty); err != nil {
		return errorDoc(req, err)
	} else if !ok || qty < 0 {
		return errorDoc(req, fmt.Errorf("qty is required and must be zero or more"))
	}

	c, err := h.carts.UpdateItem(cartID, sku, qty)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

func (h *CommandHandler) cartItemRemove(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}
	sku, err := requireString(req, "sku")
	if err != nil {
		return errorDoc(req, err)
	}

	c, err := h.carts.RemoveItem(cartID, sku)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

func (h *CommandHandler) cartCouponAdd(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}
	coupon, err := requireString(req, "coupon")
	if err != nil {
		return errorDoc(req, err)
	}

	c, err := h.carts.AddCoupon(cartID, coupon)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

func (h *CommandHandler) cartEmpty(req dispatch.Request) gin.H {
	cartID, err := requireString(req, "cart_id")
	if err != nil {
		return errorDoc(req, err)
	}

	c, err := h.carts.Clear(cartID)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"cart": c})
}

func (h *CommandHandler) productGet(req dispatch.Request) gin.H {
	pid, err := requireString(req, "pid")
	if err != nil {
		return errorDoc(req, err)
	}

	product, err := h.catalog.Product(pid)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"product": product})
}

func (h *CommandHandler) inventoryGet(req dispatch.Request) gin.H {
	sku, err := requireString(req, "sku")
	if err != nil {
		return errorDoc(req, err)
	}

	item, err := h.catalog.Inventory(sku)
	if err != nil {
		return errorDoc(req, err)
	}
	return okDoc(req, gin.H{"inventory": item})
}

// productName reads the display name attribute, tolerating its absence:
// fixture products often carry only pricing attributes.
func (h *CommandHandler) productName(pid string) string {
	raw, err := h.catalog.Attribute(pid, "zoovy:prod_name")
	if err != nil {
		return pid
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return pid
	}
	return name
}

// requireString extracts a required string parameter.
func requireString(req dispatch.Request, name string) (string, error) {
	var value string
	ok, err := req.Param(name, &value)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return "", fmt.Errorf("missing required parameter %q", name)
	}
	return value, nil
}

// okDoc builds a success response document echoing the command.
func okDoc(req dispatch.Request, fields gin.H) gin.H {
	doc := gin.H{"_cmd": req.Cmd, "ok": true}
	for key, value := range fields {
		doc[key] = value
	}
	return doc
}

// errorDoc builds a failure response document echoing the command.
func errorDoc(req dispatch.Request, err error) gin.H {
	return gin.H{
		"_cmd":   req.Cmd,
		"ok":     false,
		"errors": []string{err.Error()},
	}
}
