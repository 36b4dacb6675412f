package shipping

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
	"github.com/sonhosdeninar/shipping-proxy/pkg/yampi"
)

// CartItem is one normalized cart line. Exactly one of SKUID/SKU has to
// resolve to a numeric id before quoting; items carrying neither are
// dropped during resolution, not here.
type CartItem struct {
	SKUID    int64
	HasSKUID bool
	SKU      string
	Quantity int `json:"quantity" validate:"gte=1"`
}

// Cart is the canonical representation every accepted body shape collapses
// into.
type Cart struct {
	PostalCode string     `json:"postal_code" validate:"required,numeric"`
	Items      []CartItem `json:"items" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ParseCart normalizes an arbitrary-shaped request body into a Cart.
//
// Accepted shapes:
//
//	A/B) { postal_code | zipcode | zip | cep, items: [{ sku_id_yampi | sku_id, sku, quantity }] }
//	C)   { postal_code, cart_items: [raw storefront cart lines with properties.yampi_sku_id] }
func ParseCart(body map[string]any) (Cart, error) {
	var cart Cart

	for _, key := range []string{"postal_code", "zipcode", "zip", "cep"} {
		if raw, ok := scalarString(body, key); ok {
			cart.PostalCode = digitsOnly(raw)
			break
		}
	}
	if cart.PostalCode == "" {
		return cart, pkgerrors.New(pkgerrors.CodeMissingPostalCode, "Informe CEP")
	}

	cart.Items = parseItems(body["items"])
	if len(cart.Items) == 0 {
		cart.Items = parseCartLines(body["cart_items"])
	}
	if len(cart.Items) == 0 {
		return cart, pkgerrors.New(pkgerrors.CodeMissingItems, "Envie items[]")
	}

	if err := validate.Struct(cart); err != nil {
		return cart, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart failed validation")
	}
	return cart, nil
}

func parseItems(raw any) []CartItem {
	lines, ok := raw.([]any)
	if !ok {
		return nil
	}
	items := make([]CartItem, 0, len(lines))
	for _, line := range lines {
		m, ok := line.(map[string]any)
		if !ok {
			continue
		}
		item := CartItem{Quantity: quantityOf(m)}
		if id, ok := yampi.NumberField(m, "sku_id_yampi", "sku_id"); ok {
			item.SKUID = int64(id)
			item.HasSKUID = true
		}
		item.SKU = codeValue(m, "sku")
		items = append(items, item)
	}
	return items
}

// parseCartLines handles raw storefront cart lines (shape C): the numeric
// SKU id lives in a nested custom property that appears under two key
// spellings, and the textual code falls back through three source fields.
func parseCartLines(raw any) []CartItem {
	lines, ok := raw.([]any)
	if !ok {
		return nil
	}
	items := make([]CartItem, 0, len(lines))
	for _, line := range lines {
		m, ok := line.(map[string]any)
		if !ok {
			continue
		}
		item := CartItem{Quantity: quantityOf(m)}
		if props, ok := m["properties"].(map[string]any); ok {
			if id, ok := yampi.NumberField(props, "yampi_sku_id", "YAMPI_SKU_ID"); ok {
				item.SKUID = int64(id)
				item.HasSKUID = true
			}
		}
		item.SKU = codeValue(m, "sku", "variant_sku")
		if item.SKU == "" {
			if product, ok := m["product"].(map[string]any); ok {
				item.SKU = codeValue(product, "sku")
			}
		}
		items = append(items, item)
	}
	return items
}

func quantityOf(m map[string]any) int {
	qty, ok := yampi.NumberField(m, "quantity")
	if !ok || qty < 1 {
		return 1
	}
	return int(qty)
}

func codeValue(m map[string]any, keys ...string) string {
	if code, ok := yampi.StringField(m, keys...); ok {
		return code
	}
	if n, ok := yampi.NumberField(m, keys...); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func scalarString(m map[string]any, key string) (string, bool) {
	val, ok := m[key]
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v, true
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
