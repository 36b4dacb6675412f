package yampi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
)

// HandlingDaysBySKUIDs fetches the posting/lead time, in days, for each SKU
// id. Input is deduplicated before querying; an empty input returns an empty
// map without a call. SKUs missing a handling field count as 0 days.
func (c *Client) HandlingDaysBySKUIDs(ctx context.Context, skuIDs []int64) (map[int64]int, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "yampi client not configured")
	}

	unique := uniqueIDs(skuIDs)
	days := make(map[int64]int, len(unique))
	if len(unique) == 0 {
		return days, nil
	}

	query := url.Values{"skus_ids": {joinIDs(unique)}}
	products, err := c.fetchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		id, ok := NumberField(p, "id", "sku_id", "sku", "code")
		if !ok {
			continue
		}
		// field names differ between accounts and catalog versions
		value, _ := NumberField(p, "posting_days", "lead_time", "production_time_days", "handling_time")
		if value < 0 {
			value = 0
		}
		days[int64(id)] = int(value)
	}
	return days, nil
}

// SKUIDsByCodes resolves textual SKU codes to numeric SKU ids. The products
// endpoint exposes the filter under two parameter names depending on the
// account; the primary name is tried first and the alternate on any
// non-success response.
func (c *Client) SKUIDsByCodes(ctx context.Context, codes []string) (map[string]int64, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "yampi client not configured")
	}

	unique := uniqueCodes(codes)
	ids := make(map[string]int64, len(unique))
	if len(unique) == 0 {
		return ids, nil
	}

	joined := strings.Join(unique, ",")
	products, err := c.fetchProducts(ctx, url.Values{"skus": {joined}})
	if err != nil {
		if pkgerrors.As(err).Code() == pkgerrors.CodeUpstreamBlocked {
			return nil, err
		}
		products, err = c.fetchProducts(ctx, url.Values{"sku_codes": {joined}})
		if err != nil {
			return nil, err
		}
	}

	for _, p := range products {
		code := codeString(p)
		id, ok := NumberField(p, "id", "sku_id")
		if code == "" || !ok {
			continue
		}
		ids[code] = int64(id)
	}
	return ids, nil
}

func (c *Client) fetchProducts(ctx context.Context, query url.Values) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.endpoint("products") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogError, err, "build products request")
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogError, err, "execute products request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		if IsEdgeBlock(resp.StatusCode, body) {
			return nil, pkgerrors.New(pkgerrors.CodeUpstreamBlocked, "products lookup blocked by upstream edge protection")
		}
		return nil, pkgerrors.New(pkgerrors.CodeCatalogError, fmt.Sprintf("products lookup returned status %d", resp.StatusCode)).
			WithDetails(map[string]any{
				"status": resp.StatusCode,
				"body":   strings.TrimSpace(string(body)),
			})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogError, err, "read products response")
	}
	products, err := decodeProductList(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogError, err, "decode products response")
	}
	return products, nil
}

// decodeProductList accepts both response framings seen in the wild: a bare
// array and a {"data": [...]} envelope (where data may also be one object).
func decodeProductList(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []map[string]any
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return decodeRecords(envelope.Data)
}

func codeString(p map[string]any) string {
	if code, ok := StringField(p, "sku", "code"); ok {
		return code
	}
	if n, ok := NumberField(p, "sku", "code"); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
