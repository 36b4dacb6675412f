package yampi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
)

type quoteRequest struct {
	Zipcode string  `json:"zipcode"`
	Origin  string  `json:"origin"`
	SKUIDs  []int64 `json:"skus_ids"`
}

// ShippingCosts quotes carrier services for a postal code and a SKU id
// multiset. skuIDs must carry one entry per unit of quantity: the upstream
// weight and pricing calculation depends on receiving the repeats, not a
// deduplicated set.
func (c *Client) ShippingCosts(ctx context.Context, zipcode string, skuIDs []int64) ([]ServiceRecord, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "yampi client not configured")
	}

	payload, err := json.Marshal(quoteRequest{
		Zipcode: zipcode,
		Origin:  "cart",
		SKUIDs:  skuIDs,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteError, err, "marshal shipping-costs request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("logistics/shipping-costs"), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteError, err, "build shipping-costs request")
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteTimeout, err, "shipping-costs request timed out")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteError, err, "execute shipping-costs request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		if IsEdgeBlock(resp.StatusCode, body) {
			return nil, pkgerrors.New(pkgerrors.CodeUpstreamBlocked, "shipping-costs blocked by upstream edge protection")
		}
		return nil, pkgerrors.New(pkgerrors.CodeQuoteError, fmt.Sprintf("shipping-costs returned status %d", resp.StatusCode)).
			WithDetails(map[string]any{
				"status": resp.StatusCode,
				"body":   strings.TrimSpace(string(body)),
			})
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteError, err, "decode shipping-costs response")
	}

	records, err := decodeRecords(envelope.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeQuoteError, err, "decode shipping-costs services")
	}
	return records, nil
}

// decodeRecords accepts the "data" payload as either a single object or an
// array of objects and always yields a slice.
func decodeRecords(raw json.RawMessage) ([]ServiceRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []ServiceRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single ServiceRecord
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []ServiceRecord{single}, nil
}
