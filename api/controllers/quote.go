package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sonhosdeninar/shipping-proxy/api/responses"
	"github.com/sonhosdeninar/shipping-proxy/internal/shipping"
	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
	"github.com/sonhosdeninar/shipping-proxy/pkg/logger"
)

const requestBodyLimit = 1 << 20 // 1 MiB, matches the storefront payloads

// QuoteRates handles the rate-quote operation the storefront app proxy
// posts to.
func QuoteRates(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		body, err := decodeLenientBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		responses.WriteJSON(w, http.StatusOK, result)
	}
}

// QuotePing answers the read-only liveness probe on the quote route.
func QuotePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"message": "Proxy ativo!",
			"ts":      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// decodeLenientBody reads the request body into an untyped map. The quote
// payload arrives in several shapes from different storefront scripts, so
// unknown fields are never rejected; an empty body yields an empty map.
func decodeLenientBody(r *http.Request) (map[string]any, error) {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, requestBodyLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body")
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid JSON body")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
