package shipping

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
)

// resolveSKUIDs turns cart items into the SKU id multiset the quote call
// requires: one entry per unit of quantity, in original item order.
//
// Each item resolves independently: a usable numeric id wins, otherwise the
// item's textual code joins a single batched catalog lookup. Items carrying
// neither contribute nothing. Resolution is all-or-nothing across the
// lookup batch: one unresolved code fails the whole cart, quoting never
// proceeds with a partial one.
func (s *service) resolveSKUIDs(ctx context.Context, items []CartItem) ([]int64, error) {
	codes := make([]string, 0, len(items))
	hasSource := false
	for _, item := range items {
		if item.HasSKUID {
			hasSource = true
			continue
		}
		if item.SKU != "" {
			hasSource = true
			codes = append(codes, item.SKU)
		}
	}
	if !hasSource {
		return nil, pkgerrors.New(pkgerrors.CodeNoSKUProvided,
			"Envie 'sku_id_yampi' numérico ou 'sku' string em cada item.")
	}

	resolved, err := s.resolveCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		var id int64
		switch {
		case item.HasSKUID:
			id = item.SKUID
		case item.SKU != "":
			id = resolved[item.SKU]
		default:
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptySKUSet,
			"Não foi possível resolver IDs a partir dos itens enviados.")
	}
	return ids, nil
}

// resolveCodes maps every distinct code to its SKU id, consulting the cache
// first and batching the misses into one catalog call. Every resolution is
// written back to the cache.
func (s *service) resolveCodes(ctx context.Context, codes []string) (map[string]int64, error) {
	distinct := distinctCodes(codes)
	resolved := make(map[string]int64, len(distinct))
	if len(distinct) == 0 {
		return resolved, nil
	}

	missing := make([]string, 0, len(distinct))
	for _, code := range distinct {
		if id, ok := s.cache.Get(code); ok {
			resolved[code] = id
			s.metrics.IncCacheHit()
			continue
		}
		s.metrics.IncCacheMiss()
		missing = append(missing, code)
	}

	if len(missing) > 0 {
		fetched, err := s.catalog.SKUIDsByCodes(ctx, missing)
		if err != nil {
			return nil, err
		}
		for code, id := range fetched {
			resolved[code] = id
			s.cache.Set(code, id)
		}
	}

	notFound := make([]string, 0)
	for _, code := range distinct {
		if _, ok := resolved[code]; !ok {
			notFound = append(notFound, code)
		}
	}
	if len(notFound) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeSKUNotFound,
			fmt.Sprintf("SKUs não encontrados: %s", strings.Join(notFound, ", "))).
			WithDetails(map[string]any{"skus": notFound})
	}
	return resolved, nil
}

func distinctCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func distinctIDs(ids []int64) []int64 {
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
