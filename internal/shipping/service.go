// Package shipping implements the rate-aggregation pipeline: it normalizes
// heterogeneous cart payloads, resolves SKU codes to the numeric ids the
// quote API requires, fetches quote and handling-time data from Yampi and
// merges both into the shipping options the storefront displays.
package shipping

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sonhosdeninar/shipping-proxy/internal/skucache"
	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
	"github.com/sonhosdeninar/shipping-proxy/pkg/logger"
	"github.com/sonhosdeninar/shipping-proxy/pkg/metrics"
	"github.com/sonhosdeninar/shipping-proxy/pkg/yampi"
)

// QuoteGateway is the shipping-costs side of the Yampi client.
type QuoteGateway interface {
	ShippingCosts(ctx context.Context, zipcode string, skuIDs []int64) ([]yampi.ServiceRecord, error)
}

// CatalogGateway is the products side of the Yampi client.
type CatalogGateway interface {
	HandlingDaysBySKUIDs(ctx context.Context, skuIDs []int64) (map[int64]int, error)
	SKUIDsByCodes(ctx context.Context, codes []string) (map[string]int64, error)
}

// QuoteResult is the successful pipeline output.
type QuoteResult struct {
	Rates []Rate `json:"rates"`
	Meta  Meta   `json:"meta"`
}

type Meta struct {
	PostingMaxDays int   `json:"posting_max_days"`
	TookMS         int64 `json:"took_ms"`
}

type Service interface {
	Quote(ctx context.Context, body map[string]any) (*QuoteResult, error)
}

type ServiceParams struct {
	Quoter  QuoteGateway
	Catalog CatalogGateway
	Cache   *skucache.Cache
	Metrics *metrics.QuoteMetrics
	Logger  *logger.Logger
}

type service struct {
	quoter  QuoteGateway
	catalog CatalogGateway
	cache   *skucache.Cache
	metrics *metrics.QuoteMetrics
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Quoter == nil {
		return nil, errors.New("shipping: quote gateway is required")
	}
	if params.Catalog == nil {
		return nil, errors.New("shipping: catalog gateway is required")
	}
	cache := params.Cache
	if cache == nil {
		cache = skucache.New(skucache.DefaultTTL)
	}
	return &service{
		quoter:  params.Quoter,
		catalog: params.Catalog,
		cache:   cache,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// Quote runs the full pipeline. Every step is a hard dependency on the
// previous one succeeding; any failure aborts with the originating error
// and no partial result.
func (s *service) Quote(ctx context.Context, body map[string]any) (*QuoteResult, error) {
	started := time.Now()
	outcome := "error"
	defer func() {
		s.metrics.ObserveRequest(outcome, time.Since(started))
	}()

	cart, err := ParseCart(body)
	if err != nil {
		return nil, err
	}

	skuIDs, err := s.resolveSKUIDs(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	var (
		services []yampi.ServiceRecord
		handling map[int64]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callStart := time.Now()
		recs, err := s.quoter.ShippingCosts(gctx, cart.PostalCode, skuIDs)
		s.metrics.ObserveUpstream("shipping_costs", time.Since(callStart))
		if err != nil {
			return err
		}
		services = recs
		return nil
	})
	g.Go(func() error {
		callStart := time.Now()
		days, err := s.catalog.HandlingDaysBySKUIDs(gctx, distinctIDs(skuIDs))
		s.metrics.ObserveUpstream("handling_days", time.Since(callStart))
		if err != nil {
			return err
		}
		handling = days
		return nil
	})
	if err := g.Wait(); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "quote pipeline failed")
	}

	postingMax := 0
	for _, days := range handling {
		if days > postingMax {
			postingMax = days
		}
	}

	result := &QuoteResult{
		Rates: normalizeRates(services, postingMax),
		Meta: Meta{
			PostingMaxDays: postingMax,
			TookMS:         time.Since(started).Milliseconds(),
		},
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"rates":            len(result.Rates),
			"skus":             len(skuIDs),
			"posting_max_days": postingMax,
			"took_ms":          result.Meta.TookMS,
		}), "quote.computed")
	}

	outcome = "success"
	return result, nil
}
