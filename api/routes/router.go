package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sonhosdeninar/shipping-proxy/api/controllers"
	"github.com/sonhosdeninar/shipping-proxy/api/middleware"
	"github.com/sonhosdeninar/shipping-proxy/internal/shipping"
	"github.com/sonhosdeninar/shipping-proxy/pkg/config"
	"github.com/sonhosdeninar/shipping-proxy/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	shippingService shipping.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Get("/", controllers.Index())
	r.Get("/healthz", controllers.Healthz())

	r.Get("/proxy", controllers.QuotePing())
	r.Post("/proxy", controllers.QuoteRates(shippingService, logg))

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
