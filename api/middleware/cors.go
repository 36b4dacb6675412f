package middleware

import (
	"net/http"
	"regexp"

	"github.com/go-chi/cors"
)

// Storefront and Shopify preview domains are always allowed; anything else
// must appear on the configured allowlist.
var allowedOriginPattern = regexp.MustCompile(`(?i)(sonhosdeninar\.com|myshopify\.com)$`)

// CORS returns middleware applying the proxy's allowed-origin policy.
func CORS(allowlist []string) func(http.Handler) http.Handler {
	extra := make(map[string]struct{}, len(allowlist))
	for _, origin := range allowlist {
		if origin != "" {
			extra[origin] = struct{}{}
		}
	}

	return cors.New(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			if allowedOriginPattern.MatchString(origin) {
				return true
			}
			_, ok := extra[origin]
			return ok
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}).Handler
}
