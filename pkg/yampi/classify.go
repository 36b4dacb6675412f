package yampi

import (
	"net/http"
	"regexp"
)

// Cloudflare error 1020 ("Access Denied") is how Yampi's edge rejects
// traffic it mistakes for a bot. It is an infrastructure block, not an
// application error, and gets its own error code so operators can react
// (IP allow-listing, BR-located egress).
var edgeBlockPattern = regexp.MustCompile(`(?i)1020|Access Denied`)

// IsEdgeBlock reports whether an upstream response is a Cloudflare-style
// edge-protection rejection rather than an application failure.
func IsEdgeBlock(status int, body []byte) bool {
	return status == http.StatusForbidden && edgeBlockPattern.Match(body)
}
