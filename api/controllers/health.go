package controllers

import (
	"net/http"
)

const indexPage = `<h1>Yampi Shipping Proxy</h1>
<p>Status: OK</p>
<ul>
  <li>GET <code>/healthz</code></li>
  <li>GET <code>/proxy</code> (ping)</li>
  <li>POST <code>/proxy</code> (cotação)</li>
</ul>
`

// Index serves a small sanity-check page listing the routes.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	}
}

// Healthz is the plain liveness probe.
func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
