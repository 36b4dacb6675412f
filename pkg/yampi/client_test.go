package yampi

import (
	"net/http"
	"testing"
	"time"

	"github.com/sonhosdeninar/shipping-proxy/pkg/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() config.YampiConfig {
	return config.YampiConfig{
		BaseURL:     "http://yampi.test",
		Alias:       "sonhosdeninar",
		UserToken:   "user-token",
		SecretKey:   "secret-key",
		HTTPTimeout: 15 * time.Second,
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Alias = " "
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error for missing alias")
	}

	cfg = testConfig()
	cfg.SecretKey = ""
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error for missing secret key")
	}
}

func TestClientEndpointIncludesAlias(t *testing.T) {
	client := newTestClient(t, nil)
	got := client.endpoint("logistics/shipping-costs")
	want := "http://yampi.test/v2/sonhosdeninar/logistics/shipping-costs"
	if got != want {
		t.Fatalf("endpoint = %q, want %q", got, want)
	}
}

func TestApplyHeadersCarriesTokenPair(t *testing.T) {
	client := newTestClient(t, nil)
	req, err := http.NewRequest(http.MethodGet, "http://yampi.test", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	client.applyHeaders(req)

	if req.Header.Get("User-Token") != "user-token" {
		t.Fatal("User-Token header missing")
	}
	if req.Header.Get("User-Secret-Key") != "secret-key" {
		t.Fatal("User-Secret-Key header missing")
	}
	if req.Header.Get("Accept-Language") != "pt-BR,pt;q=0.9" {
		t.Fatal("Accept-Language header missing")
	}
	if req.Header.Get("User-Agent") == "" {
		t.Fatal("User-Agent header missing")
	}
}
