package yampi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/sonhosdeninar/shipping-proxy/pkg/errors"
)

func TestHandlingDaysBySKUIDsDeduplicates(t *testing.T) {
	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`{"data":[{"id":111,"posting_days":2},{"id":222,"lead_time":5}]}`)),
			Header: http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	days, err := client.HandlingDaysBySKUIDs(context.Background(), []int64{111, 111, 222})
	if err != nil {
		t.Fatalf("handling days: %v", err)
	}
	if !strings.Contains(capturedURL, "skus_ids=111%2C222") {
		t.Fatalf("expected deduplicated skus_ids param, got %q", capturedURL)
	}
	if days[111] != 2 || days[222] != 5 {
		t.Fatalf("unexpected mapping %v", days)
	}
}

func TestHandlingDaysFieldFallbacksAndClamp(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(`{"data":[
				{"id":1,"posting_days":3},
				{"id":2,"lead_time":4},
				{"id":3,"production_time_days":5},
				{"id":4,"handling_time":6},
				{"id":5},
				{"id":6,"posting_days":-2},
				{"sku_id":7,"posting_days":1}
			]}`)),
			Header: http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	days, err := client.HandlingDaysBySKUIDs(context.Background(), []int64{1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("handling days: %v", err)
	}
	want := map[int64]int{1: 3, 2: 4, 3: 5, 4: 6, 5: 0, 6: 0, 7: 1}
	for id, expected := range want {
		if days[id] != expected {
			t.Fatalf("id %d: got %d, want %d (full map %v)", id, days[id], expected, days)
		}
	}
}

func TestHandlingDaysEmptyInputMakesNoCall(t *testing.T) {
	called := false
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return nil, io.EOF
	})

	client := newTestClient(t, rt)
	days, err := client.HandlingDaysBySKUIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("handling days: %v", err)
	}
	if called {
		t.Fatal("expected no upstream call for empty input")
	}
	if len(days) != 0 {
		t.Fatalf("expected empty map, got %v", days)
	}
}

func TestSKUIDsByCodesPrimaryParam(t *testing.T) {
	var capturedURLs []string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURLs = append(capturedURLs, req.URL.String())
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data":[{"sku":"ABC","id":42}]}`)),
			Header:     http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	ids, err := client.SKUIDsByCodes(context.Background(), []string{"ABC", "ABC", " "})
	if err != nil {
		t.Fatalf("sku lookup: %v", err)
	}
	if len(capturedURLs) != 1 || !strings.Contains(capturedURLs[0], "skus=ABC") {
		t.Fatalf("expected single call with skus param, got %v", capturedURLs)
	}
	if ids["ABC"] != 42 {
		t.Fatalf("unexpected mapping %v", ids)
	}
}

func TestSKUIDsByCodesRetriesAlternateParam(t *testing.T) {
	var capturedURLs []string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURLs = append(capturedURLs, req.URL.String())
		if len(capturedURLs) == 1 {
			return &http.Response{
				StatusCode: http.StatusUnprocessableEntity,
				Body:       io.NopCloser(strings.NewReader(`{"message":"unknown filter"}`)),
				Header:     http.Header{},
			}, nil
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data":[{"code":"ABC","sku_id":42}]}`)),
			Header:     http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	ids, err := client.SKUIDsByCodes(context.Background(), []string{"ABC"})
	if err != nil {
		t.Fatalf("sku lookup: %v", err)
	}
	if len(capturedURLs) != 2 {
		t.Fatalf("expected retry, got calls %v", capturedURLs)
	}
	if !strings.Contains(capturedURLs[0], "skus=ABC") || !strings.Contains(capturedURLs[1], "sku_codes=ABC") {
		t.Fatalf("unexpected parameter sequence %v", capturedURLs)
	}
	if ids["ABC"] != 42 {
		t.Fatalf("unexpected mapping %v", ids)
	}
}

func TestSKUIDsByCodesBothAttemptsFail(t *testing.T) {
	calls := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"message":"bad request"}`)),
			Header:     http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	_, err := client.SKUIDsByCodes(context.Background(), []string{"ABC"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 2 {
		t.Fatalf("expected both parameter attempts, got %d calls", calls)
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeCatalogError {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestSKUIDsByCodesEdgeBlockSkipsRetry(t *testing.T) {
	calls := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader(`Access Denied`)),
			Header:     http.Header{},
		}, nil
	})

	client := newTestClient(t, rt)
	_, err := client.SKUIDsByCodes(context.Background(), []string{"ABC"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("edge block should not retry the alternate param, got %d calls", calls)
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUpstreamBlocked {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestDecodeProductListBareArray(t *testing.T) {
	products, err := decodeProductList([]byte(`[{"id":1,"sku":"A"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("unexpected products %v", products)
	}
}
