package shipping

import (
	"testing"

	"github.com/sonhosdeninar/shipping-proxy/pkg/yampi"
)

func TestCentsToBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1990, "R$ 19,90"},
		{100000, "R$ 1000,00"},
		{1500, "R$ 15,00"},
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
	}
	for _, tc := range cases {
		if got := centsToBRL(tc.cents); got != tc.want {
			t.Fatalf("centsToBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatDeadline(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{5, "até 5 dias"},
		{1, "até 1 dia"},
		{0, ""},
		{-1, ""},
	}
	for _, tc := range cases {
		if got := formatDeadline(tc.days); got != tc.want {
			t.Fatalf("formatDeadline(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestNormalizeRatesFieldFallbacks(t *testing.T) {
	services := []yampi.ServiceRecord{
		{
			"service_display_name": "PAC Premium",
			"service_id":           float64(1),
			"price":                float64(1500),
			"delivery_time":        float64(3),
		},
		{
			"service_name":  "SEDEX",
			"service_code":  "04510",
			"amount":        float64(2990),
			"deadline":      float64(1),
		},
		{
			"title":          "Transportadora",
			"id":             float64(9),
			"estimated_days": float64(4),
		},
		{},
	}

	rates := normalizeRates(services, 0)
	if len(rates) != 4 {
		t.Fatalf("unexpected rate count %d", len(rates))
	}

	if rates[0].Name != "PAC Premium" || rates[0].Code != float64(1) {
		t.Fatalf("unexpected first rate %+v", rates[0])
	}
	if rates[0].Price == nil || *rates[0].Price != 1500 || rates[0].FormattedPrice != "R$ 15,00" {
		t.Fatalf("unexpected first price %+v", rates[0])
	}
	if rates[0].Deadline != "até 3 dias" {
		t.Fatalf("unexpected first deadline %q", rates[0].Deadline)
	}

	if rates[1].Name != "SEDEX" || rates[1].Code != "04510" {
		t.Fatalf("unexpected second rate %+v", rates[1])
	}
	if rates[1].Price == nil || *rates[1].Price != 2990 {
		t.Fatalf("amount fallback not applied %+v", rates[1])
	}
	if rates[1].Deadline != "até 1 dia" {
		t.Fatalf("unexpected second deadline %q", rates[1].Deadline)
	}

	if rates[2].Name != "Transportadora" || rates[2].Code != float64(9) {
		t.Fatalf("unexpected third rate %+v", rates[2])
	}
	if rates[2].Price != nil || rates[2].FormattedPrice != "" {
		t.Fatalf("price should be null when no numeric field present %+v", rates[2])
	}

	if rates[3].Name != "Envio" || rates[3].Code != "" {
		t.Fatalf("defaults not applied %+v", rates[3])
	}
	if rates[3].Deadline != "" {
		t.Fatalf("deadline should be empty with no estimate, got %q", rates[3].Deadline)
	}
}

func TestNormalizeRatesAddsPostingTime(t *testing.T) {
	services := []yampi.ServiceRecord{
		{"service_name": "PAC", "delivery_time": float64(3), "price": float64(1500)},
		{"service_name": "Retirada", "delivery_time": float64(0)},
	}

	rates := normalizeRates(services, 2)
	if rates[0].Deadline != "até 5 dias" {
		t.Fatalf("unexpected deadline %q", rates[0].Deadline)
	}
	// posting time alone still yields an estimate
	if rates[1].Deadline != "até 2 dias" {
		t.Fatalf("unexpected deadline %q", rates[1].Deadline)
	}
}

func TestNormalizeRatesFormattedPricePassthrough(t *testing.T) {
	services := []yampi.ServiceRecord{
		{"service_name": "PAC", "formatted_price": "R$ 12,34"},
	}
	rates := normalizeRates(services, 0)
	if rates[0].Price != nil {
		t.Fatalf("price should stay null, got %v", *rates[0].Price)
	}
	if rates[0].FormattedPrice != "R$ 12,34" {
		t.Fatalf("upstream formatted price not passed through: %q", rates[0].FormattedPrice)
	}
}
