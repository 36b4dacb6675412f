package shipping

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sonhosdeninar/shipping-proxy/pkg/yampi"
)

// Rate is one normalized shipping option in the shape the storefront
// checkout renders.
type Rate struct {
	Name           string `json:"name"`
	Code           any    `json:"code"`
	Price          *int64 `json:"price"`
	FormattedPrice string `json:"formatted_price"`
	Deadline       string `json:"deadline"`
}

// normalizeRates merges raw carrier services with the cart-wide posting
// time. Missing fields fall through defaults; this step never fails.
func normalizeRates(services []yampi.ServiceRecord, postingMax int) []Rate {
	rates := make([]Rate, 0, len(services))
	for _, svc := range services {
		rate := Rate{Name: "Envio", Code: ""}

		if name, ok := yampi.StringField(svc, "service_display_name", "service_name", "title"); ok {
			rate.Name = name
		}
		if code, ok := yampi.ScalarField(svc, "service_id", "service_code", "id"); ok {
			rate.Code = code
		}

		if cents, ok := yampi.NumberField(svc, "price", "amount"); ok {
			price := int64(math.Round(cents))
			rate.Price = &price
			rate.FormattedPrice = centsToBRL(price)
		} else if formatted, ok := yampi.StringField(svc, "formatted_price"); ok {
			rate.FormattedPrice = formatted
		}

		baseDays, _ := yampi.NumberField(svc, "delivery_time", "deadline", "estimated_days")
		if baseDays < 0 {
			baseDays = 0
		}
		totalDays := int(baseDays)
		if postingMax > 0 {
			totalDays += postingMax
		}
		rate.Deadline = formatDeadline(totalDays)

		rates = append(rates, rate)
	}
	return rates
}

// centsToBRL renders integer cents as Brazilian-Real text: 1990 becomes
// "R$ 19,90".
func centsToBRL(cents int64) string {
	reais := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return "R$ " + strings.Replace(reais.StringFixed(2), ".", ",", 1)
}

// formatDeadline renders the combined day estimate, pluralized, or an empty
// string when no estimate is derivable.
func formatDeadline(totalDays int) string {
	if totalDays <= 0 {
		return ""
	}
	if totalDays == 1 {
		return "até 1 dia"
	}
	return fmt.Sprintf("até %d dias", totalDays)
}
