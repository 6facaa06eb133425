package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round2 rounds a peso amount to two decimal places, half up. All pay
// figures cross this boundary before they are persisted or compared.
func Round2(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// Peso formats an amount for documents, e.g. "PHP 1,234.50".
func Peso(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	text := decimal.NewFromFloat(Round2(amount)).StringFixed(2)
	whole := text
	frac := ""
	if dot := len(text) - 3; dot >= 0 && text[dot] == '.' {
		whole, frac = text[:dot], text[dot:]
	}
	var grouped []byte
	for i, digit := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, digit)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("PHP %s%s%s", sign, grouped, frac)
}
