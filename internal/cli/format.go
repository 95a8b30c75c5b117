package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// formatPrice renders a price the way the menu shows it, e.g. $12.99.
func formatPrice(p float64) string {
	return pricePrinter.Sprintf("$%.2f", p)
}
