package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

// WriteReport prints a summary as the console table used by the CLI.
func WriteReport(w io.Writer, summary models.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\nSEARCH RESULTS\n%s\n", heavyRule, heavyRule)

	for _, result := range summary.Report.Results {
		fmt.Fprintf(&b, "\n%s (Qty: %d)\n%s\n", result.Card.Name, result.Card.Quantity, lightRule)

		if !result.Found() {
			b.WriteString("  Not found in any store\n")
			continue
		}
		for _, offer := range result.Offers {
			status := "✓ In Stock"
			if !offer.InStock {
				status = "✗ Out of Stock"
			}
			fmt.Fprintf(&b, "  %-20s | $%6s each | Total: $%7s | %s\n",
				offer.Store, offer.Price.StringFixed(2), offer.TotalCost.StringFixed(2), status)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", heavyRule)
	fmt.Fprintf(&b, "\nBEST DEAL PER STORE (for in-stock items only):\n%s\n", lightRule)

	if summary.NoneAvailable {
		b.WriteString("No cards available in stock.\n")
	}
	for _, deal := range summary.StoreDeals {
		fmt.Fprintf(&b, "\n%s: $%s\n", deal.Store, deal.Total.StringFixed(2))
		for _, line := range deal.Cards {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
