package services

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/codyseavey/tcg-pricecheck/internal/models"
)

// cardLinePattern matches "<quantity> <name>", e.g. "4 Lightning Bolt".
var cardLinePattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// ParseCardList turns free text, one card per line, into a card list.
// Blank lines are ignored; lines that do not start with a positive quantity
// followed by a name are logged and skipped. Order and duplicates are kept.
func ParseCardList(text string) []models.Card {
	cards := []models.Card{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := cardLinePattern.FindStringSubmatch(line)
		if m == nil {
			log.Printf("Card list: Skipping unrecognized line: %q", line)
			continue
		}
		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity < 1 {
			log.Printf("Card list: Skipping unrecognized line: %q", line)
			continue
		}
		name := strings.TrimSpace(m[2])
		if name == "" {
			continue
		}

		cards = append(cards, models.Card{Name: name, Quantity: quantity})
	}
	return cards
}

// FormatCardList is the inverse of ParseCardList.
func FormatCardList(cards []models.Card) string {
	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d %s", card.Quantity, card.Name)
	}
	return b.String()
}
