package models

// Card is one requested line of a card list. Duplicate names are allowed and
// each occurrence is priced independently.
type Card struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
