package models

// Holiday is one entry from the external holiday calendar provider.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
	Type string `json:"type"`
}
