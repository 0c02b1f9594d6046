// Package models defines the Digiteria document: one JSON object holding
// every marketplace collection. The document is persisted as a whole through
// pkg/slot and mutated only through app/store.
package models

import "encoding/json"

// Document is the complete persisted state. Each collection is an ordered
// slice — listings rely on insertion order, with the newest records
// prepended.
type Document struct {
	Users        []User              `json:"users"`
	Products     []Product           `json:"products"`
	Orders       []Order             `json:"orders"`
	Reviews      []Review            `json:"reviews"`
	Applications []SellerApplication `json:"seller_applications"`
	Messages     []ContactMessage    `json:"contact_messages"`
}

// Clone returns a deep copy of the document via a JSON round-trip. The
// document is small by design (demo-scale data), so the cost is acceptable
// and it guarantees callers can never alias store-internal state.
func (d *Document) Clone() *Document {
	raw, err := json.Marshal(d)
	if err != nil {
		// Document contains only JSON-safe types; this cannot fail.
		panic("models: clone: " + err.Error())
	}
	out := &Document{}
	if err := json.Unmarshal(raw, out); err != nil {
		panic("models: clone: " + err.Error())
	}
	return out
}
