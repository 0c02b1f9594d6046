// Package seed builds the initial Digiteria document: the snapshot the store
// falls back to on first run or when the durable slot is corrupt.
//
// Collections register themselves from init() in their own files:
//
//	func init() {
//	    seed.Register("users", seedUsers)
//	}
//
// seed.Document() runs every registered seeder in registration order against
// a fresh document.
package seed

import (
	"sync"

	"github.com/shashiranjanraj/digiteria/app/models"
)

// Func fills one collection of the document.
type Func func(doc *models.Document)

type entry struct {
	name string
	fn   Func
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a seeder to the registry. Call from init().
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// Document builds a fresh seed document. Every call returns a new, fully
// independent copy — callers may mutate the result freely.
func Document() *models.Document {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	doc := &models.Document{
		Users:        []models.User{},
		Products:     []models.Product{},
		Orders:       []models.Order{},
		Reviews:      []models.Review{},
		Applications: []models.SellerApplication{},
		Messages:     []models.ContactMessage{},
	}
	for _, e := range current {
		e.fn(doc)
	}
	return doc
}
