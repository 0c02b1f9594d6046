// Package store implements the Digiteria document store: the single shared
// document holding every marketplace collection, a mutation API with
// denormalization side effects, and synchronous change notification.
//
// The store is constructed explicitly and injected where needed — there is
// no package-level singleton. One Store per process; a second process
// sharing the same slot is synchronized only through the slot's Watcher
// (full-document overwrite, last write wins).
//
// All reads return deep copies. The only legitimate mutator of the document
// is this package; callers must never write the durable slot directly, or
// notification and denormalization side effects are bypassed.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/database/seed"
	"github.com/shashiranjanraj/digiteria/pkg/bus"
	"github.com/shashiranjanraj/digiteria/pkg/collection"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/metrics"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
)

// Store owns the in-memory document and its durable slot.
type Store struct {
	mu   sync.Mutex
	doc  *models.Document
	slot slot.Slot
	bus  *bus.Bus

	stopWatch func()
}

// Open loads the document from the slot. A never-written slot is initialized
// with the seed document; a corrupt payload is logged and replaced in memory
// by the seed (no partial recovery). Open never fails on bad data — the
// worst case is starting from the seed.
func Open(s slot.Slot) *Store {
	st := &Store{slot: s, bus: bus.New()}

	payload, ok, err := s.Load()
	switch {
	case err != nil:
		logger.Error("store: load failed, using seed", "error", err)
		st.doc = seed.Document()
	case !ok:
		st.doc = seed.Document()
		st.writeSlot(st.marshal())
	default:
		doc := &models.Document{}
		if err := json.Unmarshal(payload, doc); err != nil {
			logger.Error("store: corrupt document, using seed", "error", err)
			st.doc = seed.Document()
		} else {
			st.doc = doc
		}
	}

	if w, isWatcher := s.(slot.Watcher); isWatcher {
		stop, err := w.Watch(st.reload)
		if err != nil {
			logger.Warn("store: external change watching disabled", "error", err)
		} else {
			st.stopWatch = stop
		}
	}

	return st
}

// Close stops external change watching. The document itself needs no
// teardown — every mutation is already persisted.
func (st *Store) Close() {
	if st.stopWatch != nil {
		st.stopWatch()
		st.stopWatch = nil
	}
}

// Subscribe registers a listener invoked synchronously after every save.
// The returned function unsubscribes exactly this listener.
func (st *Store) Subscribe(fn func()) (unsubscribe func()) {
	return st.bus.Subscribe(fn)
}

// ── Reads ────────────────────────────────────────────────────────────────────
// All accessors return deep copies; mutating the result never touches the
// store.

// Document returns a deep copy of the full document.
func (st *Store) Document() *models.Document {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.doc.Clone()
}

func (st *Store) Users() []models.User              { return st.Document().Users }
func (st *Store) Products() []models.Product        { return st.Document().Products }
func (st *Store) Orders() []models.Order            { return st.Document().Orders }
func (st *Store) Reviews() []models.Review          { return st.Document().Reviews }
func (st *Store) Messages() []models.ContactMessage { return st.Document().Messages }

func (st *Store) Applications() []models.SellerApplication {
	return st.Document().Applications
}

// UserByID looks up a user by id.
func (st *Store) UserByID(id string) (models.User, bool) {
	return collection.First(st.Users(), func(u models.User) bool { return u.ID == id })
}

// UserByEmail looks up a user by email, case-insensitively.
func (st *Store) UserByEmail(email string) (models.User, bool) {
	return collection.First(st.Users(), func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

// ProductByID looks up a product by id.
func (st *Store) ProductByID(id string) (models.Product, bool) {
	return collection.First(st.Products(), func(p models.Product) bool { return p.ID == id })
}

// ProductsByCreator returns the creator's products, newest first.
func (st *Store) ProductsByCreator(creatorID string) []models.Product {
	return collection.Filter(st.Products(), func(p models.Product) bool {
		return p.CreatorID == creatorID
	})
}

// ReviewsForProduct returns a product's reviews, newest first.
func (st *Store) ReviewsForProduct(productID string) []models.Review {
	return collection.Filter(st.Reviews(), func(r models.Review) bool {
		return r.ProductID == productID
	})
}

// OrdersForBuyer returns a buyer's orders, newest first.
func (st *Store) OrdersForBuyer(buyerID string) []models.Order {
	return collection.Filter(st.Orders(), func(o models.Order) bool {
		return o.BuyerID == buyerID
	})
}

// OrdersForSeller returns a seller's orders, newest first.
func (st *Store) OrdersForSeller(sellerID string) []models.Order {
	return collection.Filter(st.Orders(), func(o models.Order) bool {
		return o.SellerID == sellerID
	})
}

// ApplicationByID looks up a seller application by id.
func (st *Store) ApplicationByID(id string) (models.SellerApplication, bool) {
	return collection.First(st.Applications(), func(a models.SellerApplication) bool {
		return a.ID == id
	})
}

// HasPurchased reports whether the buyer has a completed order for the
// product — used to flag verified-purchase reviews.
func (st *Store) HasPurchased(buyerID, productID string) bool {
	return collection.Contains(st.Orders(), func(o models.Order) bool {
		return o.BuyerID == buyerID && o.ProductID == productID
	})
}

// ── Persistence ──────────────────────────────────────────────────────────────

// marshal serializes the document. Must be called with st.mu held.
func (st *Store) marshal() []byte {
	payload, err := json.Marshal(st.doc)
	if err != nil {
		// The document contains only JSON-safe types.
		panic("store: marshal: " + err.Error())
	}
	return payload
}

func (st *Store) writeSlot(payload []byte) {
	start := time.Now()
	if err := st.slot.Save(payload); err != nil {
		// Durability is best effort; the in-memory document stays
		// authoritative for this process.
		logger.Error("store: save failed", "error", err)
	}
	metrics.ObserveDocumentSave(time.Since(start), len(payload))
}

// saveAndNotify persists the document and then fires the bus, synchronously,
// before the triggering mutation returns. Called without st.mu held so
// listeners can re-read the store.
func (st *Store) saveAndNotify(payload []byte) {
	st.writeSlot(payload)
	st.bus.Notify()
}

// reload replaces the in-memory document with whatever the slot now holds.
// This is the external-change path: no merge, no conflict detection — the
// last writer's document wins. A corrupt or empty payload keeps the current
// in-memory document.
func (st *Store) reload() {
	payload, ok, err := st.slot.Load()
	if err != nil || !ok {
		if err != nil {
			logger.Error("store: reload failed", "error", err)
		}
		return
	}

	doc := &models.Document{}
	if err := json.Unmarshal(payload, doc); err != nil {
		logger.Error("store: reload: corrupt document ignored", "error", err)
		return
	}

	st.mu.Lock()
	st.doc = doc
	st.mu.Unlock()

	st.bus.Notify()
}

// newID returns a collection-prefixed random identifier, e.g. "prd_1f0a…".
func newID(prefix string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return prefix + "_" + hex.EncodeToString(b)
}
