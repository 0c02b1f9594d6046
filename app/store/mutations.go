package store

import (
	"math"
	"strings"
	"time"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/pkg/collection"
	"github.com/shashiranjanraj/digiteria/pkg/metrics"
)

// Every mutation applies one change to the in-memory document, recomputes
// the denormalized fields that depend on it, persists the full document, and
// fires the bus — synchronously, before returning. There are no
// transactions: within one process the last caller wins, and a mutation that
// finds nothing to change is a silent no-op that neither saves nor notifies.

// ── Products ─────────────────────────────────────────────────────────────────

// AddProduct registers a new product submission. The id, timestamps and
// engagement counters are always assigned here — caller-supplied values for
// them are discarded. Status defaults to pending unless explicitly set.
// The product is prepended so listings show newest first.
func (st *Store) AddProduct(p models.Product) models.Product {
	st.mu.Lock()

	now := time.Now().UTC()
	p.ID = newID("prd")
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Views = 0
	p.Downloads = 0
	p.SalesCount = 0
	p.Rating = 0
	p.ReviewCount = 0
	if p.Status == "" {
		p.Status = models.StatusPending
	}

	st.doc.Products = collection.Prepend(st.doc.Products, p)

	// Keep the creator's product rollup in step.
	if u := st.findUser(p.CreatorID); u != nil {
		u.TotalProducts++
		u.UpdatedAt = now
	}

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("products", "add")
	st.saveAndNotify(payload)
	return p
}

// UpdateProduct merges patch into the product with the given id and stamps
// updated_at. Returns ok=false (and changes nothing) when the id is unknown.
func (st *Store) UpdateProduct(id string, patch ProductPatch) (models.Product, bool) {
	st.mu.Lock()

	p := st.findProduct(id)
	if p == nil {
		st.mu.Unlock()
		return models.Product{}, false
	}

	patch.apply(p)
	p.UpdatedAt = time.Now().UTC()
	updated := *p

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("products", "update")
	st.saveAndNotify(payload)
	return updated, true
}

// DeleteProduct removes the product with the given id. Unknown ids are a
// silent no-op.
func (st *Store) DeleteProduct(id string) bool {
	st.mu.Lock()

	idx := -1
	for i := range st.doc.Products {
		if st.doc.Products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		st.mu.Unlock()
		return false
	}

	creatorID := st.doc.Products[idx].CreatorID
	st.doc.Products = append(st.doc.Products[:idx], st.doc.Products[idx+1:]...)

	if u := st.findUser(creatorID); u != nil && u.TotalProducts > 0 {
		u.TotalProducts--
		u.UpdatedAt = time.Now().UTC()
	}

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("products", "delete")
	st.saveAndNotify(payload)
	return true
}

// RecordProductView increments a product's view counter.
func (st *Store) RecordProductView(id string) bool {
	st.mu.Lock()

	p := st.findProduct(id)
	if p == nil {
		st.mu.Unlock()
		return false
	}
	p.Views++

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("products", "view")
	st.saveAndNotify(payload)
	return true
}

// ── Users ────────────────────────────────────────────────────────────────────

// EnsureUser inserts the given profile unless a user with the same email
// already exists — an idempotent upsert keyed by email, not by id. The
// existing record is returned untouched on a match; calling twice with the
// same email never produces two records.
func (st *Store) EnsureUser(u models.User) models.User {
	st.mu.Lock()

	if existing := st.findUserByEmail(u.Email); existing != nil {
		out := *existing
		st.mu.Unlock()
		return out
	}

	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = newID("usr")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	st.doc.Users = collection.Prepend(st.doc.Users, u)

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("users", "ensure")
	st.saveAndNotify(payload)
	return u
}

// UpdateUser merges patch into the user with the given id.
// Returns ok=false when the id is unknown.
func (st *Store) UpdateUser(id string, patch UserPatch) (models.User, bool) {
	st.mu.Lock()

	u := st.findUser(id)
	if u == nil {
		st.mu.Unlock()
		return models.User{}, false
	}

	patch.apply(u)
	u.UpdatedAt = time.Now().UTC()
	updated := *u

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("users", "update")
	st.saveAndNotify(payload)
	return updated, true
}

// DeleteUser removes the user with the given id (explicit admin action —
// nothing else ever deletes a profile).
func (st *Store) DeleteUser(id string) bool {
	st.mu.Lock()

	idx := -1
	for i := range st.doc.Users {
		if st.doc.Users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		st.mu.Unlock()
		return false
	}
	st.doc.Users = append(st.doc.Users[:idx], st.doc.Users[idx+1:]...)

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("users", "delete")
	st.saveAndNotify(payload)
	return true
}

// ── Seller applications ──────────────────────────────────────────────────────

// CreateApplication records a new seller application. Status always starts
// pending; SetApplicationStatus is the only transition.
func (st *Store) CreateApplication(a models.SellerApplication) models.SellerApplication {
	st.mu.Lock()

	a.ID = newID("app")
	a.Status = models.ApplicationPending
	a.SubmittedAt = time.Now().UTC()

	st.doc.Applications = collection.Prepend(st.doc.Applications, a)

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("applications", "create")
	st.saveAndNotify(payload)
	return a
}

// SetApplicationStatus transitions an application to approved or rejected.
// Approval promotes the applicant (looked up by the application's email) to
// creator and copies the business name and bio onto the profile; if no user
// matches the email, only the application changes. Unknown application ids
// and unknown statuses are silent no-ops.
func (st *Store) SetApplicationStatus(id, status string) (models.SellerApplication, bool) {
	if status != models.ApplicationApproved && status != models.ApplicationRejected {
		return models.SellerApplication{}, false
	}

	st.mu.Lock()

	var app *models.SellerApplication
	for i := range st.doc.Applications {
		if st.doc.Applications[i].ID == id {
			app = &st.doc.Applications[i]
			break
		}
	}
	if app == nil {
		st.mu.Unlock()
		return models.SellerApplication{}, false
	}

	app.Status = status

	if status == models.ApplicationApproved {
		if u := st.findUserByEmail(app.Email); u != nil {
			u.Role = models.RoleCreator
			u.Company = app.BusinessName
			u.Bio = app.Bio
			u.UpdatedAt = time.Now().UTC()
		}
	}
	updated := *app

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("applications", "status")
	st.saveAndNotify(payload)
	return updated, true
}

// ── Orders ───────────────────────────────────────────────────────────────────

// CreateOrder records a completed purchase. The id, status and timestamps
// are assigned here; the amounts are recorded exactly as supplied (the
// checkout flow computes the split via models.SplitAmount). Side effects:
// the product's sales_count and downloads increment, and the creator's
// total_sales and total_earnings grow by one sale — each skipped silently
// when the related record no longer exists. Order creation is NOT
// idempotent: submitting the same payload twice records two orders and
// double-counts the rollups.
func (st *Store) CreateOrder(o models.Order) models.Order {
	st.mu.Lock()

	now := time.Now().UTC()
	o.ID = newID("ord")
	o.Status = models.OrderCompleted
	o.CreatedAt = now
	o.UpdatedAt = now

	st.doc.Orders = collection.Prepend(st.doc.Orders, o)

	if p := st.findProduct(o.ProductID); p != nil {
		p.SalesCount++
		p.Downloads++
		if u := st.findUser(p.CreatorID); u != nil {
			u.TotalSales++
			u.TotalEarnings = roundCents(u.TotalEarnings + o.SellerAmount)
			u.UpdatedAt = now
		}
	}

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("orders", "create")
	st.saveAndNotify(payload)
	return o
}

// ── Reviews ──────────────────────────────────────────────────────────────────

// AddReview records a product review and recomputes the product's rating
// rollup (and the creator's overall rating). Reviews have no update or
// delete path.
func (st *Store) AddReview(r models.Review) models.Review {
	st.mu.Lock()

	r.ID = newID("rev")
	r.CreatedAt = time.Now().UTC()

	st.doc.Reviews = collection.Prepend(st.doc.Reviews, r)
	st.recalcRatings(r.ProductID)

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("reviews", "add")
	st.saveAndNotify(payload)
	return r
}

// ── Contact messages ─────────────────────────────────────────────────────────

// AddMessage records an inbound contact submission.
func (st *Store) AddMessage(m models.ContactMessage) models.ContactMessage {
	st.mu.Lock()

	m.ID = newID("msg")
	m.CreatedAt = time.Now().UTC()

	st.doc.Messages = collection.Prepend(st.doc.Messages, m)

	payload := st.marshal()
	st.mu.Unlock()

	metrics.StoreMutation("messages", "add")
	st.saveAndNotify(payload)
	return m
}

// ── Internal helpers (call with st.mu held) ──────────────────────────────────

func (st *Store) findUser(id string) *models.User {
	for i := range st.doc.Users {
		if st.doc.Users[i].ID == id {
			return &st.doc.Users[i]
		}
	}
	return nil
}

func (st *Store) findUserByEmail(email string) *models.User {
	for i := range st.doc.Users {
		if strings.EqualFold(st.doc.Users[i].Email, email) {
			return &st.doc.Users[i]
		}
	}
	return nil
}

func (st *Store) findProduct(id string) *models.Product {
	for i := range st.doc.Products {
		if st.doc.Products[i].ID == id {
			return &st.doc.Products[i]
		}
	}
	return nil
}

// recalcRatings refreshes the product's rating/review_count from its reviews
// and the creator's rating from their reviewed products.
func (st *Store) recalcRatings(productID string) {
	p := st.findProduct(productID)
	if p == nil {
		return
	}

	var sum, n int
	for _, r := range st.doc.Reviews {
		if r.ProductID == productID {
			sum += r.Rating
			n++
		}
	}
	p.ReviewCount = n
	if n > 0 {
		p.Rating = math.Round(float64(sum)/float64(n)*10) / 10
	}

	if u := st.findUser(p.CreatorID); u != nil {
		var total float64
		var rated int
		for _, prod := range st.doc.Products {
			if prod.CreatorID == u.ID && prod.ReviewCount > 0 {
				total += prod.Rating
				rated++
			}
		}
		if rated > 0 {
			u.Rating = math.Round(total/float64(rated)*10) / 10
		}
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
