package store_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/database/seed"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
)

// open builds a store on a fresh in-memory slot, starting from the seed.
func open(t *testing.T) *store.Store {
	t.Helper()
	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)
	return st
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestOpenEmptySlotInitializesWithSeed(t *testing.T) {
	mem := slot.NewMemory()
	st := store.Open(mem)
	defer st.Close()

	assert.Equal(t, 3, st.Stats().ActiveUsers)

	// The seed must have been written through to the slot.
	payload, ok, err := mem.Load()
	require.NoError(t, err)
	require.True(t, ok)

	doc := models.Document{}
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.Len(t, doc.Users, 3)
}

func TestOpenCorruptSlotFallsBackToSeed(t *testing.T) {
	mem := slot.NewMemory()
	require.NoError(t, mem.Save([]byte("{not json")))

	st := store.Open(mem)
	defer st.Close()

	assert.Equal(t, 3, st.Stats().ActiveUsers)
	assert.Len(t, st.Products(), 4)
}

func TestOpenExistingSlotLoadsStoredDocument(t *testing.T) {
	mem := slot.NewMemory()

	first := store.Open(mem)
	first.AddMessage(models.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	first.Close()

	second := store.Open(mem)
	defer second.Close()

	require.Len(t, second.Messages(), 1)
	assert.Equal(t, "Ana", second.Messages()[0].Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mem := slot.NewMemory()
	st := store.Open(mem)
	defer st.Close()

	st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Font Duo", Price: 15})
	st.AddMessage(models.ContactMessage{Name: "Bo", Email: "bo@example.com", Message: "hey"})

	payload, ok, err := mem.Load()
	require.NoError(t, err)
	require.True(t, ok)

	want, err := json.Marshal(st.Document())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(payload))
}

// ── Products ─────────────────────────────────────────────────────────────────

func TestAddProductDefaults(t *testing.T) {
	st := open(t)

	p := st.AddProduct(models.Product{
		CreatorID: seed.CreatorID,
		Title:     "Wireframe Kit",
		Price:     29,
		// Caller-supplied counters must be discarded.
		Views:      99,
		SalesCount: 99,
	})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.Zero(t, p.Views)
	assert.Zero(t, p.Downloads)
	assert.Zero(t, p.SalesCount)
	assert.Zero(t, p.ReviewCount)
	assert.Zero(t, p.Rating)
	assert.False(t, p.CreatedAt.IsZero())

	// Prepended: newest first.
	assert.Equal(t, p.ID, st.Products()[0].ID)

	// Creator rollup follows.
	creator, ok := st.UserByID(seed.CreatorID)
	require.True(t, ok)
	assert.Equal(t, 5, creator.TotalProducts)
}

func TestAddProductExplicitStatusKept(t *testing.T) {
	st := open(t)

	p := st.AddProduct(models.Product{
		CreatorID: seed.CreatorID,
		Title:     "Draft Pack",
		Status:    models.StatusDraft,
	})
	assert.Equal(t, models.StatusDraft, p.Status)
}

func TestUpdateProductUnknownIDIsNoOp(t *testing.T) {
	st := open(t)
	before := len(st.Products())

	_, ok := st.UpdateProduct("prd_missing", store.ProductPatch{Price: store.Ptr(1.0)})

	assert.False(t, ok)
	assert.Len(t, st.Products(), before)
}

func TestUpdateProductMergesPatch(t *testing.T) {
	st := open(t)

	updated, ok := st.UpdateProduct(seed.ProductNotionID, store.ProductPatch{
		Price:  store.Ptr(21.0),
		Status: store.Ptr(models.StatusArchived),
	})
	require.True(t, ok)
	assert.Equal(t, 21.0, updated.Price)
	assert.Equal(t, models.StatusArchived, updated.Status)
	// Untouched fields survive the merge.
	assert.Equal(t, "Freelance OS — Notion Template", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestDeleteProduct(t *testing.T) {
	st := open(t)

	assert.True(t, st.DeleteProduct(seed.ProductPresetsID))
	_, found := st.ProductByID(seed.ProductPresetsID)
	assert.False(t, found)

	creator, _ := st.UserByID(seed.CreatorID)
	assert.Equal(t, 3, creator.TotalProducts)

	assert.False(t, st.DeleteProduct(seed.ProductPresetsID), "second delete is a no-op")
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestEnsureUserIdempotentByEmail(t *testing.T) {
	st := open(t)
	require.Equal(t, 3, st.Stats().ActiveUsers)

	first := st.EnsureUser(models.User{Email: "nina@example.com", Name: "Nina"})
	assert.Equal(t, 4, st.Stats().ActiveUsers)
	assert.Equal(t, models.RoleUser, first.Role)

	// Same email, different casing, different name — nothing happens.
	again := st.EnsureUser(models.User{Email: "NINA@example.com", Name: "Other"})
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Nina", again.Name)
	assert.Equal(t, 4, st.Stats().ActiveUsers)
}

func TestEnsureUserKeepsProvidedIdentity(t *testing.T) {
	st := open(t)

	u := st.EnsureUser(models.User{ID: "usr_external01", Email: "ext@example.com"})
	assert.Equal(t, "usr_external01", u.ID)
}

func TestUpdateUserUnknownID(t *testing.T) {
	st := open(t)

	_, ok := st.UpdateUser("usr_missing", store.UserPatch{Name: store.Ptr("X")})
	assert.False(t, ok)
}

func TestDeleteUser(t *testing.T) {
	st := open(t)

	assert.True(t, st.DeleteUser(seed.BuyerID))
	assert.Equal(t, 2, st.Stats().ActiveUsers)
	assert.False(t, st.DeleteUser(seed.BuyerID))
}

// ── Seller applications ──────────────────────────────────────────────────────

func TestApplicationApprovalPromotesUser(t *testing.T) {
	st := open(t)

	app := st.CreateApplication(models.SellerApplication{
		Email:        seed.BuyerEmail,
		BusinessName: "Leo Audio",
		Bio:          "Sample packs.",
		Status:       "approved", // must be overridden
	})
	assert.Equal(t, models.ApplicationPending, app.Status)

	updated, ok := st.SetApplicationStatus(app.ID, models.ApplicationApproved)
	require.True(t, ok)
	assert.Equal(t, models.ApplicationApproved, updated.Status)

	user, found := st.UserByEmail(seed.BuyerEmail)
	require.True(t, found)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.Equal(t, "Leo Audio", user.Company)
	assert.Equal(t, "Sample packs.", user.Bio)
}

func TestApplicationRejectionLeavesUserAlone(t *testing.T) {
	st := open(t)

	app := st.CreateApplication(models.SellerApplication{Email: seed.BuyerEmail, BusinessName: "X"})
	_, ok := st.SetApplicationStatus(app.ID, models.ApplicationRejected)
	require.True(t, ok)

	user, _ := st.UserByEmail(seed.BuyerEmail)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestApplicationApprovalWithoutMatchingUser(t *testing.T) {
	st := open(t)

	app := st.CreateApplication(models.SellerApplication{Email: "ghost@example.com", BusinessName: "Ghost"})
	updated, ok := st.SetApplicationStatus(app.ID, models.ApplicationApproved)

	require.True(t, ok, "application itself still transitions")
	assert.Equal(t, models.ApplicationApproved, updated.Status)
}

func TestSetApplicationStatusNoOps(t *testing.T) {
	st := open(t)

	_, ok := st.SetApplicationStatus("app_missing", models.ApplicationApproved)
	assert.False(t, ok)

	_, ok = st.SetApplicationStatus(seed.ApplicationLeoID, "on-hold")
	assert.False(t, ok)

	app, _ := st.ApplicationByID(seed.ApplicationLeoID)
	assert.Equal(t, models.ApplicationPending, app.Status)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func TestSplitAmount(t *testing.T) {
	fee, seller := models.SplitAmount(49.99)
	assert.Equal(t, 2.50, fee)
	assert.Equal(t, 47.49, seller)
	assert.Equal(t, 49.99, fee+seller)
}

func TestCreateOrderSideEffects(t *testing.T) {
	st := open(t)

	p := st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Mockup Set", Price: 49.99})
	creatorBefore, _ := st.UserByID(seed.CreatorID)

	o := st.CreateOrder(models.Order{
		BuyerID:      seed.BuyerID,
		SellerID:     seed.CreatorID,
		ProductID:    p.ID,
		Amount:       49.99,
		PlatformFee:  2.50,
		SellerAmount: 47.49,
		PaymentRef:   "pi_test_123",
	})

	assert.Equal(t, models.OrderCompleted, o.Status)
	assert.Equal(t, o.Amount, o.PlatformFee+o.SellerAmount)
	assert.Equal(t, o.ID, st.Orders()[0].ID, "prepended")

	product, _ := st.ProductByID(p.ID)
	assert.Equal(t, 1, product.SalesCount)
	assert.Equal(t, 1, product.Downloads)

	creator, _ := st.UserByID(seed.CreatorID)
	assert.Equal(t, creatorBefore.TotalSales+1, creator.TotalSales)
	assert.InDelta(t, creatorBefore.TotalEarnings+47.49, creator.TotalEarnings, 0.001)
}

func TestCreateOrderTwiceDoubleCounts(t *testing.T) {
	// Order creation is not idempotent: the same payload twice records two
	// distinct orders and doubles the rollups. Expected, not a bug.
	st := open(t)

	p := st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Twice", Price: 10})
	order := models.Order{
		BuyerID: seed.BuyerID, SellerID: seed.CreatorID, ProductID: p.ID,
		Amount: 10, PlatformFee: 0.50, SellerAmount: 9.50,
	}

	first := st.CreateOrder(order)
	second := st.CreateOrder(order)

	assert.NotEqual(t, first.ID, second.ID)

	product, _ := st.ProductByID(p.ID)
	assert.Equal(t, 2, product.SalesCount)
}

func TestCreateOrderMissingProductSkipsCounters(t *testing.T) {
	st := open(t)
	creatorBefore, _ := st.UserByID(seed.CreatorID)
	ordersBefore := len(st.Orders())

	o := st.CreateOrder(models.Order{
		BuyerID: seed.BuyerID, SellerID: seed.CreatorID, ProductID: "prd_gone",
		Amount: 5, PlatformFee: 0.25, SellerAmount: 4.75,
	})

	// The order itself still succeeds.
	assert.NotEmpty(t, o.ID)
	assert.Len(t, st.Orders(), ordersBefore+1)

	creator, _ := st.UserByID(seed.CreatorID)
	assert.Equal(t, creatorBefore.TotalEarnings, creator.TotalEarnings)
	assert.Equal(t, creatorBefore.TotalSales, creator.TotalSales)
}

// ── Reviews ──────────────────────────────────────────────────────────────────

func TestAddReviewRecalculatesRating(t *testing.T) {
	st := open(t)

	r := st.AddReview(models.Review{
		ProductID:          seed.ProductIconsID,
		UserID:             seed.BuyerID,
		Rating:             3,
		Content:            "Decent.",
		IsVerifiedPurchase: st.HasPurchased(seed.BuyerID, seed.ProductIconsID),
	})
	assert.True(t, r.IsVerifiedPurchase)
	assert.Equal(t, r.ID, st.Reviews()[0].ID, "prepended")

	// Seed had one 5-star review; (5+3)/2 = 4.
	p, _ := st.ProductByID(seed.ProductIconsID)
	assert.Equal(t, 2, p.ReviewCount)
	assert.Equal(t, 4.0, p.Rating)
}

func TestAddReviewMissingProduct(t *testing.T) {
	st := open(t)

	r := st.AddReview(models.Review{ProductID: "prd_gone", UserID: seed.BuyerID, Rating: 1})
	assert.NotEmpty(t, r.ID, "review records even when the product is gone")
}

// ── Contact messages ─────────────────────────────────────────────────────────

func TestAddMessage(t *testing.T) {
	st := open(t)

	m := st.AddMessage(models.ContactMessage{Name: "Sam", Email: "sam@example.com", Message: "help"})
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, m.ID, st.Messages()[0].ID)
}

// ── Notification ─────────────────────────────────────────────────────────────

func TestMutationNotifiesSubscribersInOrder(t *testing.T) {
	st := open(t)

	var calls []string
	st.Subscribe(func() { calls = append(calls, "a") })
	st.Subscribe(func() { calls = append(calls, "b") })

	st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Notify"})

	// Both listeners ran exactly once, in registration order, before
	// AddProduct returned.
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	st := open(t)

	count := 0
	unsub := st.Subscribe(func() { count++ })
	unsub()

	st.AddMessage(models.ContactMessage{Name: "Q", Email: "q@example.com", Message: "x"})
	assert.Zero(t, count)
}

func TestNoOpMutationDoesNotNotify(t *testing.T) {
	st := open(t)

	count := 0
	st.Subscribe(func() { count++ })

	st.UpdateProduct("prd_missing", store.ProductPatch{})
	st.DeleteUser("usr_missing")

	assert.Zero(t, count)
}

func TestListenersCanReadFreshState(t *testing.T) {
	st := open(t)

	var seen int
	st.Subscribe(func() { seen = len(st.Products()) })

	before := len(st.Products())
	st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Fresh"})

	assert.Equal(t, before+1, seen)
}

// ── External change (cross-process sync) ─────────────────────────────────────

// watchedSlot wraps a memory slot and exposes the onChange hook so tests can
// simulate another process writing the slot.
type watchedSlot struct {
	*slot.Memory
	onChange func()
}

func (w *watchedSlot) Watch(onChange func()) (func(), error) {
	w.onChange = onChange
	return func() {}, nil
}

func TestExternalWriteReplacesDocumentLastWriteWins(t *testing.T) {
	ws := &watchedSlot{Memory: slot.NewMemory()}
	st := store.Open(ws)
	defer st.Close()
	require.NotNil(t, ws.onChange)

	notified := 0
	st.Subscribe(func() { notified++ })

	// Another process replaces the whole document.
	other := seed.Document()
	other.Users = other.Users[:1]
	payload, err := json.Marshal(other)
	require.NoError(t, err)
	require.NoError(t, ws.Save(payload))

	ws.onChange()

	// The local copy is silently overwritten — no merge.
	assert.Equal(t, 1, st.Stats().ActiveUsers)
	assert.Equal(t, 1, notified)
}

func TestExternalCorruptWriteIsIgnored(t *testing.T) {
	ws := &watchedSlot{Memory: slot.NewMemory()}
	st := store.Open(ws)
	defer st.Close()

	require.NoError(t, ws.Save([]byte("garbage")))
	ws.onChange()

	assert.Equal(t, 3, st.Stats().ActiveUsers, "current document kept")
}

// ── Read isolation ───────────────────────────────────────────────────────────

func TestReadsReturnDeepCopies(t *testing.T) {
	st := open(t)

	users := st.Users()
	users[0].Name = "Hacked"

	fresh := st.Users()
	assert.NotEqual(t, "Hacked", fresh[0].Name)
}
