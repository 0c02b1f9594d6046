package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/routes"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/database/seed"
	"github.com/shashiranjanraj/digiteria/pkg/router"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
	"github.com/shashiranjanraj/digiteria/pkg/testkit"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

// newAPI mounts the full route table over a fresh seeded in-memory store.
func newAPI(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		Store:    st,
		Hub:      ws.NewHub(),
		Payments: &services.SandboxProvider{},
	})
	return r.Handler(), st
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out.Data
}

// login authenticates one of the seed accounts (their password is the demo
// password) and returns a bearer token.
func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "digiteria",
	})
	require.Equal(t, http.StatusOK, rec.Code, "login %s: %s", email, rec.Body.String())

	data := decodeData(t, rec)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestScenarios(t *testing.T) {
	h, _ := newAPI(t)
	testkit.Run(t, h, "testdata/stats_show.json")
	testkit.Run(t, h, "testdata/login_unknown_account.json")
	testkit.Run(t, h, "testdata/contact_missing_message.json")
}

func TestRegisterThenProfile(t *testing.T) {
	h, _ := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New Person",
		"email":    "new.person@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	token := data["token"].(string)

	rec = doJSON(t, h, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.Contains(t, rec.Body.String(), "new.person@example.com")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	h, _ := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Dup",
		"email":    seed.BuyerEmail,
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	h, _ := newAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogListsOnlyApproved(t *testing.T) {
	h, _ := newAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	// Seed has 4 products, one of them still pending moderation.
	require.Len(t, out.Data, 3)
	for _, p := range out.Data {
		assert.Equal(t, models.StatusApproved, p["status"])
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	h, st := newAPI(t)
	token := login(t, h, seed.BuyerEmail)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", token, map[string]string{
		"product_id": seed.ProductNotionID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "completed", data["status"])
	assert.InDelta(t, 18.00, data["amount"].(float64), 0.001)
	assert.InDelta(t, 0.90, data["platform_fee"].(float64), 0.001)
	assert.InDelta(t, 17.10, data["seller_amount"].(float64), 0.001)
	assert.NotEmpty(t, data["payment_ref"])

	product, _ := st.ProductByID(seed.ProductNotionID)
	assert.Equal(t, 1, product.SalesCount)
}

func TestCheckoutRejectsDuplicatePurchase(t *testing.T) {
	h, _ := newAPI(t)
	token := login(t, h, seed.BuyerEmail)

	// The seed buyer already owns the icons pack.
	rec := doJSON(t, h, http.MethodPost, "/api/orders", token, map[string]string{
		"product_id": seed.ProductIconsID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutRejectsOwnProduct(t *testing.T) {
	h, _ := newAPI(t)
	token := login(t, h, seed.CreatorEmail)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", token, map[string]string{
		"product_id": seed.ProductNotionID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutRejectsPendingProduct(t *testing.T) {
	h, _ := newAPI(t)
	token := login(t, h, seed.BuyerEmail)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", token, map[string]string{
		"product_id": seed.ProductPresetsID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProductCreateRequiresCreatorRole(t *testing.T) {
	h, _ := newAPI(t)

	buyer := login(t, h, seed.BuyerEmail)
	rec := doJSON(t, h, http.MethodPost, "/api/products", buyer, map[string]any{
		"title": "Not Allowed", "price": 5.0,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	creator := login(t, h, seed.CreatorEmail)
	rec = doJSON(t, h, http.MethodPost, "/api/products", creator, map[string]any{
		"title": "Lightroom Presets Vol. 2", "price": 14.5, "category": "photography",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, models.StatusPending, data["status"])
	assert.Equal(t, seed.CreatorID, data["creator_id"])
}

func TestAdminModeratesProduct(t *testing.T) {
	h, st := newAPI(t)

	admin := login(t, h, seed.AdminEmail)
	path := fmt.Sprintf("/api/admin/products/%s/status", seed.ProductPresetsID)
	rec := doJSON(t, h, http.MethodPatch, path, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	product, _ := st.ProductByID(seed.ProductPresetsID)
	assert.Equal(t, models.StatusApproved, product.Status)

	// Non-admins cannot reach the moderation endpoint at all.
	creator := login(t, h, seed.CreatorEmail)
	rec = doJSON(t, h, http.MethodPatch, path, creator, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSellerApplicationApprovalPromotes(t *testing.T) {
	h, st := newAPI(t)

	buyer := login(t, h, seed.BuyerEmail)
	rec := doJSON(t, h, http.MethodPost, "/api/seller/apply", buyer, map[string]string{
		"business_name": "Leo's Loops",
		"category":      "audio",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	appID := data["id"].(string)
	assert.Equal(t, models.ApplicationPending, data["status"])

	admin := login(t, h, seed.AdminEmail)
	rec = doJSON(t, h, http.MethodPatch, "/api/admin/applications/"+appID, admin,
		map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	user, _ := st.UserByID(seed.BuyerID)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.Equal(t, "Leo's Loops", user.Company)
}

func TestAdminManagesUsers(t *testing.T) {
	h, st := newAPI(t)
	admin := login(t, h, seed.AdminEmail)

	rec := doJSON(t, h, http.MethodPatch, "/api/admin/users/"+seed.BuyerID, admin,
		map[string]string{"role": "creator"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user, _ := st.UserByID(seed.BuyerID)
	assert.Equal(t, models.RoleCreator, user.Role)

	rec = doJSON(t, h, http.MethodDelete, "/api/admin/users/"+seed.BuyerID, admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := st.UserByID(seed.BuyerID)
	assert.False(t, ok)

	rec = doJSON(t, h, http.MethodDelete, "/api/admin/users/"+seed.BuyerID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewVerifiedPurchaseBadge(t *testing.T) {
	h, _ := newAPI(t)
	token := login(t, h, seed.BuyerEmail)

	// The seed buyer purchased the icons pack, so the badge is earned.
	rec := doJSON(t, h, http.MethodPost, "/api/products/"+seed.ProductIconsID+"/reviews", token,
		map[string]any{"rating": 4, "content": "Crisp icons, tidy naming."})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, true, data["is_verified_purchase"])

	// No purchase of the notion templates — no badge.
	rec = doJSON(t, h, http.MethodPost, "/api/products/"+seed.ProductNotionID+"/reviews", token,
		map[string]any{"rating": 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, false, decodeData(t, rec)["is_verified_purchase"])
}

func TestGraphTraffic(t *testing.T) {
	// The GraphQL endpoint mounts in the kernel, not in RegisterAPI, so it
	// is covered in internal/kernel tests. This guards the route table from
	// accidentally shadowing /graphql.
	h, _ := newAPI(t)
	rec := doJSON(t, h, http.MethodPost, "/graphql", "", map[string]string{"query": "{stats{activeUsers}}"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
