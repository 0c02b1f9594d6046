package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/database/seed"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
)

type failingProvider struct{}

func (failingProvider) Charge(string, float64) (string, error) {
	return "", errors.New("card declined")
}

func newCheckout(t *testing.T, p services.PaymentProvider) (*services.CheckoutService, *store.Store) {
	t.Helper()

	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)
	return services.NewCheckoutService(st, p), st
}

func TestCheckoutSplitsFee(t *testing.T) {
	svc, st := newCheckout(t, &services.SandboxProvider{})

	order, err := svc.Checkout(seed.BuyerID, seed.ProductNotionID)
	require.NoError(t, err)

	// 5% of 18.00, rounded to cents.
	assert.InDelta(t, 18.00, order.Amount, 0.001)
	assert.InDelta(t, 0.90, order.PlatformFee, 0.001)
	assert.InDelta(t, 17.10, order.SellerAmount, 0.001)
	assert.NotEmpty(t, order.PaymentRef)

	product, _ := st.ProductByID(seed.ProductNotionID)
	assert.Equal(t, 1, product.SalesCount)
	assert.Equal(t, 1, product.Downloads)
}

func TestCheckoutFailedChargeLeavesNoOrder(t *testing.T) {
	svc, st := newCheckout(t, failingProvider{})

	before := len(st.Orders())
	_, err := svc.Checkout(seed.BuyerID, seed.ProductNotionID)

	require.ErrorIs(t, err, services.ErrPaymentFailed)
	assert.Len(t, st.Orders(), before)

	product, _ := st.ProductByID(seed.ProductNotionID)
	assert.Zero(t, product.SalesCount)
}

func TestCheckoutGuards(t *testing.T) {
	svc, _ := newCheckout(t, &services.SandboxProvider{})

	_, err := svc.Checkout(seed.BuyerID, "prd_missing")
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = svc.Checkout(seed.BuyerID, seed.ProductPresetsID)
	assert.ErrorIs(t, err, services.ErrProductUnavailable)

	_, err = svc.Checkout(seed.CreatorID, seed.ProductNotionID)
	assert.ErrorIs(t, err, services.ErrOwnProduct)

	_, err = svc.Checkout(seed.BuyerID, seed.ProductIconsID)
	assert.ErrorIs(t, err, services.ErrAlreadyPurchased)
}

func TestCatalogSearchAndSort(t *testing.T) {
	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)
	catalog := services.NewCatalogService(st)

	approved := catalog.Approved()
	assert.Len(t, approved, 3)

	byPrice := catalog.Search("", "", "price_asc")
	require.Len(t, byPrice, 3)
	assert.LessOrEqual(t, byPrice[0].Price, byPrice[1].Price)
	assert.LessOrEqual(t, byPrice[1].Price, byPrice[2].Price)

	icons := catalog.Search("icon", "", "")
	require.Len(t, icons, 1)
	assert.Equal(t, seed.ProductIconsID, icons[0].ID)
}

func TestCatalogPaging(t *testing.T) {
	st := store.Open(slot.NewMemory())
	t.Cleanup(st.Close)
	catalog := services.NewCatalogService(st)

	all := catalog.Approved()
	first := services.Page(all, 1, 2)
	second := services.Page(all, 2, 2)

	assert.Len(t, first, 2)
	assert.Len(t, second, 1)
	assert.Empty(t, services.Page(all, 3, 2))
}
