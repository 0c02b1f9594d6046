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

func TestStatsFromSeed(t *testing.T) {
	st := open(t)
	s := st.Stats()

	assert.Equal(t, 3, s.ActiveUsers)
	assert.Equal(t, 2, s.ProductsSold)
	assert.InDelta(t, 34.67, s.CreatorEarnings, 0.001)
	// (5 + 4 + 0 + 0) / 4 products
	assert.InDelta(t, 2.25, s.AvgRating, 0.001)
}

func TestStatsAvgRatingZeroWithoutProducts(t *testing.T) {
	mem := slot.NewMemory()
	empty, err := json.Marshal(&models.Document{})
	require.NoError(t, err)
	require.NoError(t, mem.Save(empty))

	st := store.Open(mem)
	defer st.Close()

	s := st.Stats()
	assert.Zero(t, s.AvgRating)
	assert.Zero(t, s.ActiveUsers)
}

func TestStatsRecomputedEveryCall(t *testing.T) {
	st := open(t)

	before := st.Stats()
	st.EnsureUser(models.User{Email: "new@example.com", Name: "New"})
	after := st.Stats()

	assert.Equal(t, before.ActiveUsers+1, after.ActiveUsers)
}

func TestStatsFollowOrderCreation(t *testing.T) {
	st := open(t)
	before := st.Stats()

	p := st.AddProduct(models.Product{CreatorID: seed.CreatorID, Title: "Stat", Price: 20})
	st.CreateOrder(models.Order{
		BuyerID: seed.BuyerID, SellerID: seed.CreatorID, ProductID: p.ID,
		Amount: 20, PlatformFee: 1, SellerAmount: 19,
	})

	after := st.Stats()
	assert.Equal(t, before.ProductsSold+1, after.ProductsSold)
	assert.InDelta(t, before.CreatorEarnings+19, after.CreatorEarnings, 0.001)
}
