package services

import (
	"errors"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
)

var (
	ErrProductNotFound    = errors.New("checkout: product not found")
	ErrProductUnavailable = errors.New("checkout: product is not approved for sale")
	ErrOwnProduct         = errors.New("checkout: cannot buy your own product")
	ErrAlreadyPurchased   = errors.New("checkout: product already purchased")
	ErrPaymentFailed      = errors.New("checkout: payment failed")
)

// CheckoutService turns a buyer's purchase intent into a completed order:
// it charges the payment provider, then records the order with its fee
// split, which in turn bumps the product and creator rollups.
type CheckoutService struct {
	store    *store.Store
	payments PaymentProvider
}

func NewCheckoutService(st *store.Store, p PaymentProvider) *CheckoutService {
	return &CheckoutService{store: st, payments: p}
}

// Checkout purchases productID for the given buyer.
func (s *CheckoutService) Checkout(buyerID, productID string) (models.Order, error) {
	product, ok := s.store.ProductByID(productID)
	if !ok {
		return models.Order{}, ErrProductNotFound
	}
	if product.Status != models.StatusApproved {
		return models.Order{}, ErrProductUnavailable
	}
	if product.CreatorID == buyerID {
		return models.Order{}, ErrOwnProduct
	}
	if s.store.HasPurchased(buyerID, productID) {
		return models.Order{}, ErrAlreadyPurchased
	}

	ref, err := s.payments.Charge(buyerID, product.Price)
	if err != nil {
		logger.Error("checkout: charge failed",
			"buyer", buyerID, "product", productID, "error", err)
		return models.Order{}, errors.Join(ErrPaymentFailed, err)
	}

	fee, seller := models.SplitAmount(product.Price)
	order := s.store.CreateOrder(models.Order{
		BuyerID:      buyerID,
		SellerID:     product.CreatorID,
		ProductID:    productID,
		Amount:       product.Price,
		PlatformFee:  fee,
		SellerAmount: seller,
		PaymentRef:   ref,
	})

	logger.Info("checkout: order completed",
		"order", order.ID, "buyer", buyerID, "product", productID, "amount", order.Amount)
	return order, nil
}
