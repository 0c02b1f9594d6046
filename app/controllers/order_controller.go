package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/digiteria/app/jobs"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
)

// OrderController handles checkout and order history.
type OrderController struct {
	store    *store.Store
	checkout *services.CheckoutService
}

func NewOrderController(st *store.Store, checkout *services.CheckoutService) *OrderController {
	return &OrderController{store: st, checkout: checkout}
}

type checkoutInput struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Create purchases a product for the authenticated buyer.
func (o *OrderController) Create(c *ctx.Context) {
	var in checkoutInput
	if !c.BindJSON(&in) {
		return
	}

	buyerID, _ := middleware.UserIDFromCtx(c.R)
	order, err := o.checkout.Checkout(buyerID, in.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.NotFound("Product not found")
		case errors.Is(err, services.ErrProductUnavailable):
			c.Error(http.StatusConflict, "Product is not available for purchase")
		case errors.Is(err, services.ErrOwnProduct):
			c.Error(http.StatusConflict, "You cannot buy your own product")
		case errors.Is(err, services.ErrAlreadyPurchased):
			c.Error(http.StatusConflict, "You already own this product")
		case errors.Is(err, services.ErrPaymentFailed):
			c.Error(http.StatusPaymentRequired, "Payment failed")
		default:
			c.Error(http.StatusInternalServerError, "Checkout failed")
		}
		return
	}

	// The seller notification rides the queue so SMTP never blocks checkout.
	if seller, ok := o.store.UserByID(order.SellerID); ok {
		if product, ok := o.store.ProductByID(order.ProductID); ok {
			if err := queue.Dispatch(&jobs.SaleCompletedJob{
				SellerEmail: seller.Email,
				Order:       order,
				Product:     product,
			}); err != nil {
				logger.Warn("orders: seller notification not queued", "order", order.ID, "error", err)
			}
		}
	}

	c.Created(order)
}

// Mine lists the authenticated user's purchases, newest first.
func (o *OrderController) Mine(c *ctx.Context) {
	buyerID, _ := middleware.UserIDFromCtx(c.R)
	c.Success(o.store.OrdersForBuyer(buyerID))
}

// Sales lists orders where the authenticated creator was the seller.
func (o *OrderController) Sales(c *ctx.Context) {
	sellerID, _ := middleware.UserIDFromCtx(c.R)
	c.Success(o.store.OrdersForSeller(sellerID))
}
