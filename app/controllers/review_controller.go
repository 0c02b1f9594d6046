package controllers

import (
	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
)

// ReviewController handles product reviews.
type ReviewController struct {
	store *store.Store
}

func NewReviewController(st *store.Store) *ReviewController {
	return &ReviewController{store: st}
}

// ForProduct lists all reviews of one product, newest first.
func (rc *ReviewController) ForProduct(c *ctx.Context) {
	c.Success(rc.store.ReviewsForProduct(c.Param("id")))
}

type reviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content string `json:"content" validate:"nullable,max=5000"`
}

// Create adds a review to a product. The verified-purchase badge is derived
// from order history, never from client input.
func (rc *ReviewController) Create(c *ctx.Context) {
	productID := c.Param("id")
	if _, ok := rc.store.ProductByID(productID); !ok {
		c.NotFound("Product not found")
		return
	}

	var in reviewInput
	if !c.BindJSON(&in) {
		return
	}

	userID, _ := middleware.UserIDFromCtx(c.R)
	review := rc.store.AddReview(models.Review{
		ProductID:          productID,
		UserID:             userID,
		Rating:             in.Rating,
		Content:            in.Content,
		IsVerifiedPurchase: rc.store.HasPurchased(userID, productID),
	})
	c.Created(review)
}
