package routes

import (
	"github.com/shashiranjanraj/digiteria/app/controllers"
	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/rbac"
	"github.com/shashiranjanraj/digiteria/pkg/router"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

// Deps carries the shared services the API layer is built on.
type Deps struct {
	Store    *store.Store
	Hub      *ws.Hub
	Payments services.PaymentProvider
}

// RegisterAPI mounts every marketplace endpoint under /api.
func RegisterAPI(r *router.Router, d Deps) {
	catalog := services.NewCatalogService(d.Store)
	checkout := services.NewCheckoutService(d.Store, d.Payments)

	authCtl := controllers.NewAuthController(d.Store)
	userCtl := controllers.NewUserController(d.Store)
	productCtl := controllers.NewProductController(d.Store, catalog)
	orderCtl := controllers.NewOrderController(d.Store, checkout)
	reviewCtl := controllers.NewReviewController(d.Store)
	applicationCtl := controllers.NewApplicationController(d.Store)
	contactCtl := controllers.NewContactController(d.Store)
	statsCtl := controllers.NewStatsController(d.Store)
	eventsCtl := controllers.NewEventsController(d.Store, d.Hub)

	api := r.Group("/api")

	// Public surface.
	api.Post("/auth/register", "auth.register", ctx.Wrap(authCtl.Register), rbac.Guest)
	api.Post("/auth/login", "auth.login", ctx.Wrap(authCtl.Login), rbac.Guest)
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authCtl.Refresh))

	api.Get("/products", "products.index", ctx.Wrap(productCtl.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productCtl.Show))
	api.Get("/products/{id}/reviews", "reviews.index", ctx.Wrap(reviewCtl.ForProduct))
	api.Get("/users/{id}", "users.show", ctx.Wrap(userCtl.Show))
	api.Get("/stats", "stats.show", ctx.Wrap(statsCtl.Show))
	api.Post("/contact", "contact.create", ctx.Wrap(contactCtl.Create))
	api.Get("/events", "events.stream", ctx.Wrap(eventsCtl.Stream))
	api.Get("/events/ws", "events.socket", ctx.Wrap(eventsCtl.Socket))

	// Anything below requires a valid token.
	authed := api.Group("", middleware.AuthMiddleware)

	authed.Get("/me", "me.show", ctx.Wrap(authCtl.Profile))
	authed.Patch("/me", "me.update", ctx.Wrap(authCtl.UpdateProfile))
	authed.Delete("/me", "me.delete", ctx.Wrap(authCtl.DeleteAccount))

	authed.Post("/orders", "orders.create", ctx.Wrap(orderCtl.Create))
	authed.Get("/orders", "orders.mine", ctx.Wrap(orderCtl.Mine))
	authed.Post("/products/{id}/reviews", "reviews.create", ctx.Wrap(reviewCtl.Create))
	authed.Get("/products/{id}/download", "products.download", ctx.Wrap(productCtl.Download))
	authed.Post("/seller/apply", "applications.apply", ctx.Wrap(applicationCtl.Apply))

	// Creator surface: listing management and sales history.
	creator := authed.Group("", rbac.HasRole(models.RoleCreator, models.RoleAdmin))

	creator.Get("/seller/products", "seller.products", ctx.Wrap(productCtl.Mine))
	creator.Get("/seller/sales", "seller.sales", ctx.Wrap(orderCtl.Sales))
	creator.Post("/products", "products.create", ctx.Wrap(productCtl.Create))
	creator.Patch("/products/{id}", "products.update", ctx.Wrap(productCtl.Update))
	creator.Delete("/products/{id}", "products.delete", ctx.Wrap(productCtl.Delete))
	creator.Post("/products/{id}/file", "products.upload", ctx.Wrap(productCtl.Upload))

	// Admin surface: moderation and back office.
	admin := authed.Group("/admin", rbac.HasRole(models.RoleAdmin))

	admin.Get("/users", "admin.users", ctx.Wrap(userCtl.Index))
	admin.Patch("/users/{id}", "admin.users.role", ctx.Wrap(userCtl.UpdateRole))
	admin.Delete("/users/{id}", "admin.users.delete", ctx.Wrap(userCtl.Delete))
	admin.Get("/applications", "admin.applications", ctx.Wrap(applicationCtl.Index))
	admin.Patch("/applications/{id}", "admin.applications.decide", ctx.Wrap(applicationCtl.Decide))
	admin.Patch("/products/{id}/status", "admin.products.moderate", ctx.Wrap(productCtl.Moderate))
	admin.Get("/messages", "admin.messages", ctx.Wrap(contactCtl.Index))
}
