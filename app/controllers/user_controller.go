package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/digiteria/app/resources"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/resource"
)

// UserController serves public creator profiles and the admin user list.
type UserController struct {
	store *store.Store
}

func NewUserController(st *store.Store) *UserController {
	return &UserController{store: st}
}

// Show returns a public profile with the creator's approved products.
func (u *UserController) Show(c *ctx.Context) {
	user, ok := u.store.UserByID(c.Param("id"))
	if !ok {
		c.NotFound("User not found")
		return
	}

	resource.New(&resources.UserResource{}, user).
		WithMeta(resource.Map{"products": len(u.store.ProductsByCreator(user.ID))}).
		Respond(c.W)
}

// Index lists every account for the admin panel.
func (u *UserController) Index(c *ctx.Context) {
	resource.CollectionOf(&resources.UserResource{}, u.store.Users()).Respond(c.W)
}

type roleInput struct {
	Role string `json:"role" validate:"required,in=user,creator,admin"`
}

// UpdateRole changes an account's role directly, bypassing the application
// flow. Admin only.
func (u *UserController) UpdateRole(c *ctx.Context) {
	var in roleInput
	if !c.BindJSON(&in) {
		return
	}

	user, ok := u.store.UpdateUser(c.Param("id"), store.UserPatch{Role: store.Ptr(in.Role)})
	if !ok {
		c.NotFound("User not found")
		return
	}
	logger.Info("users: role changed", "user", user.ID, "role", in.Role)
	resource.New(&resources.UserResource{}, user).Respond(c.W)
}

// Delete removes an account. Admin only; the user's products and orders stay
// in place.
func (u *UserController) Delete(c *ctx.Context) {
	if !u.store.DeleteUser(c.Param("id")) {
		c.NotFound("User not found")
		return
	}
	c.Status(http.StatusNoContent)
}
