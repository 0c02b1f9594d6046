package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/resources"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/auth"
	"github.com/shashiranjanraj/digiteria/pkg/crypt"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/resource"
)

// AuthController handles registration, login and the authenticated profile.
type AuthController struct {
	store *store.Store
}

func NewAuthController(st *store.Store) *AuthController {
	return &AuthController{store: st}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Register creates an account. Registration is idempotent on email: hitting
// it again with a known address behaves like a login prompt, not a duplicate.
func (a *AuthController) Register(c *ctx.Context) {
	var in registerInput
	if !c.BindJSON(&in) {
		return
	}

	if _, exists := a.store.UserByEmail(in.Email); exists {
		c.Error(http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not create account")
		return
	}

	user := a.store.EnsureUser(models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not issue token")
		return
	}

	logger.Info("auth: registered", "user", user.ID, "email", user.Email)
	c.Created(resource.Map{
		"user":  resource.New(&resources.UserResource{}, user),
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	user, ok := a.store.UserByEmail(in.Email)
	if !ok || !auth.CheckPassword(user.PasswordHash, in.Password) {
		c.Unauthorized("Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not issue token")
		return
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not issue token")
		return
	}

	c.Success(resource.Map{
		"user":          resource.New(&resources.UserResource{}, user),
		"token":         token,
		"refresh_token": refresh,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a valid refresh token for a new access token. The role
// is re-read from the store so a promotion since login takes effect.
func (a *AuthController) Refresh(c *ctx.Context) {
	var in refreshInput
	if !c.BindJSON(&in) {
		return
	}

	claims, err := auth.ValidateToken(in.RefreshToken)
	if err != nil {
		c.Unauthorized("Invalid refresh token")
		return
	}

	user, ok := a.store.UserByID(claims.UserID)
	if !ok {
		c.Unauthorized("Account no longer exists")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not issue token")
		return
	}
	c.Success(resource.Map{"token": token})
}

// Profile returns the authenticated user.
func (a *AuthController) Profile(c *ctx.Context) {
	id, _ := middleware.UserIDFromCtx(c.R)
	user, ok := a.store.UserByID(id)
	if !ok {
		c.NotFound("Account not found")
		return
	}
	resource.New(&resources.UserResource{}, user).Respond(c.W)
}

type updateProfileInput struct {
	Name            *string `json:"name" validate:"nullable,min=2,max=100"`
	Bio             *string `json:"bio" validate:"nullable,max=2000"`
	Company         *string `json:"company" validate:"nullable,max=200"`
	Location        *string `json:"location" validate:"nullable,max=200"`
	Website         *string `json:"website" validate:"nullable,url"`
	Twitter         *string `json:"twitter" validate:"nullable,max=100"`
	StripeAccountID *string `json:"stripe_account_id" validate:"nullable,max=200"`
}

// UpdateProfile patches the caller's own profile. The Stripe account id is
// encrypted before it touches the document.
func (a *AuthController) UpdateProfile(c *ctx.Context) {
	id, _ := middleware.UserIDFromCtx(c.R)

	var in updateProfileInput
	if !c.BindJSON(&in) {
		return
	}

	patch := store.UserPatch{
		Name:     in.Name,
		Bio:      in.Bio,
		Company:  in.Company,
		Location: in.Location,
		Website:  in.Website,
		Twitter:  in.Twitter,
	}
	if in.StripeAccountID != nil {
		enc, err := crypt.Encrypt(*in.StripeAccountID)
		if err != nil {
			c.Error(http.StatusInternalServerError, "Could not store payout account")
			return
		}
		patch.StripeAccountID = &enc
	}

	user, ok := a.store.UpdateUser(id, patch)
	if !ok {
		c.NotFound("Account not found")
		return
	}
	resource.New(&resources.UserResource{}, user).Respond(c.W)
}

// DeleteAccount removes the caller's account. Their orders and reviews stay,
// matching how the store treats deleted users everywhere else.
func (a *AuthController) DeleteAccount(c *ctx.Context) {
	id, _ := middleware.UserIDFromCtx(c.R)
	if !a.store.DeleteUser(id) {
		c.NotFound("Account not found")
		return
	}
	logger.Info("auth: account deleted", "user", id)
	c.Status(http.StatusNoContent)
}
