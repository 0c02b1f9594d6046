package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/digiteria/app/jobs"
	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
)

// ApplicationController handles seller applications and their moderation.
type ApplicationController struct {
	store *store.Store
}

func NewApplicationController(st *store.Store) *ApplicationController {
	return &ApplicationController{store: st}
}

type applyInput struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=200"`
	Category     string `json:"category" validate:"nullable,max=100"`
	Bio          string `json:"bio" validate:"nullable,max=2000"`
}

// Apply submits a seller application for the authenticated user.
func (a *ApplicationController) Apply(c *ctx.Context) {
	identity, _ := middleware.IdentityFromCtx(c.R)
	if identity.Role != models.RoleUser {
		c.Error(http.StatusConflict, "You can already sell")
		return
	}

	var in applyInput
	if !c.BindJSON(&in) {
		return
	}

	app := a.store.CreateApplication(models.SellerApplication{
		Email:        identity.Email,
		BusinessName: in.BusinessName,
		Category:     in.Category,
		Bio:          in.Bio,
	})

	if err := queue.Dispatch(&jobs.SellerAppliedJob{Application: app}); err != nil {
		logger.Warn("applications: admin alert not queued", "application", app.ID, "error", err)
	}
	c.Created(app)
}

// Index lists every application for admin review.
func (a *ApplicationController) Index(c *ctx.Context) {
	c.Success(a.store.Applications())
}

type decideInput struct {
	Status string `json:"status" validate:"required,in=approved,rejected"`
}

// Decide approves or rejects an application. Approval promotes the linked
// user to creator inside the store mutation.
func (a *ApplicationController) Decide(c *ctx.Context) {
	var in decideInput
	if !c.BindJSON(&in) {
		return
	}

	app, ok := a.store.SetApplicationStatus(c.Param("id"), in.Status)
	if !ok {
		c.NotFound("Application not found")
		return
	}
	logger.Info("applications: decided", "application", app.ID, "status", in.Status)
	c.Success(app)
}
