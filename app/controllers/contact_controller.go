package controllers

import (
	"github.com/shashiranjanraj/digiteria/app/jobs"
	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
)

// ContactController records inbound contact form submissions.
type ContactController struct {
	store *store.Store
}

func NewContactController(st *store.Store) *ContactController {
	return &ContactController{store: st}
}

type contactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"nullable,max=300"`
	Message string `json:"message" validate:"required,min=10,max=10000"`
}

// Create records a contact message and alerts the admin asynchronously.
func (cc *ContactController) Create(c *ctx.Context) {
	var in contactInput
	if !c.BindJSON(&in) {
		return
	}

	msg := cc.store.AddMessage(models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})

	if err := queue.Dispatch(&jobs.ContactReceivedJob{Message: msg}); err != nil {
		logger.Warn("contact: admin alert not queued", "message", msg.ID, "error", err)
	}
	c.Created(msg)
}

// Index lists all messages for the admin inbox.
func (cc *ContactController) Index(c *ctx.Context) {
	c.Success(cc.store.Messages())
}
