// Package jobs holds the background jobs dispatched by controllers so the
// request path never blocks on SMTP or Slack.
package jobs

import (
	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/notifications"
	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/pkg/notification"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
)

// Register makes every job type known to the queue so the workers can
// deserialize them. The names must match what queue.Dispatch derives via %T.
// Call once at boot.
func Register() {
	queue.Register("*jobs.SellerAppliedJob", func() queue.Job { return &SellerAppliedJob{} })
	queue.Register("*jobs.ContactReceivedJob", func() queue.Job { return &ContactReceivedJob{} })
	queue.Register("*jobs.SaleCompletedJob", func() queue.Job { return &SaleCompletedJob{} })
}

// SellerAppliedJob notifies the admin about a new seller application.
type SellerAppliedJob struct {
	Application models.SellerApplication `json:"application"`
}

func (j *SellerAppliedJob) Handle() error {
	errs := notification.Send(config.AdminEmail(), &notifications.SellerApplied{Application: j.Application})
	return firstErr(errs)
}

// ContactReceivedJob notifies the admin about an inbound contact message.
type ContactReceivedJob struct {
	Message models.ContactMessage `json:"message"`
}

func (j *ContactReceivedJob) Handle() error {
	errs := notification.Send(config.AdminEmail(), &notifications.ContactReceived{Message: j.Message})
	return firstErr(errs)
}

// SaleCompletedJob mails the creator after one of their products sells.
type SaleCompletedJob struct {
	SellerEmail string         `json:"seller_email"`
	Order       models.Order   `json:"order"`
	Product     models.Product `json:"product"`
}

func (j *SaleCompletedJob) Handle() error {
	errs := notification.Send(j.SellerEmail, &notifications.SaleCompleted{Order: j.Order, Product: j.Product})
	return firstErr(errs)
}

func firstErr(errs []error) error {
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
