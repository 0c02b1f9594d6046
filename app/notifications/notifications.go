// Package notifications defines the admin-facing alerts sent when something
// in the marketplace needs human attention.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/pkg/notification"
)

// SellerApplied alerts the admin that a new seller application arrived.
type SellerApplied struct {
	Application models.SellerApplication
}

func (n *SellerApplied) Via() []string { return []string{"mail", "slack"} }

func (n *SellerApplied) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "New seller application: " + n.Application.BusinessName,
		Body: fmt.Sprintf(
			"<p><strong>%s</strong> (%s) applied to sell in category %q.</p><p>%s</p>",
			n.Application.BusinessName, n.Application.Email,
			n.Application.Category, n.Application.Bio),
		Text: fmt.Sprintf("%s (%s) applied to sell.",
			n.Application.BusinessName, n.Application.Email),
	}
}

func (n *SellerApplied) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: ":memo: New seller application",
		Attachments: []notification.SlackAttachment{{
			Color: "warning",
			Title: n.Application.BusinessName,
			Text:  n.Application.Email + " — " + n.Application.Category,
		}},
	}
}

// ContactReceived alerts the admin about an inbound contact message.
type ContactReceived struct {
	Message models.ContactMessage
}

func (n *ContactReceived) Via() []string { return []string{"slack"} }

func (n *ContactReceived) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: ":envelope: Contact message from " + n.Message.Name,
		Attachments: []notification.SlackAttachment{{
			Title:  n.Message.Subject,
			Text:   n.Message.Message,
			Footer: n.Message.Email,
		}},
	}
}

// SaleCompleted tells a creator one of their products sold.
type SaleCompleted struct {
	Order   models.Order
	Product models.Product
}

func (n *SaleCompleted) Via() []string { return []string{"mail"} }

func (n *SaleCompleted) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("You made a sale: %s", n.Product.Title),
		Body: fmt.Sprintf(
			"<p>%q sold for $%.2f. Your share after the platform fee is <strong>$%.2f</strong>.</p>",
			n.Product.Title, n.Order.Amount, n.Order.SellerAmount),
		Text: fmt.Sprintf("%q sold for $%.2f, your share is $%.2f.",
			n.Product.Title, n.Order.Amount, n.Order.SellerAmount),
	}
}
