package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/pkg/container"
	"github.com/shashiranjanraj/digiteria/pkg/http"
)

// PaymentProvider charges a buyer and returns a confirmation reference.
type PaymentProvider interface {
	Charge(buyerID string, amount float64) (ref string, err error)
}

// ResolvePaymentProvider returns the provider bound in the container under
// "payments", or the built-in provider chosen by PAYMENT_URL: a remote
// gateway when configured, the sandbox provider otherwise.
func ResolvePaymentProvider() PaymentProvider {
	if container.Has("payments") {
		if p, ok := container.Make("payments").(PaymentProvider); ok {
			return p
		}
	}
	if url := config.Get("PAYMENT_URL", ""); url != "" {
		return &GatewayProvider{URL: url, APIKey: config.Get("PAYMENT_API_KEY", "")}
	}
	return &SandboxProvider{}
}

// SandboxProvider approves every charge without talking to anyone.
// Used in development and tests.
type SandboxProvider struct {
	counter int
}

func (p *SandboxProvider) Charge(buyerID string, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("payments: invalid amount %.2f", amount)
	}
	p.counter++
	return fmt.Sprintf("sandbox_%s_%d", buyerID, p.counter), nil
}

// GatewayProvider charges through an external HTTP payment gateway.
type GatewayProvider struct {
	URL    string
	APIKey string
}

type gatewayResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (p *GatewayProvider) Charge(buyerID string, amount float64) (string, error) {
	resp, err := http.Post(p.URL+"/charges").
		Header("Authorization", "Bearer "+p.APIKey).
		Body(map[string]any{"customer": buyerID, "amount": amount, "currency": "usd"}).
		Timeout(10 * time.Second).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return "", fmt.Errorf("payments: gateway unreachable: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return "", fmt.Errorf("payments: charge rejected: %w", err)
	}

	var out gatewayResult
	if err := resp.JSON(&out); err != nil {
		return "", fmt.Errorf("payments: bad gateway response: %w", err)
	}
	if out.Status != "succeeded" {
		return "", fmt.Errorf("payments: charge %s in status %q", out.Reference, out.Status)
	}
	return out.Reference, nil
}
