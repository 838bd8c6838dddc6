package client

import (
	"context"
	"fmt"
)

// Order is what the checkout provider is invoked with.
type Order struct {
	Amount      int
	Currency    string
	Description string
}

// Gateway abstracts the third-party checkout. The registration flow calls it
// before persisting a paid registration; tests substitute a fake.
type Gateway interface {
	Checkout(ctx context.Context, order Order) (paymentID string, err error)
}

// HTTPGateway drives the platform's checkout endpoint.
type HTTPGateway struct {
	Client *Client
}

func (g *HTTPGateway) Checkout(ctx context.Context, order Order) (string, error) {
	body, err := g.Client.postJSON(ctx, "/payment/checkout", map[string]any{
		"amount":      order.Amount,
		"currency":    order.Currency,
		"description": order.Description,
	})
	if err != nil {
		g.Client.log.Error().Err(err).Msg("checkout failed")
		return "", err
	}
	paymentID, ok := body["paymentId"].(string)
	if !ok || paymentID == "" {
		return "", fmt.Errorf("checkout response missing paymentId")
	}
	return paymentID, nil
}
