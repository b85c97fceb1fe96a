// internal/domain/payment/gateway.go
package payment

import (
	"context"
	"errors"
)

var ErrScriptUnavailable = errors.New("payment widget script unavailable")

// Status is the settled result of a charge
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusCancelled Status = "cancelled"
)

// Metadata is passed through to the payment provider untouched
type Metadata struct {
	Name           string `json:"name"`
	PhoneNumber    string `json:"phoneNumber"`
	PaymentMethod  string `json:"paymentMethod"`
	DeliveryMethod string `json:"deliveryMethod"`
}

// ChargeRequest describes one online payment. Amount is in minor currency units.
type ChargeRequest struct {
	Amount    int64
	Email     string
	InvoiceID string
	Data      Metadata
}

// Outcome is what the provider reported for a charge
type Outcome struct {
	Status        Status `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Gateway is an external payment widget. EnsureLoaded is idempotent and must
// succeed before Charge is used. Charge returns an error when the charge could
// not be settled at all; a declined or abandoned charge is a cancelled Outcome.
type Gateway interface {
	EnsureLoaded(ctx context.Context) error
	Charge(ctx context.Context, req ChargeRequest) (Outcome, error)
}
