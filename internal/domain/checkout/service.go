// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

var ErrEmptyCart = errors.New("cart is empty")

// emptyCartOutcome labels submissions refused for an empty cart in metrics
const emptyCartOutcome = "empty_cart"

// Status is the settled state of a checkout submission
type Status string

const (
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
	StatusSucceeded Status = "succeeded"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Result is returned to the submitter
type Result struct {
	Status        Status      `json:"status"`
	OrderNumber   string      `json:"orderNumber,omitempty"`
	Amount        int64       `json:"amount"`
	TransactionID string      `json:"transactionId,omitempty"`
	Message       string      `json:"message,omitempty"`
	Errors        FieldErrors `json:"errors,omitempty"`
}

// PlacedOrder is an accepted or paid order handed to notifiers
type PlacedOrder struct {
	OrderNumber   string    `json:"orderNumber"`
	Status        Status    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	Customer      OrderForm `json:"customer"`
	Cart          cart.Cart `json:"cart"`
	PlacedAt      time.Time `json:"placedAt"`
}

// Notifier is told about every placed order
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order PlacedOrder) error
}

// Service runs checkout submissions
type Service struct {
	validator *Validator
	gateway   payment.Gateway
	notifiers []Notifier
	metrics   *metrics.Storefront
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService creates a new checkout service
func NewService(gateway payment.Gateway, logger *logrus.Logger, m *metrics.Storefront, notifiers ...Notifier) *Service {
	return &Service{
		validator: NewValidator(),
		gateway:   gateway,
		notifiers: notifiers,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Validate checks the form without submitting it
func (s *Service) Validate(form OrderForm) FieldErrors {
	return s.validator.Validate(form)
}

// Submit validates the form and places the order for the cart in store.
// Pay-on-delivery orders are accepted at once. Online orders are charged
// through the gateway and the cart is cleared only when the charge succeeds.
func (s *Service) Submit(ctx context.Context, store *cart.Store, form OrderForm) (*Result, error) {
	if errs := s.validator.Validate(form); !errs.Empty() {
		s.metrics.ObserveCheckout(string(StatusRejected))
		return &Result{Status: StatusRejected, Errors: errs}, nil
	}

	snapshot := store.Cart()
	if snapshot.IsEmpty() {
		s.metrics.ObserveCheckout(emptyCartOutcome)
		return nil, ErrEmptyCart
	}

	now := s.now().UTC()
	order := PlacedOrder{
		OrderNumber: generateOrderNumber(now),
		Customer:    form,
		Cart:        snapshot,
		PlacedAt:    now,
	}

	if form.PaymentMethod == PaymentOnDelivery {
		order.Status = StatusAccepted
		s.placed(ctx, order)
		return &Result{
			Status:      StatusAccepted,
			OrderNumber: order.OrderNumber,
			Amount:      snapshot.Total,
		}, nil
	}

	return s.payOnline(ctx, store, order), nil
}

func (s *Service) payOnline(ctx context.Context, store *cart.Store, order PlacedOrder) *Result {
	log := s.logger.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"amount":       order.Cart.Total,
	})

	result := &Result{
		OrderNumber: order.OrderNumber,
		Amount:      order.Cart.Total,
	}

	if err := s.gateway.EnsureLoaded(ctx); err != nil {
		log.WithError(err).Error("Payment widget unavailable")
		return s.settle(result, StatusFailed, "Payment service is unavailable, please try again")
	}

	outcome, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Amount:    order.Cart.Total,
		Email:     order.Customer.Email,
		InvoiceID: order.OrderNumber,
		Data: payment.Metadata{
			Name:           strings.TrimSpace(order.Customer.Name),
			PhoneNumber:    order.Customer.PhoneNumber,
			PaymentMethod:  string(order.Customer.PaymentMethod),
			DeliveryMethod: string(order.Customer.DeliveryMethod),
		},
	})
	if err != nil {
		log.WithError(err).Error("Payment failed")
		return s.settle(result, StatusFailed, "Payment failed, please try again")
	}

	result.TransactionID = outcome.TransactionID
	if outcome.Status != payment.StatusSucceeded {
		log.WithField("reason", outcome.Message).Warn("Payment cancelled")
		return s.settle(result, StatusCancelled, outcome.Message)
	}

	if err := store.Clear(ctx); err != nil {
		log.WithError(err).Error("Failed to clear cart after payment")
	}

	order.Status = StatusSucceeded
	order.TransactionID = outcome.TransactionID
	s.placed(ctx, order)

	result.Status = StatusSucceeded
	return result
}

func (s *Service) settle(result *Result, status Status, message string) *Result {
	s.metrics.ObserveCheckout(string(status))
	result.Status = status
	result.Message = message
	return result
}

// placed hands the order to every notifier. Notification failures never
// change the checkout outcome.
func (s *Service) placed(ctx context.Context, order PlacedOrder) {
	s.metrics.ObserveCheckout(string(order.Status))
	s.logger.WithFields(logrus.Fields{
		"order_number":    order.OrderNumber,
		"status":          order.Status,
		"amount":          order.Cart.Total,
		"delivery_method": order.Customer.DeliveryMethod,
	}).Info("Order placed")

	for _, n := range s.notifiers {
		if err := n.NotifyOrderPlaced(ctx, order); err != nil {
			s.logger.WithError(err).WithField("order_number", order.OrderNumber).Warn("Order notification failed")
		}
	}
}

// Format: ORD-YYYYMMDD-XXXXXXXX
func generateOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), suffix)
}
