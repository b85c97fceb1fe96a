package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

type fakeGateway struct {
	loadErr   error
	chargeErr error
	outcome   payment.Outcome
	loads     int
	charges   []payment.ChargeRequest
}

func (f *fakeGateway) EnsureLoaded(ctx context.Context) error {
	f.loads++
	return f.loadErr
}

func (f *fakeGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Outcome, error) {
	f.charges = append(f.charges, req)
	if f.chargeErr != nil {
		return payment.Outcome{}, f.chargeErr
	}
	return f.outcome, nil
}

type recordingNotifier struct {
	orders []PlacedOrder
	err    error
}

func (r *recordingNotifier) NotifyOrderPlaced(ctx context.Context, order PlacedOrder) error {
	r.orders = append(r.orders, order)
	return r.err
}

type fixture struct {
	svc      *Service
	gateway  *fakeGateway
	notifier *recordingNotifier
	store    *cart.Store
	hook     *test.Hook
	registry *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	logger, hook := test.NewNullLogger()
	gw := &fakeGateway{outcome: payment.Outcome{Status: payment.StatusSucceeded, TransactionID: "tx-1"}}
	notifier := &recordingNotifier{}
	registry := prometheus.NewRegistry()

	store, err := cart.Open(ctx, cart.NewMemoryStorage(), "cart-storage:t")
	require.NoError(t, err)

	old := int64(1200)
	require.NoError(t, store.Add(ctx, catalog.Product{ID: "a", Price: 1000, OldPrice: &old}, 2))
	require.NoError(t, store.Add(ctx, catalog.Product{ID: "b", Price: 500}, 1))

	return &fixture{
		svc:      NewService(gw, logger, metrics.NewStorefront(registry), notifier),
		gateway:  gw,
		notifier: notifier,
		store:    store,
		hook:     hook,
		registry: registry,
	}
}

func onlineForm() OrderForm {
	form := validForm()
	form.PaymentMethod = PaymentOnline
	form.DeliveryMethod = DeliveryCourierDonetsk
	return form
}

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

func TestSubmitRejectsInvalidForm(t *testing.T) {
	f := newFixture(t)
	form := validForm()
	form.Name = "Al"

	result, err := f.svc.Submit(context.Background(), f.store, form)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Contains(t, result.Errors, "name")
	assert.Empty(t, result.OrderNumber)
	assert.Zero(t, f.gateway.loads)
	assert.Empty(t, f.notifier.orders)
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Clear(context.Background()))

	_, err := f.svc.Submit(context.Background(), f.store, validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1.0, f.outcomes(t)["empty_cart"])
	assert.Empty(t, f.notifier.orders)
}

func TestSubmitCountsEveryOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.store, OrderForm{})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.store, validForm())
	require.NoError(t, err)
	require.NoError(t, f.store.Clear(ctx))
	_, err = f.svc.Submit(ctx, f.store, validForm())
	require.ErrorIs(t, err, ErrEmptyCart)

	assert.Equal(t, map[string]float64{
		"rejected":   1,
		"accepted":   1,
		"empty_cart": 1,
	}, f.outcomes(t))
}

// outcomes reads storefront_checkout_outcomes_total by status label
func (f *fixture) outcomes(t *testing.T) map[string]float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "storefront_checkout_outcomes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "status" {
					out[label.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return out
}

func TestSubmitPayOnDelivery(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Submit(context.Background(), f.store, validForm())
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
	assert.Equal(t, int64(2500), result.Amount)
	assert.Regexp(t, orderNumberPattern, result.OrderNumber)

	assert.Zero(t, f.gateway.loads)
	assert.Empty(t, f.gateway.charges)
	assert.Equal(t, 3, f.store.Count(), "pay on delivery keeps the cart")

	require.Len(t, f.notifier.orders, 1)
	assert.Equal(t, result.OrderNumber, f.notifier.orders[0].OrderNumber)
	assert.Equal(t, StatusAccepted, f.notifier.orders[0].Status)
}

func TestSubmitOnlineSucceeded(t *testing.T) {
	f := newFixture(t)
	form := onlineForm()
	form.Name = "  Ivan Petrov "

	result, err := f.svc.Submit(context.Background(), f.store, form)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Equal(t, "tx-1", result.TransactionID)

	require.Len(t, f.gateway.charges, 1)
	charge := f.gateway.charges[0]
	assert.Equal(t, int64(2500), charge.Amount)
	assert.Equal(t, "ivan@example.com", charge.Email)
	assert.Equal(t, result.OrderNumber, charge.InvoiceID)
	assert.Equal(t, payment.Metadata{
		Name:           "Ivan Petrov",
		PhoneNumber:    "+79161234567",
		PaymentMethod:  "payment-online",
		DeliveryMethod: "courier-donetsk",
	}, charge.Data)

	assert.Equal(t, cart.Empty(), f.store.Cart())

	require.Len(t, f.notifier.orders, 1)
	placed := f.notifier.orders[0]
	assert.Equal(t, StatusSucceeded, placed.Status)
	assert.Equal(t, "tx-1", placed.TransactionID)
	assert.Len(t, placed.Cart.Items, 2, "notifiers see the cart as it was paid")
}

func TestSubmitOnlineCancelled(t *testing.T) {
	f := newFixture(t)
	f.gateway.outcome = payment.Outcome{Status: payment.StatusCancelled, Message: "User closed the widget"}
	before := f.store.Cart()

	result, err := f.svc.Submit(context.Background(), f.store, onlineForm())
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, result.Status)
	assert.Equal(t, "User closed the widget", result.Message)

	assert.Equal(t, before, f.store.Cart())
	assert.Empty(t, f.notifier.orders)
}

func TestSubmitOnlineChargeError(t *testing.T) {
	f := newFixture(t)
	f.gateway.chargeErr = errors.New("connection reset")
	before := f.store.Cart()

	result, err := f.svc.Submit(context.Background(), f.store, onlineForm())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, before, f.store.Cart())
	assert.Len(t, f.gateway.charges, 1, "no automatic retry")

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, result.OrderNumber, entry.Data["order_number"])
}

func TestSubmitOnlineScriptUnavailable(t *testing.T) {
	f := newFixture(t)
	f.gateway.loadErr = payment.ErrScriptUnavailable

	result, err := f.svc.Submit(context.Background(), f.store, onlineForm())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, f.gateway.charges)
	assert.Equal(t, 3, f.store.Count())
}

func TestNotifierFailureDoesNotChangeOutcome(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("broker down")

	result, err := f.svc.Submit(context.Background(), f.store, validForm())
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Order notification failed", entry.Message)
}

func TestGenerateOrderNumberUnique(t *testing.T) {
	seen := map[string]bool{}
	now := newFixture(t).svc.now()
	for i := 0; i < 100; i++ {
		n := generateOrderNumber(now)
		assert.Regexp(t, orderNumberPattern, n)
		assert.False(t, seen[n])
		seen[n] = true
	}
}
