package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

type widgetServer struct {
	*httptest.Server
	scriptLoads  atomic.Int32
	scriptStatus atomic.Int32
	lastCharge   map[string]interface{}
	lastUser     string
	lastPass     string
	response     string
}

func newWidgetServer(t *testing.T) *widgetServer {
	t.Helper()
	ws := &widgetServer{response: `{"Success":true,"Model":{"TransactionId":504}}`}
	ws.scriptStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/bundles/cloudpayments.js", func(w http.ResponseWriter, r *http.Request) {
		ws.scriptLoads.Add(1)
		w.WriteHeader(int(ws.scriptStatus.Load()))
		w.Write([]byte("window.cp = {};"))
	})
	mux.HandleFunc("/payments/charge", func(w http.ResponseWriter, r *http.Request) {
		ws.lastUser, ws.lastPass, _ = r.BasicAuth()
		ws.lastCharge = map[string]interface{}{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ws.lastCharge))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ws.response))
	})

	ws.Server = httptest.NewServer(mux)
	t.Cleanup(ws.Close)
	return ws
}

func (ws *widgetServer) config() config.PaymentConfig {
	return config.PaymentConfig{
		PublicID:        "test_api_00000000000000000000002",
		APISecret:       "secret",
		ScriptURL:       ws.URL + "/bundles/cloudpayments.js",
		ScriptElementID: "cloudpayments-script",
		ChargeURL:       ws.URL + "/payments/charge",
		Currency:        "RUB",
		Description:     "Order payment",
		Skin:            "classic",
		Timeout:         5 * time.Second,
	}
}

func sampleCharge() ChargeRequest {
	return ChargeRequest{
		Amount:    250050,
		Email:     "ivan@example.com",
		InvoiceID: "ORD-20260101-ABCDEF12",
		Data: Metadata{
			Name:           "Ivan Petrov",
			PhoneNumber:    "+79161234567",
			PaymentMethod:  "payment-online",
			DeliveryMethod: "store-city",
		},
	}
}

func TestEnsureLoadedIsIdempotent(t *testing.T) {
	ws := newWidgetServer(t)
	gw := NewCloudPayments(ws.config(), nil)
	ctx := context.Background()

	require.NoError(t, gw.EnsureLoaded(ctx))
	require.NoError(t, gw.EnsureLoaded(ctx))

	assert.True(t, gw.Loaded())
	assert.Equal(t, int32(1), ws.scriptLoads.Load())
}

func TestEnsureLoadedRetriesAfterFailure(t *testing.T) {
	ws := newWidgetServer(t)
	ws.scriptStatus.Store(http.StatusServiceUnavailable)
	gw := NewCloudPayments(ws.config(), nil)
	ctx := context.Background()

	err := gw.EnsureLoaded(ctx)
	assert.ErrorIs(t, err, ErrScriptUnavailable)
	assert.False(t, gw.Loaded())

	ws.scriptStatus.Store(http.StatusOK)
	require.NoError(t, gw.EnsureLoaded(ctx))
	assert.Equal(t, int32(2), ws.scriptLoads.Load())
}

func TestUnloadForcesReload(t *testing.T) {
	ws := newWidgetServer(t)
	gw := NewCloudPayments(ws.config(), nil)
	ctx := context.Background()

	require.NoError(t, gw.EnsureLoaded(ctx))
	gw.Unload()
	assert.False(t, gw.Loaded())

	require.NoError(t, gw.EnsureLoaded(ctx))
	assert.Equal(t, int32(2), ws.scriptLoads.Load())
}

func TestChargeSucceeded(t *testing.T) {
	ws := newWidgetServer(t)
	gw := NewCloudPayments(ws.config(), nil)

	outcome, err := gw.Charge(context.Background(), sampleCharge())
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, "504", outcome.TransactionID)

	assert.Equal(t, "test_api_00000000000000000000002", ws.lastUser)
	assert.Equal(t, "secret", ws.lastPass)

	body := ws.lastCharge
	assert.Equal(t, "test_api_00000000000000000000002", body["publicId"])
	assert.Equal(t, 2500.5, body["amount"])
	assert.Equal(t, "RUB", body["currency"])
	assert.Equal(t, "ivan@example.com", body["accountId"])
	assert.Equal(t, "ivan@example.com", body["email"])
	assert.Equal(t, "classic", body["skin"])
	assert.Equal(t, "Order payment", body["description"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ivan Petrov", data["name"])
	assert.Equal(t, "+79161234567", data["phoneNumber"])
	assert.Equal(t, "payment-online", data["paymentMethod"])
	assert.Equal(t, "store-city", data["deliveryMethod"])
}

func TestChargeCancelled(t *testing.T) {
	ws := newWidgetServer(t)
	ws.response = `{"Success":false,"Message":null,"Model":{"TransactionId":77,"CardHolderMessage":"Insufficient funds"}}`
	gw := NewCloudPayments(ws.config(), nil)

	outcome, err := gw.Charge(context.Background(), sampleCharge())
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, outcome.Status)
	assert.Equal(t, "Insufficient funds", outcome.Message)
}

func TestChargeFailsWhenScriptUnavailable(t *testing.T) {
	ws := newWidgetServer(t)
	ws.scriptStatus.Store(http.StatusNotFound)
	gw := NewCloudPayments(ws.config(), nil)

	_, err := gw.Charge(context.Background(), sampleCharge())
	assert.ErrorIs(t, err, ErrScriptUnavailable)
	assert.Nil(t, ws.lastCharge)
}

func TestChargeHTTPError(t *testing.T) {
	ws := newWidgetServer(t)
	cfg := ws.config()
	cfg.ChargeURL = ws.URL + "/missing"
	gw := NewCloudPayments(cfg, nil)

	_, err := gw.Charge(context.Background(), sampleCharge())
	assert.ErrorContains(t, err, "status 404")
}

func TestMajorUnits(t *testing.T) {
	assert.Equal(t, "7999.00", MajorUnits(799900).String())
	assert.Equal(t, "25.00", MajorUnits(2500).String())
	assert.Equal(t, "0.05", MajorUnits(5).String())
}
