// internal/domain/payment/cloudpayments.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/your-org/storefront-backend/internal/config"
)

// CloudPayments is the Gateway backed by the CloudPayments widget bundle and charge API
type CloudPayments struct {
	cfg        config.PaymentConfig
	httpClient *http.Client

	mu       sync.Mutex
	scriptID string // element id of the loaded bundle, empty while unloaded
}

// NewCloudPayments creates the CloudPayments gateway
func NewCloudPayments(cfg config.PaymentConfig, httpClient *http.Client) *CloudPayments {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &CloudPayments{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// EnsureLoaded fetches the widget bundle once. A failed load leaves the
// gateway unloaded so the next call tries again.
func (c *CloudPayments) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scriptID != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ScriptURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScriptUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScriptUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrScriptUnavailable, resp.StatusCode)
	}

	c.scriptID = c.cfg.ScriptElementID
	return nil
}

// Loaded reports whether the widget bundle is available
func (c *CloudPayments) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scriptID != ""
}

// Unload forgets the loaded bundle
func (c *CloudPayments) Unload() {
	c.mu.Lock()
	c.scriptID = ""
	c.mu.Unlock()
}

// Charge runs a one-shot charge. No retry is attempted.
func (c *CloudPayments) Charge(ctx context.Context, req ChargeRequest) (Outcome, error) {
	if err := c.EnsureLoaded(ctx); err != nil {
		return Outcome{}, err
	}

	body := chargeRequest{
		PublicID:    c.cfg.PublicID,
		Description: c.cfg.Description,
		Amount:      MajorUnits(req.Amount),
		Currency:    c.cfg.Currency,
		AccountID:   req.Email,
		Email:       req.Email,
		Skin:        c.cfg.Skin,
		InvoiceID:   req.InvoiceID,
		Data:        req.Data,
	}

	respBody, err := c.makeAPICall(ctx, body)
	if err != nil {
		return Outcome{}, err
	}

	var result chargeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Outcome{}, fmt.Errorf("failed to parse charge response: %w", err)
	}

	outcome := Outcome{
		Status:  StatusCancelled,
		Message: result.message(),
	}
	if result.Model.TransactionID != 0 {
		outcome.TransactionID = strconv.FormatInt(result.Model.TransactionID, 10)
	}
	if result.Success {
		outcome.Status = StatusSucceeded
	}
	return outcome, nil
}

// MajorUnits renders an amount in minor units as a decimal number of major units
func MajorUnits(minor int64) json.Number {
	return json.Number(decimal.New(minor, -2).StringFixed(2))
}

func (c *CloudPayments) makeAPICall(ctx context.Context, data interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ChargeURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicID, c.cfg.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API call failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

type chargeRequest struct {
	PublicID    string      `json:"publicId"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	AccountID   string      `json:"accountId"`
	Email       string      `json:"email"`
	Skin        string      `json:"skin"`
	InvoiceID   string      `json:"invoiceId,omitempty"`
	Data        Metadata    `json:"data"`
}

type chargeResponse struct {
	Success bool    `json:"Success"`
	Message *string `json:"Message"`
	Model   struct {
		TransactionID     int64  `json:"TransactionId"`
		CardHolderMessage string `json:"CardHolderMessage"`
	} `json:"Model"`
}

func (r chargeResponse) message() string {
	if r.Model.CardHolderMessage != "" {
		return r.Model.CardHolderMessage
	}
	if r.Message != nil {
		return *r.Message
	}
	return ""
}
