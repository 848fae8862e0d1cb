package phonepe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/mugworks/storefront/internal/domain/model"
)

// ErrNoRedirectURL indicates the gateway accepted the payment request but
// returned no checkout link.
var ErrNoRedirectURL = errors.New("no redirect url in gateway response")

// tokenSafetyBuffer is subtracted from the reported token lifetime so a
// token is refreshed before it actually expires.
const tokenSafetyBuffer = 5 * time.Minute

// checkoutExpireAfter is the payment link lifetime in seconds.
const checkoutExpireAfter = 1200

// Config carries PhonePe V2 credentials and endpoints.
type Config struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	ClientVersion string
	RedirectURL   string
}

// HTTPClient talks to the PhonePe Checkout V2 API. OAuth tokens obtained
// via client credentials are cached until shortly before expiry.
type HTTPClient struct {
	cfg        Config
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	now         func() time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type payRequest struct {
	Amount          int64       `json:"amount"`
	MerchantOrderID string      `json:"merchantOrderId"`
	ExpireAfter     int64       `json:"expireAfter"`
	MetaInfo        metaInfo    `json:"metaInfo"`
	PaymentFlow     paymentFlow `json:"paymentFlow"`
}

type metaInfo struct {
	UDF1 string `json:"udf1,omitempty"`
}

type paymentFlow struct {
	Type         string       `json:"type"`
	MerchantURLs merchantURLs `json:"merchantUrls"`
}

type merchantURLs struct {
	RedirectURL string `json:"redirectUrl"`
}

type payResponse struct {
	RedirectURL string `json:"redirectUrl"`
	OrderID     string `json:"orderId"`
	ExpireAt    int64  `json:"expireAt"`
}

type statusResponse struct {
	State         string `json:"state"`
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	PaymentDetails []struct {
		TransactionID string `json:"transactionId"`
		State         string `json:"state"`
	} `json:"paymentDetails"`
}

// callbackEnvelope is the webhook body: a base64-encoded JSON document
// under the "response" key.
type callbackEnvelope struct {
	Response string `json:"response"`
}

type callbackPayload struct {
	MerchantOrderID       string `json:"merchantOrderId"`
	MerchantTransactionID string `json:"merchantTransactionId"`
	TransactionID         string `json:"transactionId"`
	State                 string `json:"state"`
	Code                  string `json:"code"`
}

// NewHTTPClient creates a PhonePe client with default timeout.
func NewHTTPClient(cfg Config, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse phonepe url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("phonepe url must be absolute")
	}
	return &HTTPClient{
		cfg:     cfg,
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	u := *c.baseURL
	u.Path = path.Join(append([]string{u.Path}, parts...)...)
	return u.String()
}

// accessToken returns a cached OAuth token, fetching a fresh one when the
// cache is empty or the token is close to expiry.
func (c *HTTPClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("client_version", c.cfg.ClientVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/apis/identity-manager/v2/oauth/token"),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("phonepe token request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("phonepe token error: %s", resp.Status)
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("no access token in phonepe response")
	}

	c.token = data.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(data.ExpiresIn)*time.Second - tokenSafetyBuffer)
	return c.token, nil
}

// CreatePayment registers a checkout request and returns the redirect link.
func (c *HTTPClient) CreatePayment(ctx context.Context, amountPaise int64, merchantTxnID, mobile string) (*model.PaymentLink, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(payRequest{
		Amount:          amountPaise,
		MerchantOrderID: merchantTxnID,
		ExpireAfter:     checkoutExpireAfter,
		MetaInfo:        metaInfo{UDF1: mobile},
		PaymentFlow: paymentFlow{
			Type:         "PG_CHECKOUT",
			MerchantURLs: merchantURLs{RedirectURL: c.cfg.RedirectURL},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/apis/pg/checkout/v2/pay"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("phonepe pay request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("phonepe pay error: %s", resp.Status)
	}

	var data payResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	if data.RedirectURL == "" {
		return nil, ErrNoRedirectURL
	}

	return &model.PaymentLink{
		MerchantTransactionID: merchantTxnID,
		RedirectURL:           data.RedirectURL,
		ExpireAt:              data.ExpireAt,
	}, nil
}

// CheckStatus polls the gateway for the current payment state.
func (c *HTTPClient) CheckStatus(ctx context.Context, merchantTxnID string) (*model.GatewayStatus, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("/apis/pg/checkout/v2/", merchantTxnID, "/status"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("phonepe status request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("phonepe status error: %s", resp.Status)
	}

	var data statusResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	transactionID := data.TransactionID
	if transactionID == "" && len(data.PaymentDetails) > 0 {
		transactionID = data.PaymentDetails[0].TransactionID
	}

	return &model.GatewayStatus{
		MerchantTransactionID: merchantTxnID,
		State:                 mapState(data.State),
		TransactionID:         transactionID,
	}, nil
}

// DecodeCallback parses a webhook body into a gateway status. The body
// carries a base64-encoded JSON payload under the "response" key.
func (c *HTTPClient) DecodeCallback(body []byte) (*model.GatewayStatus, error) {
	var envelope callbackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode callback envelope: %w", err)
	}
	if envelope.Response == "" {
		return nil, fmt.Errorf("callback has no response payload")
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Response)
	if err != nil {
		return nil, fmt.Errorf("decode callback payload: %w", err)
	}

	var payload callbackPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return nil, fmt.Errorf("decode callback payload: %w", err)
	}

	merchantTxnID := payload.MerchantTransactionID
	if merchantTxnID == "" {
		merchantTxnID = payload.MerchantOrderID
	}
	if merchantTxnID == "" {
		return nil, fmt.Errorf("callback has no merchant transaction id")
	}

	state := mapState(payload.State)
	if state == model.GatewayStatePending && payload.Code == "PAYMENT_SUCCESS" {
		state = model.GatewayStateCompleted
	}

	return &model.GatewayStatus{
		MerchantTransactionID: merchantTxnID,
		State:                 state,
		TransactionID:         payload.TransactionID,
	}, nil
}

func (c *HTTPClient) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func mapState(state string) model.GatewayState {
	switch strings.ToUpper(state) {
	case "COMPLETED", "SUCCESS":
		return model.GatewayStateCompleted
	case "FAILED", "EXPIRED", "CANCELLED":
		return model.GatewayStateFailed
	default:
		return model.GatewayStatePending
	}
}
