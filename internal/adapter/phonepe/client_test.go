package phonepe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mugworks/storefront/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		ClientID:      "client",
		ClientSecret:  "secret",
		ClientVersion: "1",
		RedirectURL:   "https://shop.example/payment/callback",
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient(testConfig("://bad-url"), testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient(testConfig("/relative"), testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func newGatewayServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/apis/identity-manager/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" || r.PostForm.Get("client_id") != "client" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		tokenCalls++
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	mux.HandleFunc("/apis/pg/checkout/v2/pay", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "O-Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode pay body: %v", err)
			return
		}
		if body["merchantOrderId"] != "TXN_1_ABC" {
			t.Errorf("unexpected merchantOrderId: %v", body["merchantOrderId"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"redirectUrl": "https://pay.example/checkout/xyz",
			"orderId":     "OMO123",
			"expireAt":    1700000000,
		})
	})
	mux.HandleFunc("/apis/pg/checkout/v2/TXN_1_ABC/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "O-Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"state": "COMPLETED",
			"paymentDetails": []map[string]any{
				{"transactionId": "T9000", "state": "COMPLETED"},
			},
		})
	})
	return httptest.NewServer(mux), &tokenCalls
}

func TestCreatePaymentReturnsRedirectLink(t *testing.T) {
	server, _ := newGatewayServer(t)
	defer server.Close()

	client, err := NewHTTPClient(testConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	link, err := client.CreatePayment(context.Background(), 69700, "TXN_1_ABC", "9876543210")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.RedirectURL != "https://pay.example/checkout/xyz" {
		t.Errorf("unexpected redirect url: %s", link.RedirectURL)
	}
	if link.MerchantTransactionID != "TXN_1_ABC" {
		t.Errorf("unexpected merchant txn id: %s", link.MerchantTransactionID)
	}
}

func TestCheckStatusMapsGatewayState(t *testing.T) {
	server, _ := newGatewayServer(t)
	defer server.Close()

	client, err := NewHTTPClient(testConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	status, err := client.CheckStatus(context.Background(), "TXN_1_ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.State != model.GatewayStateCompleted {
		t.Errorf("expected completed state, got %s", status.State)
	}
	if status.TransactionID != "T9000" {
		t.Errorf("expected transaction id from payment details, got %q", status.TransactionID)
	}
}

func TestAccessTokenIsCachedAcrossCalls(t *testing.T) {
	server, tokenCalls := newGatewayServer(t)
	defer server.Close()

	client, err := NewHTTPClient(testConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.CreatePayment(context.Background(), 100, "TXN_1_ABC", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.CheckStatus(context.Background(), "TXN_1_ABC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *tokenCalls != 1 {
		t.Errorf("expected single token fetch, got %d", *tokenCalls)
	}
}

func TestAccessTokenRefreshedAfterExpiry(t *testing.T) {
	server, tokenCalls := newGatewayServer(t)
	defer server.Close()

	client, err := NewHTTPClient(testConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	current := time.Now()
	client.now = func() time.Time { return current }

	if _, err := client.CheckStatus(context.Background(), "TXN_1_ABC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// past the lifetime minus the refresh buffer
	current = current.Add(56 * time.Minute)
	if _, err := client.CheckStatus(context.Background(), "TXN_1_ABC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *tokenCalls != 2 {
		t.Errorf("expected token refresh, got %d fetches", *tokenCalls)
	}
}

func TestDecodeCallback(t *testing.T) {
	client, err := NewHTTPClient(testConfig("https://api.example"), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"merchantTransactionId": "TXN_7_XYZ",
		"transactionId":         "T777",
		"state":                 "COMPLETED",
		"code":                  "PAYMENT_SUCCESS",
	})
	body, _ := json.Marshal(map[string]string{
		"response": base64.StdEncoding.EncodeToString(payload),
	})

	status, err := client.DecodeCallback(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.MerchantTransactionID != "TXN_7_XYZ" || status.State != model.GatewayStateCompleted || status.TransactionID != "T777" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestDecodeCallbackRejectsGarbage(t *testing.T) {
	client, err := NewHTTPClient(testConfig("https://api.example"), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.DecodeCallback([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
	if _, err := client.DecodeCallback([]byte(`{"response":"%%%"}`)); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := client.DecodeCallback([]byte(`{}`)); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
