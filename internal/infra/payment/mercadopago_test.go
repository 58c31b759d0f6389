//go:build unit

package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"puente-core/internal/infra/payment"
	"puente-core/internal/pkg/config"
	"puente-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaymentConfig(baseURL string) config.PaymentConfig {
	return config.PaymentConfig{
		BaseURL:     baseURL,
		AccessToken: "TEST-token",
		Currency:    "ARS",
		SuccessURL:  "https://shop.example/ok",
		FailureURL:  "https://shop.example/ko",
		Timeout:     2 * time.Second,
	}
}

func TestMercadoPagoClient_CreatePaymentLink(t *testing.T) {
	orderID := uuid.New()
	title := "Order #" + orderID.String() + " - Puente Platform"

	t.Run("success: sends a single-item preference", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/checkout/preferences", r.URL.Path)
			assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
			assert.Equal(t, orderID.String(), r.Header.Get("X-Idempotency-Key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, orderID.String(), body["external_reference"])
			assert.Equal(t, "approved", body["auto_return"])
			items := body["items"].([]any)
			require.Len(t, items, 1)
			item := items[0].(map[string]any)
			assert.Equal(t, title, item["title"])
			assert.Equal(t, float64(1), item["quantity"])
			assert.Equal(t, 200.5, item["unit_price"])
			assert.Equal(t, "ARS", item["currency_id"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pref-123","init_point":"https://mp.example/live","sandbox_init_point":"https://mp.example/sandbox"}`))
		}))
		defer srv.Close()

		link, err := payment.NewMercadoPagoClient(testPaymentConfig(srv.URL)).
			CreatePaymentLink(context.Background(), orderID, title, decimal.RequireFromString("200.499"))
		require.NoError(t, err)
		assert.Equal(t, "pref-123", link.ID)
		assert.Equal(t, "https://mp.example/live", link.Link)
	})

	t.Run("success: sandbox link when configured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp.example/live","sandbox_init_point":"https://mp.example/sandbox"}`))
		}))
		defer srv.Close()

		cfg := testPaymentConfig(srv.URL + "/")
		cfg.UseSandbox = true
		link, err := payment.NewMercadoPagoClient(cfg).CreatePaymentLink(context.Background(), orderID, title, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, "https://mp.example/sandbox", link.Link)
	})

	t.Run("error: provider failures are marked", func(t *testing.T) {
		cases := []struct {
			name    string
			handler http.HandlerFunc
		}{
			{"rejected", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid unit_price"}`))
			}},
			{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			}},
			{"missing link", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"pref-1"}`))
			}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				srv := httptest.NewServer(tc.handler)
				defer srv.Close()

				link, err := payment.NewMercadoPagoClient(testPaymentConfig(srv.URL)).
					CreatePaymentLink(context.Background(), orderID, title, decimal.NewFromInt(10))
				require.Error(t, err)
				assert.Nil(t, link)
				assert.True(t, errs.Is(err, errs.ErrPaymentProvider))
			})
		}
	})

	t.Run("error: unreachable provider", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := payment.NewMercadoPagoClient(testPaymentConfig(url)).
			CreatePaymentLink(context.Background(), orderID, title, decimal.NewFromInt(10))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrPaymentProvider))
	})
}
