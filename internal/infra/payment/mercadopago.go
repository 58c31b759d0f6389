package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"puente-core/internal/pkg/config"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/tracing"
	"puente-core/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const preferencesPath = "/checkout/preferences"

// MercadoPagoClient creates checkout preferences through the MercadoPago REST API.
type MercadoPagoClient struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

func NewMercadoPagoClient(cfg config.PaymentConfig) *MercadoPagoClient {
	return &MercadoPagoClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type backURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          backURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

func (c *MercadoPagoClient) CreatePaymentLink(ctx context.Context, orderID uuid.UUID, title string, amount decimal.Decimal) (link *commands.PaymentLink, err error) {
	ctx, span := tracing.Start(ctx, "payment.CreatePreference", attribute.String("order_id", orderID.String()))
	defer func() { tracing.End(span, err) }()

	body := preferenceRequest{
		Items: []preferenceItem{{
			Title:      title,
			Quantity:   1,
			UnitPrice:  amount.Round(2).InexactFloat64(),
			CurrencyID: c.cfg.Currency,
		}},
		ExternalReference: orderID.String(),
		BackURLs: backURLs{
			Success: c.cfg.SuccessURL,
			Failure: c.cfg.FailureURL,
			Pending: c.cfg.PendingURL,
		},
	}
	// MercadoPago rejects auto_return without a success URL
	if c.cfg.SuccessURL != "" {
		body.AutoReturn = "approved"
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, providerErr(err, "failed to encode preference")
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + preferencesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, providerErr(err, "failed to build preference request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("X-Idempotency-Key", orderID.String())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providerErr(err, "preference request failed")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, providerErr(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
			"mercadopago rejected preference",
		)
	}

	var pref preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, providerErr(err, "failed to decode preference")
	}

	checkoutURL := pref.InitPoint
	if c.cfg.UseSandbox && pref.SandboxInitPoint != "" {
		checkoutURL = pref.SandboxInitPoint
	}
	if pref.ID == "" || checkoutURL == "" {
		return nil, providerErr(errs.New("response without preference id or link"), "invalid preference")
	}

	return &commands.PaymentLink{ID: pref.ID, Link: checkoutURL}, nil
}

func providerErr(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), errs.ErrPaymentProvider)
}
