package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Sessions expire after this window so unpaid orders do not sit in limbo.
const sessionExpiryWindow = 30 * time.Minute

const signatureTolerance = 5 * time.Minute

type CheckoutLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type CheckoutSession struct {
	ID              string
	URL             string
	Status          string
	PaymentStatus   string
	PaymentIntentID string
}

// PaymentGateway wraps hosted checkout session creation plus capture and
// release of an authorized payment.
type PaymentGateway interface {
	CreateCheckoutSession(items []CheckoutLineItem, customerEmail, orderID, successURL, cancelURL string) (*CheckoutSession, error)
	CapturePayment(paymentIntentID string) error
	CancelPayment(paymentIntentID string) error
	RetrieveSession(sessionID string) (*CheckoutSession, error)
}

type StripeGateway struct {
	secretKey string
	baseURL   string
	client    *resty.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		baseURL:   "https://api.stripe.com",
		client:    resty.New().SetTimeout(30 * time.Second),
	}
}

// CreateCheckoutSession creates a hosted checkout session with manual
// capture: the card is authorized at checkout and the charge only happens
// when an operator confirms the order. The order id rides along as metadata
// so webhook events can be correlated back.
func (g *StripeGateway) CreateCheckoutSession(items []CheckoutLineItem, customerEmail, orderID, successURL, cancelURL string) (*CheckoutSession, error) {
	form := map[string]string{
		"mode":                                   "payment",
		"payment_method_types[0]":                "card",
		"customer_email":                         customerEmail,
		"payment_intent_data[capture_method]":    "manual",
		"payment_intent_data[metadata][orderId]": orderID,
		"metadata[orderId]":                      orderID,
		"success_url":                            successURL,
		"cancel_url":                             cancelURL,
		"expires_at":                             strconv.FormatInt(time.Now().Add(sessionExpiryWindow).Unix(), 10),
	}

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form[prefix+"[price_data][currency]"] = "cad"
		form[prefix+"[price_data][product_data][name]"] = item.Name
		form[prefix+"[price_data][unit_amount]"] = strconv.FormatInt(item.UnitAmount, 10)
		form[prefix+"[quantity]"] = strconv.FormatInt(item.Quantity, 10)
		if item.Description != "" {
			form[prefix+"[price_data][product_data][description]"] = item.Description
		}
	}

	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		SetHeader("Accept", "application/json").
		SetFormData(form).
		Post(g.baseURL + "/v1/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("checkout session request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return parseSessionResponse(resp.Body())
}

func (g *StripeGateway) CapturePayment(paymentIntentID string) error {
	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		SetHeader("Accept", "application/json").
		Post(g.baseURL + "/v1/payment_intents/" + paymentIntentID + "/capture")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("payment capture failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

func (g *StripeGateway) CancelPayment(paymentIntentID string) error {
	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		SetHeader("Accept", "application/json").
		Post(g.baseURL + "/v1/payment_intents/" + paymentIntentID + "/cancel")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("payment cancel failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// RetrieveSession asks the gateway for the current session state. Used only
// by the reconciliation fallback when no webhook has arrived yet.
func (g *StripeGateway) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		SetHeader("Accept", "application/json").
		Get(g.baseURL + "/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("session lookup failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return parseSessionResponse(resp.Body())
}

func parseSessionResponse(body []byte) (*CheckoutSession, error) {
	var payload struct {
		ID            string          `json:"id"`
		URL           string          `json:"url"`
		Status        string          `json:"status"`
		PaymentStatus string          `json:"payment_status"`
		PaymentIntent json.RawMessage `json:"payment_intent"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	if payload.ID == "" {
		return nil, fmt.Errorf("session id not found in response")
	}

	return &CheckoutSession{
		ID:              payload.ID,
		URL:             payload.URL,
		Status:          payload.Status,
		PaymentStatus:   payload.PaymentStatus,
		PaymentIntentID: ExtractPaymentIntentID(payload.PaymentIntent),
	}, nil
}

// ExtractPaymentIntentID handles the gateway returning the payment intent
// either as a bare id string or as an expanded object.
func ExtractPaymentIntentID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

// VerifyWebhookSignature checks the gateway's signature header
// ("t=<unix>,v1=<hex hmac>") against the raw payload. The signed string is
// "<timestamp>.<payload>" and stale timestamps are rejected.
func VerifyWebhookSignature(payload []byte, header, secret string) error {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			timestamp = pair[1]
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid signature timestamp")
	}
	if d := time.Since(time.Unix(ts, 0)); d > signatureTolerance || d < -signatureTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("signature mismatch")
}
