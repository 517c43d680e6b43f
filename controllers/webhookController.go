package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
)

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type sessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent json.RawMessage   `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type paymentIntentObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// HandleStripeWebhook receives asynchronous payment events. The signature is
// verified against the raw body before any parsing. Once the signature
// checks out the handler always reports success for payloads it cannot
// correlate to an order: the sender retries on non-2xx, and those payloads
// are unrecoverable.
func HandleStripeWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unable to read request body")
		return
	}

	signature := ctx.GetHeader("Stripe-Signature")
	if signature == "" {
		log.Println("Missing Stripe signature")
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing signature")
		return
	}

	webhookSecret := services.Cfg.StripeWebhookSecret
	if webhookSecret == "" {
		log.Println("STRIPE_WEBHOOK_SECRET not configured")
		sendErrorResponse(ctx, http.StatusInternalServerError, "Webhook not configured")
		return
	}

	if err := services.VerifyWebhookSignature(body, signature, webhookSecret); err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Webhook payload parse failed: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payload")
		return
	}

	log.Printf("Received Stripe webhook: %s", event.Type)

	if err := dispatchWebhookEvent(event); err != nil {
		log.Printf("Webhook handler error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Webhook handler failed")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"received": true})
}

func dispatchWebhookEvent(event webhookEvent) error {
	switch event.Type {
	case "checkout.session.completed":
		var session sessionObject
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			return err
		}
		orderID := session.Metadata["orderId"]
		if orderID == "" {
			log.Println("No orderId in session metadata")
			return nil
		}
		return services.Orders.HandleCheckoutCompleted(orderID, services.ExtractPaymentIntentID(session.PaymentIntent))

	case "checkout.session.expired":
		var session sessionObject
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			return err
		}
		orderID := session.Metadata["orderId"]
		if orderID == "" {
			log.Println("No orderId in session metadata")
			return nil
		}
		return services.Orders.HandleCheckoutExpired(orderID)

	case "payment_intent.payment_failed":
		var intent paymentIntentObject
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			return err
		}
		orderID := intent.Metadata["orderId"]
		if orderID == "" {
			log.Println("No orderId in payment intent metadata")
			return nil
		}
		return services.Orders.HandlePaymentFailed(orderID)

	default:
		log.Printf("Unhandled event type: %s", event.Type)
		return nil
	}
}
