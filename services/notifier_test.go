package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sampleEmailData() OrderEmailData {
	return OrderEmailData{
		OrderID:         "3f2c9a10-aaaa-bbbb-cccc-000000000000",
		ShortOrderID:    "3f2c9a10",
		CustomerName:    "Jordan Smith",
		CustomerEmail:   "jordan@example.com",
		CustomerPhone:   "555-0100",
		CustomerAddress: "12 King St W",
		FulfillmentType: "delivery",
		ScheduledDate:   "September 15, 2026",
		ScheduledTime:   "12:30 PM",
		Items: []OrderEmailItem{
			{ItemName: "Samosa Platter", Quantity: 2, LineTotal: "$20.00"},
			{ItemName: "Buffet", Quantity: 1, GuestCount: 4, LineTotal: "$20.00", Notes: "no peanuts"},
		},
		Subtotal:        "$40.00",
		DeliveryFee:     "$25.00",
		ShowDeliveryFee: true,
		Total:           "$65.00",
		BusinessName:    "BlueCilantro",
		BusinessPhone:   "555-0199",
	}
}

func TestNotifierConsoleFallback(t *testing.T) {
	t.Run("Given no API key When sending Then delivery degrades to logging and reports success", func(t *testing.T) {
		notifier := NewSMTP2GoNotifier("", "orders@bluecilantro.ca")

		if !notifier.SendOrderNotification("gpwc@bluecilantro.ca", sampleEmailData()) {
			t.Error("console fallback should report success")
		}
		if !notifier.SendCustomerOrderConfirmation(sampleEmailData()) {
			t.Error("console fallback should report success")
		}
		if !notifier.SendOrderStatusUpdate(sampleEmailData(), "confirmed") {
			t.Error("console fallback should report success")
		}
	})
}

func TestNotifierSMTP2Go(t *testing.T) {
	newServer := func(status int, capture *map[string]any) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if capture != nil {
				_ = json.NewDecoder(r.Body).Decode(capture)
			}
			w.WriteHeader(status)
			fmt.Fprint(w, `{"data":{"succeeded":1}}`)
		}))
	}

	t.Run("Given a configured key When sending Then the API receives the full email", func(t *testing.T) {
		var body map[string]any
		server := newServer(http.StatusOK, &body)
		defer server.Close()

		notifier := NewSMTP2GoNotifier("api-key-123", "orders@bluecilantro.ca")
		notifier.baseURL = server.URL

		if !notifier.SendOrderNotification("gpwc@bluecilantro.ca", sampleEmailData()) {
			t.Fatal("expected success")
		}

		if body["api_key"] != "api-key-123" {
			t.Errorf("api_key = %v", body["api_key"])
		}
		if body["sender"] != "orders@bluecilantro.ca" {
			t.Errorf("sender = %v", body["sender"])
		}
		subject, _ := body["subject"].(string)
		if !strings.Contains(subject, "3f2c9a10") {
			t.Errorf("subject = %q should carry the short order id", subject)
		}
		text, _ := body["text_body"].(string)
		for _, want := range []string{"Jordan Smith", "Samosa Platter", "$65.00", "no peanuts"} {
			if !strings.Contains(text, want) {
				t.Errorf("text body missing %q", want)
			}
		}
	})

	t.Run("Given an API failure When sending Then it reports failure without erroring", func(t *testing.T) {
		server := newServer(http.StatusUnauthorized, nil)
		defer server.Close()

		notifier := NewSMTP2GoNotifier("bad-key", "orders@bluecilantro.ca")
		notifier.baseURL = server.URL

		if notifier.SendOrderNotification("gpwc@bluecilantro.ca", sampleEmailData()) {
			t.Error("API rejection should report failure")
		}
	})

	t.Run("Given an unknown status When sending a status update Then nothing is sent", func(t *testing.T) {
		var body map[string]any
		server := newServer(http.StatusOK, &body)
		defer server.Close()

		notifier := NewSMTP2GoNotifier("api-key-123", "orders@bluecilantro.ca")
		notifier.baseURL = server.URL

		if notifier.SendOrderStatusUpdate(sampleEmailData(), "completed") {
			t.Error("statuses without a template should be skipped")
		}
		if body != nil {
			t.Error("no request should be made")
		}
	})
}

func TestTextBodies(t *testing.T) {
	t.Run("Given a pickup order When formatting Then the delivery fee line is omitted", func(t *testing.T) {
		data := sampleEmailData()
		data.ShowDeliveryFee = false
		data.CustomerAddress = ""

		text := formatOrderEmailText(data)

		if strings.Contains(text, "Delivery Fee") {
			t.Error("delivery fee should be hidden")
		}
		if strings.Contains(text, "Address:") {
			t.Error("address line should be hidden")
		}
	})

	t.Run("Given a per-person item When formatting Then the guest count shows", func(t *testing.T) {
		text := formatCustomerConfirmationText(sampleEmailData())
		if !strings.Contains(text, "(4 guests)") {
			t.Errorf("text missing guest count:\n%s", text)
		}
	})

	t.Run("Given a cancelled order When formatting the status update Then the message matches", func(t *testing.T) {
		text := formatStatusUpdateText(sampleEmailData(), statusMessages["cancelled"])
		if !strings.Contains(text, "Order Cancelled") {
			t.Errorf("text missing heading:\n%s", text)
		}
	})
}
