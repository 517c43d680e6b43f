package services

import (
	"testing"

	"github.com/bluecilantro/catering-api/models"
	"github.com/shopspring/decimal"
)

func TestLoadBusinessSettings(t *testing.T) {
	t.Run("Given an empty store When loading Then defaults apply", func(t *testing.T) {
		settings := LoadBusinessSettings(&mockSettingsRepo{})

		if settings.BusinessName != "BlueCilantro" {
			t.Errorf("business name = %s", settings.BusinessName)
		}
		if settings.NotificationEmail != "gpwc@bluecilantro.ca" {
			t.Errorf("notification email = %s", settings.NotificationEmail)
		}
		if settings.SendCustomerEmails {
			t.Error("customer emails default off")
		}
	})

	t.Run("Given stored values When loading Then they override defaults", func(t *testing.T) {
		repo := &mockSettingsRepo{values: map[string]string{
			"business_name":              "Green Basil",
			"notification_email":         "orders@greenbasil.ca",
			"send_customer_confirmation": "true",
			"delivery_fee":               "30.00",
		}}

		settings := LoadBusinessSettings(repo)

		if settings.BusinessName != "Green Basil" {
			t.Errorf("business name = %s", settings.BusinessName)
		}
		if !settings.SendCustomerEmails {
			t.Error("customer emails should be on")
		}
		if !settings.DeliveryFee.Equal(decimal.NewFromFloat(30.00)) {
			t.Errorf("delivery fee = %s", settings.DeliveryFee)
		}
	})
}

func TestBuildOrderEmailData(t *testing.T) {
	t.Run("Given an order When building email data Then amounts and dates are pre-formatted", func(t *testing.T) {
		repo := newMockOrderRepo()
		order := seedOrder(repo, models.PaymentStatusPending)
		order.DeliveryFee = decimal.NewFromFloat(25.00)
		guests := 4
		order.Items = []models.OrderItem{
			{ItemName: "Buffet", Quantity: 1, GuestCount: &guests, LineTotal: decimal.NewFromFloat(20.00)},
		}

		data := BuildOrderEmailData(order, BusinessSettings{BusinessName: "BlueCilantro"})

		if data.ShortOrderID != "order-1" {
			t.Errorf("short id = %s", data.ShortOrderID)
		}
		if data.Total != "$65.00" {
			t.Errorf("total = %s", data.Total)
		}
		if !data.ShowDeliveryFee {
			t.Error("delivery fee should show")
		}
		if data.Items[0].GuestCount != 4 {
			t.Errorf("guest count = %d", data.Items[0].GuestCount)
		}
	})
}

func TestShortOrderID(t *testing.T) {
	if got := ShortOrderID("3f2c9a10-aaaa-bbbb"); got != "3f2c9a10" {
		t.Errorf("ShortOrderID = %s", got)
	}
	if got := ShortOrderID("abc"); got != "abc" {
		t.Errorf("short ids pass through, got %s", got)
	}
}
