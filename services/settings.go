package services

import (
	"log"

	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/repository"
	"github.com/bluecilantro/catering-api/utils"
	"github.com/shopspring/decimal"
)

const (
	defaultBusinessName      = "BlueCilantro"
	defaultNotificationEmail = "gpwc@bluecilantro.ca"
)

// BusinessSettings is the typed view of the settings key-value store, read
// fresh per request so admin changes take effect immediately.
type BusinessSettings struct {
	BusinessName       string
	BusinessPhone      string
	BusinessAddress    string
	NotificationEmail  string
	SendCustomerEmails bool
	DeliveryFee        decimal.Decimal
}

func LoadBusinessSettings(repo repository.SettingsRepository) BusinessSettings {
	settings := BusinessSettings{
		BusinessName:      defaultBusinessName,
		NotificationEmail: defaultNotificationEmail,
	}

	values, err := repo.Get(
		"business_name",
		"business_phone",
		"business_address",
		"notification_email",
		"send_customer_confirmation",
		"delivery_fee",
	)
	if err != nil {
		log.Println("Failed to load business settings, using defaults:", err)
		return settings
	}

	if v := values["business_name"]; v != "" {
		settings.BusinessName = v
	}
	settings.BusinessPhone = values["business_phone"]
	settings.BusinessAddress = values["business_address"]
	if v := values["notification_email"]; v != "" {
		settings.NotificationEmail = v
	}
	settings.SendCustomerEmails = values["send_customer_confirmation"] == "true"
	if v := values["delivery_fee"]; v != "" {
		if fee, err := decimal.NewFromString(v); err == nil {
			settings.DeliveryFee = fee
		}
	}

	return settings
}

// BuildOrderEmailData converts an order into the pre-formatted snapshot the
// notifier renders from.
func BuildOrderEmailData(order *models.Order, settings BusinessSettings) OrderEmailData {
	items := make([]OrderEmailItem, 0, len(order.Items))
	for _, item := range order.Items {
		emailItem := OrderEmailItem{
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			LineTotal: utils.FormatCurrency(item.LineTotal),
			Notes:     item.Notes,
		}
		if item.GuestCount != nil {
			emailItem.GuestCount = *item.GuestCount
		}
		items = append(items, emailItem)
	}

	return OrderEmailData{
		OrderID:         order.ID,
		ShortOrderID:    ShortOrderID(order.ID),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		FulfillmentType: order.FulfillmentType,
		ScheduledDate:   utils.FormatDate(order.ScheduledDate),
		ScheduledTime:   order.ScheduledTime,
		Items:           items,
		Subtotal:        utils.FormatCurrency(order.Subtotal),
		DeliveryFee:     utils.FormatCurrency(order.DeliveryFee),
		ShowDeliveryFee: order.DeliveryFee.IsPositive(),
		Total:           utils.FormatCurrency(order.Total),
		Notes:           order.Notes,
		BusinessName:    settings.BusinessName,
		BusinessPhone:   settings.BusinessPhone,
		BusinessAddress: settings.BusinessAddress,
	}
}

func ShortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
