package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/repository"
	"github.com/bluecilantro/catering-api/utils"
	"github.com/shopspring/decimal"
)

// Validation errors surface to the caller as 400s with their message; the
// first failing check wins.
var (
	ErrMissingCustomerInfo = errors.New("customer information is required")
	ErrMissingAddress      = errors.New("delivery address is required")
	ErrMissingSchedule     = errors.New("scheduled date and time are required")
	ErrInvalidSchedule     = errors.New("invalid scheduled date")
	ErrEmptyCart           = errors.New("at least one item is required")
	ErrInvalidPromoCode    = errors.New("invalid promo code")
)

var validationErrors = []error{
	ErrMissingCustomerInfo,
	ErrMissingAddress,
	ErrMissingSchedule,
	ErrInvalidSchedule,
	ErrEmptyCart,
	ErrInvalidPromoCode,
}

func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

type CheckoutItemInput struct {
	MenuItemID  string          `json:"menuItemId"`
	ItemName    string          `json:"itemName"`
	ItemPrice   decimal.Decimal `json:"itemPrice"`
	PricingType string          `json:"pricingType"`
	Quantity    int             `json:"quantity"`
	GuestCount  *int            `json:"guestCount"`
	Notes       string          `json:"notes"`
}

type CheckoutInput struct {
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	ScheduledDate   string              `json:"scheduledDate"`
	ScheduledTime   string              `json:"scheduledTime"`
	Notes           string              `json:"notes"`
	PromoCode       string              `json:"promoCode"`
	Items           []CheckoutItemInput `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DeliveryFee     decimal.Decimal     `json:"deliveryFee"`
	Total           decimal.Decimal     `json:"total"`
}

type CheckoutResult struct {
	OrderID     string
	CheckoutURL string
	BypassURL   string
}

type CheckoutService struct {
	orders     repository.OrderRepository
	settings   repository.SettingsRepository
	gateway    PaymentGateway
	notifier   Notifier
	appURL     string
	bypassCode string
}

func NewCheckoutService(orders repository.OrderRepository, settings repository.SettingsRepository, gateway PaymentGateway, notifier Notifier, appURL, bypassCode string) *CheckoutService {
	return &CheckoutService{
		orders:     orders,
		settings:   settings,
		gateway:    gateway,
		notifier:   notifier,
		appURL:     appURL,
		bypassCode: bypassCode,
	}
}

// Process turns a validated cart into a persisted order plus either a hosted
// payment redirect or a bypass confirmation. All totals are recomputed
// server-side; client-submitted totals are discarded.
func (s *CheckoutService) Process(input *CheckoutInput) (*CheckoutResult, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" || input.CustomerPhone == "" {
		return nil, ErrMissingCustomerInfo
	}
	if input.CustomerAddress == "" {
		return nil, ErrMissingAddress
	}
	if input.ScheduledDate == "" || input.ScheduledTime == "" {
		return nil, ErrMissingSchedule
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	isBypass := s.bypassCode != "" && input.PromoCode == s.bypassCode
	if input.PromoCode != "" && !isBypass {
		return nil, ErrInvalidPromoCode
	}

	scheduledDate, err := parseScheduledDate(input.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	items, subtotal := computeLineTotals(input.Items)
	total := subtotal.Add(input.DeliveryFee)

	paymentStatus := models.PaymentStatusPending
	if isBypass {
		paymentStatus = models.PaymentStatusTestBypass
	}

	order := &models.Order{
		Status:          models.OrderStatusNew,
		PaymentStatus:   paymentStatus,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		FulfillmentType: models.FulfillmentDelivery,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   input.ScheduledTime,
		Subtotal:        subtotal,
		DeliveryFee:     input.DeliveryFee,
		Total:           total,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := s.orders.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if isBypass {
		// No payment leg, so creation is the moment to notify. The real
		// payment path defers emails until the authorized transition.
		s.sendCreationEmails(order)
		return &CheckoutResult{
			OrderID:   order.ID,
			BypassURL: fmt.Sprintf("%s/checkout/success?bypass=true&order_id=%s", s.appURL, order.ID),
		}, nil
	}

	session, err := s.gateway.CreateCheckoutSession(
		buildGatewayLineItems(items, input.DeliveryFee),
		input.CustomerEmail,
		order.ID,
		s.appURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		fmt.Sprintf("%s/checkout/cancelled?order_id=%s", s.appURL, order.ID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := s.orders.UpdateFields(order.ID, map[string]any{"stripe_session_id": session.ID}); err != nil {
		log.Printf("Order %s created, but session ID not saved: %s", order.ID, session.ID)
	}

	return &CheckoutResult{
		OrderID:     order.ID,
		CheckoutURL: session.URL,
	}, nil
}

// DirectOrderInput is the legacy order-creation path with no payment leg.
type DirectOrderInput struct {
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	FulfillmentType string              `json:"fulfillmentType"`
	ScheduledDate   string              `json:"scheduledDate"`
	ScheduledTime   string              `json:"scheduledTime"`
	Notes           string              `json:"notes"`
	Items           []CheckoutItemInput `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DeliveryFee     decimal.Decimal     `json:"deliveryFee"`
	Total           decimal.Decimal     `json:"total"`
}

func (s *CheckoutService) ProcessDirect(input *DirectOrderInput) (*models.Order, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" || input.CustomerPhone == "" {
		return nil, ErrMissingCustomerInfo
	}
	if input.ScheduledDate == "" || input.ScheduledTime == "" {
		return nil, ErrMissingSchedule
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	fulfillment := input.FulfillmentType
	if fulfillment == "" {
		fulfillment = models.FulfillmentDelivery
	}
	if fulfillment == models.FulfillmentDelivery && input.CustomerAddress == "" {
		return nil, ErrMissingAddress
	}

	scheduledDate, err := parseScheduledDate(input.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	items, subtotal := computeLineTotals(input.Items)
	total := subtotal.Add(input.DeliveryFee)

	order := &models.Order{
		Status:          models.OrderStatusNew,
		PaymentStatus:   models.PaymentStatusPending,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		FulfillmentType: fulfillment,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   input.ScheduledTime,
		Subtotal:        subtotal,
		DeliveryFee:     input.DeliveryFee,
		Total:           total,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := s.orders.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.sendCreationEmails(order)
	return order, nil
}

func (s *CheckoutService) sendCreationEmails(order *models.Order) {
	settings := LoadBusinessSettings(s.settings)
	data := BuildOrderEmailData(order, settings)

	s.notifier.SendOrderNotification(settings.NotificationEmail, data)
	if settings.SendCustomerEmails {
		s.notifier.SendCustomerOrderConfirmation(data)
	}
}

// computeLineTotals recomputes every line server-side: per-person items
// multiply by guest count, everything else by quantity alone.
func computeLineTotals(inputs []CheckoutItemInput) ([]models.OrderItem, decimal.Decimal) {
	items := make([]models.OrderItem, 0, len(inputs))
	subtotal := decimal.Zero

	for _, input := range inputs {
		multiplier := int64(1)
		if input.PricingType == models.PricingTypePerPerson && input.GuestCount != nil && *input.GuestCount > 0 {
			multiplier = int64(*input.GuestCount)
		}
		lineTotal := input.ItemPrice.
			Mul(decimal.NewFromInt(int64(input.Quantity))).
			Mul(decimal.NewFromInt(multiplier))
		subtotal = subtotal.Add(lineTotal)

		item := models.OrderItem{
			ItemName:    input.ItemName,
			ItemPrice:   input.ItemPrice,
			PricingType: input.PricingType,
			Quantity:    input.Quantity,
			GuestCount:  input.GuestCount,
			LineTotal:   lineTotal,
			Notes:       input.Notes,
		}
		if input.MenuItemID != "" {
			menuItemID := input.MenuItemID
			item.MenuItemID = &menuItemID
		}
		items = append(items, item)
	}

	return items, subtotal
}

// buildGatewayLineItems converts order items to gateway lines in minor
// units. A non-zero delivery fee becomes a synthetic line of its own.
func buildGatewayLineItems(items []models.OrderItem, deliveryFee decimal.Decimal) []CheckoutLineItem {
	lines := make([]CheckoutLineItem, 0, len(items)+1)

	for _, item := range items {
		line := CheckoutLineItem{
			Name:       item.ItemName,
			UnitAmount: utils.ToCents(item.ItemPrice),
			Quantity:   int64(item.Quantity),
		}
		if item.PricingType == models.PricingTypePerPerson && item.GuestCount != nil && *item.GuestCount > 0 {
			line.Quantity = int64(item.Quantity) * int64(*item.GuestCount)
			line.Description = fmt.Sprintf("%d guests", *item.GuestCount)
		}
		lines = append(lines, line)
	}

	if deliveryFee.IsPositive() {
		lines = append(lines, CheckoutLineItem{
			Name:       "Delivery Fee",
			UnitAmount: utils.ToCents(deliveryFee),
			Quantity:   1,
		})
	}

	return lines
}

func parseScheduledDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
