package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status values. Cancellation is a soft transition; orders are never
// hard-deleted.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment status values. TestBypass is only ever set at creation time and is
// never reachable from any other state.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusPaid       = "paid"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
	PaymentStatusTestBypass = "test_bypass"
)

const (
	PricingTypeFixed     = "fixed"
	PricingTypePerPerson = "per_person"
)

const (
	FulfillmentDelivery = "delivery"
	FulfillmentPickup   = "pickup"
)

type Order struct {
	ID                    string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Status                string          `gorm:"type:varchar(20);default:new" json:"status"`
	PaymentStatus         string          `gorm:"type:varchar(20);default:pending" json:"paymentStatus"`
	CustomerName          string          `json:"customerName"`
	CustomerEmail         string          `json:"customerEmail"`
	CustomerPhone         string          `json:"customerPhone"`
	CustomerAddress       string          `json:"customerAddress"`
	FulfillmentType       string          `gorm:"type:varchar(20);default:delivery" json:"fulfillmentType"`
	ScheduledDate         time.Time       `json:"scheduledDate"`
	ScheduledTime         string          `gorm:"type:varchar(20)" json:"scheduledTime"`
	Subtotal              decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	DeliveryFee           decimal.Decimal `gorm:"type:decimal(10,2)" json:"deliveryFee"`
	Total                 decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Notes                 string          `json:"notes"`
	StripeSessionID       string          `gorm:"index;type:varchar(255)" json:"stripeSessionId"`
	StripePaymentIntentID string          `gorm:"type:varchar(255)" json:"stripePaymentIntentId"`
	PaidAt                *time.Time      `json:"paidAt"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	Items                 []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a snapshot taken at order creation. The line total is never
// recomputed, so later menu price changes do not affect existing orders.
type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID     string          `gorm:"index;type:varchar(36)" json:"orderId"`
	MenuItemID  *string         `gorm:"type:varchar(36)" json:"menuItemId"`
	ItemName    string          `json:"itemName"`
	ItemPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"itemPrice"`
	PricingType string          `gorm:"type:varchar(20);default:fixed" json:"pricingType"`
	Quantity    int             `json:"quantity"`
	GuestCount  *int            `json:"guestCount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2)" json:"lineTotal"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
