package models

// Setting is a single row in the business configuration key-value store.
// Known keys: notification_email, delivery_fee, min_order_amount,
// lead_time_hours, business_name, business_phone, business_address,
// send_customer_confirmation.
type Setting struct {
	Key   string `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value string `json:"value"`
}
