package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type OrderEmailItem struct {
	ItemName   string
	Quantity   int
	GuestCount int
	LineTotal  string
	Notes      string
}

// OrderEmailData is a pre-formatted snapshot of an order: currency and dates
// are already strings. The notifier only renders, it never computes.
type OrderEmailData struct {
	OrderID         string
	ShortOrderID    string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	FulfillmentType string
	ScheduledDate   string
	ScheduledTime   string
	Items           []OrderEmailItem
	Subtotal        string
	DeliveryFee     string
	ShowDeliveryFee bool
	Total           string
	Notes           string
	BusinessName    string
	BusinessPhone   string
	BusinessAddress string
}

// Notifier delivers order emails. Every method returns a success flag and
// never an error: delivery is best-effort and must not roll back the order
// mutation that triggered it.
type Notifier interface {
	SendOrderNotification(toEmail string, data OrderEmailData) bool
	SendCustomerOrderConfirmation(data OrderEmailData) bool
	SendOrderStatusUpdate(data OrderEmailData, newStatus string) bool
}

type statusMessage struct {
	Subject string
	Heading string
	Message string
	Color   string
}

var statusMessages = map[string]statusMessage{
	"confirmed": {
		Subject: "Order Confirmed",
		Heading: "Your Order is Confirmed!",
		Message: "Great news! Your catering order has been confirmed. We look forward to serving you.",
		Color:   "#2D5A27",
	},
	"cancelled": {
		Subject: "Order Cancelled",
		Heading: "Order Cancelled",
		Message: "Your catering order has been cancelled. If you have any questions, please contact us.",
		Color:   "#DC2626",
	},
}

// SMTP2GoNotifier sends mail through the SMTP2GO HTTP API. When no API key
// is configured it degrades to logging the full email to the console, which
// keeps local development working without a vendor account.
type SMTP2GoNotifier struct {
	apiKey      string
	sender      string
	baseURL     string
	templateDir string
	client      *resty.Client
}

func NewSMTP2GoNotifier(apiKey, sender string) *SMTP2GoNotifier {
	return &SMTP2GoNotifier{
		apiKey:      apiKey,
		sender:      sender,
		baseURL:     "https://api.smtp2go.com",
		templateDir: "templates",
		client:      resty.New().SetTimeout(30 * time.Second),
	}
}

func (n *SMTP2GoNotifier) SendOrderNotification(toEmail string, data OrderEmailData) bool {
	subject := "New Catering Order - " + data.ShortOrderID
	text := formatOrderEmailText(data)
	html := n.renderTemplate("order_notification.html", data)
	return n.send("ORDER NOTIFICATION", toEmail, subject, text, html)
}

func (n *SMTP2GoNotifier) SendCustomerOrderConfirmation(data OrderEmailData) bool {
	subject := fmt.Sprintf("Order Received - %s Catering", data.BusinessName)
	text := formatCustomerConfirmationText(data)
	html := n.renderTemplate("customer_confirmation.html", data)
	return n.send("CUSTOMER ORDER CONFIRMATION", data.CustomerEmail, subject, text, html)
}

func (n *SMTP2GoNotifier) SendOrderStatusUpdate(data OrderEmailData, newStatus string) bool {
	statusInfo, ok := statusMessages[newStatus]
	if !ok {
		log.Printf("No status email template for status %q, skipping", newStatus)
		return false
	}
	statusInfo.Subject = fmt.Sprintf("%s - %s Catering", statusInfo.Subject, data.BusinessName)

	text := formatStatusUpdateText(data, statusInfo)
	html := n.renderStatusTemplate(data, statusInfo)
	return n.send("ORDER STATUS UPDATE ("+strings.ToUpper(newStatus)+")", data.CustomerEmail, statusInfo.Subject, text, html)
}

func (n *SMTP2GoNotifier) send(label, toEmail, subject, textBody, htmlBody string) bool {
	if n.apiKey == "" {
		divider := strings.Repeat("=", 60)
		log.Println(divider)
		log.Printf("%s EMAIL (SMTP2GO not configured)", label)
		log.Println(divider)
		log.Printf("To: %s", toEmail)
		log.Printf("Subject: %s", subject)
		log.Println(strings.Repeat("-", 60))
		log.Println(textBody)
		log.Println(divider)
		return true
	}

	body := map[string]any{
		"api_key":   n.apiKey,
		"to":        []string{toEmail},
		"sender":    n.sender,
		"subject":   subject,
		"text_body": textBody,
	}
	if htmlBody != "" {
		body["html_body"] = htmlBody
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(n.baseURL + "/v3/email/send")
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return false
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Printf("SMTP2GO error: status %d: %s", resp.StatusCode(), string(resp.Body()))
		return false
	}

	log.Println("Email sent successfully via SMTP2GO")
	return true
}

func (n *SMTP2GoNotifier) renderTemplate(name string, data OrderEmailData) string {
	tmpl, err := template.ParseFiles(filepath.Join(n.templateDir, name))
	if err != nil {
		log.Printf("Email template %s unavailable, sending text only: %v", name, err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Email template %s failed to render, sending text only: %v", name, err)
		return ""
	}
	return buf.String()
}

func (n *SMTP2GoNotifier) renderStatusTemplate(data OrderEmailData, statusInfo statusMessage) string {
	tmpl, err := template.ParseFiles(filepath.Join(n.templateDir, "status_update.html"))
	if err != nil {
		log.Printf("Status email template unavailable, sending text only: %v", err)
		return ""
	}
	var buf bytes.Buffer
	payload := struct {
		OrderEmailData
		Status statusMessage
	}{data, statusInfo}
	if err := tmpl.Execute(&buf, payload); err != nil {
		log.Printf("Status email template failed to render, sending text only: %v", err)
		return ""
	}
	return buf.String()
}

func formatOrderEmailText(data OrderEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NEW CATERING ORDER\nOrder ID: %s\n\n", data.OrderID)
	fmt.Fprintf(&b, "CUSTOMER INFORMATION\nName: %s\nEmail: %s\nPhone: %s\n", data.CustomerName, data.CustomerEmail, data.CustomerPhone)
	if data.CustomerAddress != "" {
		fmt.Fprintf(&b, "Address: %s\n", data.CustomerAddress)
	}
	fmt.Fprintf(&b, "\nORDER DETAILS\nType: %s\nDate: %s\nTime: %s\n\nITEMS\n",
		strings.ToUpper(data.FulfillmentType), data.ScheduledDate, data.ScheduledTime)

	for _, item := range data.Items {
		fmt.Fprintf(&b, "- %s x%d", item.ItemName, item.Quantity)
		if item.GuestCount > 0 {
			fmt.Fprintf(&b, " (%d guests)", item.GuestCount)
		}
		fmt.Fprintf(&b, " - %s\n", item.LineTotal)
		if item.Notes != "" {
			fmt.Fprintf(&b, "  Note: %s\n", item.Notes)
		}
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", data.Subtotal)
	if data.ShowDeliveryFee {
		fmt.Fprintf(&b, "Delivery Fee: %s\n", data.DeliveryFee)
	}
	fmt.Fprintf(&b, "TOTAL: %s\n", data.Total)

	if data.Notes != "" {
		fmt.Fprintf(&b, "\nORDER NOTES: %s\n", data.Notes)
	}

	b.WriteString("\n* Prices do not include taxes. Please confirm final amount with customer.")
	return b.String()
}

func formatCustomerConfirmationText(data OrderEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\nHi %s,\n\n", data.CustomerName)
	b.WriteString("We've received your catering order and will confirm it shortly.\n\n")
	fmt.Fprintf(&b, "ORDER DETAILS\nOrder ID: %s\nType: %s\nDate: %s\nTime: %s\n",
		data.ShortOrderID, strings.ToUpper(data.FulfillmentType), data.ScheduledDate, data.ScheduledTime)
	if data.CustomerAddress != "" {
		fmt.Fprintf(&b, "Delivery Address: %s\n", data.CustomerAddress)
	}

	b.WriteString("\nITEMS\n")
	for _, item := range data.Items {
		fmt.Fprintf(&b, "- %s x%d", item.ItemName, item.Quantity)
		if item.GuestCount > 0 {
			fmt.Fprintf(&b, " (%d guests)", item.GuestCount)
		}
		fmt.Fprintf(&b, " - %s\n", item.LineTotal)
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", data.Subtotal)
	if data.ShowDeliveryFee {
		fmt.Fprintf(&b, "Delivery Fee: %s\n", data.DeliveryFee)
	}
	fmt.Fprintf(&b, "TOTAL: %s\n\n", data.Total)

	fmt.Fprintf(&b, "Questions? Contact %s", data.BusinessName)
	if data.BusinessPhone != "" {
		fmt.Fprintf(&b, " at %s", data.BusinessPhone)
	}
	b.WriteString(".")
	return b.String()
}

func formatStatusUpdateText(data OrderEmailData, statusInfo statusMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nHi %s,\n\n%s\n\n", statusInfo.Heading, data.CustomerName, statusInfo.Message)
	fmt.Fprintf(&b, "ORDER DETAILS\nOrder ID: %s\nDate: %s\nTime: %s\nTotal: %s\n",
		data.ShortOrderID, data.ScheduledDate, data.ScheduledTime, data.Total)

	fmt.Fprintf(&b, "\nQuestions? Contact %s", data.BusinessName)
	if data.BusinessPhone != "" {
		fmt.Fprintf(&b, " at %s", data.BusinessPhone)
	}
	b.WriteString(".")
	return b.String()
}
