package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bluecilantro/catering-api/models"
	"github.com/bluecilantro/catering-api/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrCaptureFailed = errors.New("payment capture failed")
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusNew:       true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

type OrderService struct {
	orders   repository.OrderRepository
	settings repository.SettingsRepository
	gateway  PaymentGateway
	notifier Notifier
}

func NewOrderService(orders repository.OrderRepository, settings repository.SettingsRepository, gateway PaymentGateway, notifier Notifier) *OrderService {
	return &OrderService{
		orders:   orders,
		settings: settings,
		gateway:  gateway,
		notifier: notifier,
	}
}

// HandleCheckoutCompleted applies the pending → authorized transition. The
// conditional update makes it idempotent: the webhook and the reconciliation
// poll can both call this, and only the caller that wins the transition
// dispatches the order emails.
func (s *OrderService) HandleCheckoutCompleted(orderID, paymentIntentID string) error {
	fields := map[string]any{"payment_status": models.PaymentStatusAuthorized}
	if paymentIntentID != "" {
		fields["stripe_payment_intent_id"] = paymentIntentID
	}

	applied, err := s.orders.TransitionPaymentStatus(orderID, []string{models.PaymentStatusPending}, fields)
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	log.Printf("Order %s payment authorized", orderID)

	order, err := s.orders.GetByID(orderID)
	if err != nil || order == nil {
		log.Printf("Order %s authorized but could not be reloaded for emails: %v", orderID, err)
		return nil
	}

	settings := LoadBusinessSettings(s.settings)
	data := BuildOrderEmailData(order, settings)
	s.notifier.SendOrderNotification(settings.NotificationEmail, data)
	if settings.SendCustomerEmails {
		s.notifier.SendCustomerOrderConfirmation(data)
	}
	return nil
}

// HandleCheckoutExpired fails the payment and cancels the order, but only
// while the payment is still pending.
func (s *OrderService) HandleCheckoutExpired(orderID string) error {
	applied, err := s.orders.TransitionPaymentStatus(orderID, []string{models.PaymentStatusPending}, map[string]any{
		"payment_status": models.PaymentStatusFailed,
		"status":         models.OrderStatusCancelled,
	})
	if err != nil {
		return err
	}
	if applied {
		log.Printf("Order %s checkout expired", orderID)
	}
	return nil
}

func (s *OrderService) HandlePaymentFailed(orderID string) error {
	applied, err := s.orders.TransitionPaymentStatus(orderID,
		[]string{models.PaymentStatusPending, models.PaymentStatusAuthorized},
		map[string]any{"payment_status": models.PaymentStatusFailed})
	if err != nil {
		return err
	}
	if applied {
		log.Printf("Order %s payment failed", orderID)
	}
	return nil
}

// ReconcileBySession is the polling fallback behind the success page: when
// the webhook has not arrived yet, ask the gateway directly and re-run the
// same completed transition. Gateway errors are logged, not surfaced; the
// order summary is still returned and a later webhook will heal the state.
func (s *OrderService) ReconcileBySession(sessionID string) (*models.Order, error) {
	order, err := s.orders.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		return order, nil
	}

	session, err := s.gateway.RetrieveSession(order.StripeSessionID)
	if err != nil {
		log.Printf("Reconciliation lookup for order %s failed: %v", order.ID, err)
		return order, nil
	}

	if session.PaymentStatus == "paid" || session.PaymentStatus == "no_payment_required" || session.Status == "complete" {
		if err := s.HandleCheckoutCompleted(order.ID, session.PaymentIntentID); err != nil {
			log.Printf("Reconciliation for order %s failed: %v", order.ID, err)
			return order, nil
		}
		return s.refresh(order)
	}

	return order, nil
}

// UpdateStatus drives admin order-status transitions and their payment side
// effects: confirming an authorized order captures the charge first (capture
// failure aborts the transition), cancelling releases the hold best-effort.
func (s *OrderService) UpdateStatus(orderID, newStatus string) (*models.Order, error) {
	if !validOrderStatuses[newStatus] {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	statusChanged := order.Status != newStatus

	switch newStatus {
	case models.OrderStatusConfirmed:
		if order.PaymentStatus == models.PaymentStatusAuthorized {
			if err := s.gateway.CapturePayment(order.StripePaymentIntentID); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
			}
			now := time.Now()
			if _, err := s.orders.TransitionPaymentStatus(orderID,
				[]string{models.PaymentStatusAuthorized},
				map[string]any{"payment_status": models.PaymentStatusPaid, "paid_at": now}); err != nil {
				return nil, err
			}
		}
	case models.OrderStatusCancelled:
		if order.PaymentStatus == models.PaymentStatusAuthorized {
			// Never block a cancellation on payment-provider flakiness; a
			// failed release is reconciled manually.
			if err := s.gateway.CancelPayment(order.StripePaymentIntentID); err != nil {
				log.Printf("Failed to release payment for order %s: %v", orderID, err)
			}
			if _, err := s.orders.TransitionPaymentStatus(orderID,
				[]string{models.PaymentStatusAuthorized},
				map[string]any{"payment_status": models.PaymentStatusCancelled}); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orders.UpdateFields(orderID, map[string]any{"status": newStatus}); err != nil {
		return nil, err
	}

	updated, err := s.refresh(order)
	if err != nil {
		return nil, err
	}

	if statusChanged && (newStatus == models.OrderStatusConfirmed || newStatus == models.OrderStatusCancelled) {
		settings := LoadBusinessSettings(s.settings)
		s.notifier.SendOrderStatusUpdate(BuildOrderEmailData(updated, settings), newStatus)
	}

	return updated, nil
}

// SoftDelete is the admin delete action: orders are never removed, deletion
// is the cancelled transition.
func (s *OrderService) SoftDelete(orderID string) (*models.Order, error) {
	return s.UpdateStatus(orderID, models.OrderStatusCancelled)
}

func (s *OrderService) refresh(order *models.Order) (*models.Order, error) {
	updated, err := s.orders.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return order, nil
	}
	return updated, nil
}
