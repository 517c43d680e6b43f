package services

import (
	"errors"
	"testing"

	"github.com/bluecilantro/catering-api/models"
	"github.com/shopspring/decimal"
)

func newOrderFixture() (*OrderService, *mockOrderRepo, *mockGateway, *mockNotifier) {
	repo := newMockOrderRepo()
	settings := &mockSettingsRepo{values: map[string]string{
		"send_customer_confirmation": "true",
	}}
	gateway := &mockGateway{}
	notifier := &mockNotifier{}
	service := NewOrderService(repo, settings, gateway, notifier)
	return service, repo, gateway, notifier
}

func seedOrder(repo *mockOrderRepo, paymentStatus string) *models.Order {
	order := &models.Order{
		ID:                    "order-1",
		Status:                models.OrderStatusNew,
		PaymentStatus:         paymentStatus,
		CustomerName:          "Jordan Smith",
		CustomerEmail:         "jordan@example.com",
		StripeSessionID:       "cs_test",
		StripePaymentIntentID: "pi_test",
		Total:                 decimal.NewFromFloat(65.00),
	}
	repo.orders[order.ID] = order
	return order
}

func TestHandleCheckoutCompleted(t *testing.T) {
	t.Run("Given a pending order When the webhook completes it Then it authorizes and emails once", func(t *testing.T) {
		service, repo, _, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)

		if err := service.HandleCheckoutCompleted("order-1", "pi_new"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, _ := repo.GetByID("order-1")
		if order.PaymentStatus != models.PaymentStatusAuthorized {
			t.Errorf("payment status = %s, want authorized", order.PaymentStatus)
		}
		if order.StripePaymentIntentID != "pi_new" {
			t.Errorf("intent id = %s, want pi_new", order.StripePaymentIntentID)
		}
		if notifier.orderNotifications != 1 || notifier.customerConfirmations != 1 {
			t.Errorf("emails = %d/%d, want 1/1", notifier.orderNotifications, notifier.customerConfirmations)
		}
	})

	t.Run("Given the webhook delivered twice When handled again Then emails are not resent", func(t *testing.T) {
		service, repo, _, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)

		_ = service.HandleCheckoutCompleted("order-1", "pi_new")
		_ = service.HandleCheckoutCompleted("order-1", "pi_new")

		if notifier.orderNotifications != 1 {
			t.Errorf("duplicate delivery sent %d notifications, want 1", notifier.orderNotifications)
		}
	})

	t.Run("Given an unknown order When handled Then nothing happens", func(t *testing.T) {
		service, _, _, notifier := newOrderFixture()

		if err := service.HandleCheckoutCompleted("missing", "pi_new"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if notifier.orderNotifications != 0 {
			t.Error("no emails for unknown orders")
		}
	})
}

func TestHandleCheckoutExpired(t *testing.T) {
	t.Run("Given a pending order When the session expires Then payment fails and the order cancels", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)

		if err := service.HandleCheckoutExpired("order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, _ := repo.GetByID("order-1")
		if order.PaymentStatus != models.PaymentStatusFailed {
			t.Errorf("payment status = %s, want failed", order.PaymentStatus)
		}
		if order.Status != models.OrderStatusCancelled {
			t.Errorf("status = %s, want cancelled", order.Status)
		}
	})

	t.Run("Given an already authorized order When an expiry arrives late Then it is ignored", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)

		_ = service.HandleCheckoutExpired("order-1")

		order, _ := repo.GetByID("order-1")
		if order.PaymentStatus != models.PaymentStatusAuthorized {
			t.Errorf("late expiry must not touch authorized payment, got %s", order.PaymentStatus)
		}
	})
}

func TestHandlePaymentFailed(t *testing.T) {
	t.Run("Given an authorized order When payment fails Then the status follows", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)

		_ = service.HandlePaymentFailed("order-1")

		order, _ := repo.GetByID("order-1")
		if order.PaymentStatus != models.PaymentStatusFailed {
			t.Errorf("payment status = %s, want failed", order.PaymentStatus)
		}
	})

	t.Run("Given a paid order When a failure event arrives Then it is ignored", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPaid)

		_ = service.HandlePaymentFailed("order-1")

		order, _ := repo.GetByID("order-1")
		if order.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("paid order must stay paid, got %s", order.PaymentStatus)
		}
	})
}

func TestReconcileBySession(t *testing.T) {
	t.Run("Given a pending order and a paid session When reconciled Then it authorizes", func(t *testing.T) {
		service, repo, gateway, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)
		gateway.retrieved = &CheckoutSession{ID: "cs_test", PaymentStatus: "paid", PaymentIntentID: "pi_test"}

		order, err := service.ReconcileBySession("cs_test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if order.PaymentStatus != models.PaymentStatusAuthorized {
			t.Errorf("payment status = %s, want authorized", order.PaymentStatus)
		}
		if notifier.orderNotifications != 1 {
			t.Errorf("reconciliation winner should email once, got %d", notifier.orderNotifications)
		}
	})

	t.Run("Given an already authorized order When reconciled Then the gateway is not asked", func(t *testing.T) {
		service, repo, gateway, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)

		if _, err := service.ReconcileBySession("cs_test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gateway.retrieveCalls != 0 {
			t.Error("settled orders should not hit the gateway")
		}
	})

	t.Run("Given a gateway outage When reconciled Then the order still returns", func(t *testing.T) {
		service, repo, gateway, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)
		gateway.retrieveErr = errors.New("gateway down")

		order, err := service.ReconcileBySession("cs_test")
		if err != nil {
			t.Fatalf("gateway errors must not surface: %v", err)
		}
		if order.PaymentStatus != models.PaymentStatusPending {
			t.Errorf("payment status = %s, want pending", order.PaymentStatus)
		}
	})

	t.Run("Given an unknown session When reconciled Then not found", func(t *testing.T) {
		service, _, _, _ := newOrderFixture()

		if _, err := service.ReconcileBySession("cs_missing"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Given an authorized order When confirmed Then the payment is captured", func(t *testing.T) {
		service, repo, gateway, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)

		order, err := service.UpdateStatus("order-1", models.OrderStatusConfirmed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gateway.captureCalls != 1 || gateway.lastIntentID != "pi_test" {
			t.Errorf("capture calls = %d with intent %q", gateway.captureCalls, gateway.lastIntentID)
		}
		if order.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("payment status = %s, want paid", order.PaymentStatus)
		}
		if order.PaidAt == nil {
			t.Error("paid_at should be set on capture")
		}
		if len(notifier.statusUpdates) != 1 || notifier.statusUpdates[0] != models.OrderStatusConfirmed {
			t.Errorf("status updates = %v", notifier.statusUpdates)
		}
	})

	t.Run("Given a capture failure When confirming Then the order is untouched", func(t *testing.T) {
		service, repo, gateway, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)
		gateway.captureErr = errors.New("card expired")

		_, err := service.UpdateStatus("order-1", models.OrderStatusConfirmed)

		if !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("expected ErrCaptureFailed, got %v", err)
		}
		order, _ := repo.GetByID("order-1")
		if order.Status != models.OrderStatusNew || order.PaymentStatus != models.PaymentStatusAuthorized {
			t.Errorf("order mutated after failed capture: %s/%s", order.Status, order.PaymentStatus)
		}
		if len(notifier.statusUpdates) != 0 {
			t.Error("no status email after an aborted transition")
		}
	})

	t.Run("Given a bypass order When confirmed Then no capture is attempted", func(t *testing.T) {
		service, repo, gateway, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusTestBypass)

		order, err := service.UpdateStatus("order-1", models.OrderStatusConfirmed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gateway.captureCalls != 0 {
			t.Error("bypass orders have nothing to capture")
		}
		if order.Status != models.OrderStatusConfirmed {
			t.Errorf("status = %s, want confirmed", order.Status)
		}
	})

	t.Run("Given an authorized order When cancelled Then the hold is released best-effort", func(t *testing.T) {
		service, repo, gateway, notifier := newOrderFixture()
		seedOrder(repo, models.PaymentStatusAuthorized)
		gateway.cancelErr = errors.New("gateway down")

		order, err := service.UpdateStatus("order-1", models.OrderStatusCancelled)
		if err != nil {
			t.Fatalf("release failure must not block cancellation: %v", err)
		}

		if gateway.cancelCalls != 1 {
			t.Errorf("cancel calls = %d, want 1", gateway.cancelCalls)
		}
		if order.Status != models.OrderStatusCancelled {
			t.Errorf("status = %s, want cancelled", order.Status)
		}
		if order.PaymentStatus != models.PaymentStatusCancelled {
			t.Errorf("payment status = %s, want cancelled", order.PaymentStatus)
		}
		if len(notifier.statusUpdates) != 1 || notifier.statusUpdates[0] != models.OrderStatusCancelled {
			t.Errorf("status updates = %v", notifier.statusUpdates)
		}
	})

	t.Run("Given an invalid status When updating Then it is rejected", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)

		if _, err := service.UpdateStatus("order-1", "shipped"); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("Given an unknown order When updating Then not found", func(t *testing.T) {
		service, _, _, _ := newOrderFixture()

		if _, err := service.UpdateStatus("missing", models.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("Given a confirmed order When confirmed again Then no duplicate status email", func(t *testing.T) {
		service, repo, _, notifier := newOrderFixture()
		order := seedOrder(repo, models.PaymentStatusPaid)
		order.Status = models.OrderStatusConfirmed

		if _, err := service.UpdateStatus("order-1", models.OrderStatusConfirmed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.statusUpdates) != 0 {
			t.Errorf("unchanged status should not email, got %v", notifier.statusUpdates)
		}
	})
}

func TestSoftDelete(t *testing.T) {
	t.Run("Given an order When deleted Then it is cancelled not removed", func(t *testing.T) {
		service, repo, _, _ := newOrderFixture()
		seedOrder(repo, models.PaymentStatusPending)

		order, err := service.SoftDelete("order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if order.Status != models.OrderStatusCancelled {
			t.Errorf("status = %s, want cancelled", order.Status)
		}
		if stored, _ := repo.GetByID("order-1"); stored == nil {
			t.Error("order must survive deletion")
		}
	})
}
