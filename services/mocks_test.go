package services

import (
	"errors"
	"time"

	"github.com/bluecilantro/catering-api/models"
)

// mockOrderRepo is an in-memory stand-in for the order store. Transition
// semantics mirror the conditional update of the real implementation.
type mockOrderRepo struct {
	orders      map[string]*models.Order
	createErr   error
	createCalls int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*models.Order)}
}

func (m *mockOrderRepo) CreateWithItems(order *models.Order) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == "" {
		order.ID = "order-1"
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) GetByID(id string) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) GetBySessionID(sessionID string) (*models.Order, error) {
	for _, order := range m.orders {
		if order.StripeSessionID == sessionID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) FindByIDOrPrefix(id string) (*models.Order, error) {
	if order, ok := m.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	for key, order := range m.orders {
		if len(key) >= len(id) && key[:len(id)] == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) List(status string, date *time.Time) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateFields(id string, fields map[string]any) error {
	order, ok := m.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	applyFields(order, fields)
	return nil
}

func (m *mockOrderRepo) TransitionPaymentStatus(id string, from []string, fields map[string]any) (bool, error) {
	order, ok := m.orders[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, status := range from {
		if order.PaymentStatus == status {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	applyFields(order, fields)
	return true, nil
}

func (m *mockOrderRepo) CountActive() (int64, error) {
	var count int64
	for _, order := range m.orders {
		if order.Status != models.OrderStatusCompleted && order.Status != models.OrderStatusCancelled {
			count++
		}
	}
	return count, nil
}

func applyFields(order *models.Order, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "status":
			order.Status = value.(string)
		case "payment_status":
			order.PaymentStatus = value.(string)
		case "stripe_session_id":
			order.StripeSessionID = value.(string)
		case "stripe_payment_intent_id":
			order.StripePaymentIntentID = value.(string)
		case "paid_at":
			t := value.(time.Time)
			order.PaidAt = &t
		}
	}
}

type mockSettingsRepo struct {
	values map[string]string
}

func (m *mockSettingsRepo) GetAll() (map[string]string, error) {
	return m.values, nil
}

func (m *mockSettingsRepo) Get(keys ...string) (map[string]string, error) {
	result := make(map[string]string)
	for _, key := range keys {
		if v, ok := m.values[key]; ok {
			result[key] = v
		}
	}
	return result, nil
}

func (m *mockSettingsRepo) Upsert(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

type mockGateway struct {
	session     *CheckoutSession
	sessionErr  error
	captureErr  error
	cancelErr   error
	retrieved   *CheckoutSession
	retrieveErr error

	createCalls   int
	captureCalls  int
	cancelCalls   int
	retrieveCalls int
	lastLineItems []CheckoutLineItem
	lastIntentID  string
}

func (m *mockGateway) CreateCheckoutSession(items []CheckoutLineItem, customerEmail, orderID, successURL, cancelURL string) (*CheckoutSession, error) {
	m.createCalls++
	m.lastLineItems = items
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	if m.session != nil {
		return m.session, nil
	}
	return &CheckoutSession{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

func (m *mockGateway) CapturePayment(paymentIntentID string) error {
	m.captureCalls++
	m.lastIntentID = paymentIntentID
	return m.captureErr
}

func (m *mockGateway) CancelPayment(paymentIntentID string) error {
	m.cancelCalls++
	m.lastIntentID = paymentIntentID
	return m.cancelErr
}

func (m *mockGateway) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	m.retrieveCalls++
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.retrieved, nil
}

type mockNotifier struct {
	orderNotifications    int
	customerConfirmations int
	statusUpdates         []string
}

func (m *mockNotifier) SendOrderNotification(toEmail string, data OrderEmailData) bool {
	m.orderNotifications++
	return true
}

func (m *mockNotifier) SendCustomerOrderConfirmation(data OrderEmailData) bool {
	m.customerConfirmations++
	return true
}

func (m *mockNotifier) SendOrderStatusUpdate(data OrderEmailData, newStatus string) bool {
	m.statusUpdates = append(m.statusUpdates, newStatus)
	return true
}
