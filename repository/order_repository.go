package repository

import (
	"errors"
	"time"

	"github.com/bluecilantro/catering-api/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetBySessionID(sessionID string) (*models.Order, error)
	FindByIDOrPrefix(id string) (*models.Order, error)
	List(status string, date *time.Time) ([]models.Order, error)
	UpdateFields(id string, fields map[string]any) error
	TransitionPaymentStatus(id string, from []string, fields map[string]any) (bool, error)
	CountActive() (int64, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// CreateWithItems persists the order and its items in a single transaction.
// If any item insert fails the order must not exist.
func (r *gormOrderRepository) CreateWithItems(order *models.Order) error {
	items := order.Items
	order.Items = nil

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *gormOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("stripe_session_id = ?", sessionID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDOrPrefix supports customer-facing tracking, where only the first
// characters of the order id are shown.
func (r *gormOrderRepository) FindByIDOrPrefix(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("id = ? OR id LIKE ?", id, id+"%").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) List(status string, date *time.Time) ([]models.Order, error) {
	query := r.db.Preload("Items")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if date != nil {
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)
		query = query.Where("scheduled_date BETWEEN ? AND ?", startOfDay, endOfDay)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateFields applies a partial patch scoped to the given columns. Callers
// never write whole rows, so concurrent writers cannot clobber each other's
// fields.
func (r *gormOrderRepository) UpdateFields(id string, fields map[string]any) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// TransitionPaymentStatus is a conditional update: the patch is applied only
// while payment_status is one of the expected source states. The returned
// bool reports whether this caller won the transition, which makes the
// webhook path and the reconciliation poll idempotent under concurrent
// delivery.
func (r *gormOrderRepository) TransitionPaymentStatus(id string, from []string, fields map[string]any) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND payment_status IN ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormOrderRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusCompleted, models.OrderStatusCancelled}).
		Count(&count).Error
	return count, err
}
