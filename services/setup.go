package services

import (
	"github.com/bluecilantro/catering-api/config"
	"github.com/bluecilantro/catering-api/repository"
	"gorm.io/gorm"
)

// Package-level service instances, wired once at startup.
var (
	Cfg        *config.Config
	Checkout   *CheckoutService
	Orders     *OrderService
	OrderStore repository.OrderRepository
	Settings   repository.SettingsRepository
)

func Setup(cfg *config.Config, db *gorm.DB) {
	Cfg = cfg

	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	OrderStore = orderRepo
	Settings = settingsRepo
	gateway := NewStripeGateway(cfg.StripeSecretKey)
	notifier := NewSMTP2GoNotifier(cfg.SMTP2GoAPIKey, cfg.SMTP2GoSenderEmail)

	Checkout = NewCheckoutService(orderRepo, settingsRepo, gateway, notifier, cfg.AppURL, cfg.TestBypassCode)
	Orders = NewOrderService(orderRepo, settingsRepo, gateway, notifier)
}
