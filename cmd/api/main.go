package main

import (
	"log"
	"time"

	"arobisca-checkout/internal/core/cache"
	"arobisca-checkout/internal/core/config"
	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/core/metrics"
	"arobisca-checkout/internal/core/server"
	checkoutadapters "arobisca-checkout/internal/features/checkout/adapters"
	checkouthandler "arobisca-checkout/internal/features/checkout/handler"
	checkoutservice "arobisca-checkout/internal/features/checkout/service"
	paymentsadapters "arobisca-checkout/internal/features/payments/adapters"
	paymentshandler "arobisca-checkout/internal/features/payments/handler"
	paymentsservice "arobisca-checkout/internal/features/payments/service"
	shippingadapters "arobisca-checkout/internal/features/shipping/adapters"
	shippinghandler "arobisca-checkout/internal/features/shipping/handler"
	shippingports "arobisca-checkout/internal/features/shipping/ports"
	shippingservice "arobisca-checkout/internal/features/shipping/service"

	"go.uber.org/zap"
)

// @title AROBISCA Checkout API
// @version 1.0
// @description Checkout orchestration for the AROBISCA coffee storefront: pricing, coupons, shipping fees, M-Pesa payments and order submission.
// @contact.name API Support
// @contact.email support@arobisca.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	checkoutMetrics := metrics.New()

	// Shipping fee table, cached in Redis when a cache is configured.
	var shippingProvider shippingports.FeeProvider = shippingadapters.NewStoreShippingAdapter(cfg.Store)
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		ttl := time.Duration(cfg.Cache.ShippingTTLSeconds) * time.Second
		shippingProvider = shippingadapters.NewCachedProvider(shippingProvider, redisCache, ttl)
		l.Info("Shipping fee cache enabled", zap.Duration("ttl", ttl))
	}
	shippingSvc := shippingservice.NewShippingService(shippingProvider)

	// Store API adapters for coupons and orders.
	couponAdapter := checkoutadapters.NewStoreCouponAdapter(cfg.Store)
	orderAdapter := checkoutadapters.NewStoreOrderAdapter(cfg.Store)

	// M-Pesa gateway and realtime confirmation channel.
	mpesaAdapter := paymentsadapters.NewMpesaAdapter(cfg.Mpesa)
	socketDialer := paymentsadapters.NewSocketDialer(cfg.Mpesa.SocketURL)
	cooldown := time.Duration(cfg.Mpesa.ResendCooldownSeconds) * time.Second
	paymentManager := paymentsservice.NewManager(mpesaAdapter, socketDialer, cooldown, checkoutMetrics)

	checkoutSvc := checkoutservice.NewCheckoutService(couponAdapter, orderAdapter, shippingSvc, paymentManager, checkoutMetrics)

	shippingHdl := shippinghandler.NewShippingHandler(shippingSvc)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc)
	paymentHdl := paymentshandler.NewPaymentHandler(checkoutSvc, paymentManager)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/shipping-methods", shippingHdl.ListShippingMethods)
	srv.App.Post("/checkout/quote", checkoutHdl.Quote)
	srv.App.Post("/checkout/coupons/apply", checkoutHdl.ApplyCoupon)
	srv.App.Post("/checkout/orders", checkoutHdl.PlaceOrder)
	srv.App.Post("/checkout/payments", paymentHdl.StartPayment)
	srv.App.Get("/checkout/payments/:id", paymentHdl.GetSession)
	srv.App.Post("/checkout/payments/:id/status", paymentHdl.CheckStatus)
	srv.App.Post("/checkout/payments/:id/resend", paymentHdl.ResendSTK)
	srv.App.Delete("/checkout/payments/:id", paymentHdl.CloseSession)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
