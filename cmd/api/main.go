package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/admin"
	"github.com/uniblox/ecommerce-store/internal/cart"
	"github.com/uniblox/ecommerce-store/internal/catalog"
	"github.com/uniblox/ecommerce-store/internal/checkout"
	"github.com/uniblox/ecommerce-store/internal/config"
	"github.com/uniblox/ecommerce-store/internal/discount"
	"github.com/uniblox/ecommerce-store/internal/events"
	"github.com/uniblox/ecommerce-store/internal/httpx"
	kafkax "github.com/uniblox/ecommerce-store/internal/kafka"
	"github.com/uniblox/ecommerce-store/internal/orders"
	"github.com/uniblox/ecommerce-store/internal/sessions"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	// Stores (all process-local, constructed once and passed by handle)
	sessionStore := sessions.NewStore()
	cartStore := cart.NewStore()
	discountStore := discount.NewStore()
	orderStore := orders.NewStore()
	catalogStore := catalog.NewStore()

	// Kafka producer for OrderPlaced events; disabled without brokers.
	var producer *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrderPlaced, 1024, logger)
		producer.Start(ctx)
	}

	workflow := checkout.New(cartStore, discountStore, orderStore, producer, logger, checkout.Options{
		ServiceName:      cfg.ServiceName,
		NthOrderDiscount: cfg.NthOrderDiscount,
		DiscountPercent:  cfg.DiscountPercent,
		DiscountPrefix:   cfg.DiscountPrefix,
		DiscountCodeLen:  cfg.DiscountCodeLen,
	})

	reporter := &admin.Reporter{Orders: orderStore, Discounts: discountStore, Sessions: sessionStore}

	cartHandler := &httpx.CartHandler{Carts: cartStore, Log: logger}
	checkoutHandler := &httpx.CheckoutHandler{Workflow: workflow, Log: logger}
	adminHandler := &httpx.AdminHandler{
		Reporter:        reporter,
		Discounts:       discountStore,
		Log:             logger,
		DiscountPercent: cfg.DiscountPercent,
		DiscountPrefix:  cfg.DiscountPrefix,
		DiscountCodeLen: cfg.DiscountCodeLen,
	}
	productsHandler := &httpx.ProductsHandler{Catalog: catalogStore}

	router := httpx.NewRouter(cfg.ServiceName)
	router.Route(httpx.APIPrefix, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httpx.SessionMiddleware(sessionStore, cfg.SessionCookie))
			cartHandler.Register(r)
			checkoutHandler.Register(r)
		})
		adminHandler.Register(r)
		productsHandler.Register(r)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Infow("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("listen failed", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if producer != nil {
		producer.Close() // close inbox -> flush & close writer
		producer.WaitClosed()
	}
	cancel()
}
