package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workorder_invoicing/internal/adapter/http/handlers"
	"workorder_invoicing/internal/adapter/http/routes"
	"workorder_invoicing/internal/adapter/persistence/repository"
	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/infrastructure/cache"
	"workorder_invoicing/internal/infrastructure/config"
	"workorder_invoicing/internal/infrastructure/database"
	"workorder_invoicing/internal/infrastructure/messaging"
	"workorder_invoicing/internal/infrastructure/payments"
	ws "workorder_invoicing/internal/infrastructure/websocket"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/internal/usecase/interfaces"
)

// @title           Work Order Invoicing API
// @version         1.0
// @description     Work orders, per-class invoice numbering, invoices and payments backed by DynamoDB.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to connect to DynamoDB: %v", err)
	}

	workOrderRepo := repository.NewWorkOrderDynamoRepository(ddb, cfg.Tables.WorkOrders)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb, cfg.Tables.Invoices, cfg.Tables.WorkOrders)
	statusRepo := repository.NewStatusDynamoRepository(ddb, cfg.Tables.Statuses)
	counterRepo := repository.NewCounterDynamoRepository(ddb, cfg.Tables.Counters)
	paymentMethodRepo := repository.NewPaymentMethodDynamoRepository(ddb, cfg.Tables.PaymentMethods)
	paymentRepo := repository.NewBillingPaymentDynamoRepository(ddb, cfg.Tables.Payments)

	var guard interfaces.IIssueGuard = cache.NewLocalIssueGuard()
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		guard = cache.NewRedisIssueGuard(rdb, cfg.IssueLockTTL)
		log.Printf("[main] issue guard backed by redis addr=%s ttl=%s", cfg.RedisAddr, cfg.IssueLockTTL)
	}

	// The dashboard lists through the work order use case, which publishes to the dashboard.
	var workOrderUseCase *usecase.WorkOrderUseCase
	hub := ws.NewHub()
	dashboard := ws.NewDashboardPublisher(hub, func(ctx context.Context) ([]entities.WorkOrder, error) {
		return workOrderUseCase.ListActive(ctx, entities.DashboardFilter{})
	})

	sinks := []interfaces.IEventPublisher{dashboard}
	var kafka *messaging.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 256)
		kafka.Start()
		sinks = append(sinks, kafka)
		log.Printf("[main] lifecycle events published to kafka topic=%s", cfg.KafkaTopic)
	}
	publisher := messaging.NewFanoutPublisher(sinks...)

	ledgerUseCase := usecase.NewStatusLedgerUseCase(statusRepo, publisher)
	if _, err := ledgerUseCase.EnsureDefaults(ctx); err != nil {
		log.Printf("[main] failed seeding status ledger err=%v", err)
	}

	mode := usecase.ParseAllocationMode(cfg.AllocationMode)
	allocator := usecase.NewSequenceAllocator(workOrderRepo, counterRepo, mode)
	log.Printf("[main] invoice number allocation mode=%s", mode)

	workOrderUseCase = usecase.NewWorkOrderUseCase(workOrderRepo, allocator, ledgerUseCase, publisher)
	transitionUseCase := usecase.NewStatusTransitionUseCase(workOrderRepo, ledgerUseCase, publisher)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, workOrderRepo, paymentMethodRepo, ledgerUseCase, guard, publisher)
	paymentMethodUseCase := usecase.NewPaymentMethodUseCase(paymentMethodRepo)
	auditUseCase := usecase.NewAuditUseCase(workOrderRepo, counterRepo, publisher)

	var paymentGateway interfaces.IPaymentGateway
	if !cfg.MercadoPago.Mock {
		mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPago.AccessToken)
		if err != nil {
			log.Printf("Mercado Pago gateway not configured: %v", err)
		} else {
			paymentGateway = mpGateway
		}
	}
	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, invoiceRepo, paymentGateway, usecase.PaymentSettings{
		Mock:            cfg.MercadoPago.Mock,
		AccessToken:     cfg.MercadoPago.AccessToken,
		TestPayerEmail:  cfg.MercadoPago.TestPayerEmail,
		TestPayerUserID: cfg.MercadoPago.TestPayerUserID,
	})

	router, err := routes.NewRouter(cfg, routes.Handlers{
		WorkOrders:     handlers.NewWorkOrderHandler(workOrderUseCase, transitionUseCase, invoiceUseCase),
		Statuses:       handlers.NewStatusHandler(ledgerUseCase, transitionUseCase),
		Invoices:       handlers.NewInvoiceHandler(invoiceUseCase),
		PaymentMethods: handlers.NewPaymentMethodHandler(paymentMethodUseCase),
		Payments:       handlers.NewBillingPaymentHandler(paymentUseCase, cfg.MercadoPago.Mock),
		Audit:          handlers.NewAuditHandler(auditUseCase),
		Dashboard:      handlers.NewDashboardHandler(hub, dashboard),
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Printf("[main] listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] http shutdown failed err=%v", err)
	}
	if kafka != nil {
		kafka.Close()
	}
}
