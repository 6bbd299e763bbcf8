package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"

	coursesclient "github.com/you-humble/course-storefront/internal/client/http/courses/v1"
	paymentclient "github.com/you-humble/course-storefront/internal/client/http/payment/v1"
	"github.com/you-humble/course-storefront/internal/config"
	"github.com/you-humble/course-storefront/internal/converter"
	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/service/catalog"
	"github.com/you-humble/course-storefront/internal/service/checkout"
	purchaseproducer "github.com/you-humble/course-storefront/internal/service/producer/purchase"
	thttp "github.com/you-humble/course-storefront/internal/transport/http/storefront/v1"
	"github.com/you-humble/course-storefront/platform/closer"
	"github.com/you-humble/course-storefront/platform/kafka"
	"github.com/you-humble/course-storefront/platform/kafka/producer"
	"github.com/you-humble/course-storefront/platform/logger"
)

type Converter interface {
	CoursePurchasedToRecord(m model.CoursePurchased) ([]byte, error)
}

type CoursesClient interface {
	catalog.CoursesClient
	checkout.CoursesClient
}

type di struct {
	coursesClient  CoursesClient
	paymentElement checkout.PaymentElement

	conv Converter

	syncProducer          sarama.SyncProducer
	coursePurchasedWriter kafka.Producer
	purchaseSender        checkout.PurchaseSender

	catalogService  thttp.CatalogService
	checkoutService thttp.CheckoutService

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) CoursesClient(_ context.Context) CoursesClient {
	if d.coursesClient == nil {
		cfg := config.C()

		httpClient := &http.Client{Timeout: cfg.CourseAPI.Timeout()}
		c, err := coursesclient.NewClient(cfg.CourseAPI.URL(), httpClient)
		if err != nil {
			panic(fmt.Sprintf("failed to create course api client: %v", err))
		}

		closer.AddNamed("Course API client", func(ctx context.Context) error {
			httpClient.CloseIdleConnections()
			return nil
		})

		d.coursesClient = c
	}

	return d.coursesClient
}

func (d *di) PaymentElement(_ context.Context) checkout.PaymentElement {
	if d.paymentElement == nil {
		cfg := config.C()

		httpClient := &http.Client{Timeout: cfg.Payment.Timeout()}
		e, err := paymentclient.NewElement(cfg.Payment.URL(), cfg.Payment.PublishableKey(), httpClient)
		if err != nil {
			panic(fmt.Sprintf("failed to create payment element: %v", err))
		}

		closer.AddNamed("Payment client", func(ctx context.Context) error {
			httpClient.CloseIdleConnections()
			return nil
		})

		d.paymentElement = e
	}

	return d.paymentElement
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PurchaseProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) CoursePurchasedProducer(ctx context.Context) kafka.Producer {
	if d.coursePurchasedWriter == nil {
		d.coursePurchasedWriter = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.PurchaseTopic(),
			logger.L(),
			producer.WithHeader("content-type", "application/json"),
			producer.WithHeader("event-type", "course.purchased"),
		)
	}

	return d.coursePurchasedWriter
}

func (d *di) PurchaseSender(ctx context.Context) checkout.PurchaseSender {
	if d.purchaseSender == nil {
		if !config.C().Kafka.Enabled() {
			logger.Warn(ctx, "kafka brokers not configured, purchase events disabled")
			d.purchaseSender = purchaseproducer.NewNoopProducer()
			return d.purchaseSender
		}

		d.purchaseSender = purchaseproducer.NewPurchaseProducer(
			d.CoursePurchasedProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.purchaseSender
}

func (d *di) CatalogService(ctx context.Context) thttp.CatalogService {
	if d.catalogService == nil {
		d.catalogService = catalog.NewCatalogService(
			d.CoursesClient(ctx),
			config.C().CourseAPI.Timeout(),
		)
	}

	return d.catalogService
}

func (d *di) CheckoutService(ctx context.Context) thttp.CheckoutService {
	if d.checkoutService == nil {
		d.checkoutService = checkout.NewCheckoutService(
			d.CoursesClient(ctx),
			d.PaymentElement(ctx),
			d.PurchaseSender(ctx),
			checkout.Timeouts{
				API:     config.C().CourseAPI.Timeout(),
				Payment: config.C().Payment.Timeout(),
			},
			config.C().Checkout.FlowTTL(),
		)
	}

	return d.checkoutService
}

func (d *di) Router(ctx context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
		thttp.NewStorefrontHandler(
			d.CatalogService(ctx),
			d.CheckoutService(ctx),
		).Routes(d.router)
	}

	return d.router
}
