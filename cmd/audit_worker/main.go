package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/config"
	"github.com/oksasatya/tradedocs-portal/internal/application"
	pginfra "github.com/oksasatya/tradedocs-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// audit_worker consumes DocumentSent events and records them in document_audit.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQAuditQueue == "" {
		log.Fatal("RabbitMQ not configured (RABBITMQ_URL, RABBITMQ_AUDIT_QUEUE)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
		AppName:     cfg.AppName + "-audit",
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	recorder := application.NewAuditRecorder(pginfra.NewAuditRepository(pool))
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			ev, err := recorder.Handle(c, msg.Body)
			cancel()
			switch {
			case errors.Is(err, application.ErrBadEvent):
				logger.WithError(err).Warn("dropping malformed audit event")
				_ = msg.Nack(false, false)
			case err != nil:
				logger.WithError(err).Error("audit insert failed; requeueing")
				_ = msg.Nack(false, true)
			default:
				logger.WithFields(logrus.Fields{"event_id": ev.ID, "template_id": ev.TemplateID, "transport": ev.Transport}).Info("document sent recorded")
				_ = msg.Ack(false)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQAuditQueue).Info("audit worker listening")
	select {
	case <-ctx.Done():
	case <-done:
		logger.Warn("delivery channel closed")
		os.Exit(1)
	}
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
