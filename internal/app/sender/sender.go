// Package sender собирает воркер, который читает уведомления об остатках
// из RabbitMQ и отправляет их администратору по SMS.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/lib/tracing"
	senderservice "github.com/magabrotheeeer/glam-app/internal/services/sender"
	smsservice "github.com/magabrotheeeer/glam-app/internal/services/sms"
	"github.com/magabrotheeeer/glam-app/internal/sms"
)

// App воркер уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	tracer        tracing.ShutdownFunc
	logger        *slog.Logger
}

// New подключается к брокеру и объявляет очереди.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("RABBITMQ_URL is not set"))
	}
	if !cfg.SMS.TestMode && !cfg.SMS.ProviderConfigured() {
		return nil, fmt.Errorf("%s: %w", op, smsservice.ErrNotConfigured)
	}

	tracer, err := tracing.InitTracer(ctx, cfg.Tracing, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		_ = tracer(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		_ = tracer(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var provider smsservice.Sender
	if !cfg.SMS.TestMode {
		provider = sms.NewTwilio(cfg.SMS)
	}
	smsService := smsservice.NewService(provider, cfg.SMS.TestMode, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewSenderService(smsService, cfg.Alerts.AdminPhone, logger),
		tracer:        tracer,
		logger:        logger,
	}, nil
}

// Run обрабатывает сообщения до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.StockLowQueue, a.senderService.SendStockAlert, a.logger)
	if err != nil {
		a.logger.Error("failed to start stock alert consumer", sl.Err(err))
		return err
	}
	a.logger.Info("consuming stock alerts", slog.String("queue", rabbitmq.StockLowQueue))

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.tracer(context.Background()); err != nil {
		a.logger.Error("failed to shutdown tracer", sl.Err(err))
	}
	return nil
}
