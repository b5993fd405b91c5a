package glamapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/glam-app/internal/cache"
	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/lib/password"
	"github.com/magabrotheeeer/glam-app/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/lib/tracing"
	authservice "github.com/magabrotheeeer/glam-app/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/glam-app/internal/services/catalog"
	smsservice "github.com/magabrotheeeer/glam-app/internal/services/sms"
	"github.com/magabrotheeeer/glam-app/internal/session"
	"github.com/magabrotheeeer/glam-app/internal/sms"
	"github.com/magabrotheeeer/glam-app/internal/storage"
	"github.com/magabrotheeeer/glam-app/internal/storage/driver"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер магазина со всеми ресурсами, которые нужно закрыть при остановке.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	store    storage.Repository
	redis    *cache.Cache
	sessions *session.MemoryRepository
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
	tracer   tracing.ShutdownFunc
}

// New открывает хранилище и внешние подключения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "glamapp.New"
	a := &App{logger: logger}

	tracer, err := tracing.InitTracer(ctx, cfg.Tracing, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.tracer = tracer

	store, err := driver.Open(ctx, cfg.Storage, logger)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.store = store

	var productCache catalogservice.Cache = cache.Nop{}
	if cfg.Redis.Enabled {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.redis = redisCache
		productCache = redisCache
		logger.Info("product cache enabled", slog.String("address", cfg.Redis.Address))
	}

	var alerts catalogservice.AlertPublisher
	if cfg.Alerts.Enabled && cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.amqpConn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.amqpCh = ch
		alerts = rabbitmq.NewStockAlertPublisher(ch)
		logger.Info("low stock alerts enabled", slog.Int("threshold", cfg.Alerts.LowStockThreshold))
	}

	hasher := password.New(password.Cost)
	authService := authservice.NewAuthService(store, hasher, logger)
	if cfg.AdminSeed.Email != "" && cfg.AdminSeed.Password != "" {
		if _, err := authService.ProvisionAdmin(ctx, cfg.AdminSeed.Email, cfg.AdminSeed.Name, cfg.AdminSeed.Password); err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	catalogService := catalogservice.NewCatalogService(store, productCache, alerts, catalogservice.Options{
		CacheTTL:          cfg.Redis.ProductTTL,
		LowStockThreshold: cfg.Alerts.LowStockThreshold,
	}, logger)

	if !cfg.SMS.TestMode && !cfg.SMS.ProviderConfigured() {
		logger.Warn("twilio credentials are not set, sms sending will fail")
	}
	smsService := smsservice.NewService(newSMSSender(cfg.SMS), cfg.SMS.TestMode, logger)

	a.sessions = session.NewMemoryRepository(cfg.Session.CleanupInterval)
	sessions := session.NewManager(a.sessions, session.Options{
		CookieName: cfg.Session.CookieName,
		Secret:     []byte(cfg.Session.Secret),
		TTL:        cfg.Session.TTL,
		Secure:     cfg.IsProduction(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := NewRouter(Deps{
		Log:         logger,
		Auth:        authService,
		Catalog:     catalogService,
		SMS:         smsService,
		Sessions:    sessions,
		Registry:    registry,
		SMSLimiter:  rate.NewLimiter(rate.Limit(cfg.SMS.RateLimit), cfg.SMS.RateBurst),
		CORS:        cfg.CORS,
		Access:      cfg.Access,
		ServiceName: cfg.Tracing.ServiceName,
	})

	a.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return a, nil
}

// newSMSSender возвращает nil, если включён тестовый режим или Twilio не настроен.
// Вне тестового режима без провайдера /enviar-sms отвечает 500.
func newSMSSender(cfg config.SMS) smsservice.Sender {
	if cfg.TestMode || !cfg.ProviderConfigured() {
		return nil
	}
	return sms.NewTwilio(cfg)
}

// Run обслуживает запросы до отмены ctx и затем корректно останавливается.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close(context.Background())
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close(timeoutCtx)
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if a.sessions != nil {
		_ = a.sessions.Close()
	}
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer(ctx); err != nil {
			a.logger.Error("failed to shutdown tracer", sl.Err(err))
		}
	}
}
