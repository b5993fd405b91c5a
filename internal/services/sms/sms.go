// Package sms реализует отправку SMS с поддержкой тестового режима.
package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotConfigured провайдер не настроен, а тестовый режим выключен.
var ErrNotConfigured = errors.New("sms provider is not configured")

// Sender отправляет сообщение провайдеру и возвращает его идентификатор.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// Result итог отправки.
type Result struct {
	Simulated bool
	SID       string
}

// Service отправляет SMS. В тестовом режиме провайдер не вызывается.
type Service struct {
	sender   Sender
	testMode bool
	log      *slog.Logger
}

// NewService создаёт сервис. sender может быть nil в тестовом режиме,
// вне его Send без провайдера возвращает ErrNotConfigured.
func NewService(sender Sender, testMode bool, log *slog.Logger) *Service {
	return &Service{sender: sender, testMode: testMode, log: log}
}

// Send отправляет body на номер to.
func (s *Service) Send(ctx context.Context, to, body string) (Result, error) {
	const op = "services.sms.Send"

	if s.testMode {
		s.log.Info("sms simulated", slog.String("to", to), slog.Int("length", len(body)))
		return Result{Simulated: true}, nil
	}
	if s.sender == nil {
		return Result{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	sid, err := s.sender.Send(ctx, to, body)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sms sent", slog.String("to", to), slog.String("sid", sid))
	return Result{SID: sid}, nil
}
