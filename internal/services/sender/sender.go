// Package sender обрабатывает уведомления из очереди и рассылает их по SMS.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/services/sms"
)

// SMSSender отправляет SMS.
type SMSSender interface {
	Send(ctx context.Context, to, body string) (sms.Result, error)
}

// SenderService доставляет уведомления администратору магазина.
type SenderService struct {
	sms        SMSSender
	adminPhone string
	log        *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(sms SMSSender, adminPhone string, log *slog.Logger) *SenderService {
	return &SenderService{
		sms:        sms,
		adminPhone: adminPhone,
		log:        log,
	}
}

// SendStockAlert обрабатывает models.StockAlert.
// Битые сообщения подтверждаются и отбрасываются, ошибка провайдера возвращает сообщение в очередь.
func (s *SenderService) SendStockAlert(ctx context.Context, body []byte) error {
	const op = "services.sender.SendStockAlert"
	log := s.log.With(slog.String("op", op))

	var alert models.StockAlert
	if err := json.Unmarshal(body, &alert); err != nil {
		log.Error("failed to unmarshal stock alert, dropping", sl.Err(err))
		return nil
	}
	if s.adminPhone == "" {
		log.Warn("admin phone is not configured, dropping stock alert", slog.String("product_id", alert.ProductID))
		return nil
	}

	text := StockAlertText(alert)
	res, err := s.sms.Send(ctx, s.adminPhone, text)
	if err != nil {
		log.Error("failed to send stock alert", slog.String("product_id", alert.ProductID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("stock alert delivered",
		slog.String("product_id", alert.ProductID),
		slog.Int("stock", alert.Stock),
		slog.Bool("simulated", res.Simulated),
	)
	return nil
}

// StockAlertText форматирует текст уведомления.
func StockAlertText(alert models.StockAlert) string {
	if alert.Stock <= 0 {
		return fmt.Sprintf("Glam: \"%s\" (%s) se agotó.", alert.Name, alert.ProductID)
	}
	return fmt.Sprintf("Glam: quedan %d unidades de \"%s\" (%s).", alert.Stock, alert.Name, alert.ProductID)
}
