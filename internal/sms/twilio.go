// Package sms отправляет SMS через Twilio.
package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/magabrotheeeer/glam-app/internal/config"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Twilio отправляет сообщения с номера from.
type Twilio struct {
	api  messageCreator
	from string
}

// NewTwilio создаёт клиента по учётным данным из конфига.
func NewTwilio(cfg config.SMS) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Twilio{api: client.Api, from: cfg.FromNumber}
}

// Send отправляет body на номер to и возвращает SID сообщения.
// SDK не принимает контекст, отменённый контекст проверяется до вызова.
func (t *Twilio) Send(ctx context.Context, to, body string) (string, error) {
	const op = "sms.Twilio.Send"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if msg == nil || msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}
