package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/magabrotheeeer/glam-app/internal/config"
)

type apiMock struct {
	mock.Mock
}

func (m *apiMock) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	args := m.Called(params)
	msg, _ := args.Get(0).(*twilioApi.ApiV2010Message)
	return msg, args.Error(1)
}

func TestTwilio_Send(t *testing.T) {
	sid := "SM123"
	api := new(apiMock)
	api.On("CreateMessage", mock.MatchedBy(func(p *twilioApi.CreateMessageParams) bool {
		return *p.To == "+100" && *p.From == "+999" && *p.Body == "hola"
	})).Return(&twilioApi.ApiV2010Message{Sid: &sid}, nil).Once()

	tw := &Twilio{api: api, from: "+999"}
	got, err := tw.Send(context.Background(), "+100", "hola")
	require.NoError(t, err)
	assert.Equal(t, "SM123", got)
	api.AssertExpectations(t)
}

func TestTwilio_SendProviderError(t *testing.T) {
	api := new(apiMock)
	api.On("CreateMessage", mock.Anything).Return(nil, errors.New("invalid number")).Once()

	tw := &Twilio{api: api, from: "+999"}
	_, err := tw.Send(context.Background(), "bad", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sms.Twilio.Send")
}

func TestTwilio_SendCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := new(apiMock)
	tw := &Twilio{api: api}
	_, err := tw.Send(ctx, "+100", "hola")
	require.ErrorIs(t, err, context.Canceled)
	api.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

func TestNewTwilio(t *testing.T) {
	tw := NewTwilio(config.SMS{AccountSID: "AC1", AuthToken: "tok", FromNumber: "+999"})
	assert.NotNil(t, tw.api)
	assert.Equal(t, "+999", tw.from)
}
