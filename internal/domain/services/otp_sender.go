package services

import (
	"context"
	"time"

	"census-otp-service/internal/domain/models"
	Logger "census-otp-service/pkg/logger"
)

// OTPSender makes a freshly issued code available to the account holder
// out of band. Implementations must not retain account.
type OTPSender interface {
	Send(ctx context.Context, account *models.Account, code string) error
}

// OTPMessage is the payload published by the Redis and MQTT senders
type OTPMessage struct {
	MobileNumber string    `json:"mobile_number"`
	Name         string    `json:"name,omitempty"`
	OTP          string    `json:"otp"`
	IssuedAt     time.Time `json:"issued_at"`
}

func newOTPMessage(account *models.Account, code string) OTPMessage {
	return OTPMessage{
		MobileNumber: account.MobileNumber,
		Name:         account.Name,
		OTP:          code,
		IssuedAt:     time.Now().UTC(),
	}
}

// LogSender writes the code to the service log. Development only.
type LogSender struct{}

// Send logs the code
func (LogSender) Send(_ context.Context, account *models.Account, code string) error {
	Logger.Info("OTP for %s: %s", account.MobileNumber, code)
	return nil
}
