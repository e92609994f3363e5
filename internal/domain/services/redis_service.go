package services

import (
	"context"
	"encoding/json"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// OTPChannel is the pub/sub channel notified for every outbox write.
const OTPChannel = "census:otp"

// InterfaceRedisService defines the Redis operations used by the service
type InterfaceRedisService interface {
	OTPSender
	Ping(ctx context.Context) error
	Close() error
}

// RedisService is an OTP outbox: codes are stored under otp:<mobile> for an
// external SMS worker and announced on OTPChannel.
type RedisService struct {
	Client    *redis.Client
	OutboxTTL time.Duration
}

// NewRedisService creates a Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client:    client,
		OutboxTTL: cfg.OTPOutboxTTL,
	}
}

// OutboxKey is the Redis key holding the pending code for mobileNumber
func OutboxKey(mobileNumber string) string {
	return "otp:" + mobileNumber
}

// 1 Send writes the outbox entry and publishes it in one MULTI block
func (s *RedisService) Send(ctx context.Context, account *models.Account, code string) error {
	payload, err := json.Marshal(newOTPMessage(account, code))
	if err != nil {
		return err
	}

	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, OutboxKey(account.MobileNumber), payload, s.OutboxTTL)
		pipe.Publish(ctx, OTPChannel, payload)
		return nil
	})
	return err
}

// 2 Ping checks connectivity
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Close releases the client
func (s *RedisService) Close() error {
	return s.Client.Close()
}
