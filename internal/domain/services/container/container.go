package container

import (
	"context"
	"sync"
	"time"

	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/infrastructure/cache"
	"census-otp-service/internal/infrastructure/config"
	Logger "census-otp-service/pkg/logger"

	"gorm.io/gorm"
)

// ServiceContainer wires the DB handle, config and services for handlers
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	cache  *cache.ResponseCache

	sender  services.OTPSender
	closers []func()

	jwtService       *services.JWTService
	otpService       *services.OTPService
	accountService   *services.AccountService
	censusService    *services.CensusService
	householdService *services.HouseholdService

	mu sync.RWMutex
}

// NewServiceContainer builds every service. A nil sender is replaced by the
// transport named in cfg.OTPDelivery.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, sender services.OTPSender) *ServiceContainer {
	if db == nil {
		panic("database handle is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	c := &ServiceContainer{
		db:     db,
		config: cfg,
		cache:  cache.NewResponseCache(),
		sender: sender,
	}
	if c.sender == nil {
		c.sender = c.buildSender()
	}
	c.initializeServices()
	return c
}

var newMQTTService = func(cfg *config.Config) services.InterfaceMQTTService {
	return services.NewMQTTService(cfg)
}

// buildSender falls back to LogSender when the configured transport is unreachable.
func (c *ServiceContainer) buildSender() services.OTPSender {
	switch c.config.OTPDelivery {
	case config.DeliveryRedis:
		redisService := services.NewRedisService(c.config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisService.Ping(ctx); err != nil {
			Logger.Error("Redis ping failed, OTP delivery falls back to log: %v", err)
			redisService.Close()
			return services.LogSender{}
		}
		c.closers = append(c.closers, func() { redisService.Close() })
		return redisService
	case config.DeliveryMQTT:
		mqttService := newMQTTService(c.config)
		if err := mqttService.Connect(); err != nil {
			Logger.Error("MQTT connect failed, OTP delivery falls back to log: %v", err)
			mqttService.Close()
			return services.LogSender{}
		}
		c.closers = append(c.closers, mqttService.Disconnect)
		return mqttService
	default:
		return services.LogSender{}
	}
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.otpService = services.NewOTPService(c.db, c.sender)
	c.accountService = services.NewAccountService(c.db)
	c.censusService = services.NewCensusService(c.db)
	c.householdService = services.NewHouseholdService(c.db)
}

// GetService returns the named service, or nil
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "otp":
		return c.otpService
	case "account":
		return c.accountService
	case "census":
		return c.censusService
	case "household":
		return c.householdService
	case "otp_sender":
		return c.sender
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetCache returns the shared response cache
func (c *ServiceContainer) GetCache() *cache.ResponseCache {
	return c.cache
}

// Close releases external connections held by the OTP sender
func (c *ServiceContainer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, closeFn := range c.closers {
		closeFn()
	}
	c.closers = nil
}
