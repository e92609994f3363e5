package container

import (
	"context"
	"errors"
	"testing"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/infrastructure/config"
	"census-otp-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceContainer_RegistersServices(t *testing.T) {
	sender := &testutil.CaptureSender{}
	c := NewServiceContainer(testutil.SetupTestDB(t), testutil.TestConfig(), sender)
	defer c.Close()

	_, ok := c.GetService("otp").(services.InterfaceOTPService)
	assert.True(t, ok)
	_, ok = c.GetService("census").(services.InterfaceCensusService)
	assert.True(t, ok)
	_, ok = c.GetService("household").(services.InterfaceHouseholdService)
	assert.True(t, ok)
	_, ok = c.GetService("account").(services.InterfaceAccountService)
	assert.True(t, ok)
	_, ok = c.GetService("jwt").(services.InterfaceJWTService)
	assert.True(t, ok)
	assert.Same(t, sender, c.GetService("otp_sender"))
	assert.Nil(t, c.GetService("unknown"))
	assert.NotNil(t, c.GetCache())
}

func TestNewServiceContainer_SenderFromConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.TestConfig()
	c := NewServiceContainer(db, cfg, nil)
	assert.IsType(t, services.LogSender{}, c.GetService("otp_sender"))
	c.Close()

	// An unreachable Redis falls back to logging.
	cfg = testutil.TestConfig()
	cfg.OTPDelivery = config.DeliveryRedis
	cfg.RedisHost = "127.0.0.1"
	cfg.RedisPort = "1"
	c = NewServiceContainer(db, cfg, nil)
	assert.IsType(t, services.LogSender{}, c.GetService("otp_sender"))
	c.Close()
}

type stubMQTT struct {
	connectErr error
	closed     int
}

func (m *stubMQTT) Send(context.Context, *models.Account, string) error { return nil }
func (m *stubMQTT) Connect() error                                      { return m.connectErr }
func (m *stubMQTT) Disconnect()                                         {}
func (m *stubMQTT) Close()                                              { m.closed++ }
func (m *stubMQTT) IsConnected() bool                                   { return m.connectErr == nil }
func (m *stubMQTT) Publish(string, interface{}) error                   { return nil }

func TestNewServiceContainer_MQTTFallbackClosesClient(t *testing.T) {
	stub := &stubMQTT{connectErr: errors.New("connection refused")}
	orig := newMQTTService
	newMQTTService = func(*config.Config) services.InterfaceMQTTService { return stub }
	t.Cleanup(func() { newMQTTService = orig })

	cfg := testutil.TestConfig()
	cfg.OTPDelivery = config.DeliveryMQTT
	c := NewServiceContainer(testutil.SetupTestDB(t), cfg, nil)
	defer c.Close()

	assert.IsType(t, services.LogSender{}, c.GetService("otp_sender"))
	assert.Equal(t, 1, stub.closed)

	stub = &stubMQTT{}
	c2 := NewServiceContainer(testutil.SetupTestDB(t), cfg, nil)
	assert.Same(t, stub, c2.GetService("otp_sender"))
	assert.Zero(t, stub.closed)
	c2.Close()
}

func TestNewServiceContainer_PanicsWithoutDependencies(t *testing.T) {
	require.Panics(t, func() { NewServiceContainer(nil, testutil.TestConfig(), nil) })
	require.Panics(t, func() { NewServiceContainer(testutil.SetupTestDB(t), nil, nil) })
}
