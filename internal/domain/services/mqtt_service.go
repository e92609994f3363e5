package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/infrastructure/config"
	Logger "census-otp-service/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// InterfaceMQTTService defines MQTT publishing
type InterfaceMQTTService interface {
	OTPSender
	Connect() error
	Disconnect()
	Close()
	IsConnected() bool
	Publish(topic string, payload interface{}) error
}

// MQTTService publishes issued codes to <prefix>/<mobile_number>
type MQTTService struct {
	Client         mqtt.Client
	TopicPrefix    string
	QoS            byte
	Retained       bool
	PublishTimeout time.Duration
}

// NewMQTTService creates an MQTT service; Connect must be called before use
func NewMQTTService(cfg *config.Config) *MQTTService {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	opts.SetClientID(cfg.MQTTClientID)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(60 * time.Second)

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		Logger.Warning("MQTT connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		Logger.Info("MQTT connected to %s", cfg.MQTTBrokerURL)
	})
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		Logger.Info("MQTT reconnecting")
	})

	return newMQTTServiceWithClient(mqtt.NewClient(opts), cfg)
}

func newMQTTServiceWithClient(client mqtt.Client, cfg *config.Config) *MQTTService {
	qos := cfg.MQTTQoS
	if qos < 0 || qos > 2 {
		qos = 1
	}
	return &MQTTService{
		Client:         client,
		TopicPrefix:    strings.TrimSuffix(cfg.MQTTTopicPrefix, "/"),
		QoS:            byte(qos),
		Retained:       cfg.MQTTRetained,
		PublishTimeout: 5 * time.Second,
	}
}

// Connect dials the broker
func (s *MQTTService) Connect() error {
	token := s.Client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt connect timed out")
	}
	return token.Error()
}

// Disconnect closes the broker connection
func (s *MQTTService) Disconnect() {
	if s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// Close stops the client whether or not it is connected, which also ends
// the connect-retry loop of a client that never reached the broker.
func (s *MQTTService) Close() {
	s.Client.Disconnect(250)
}

// IsConnected reports broker connectivity
func (s *MQTTService) IsConnected() bool {
	return s.Client.IsConnected()
}

// Publish sends payload as JSON to topic
func (s *MQTTService) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.Client.Publish(topic, s.QoS, s.Retained, data)
	if !token.WaitTimeout(s.PublishTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", topic)
	}
	return token.Error()
}

// OTPTopic is the topic a code for mobileNumber is published on. The E.164
// "+" is dropped; wildcards and level separators are rejected.
func (s *MQTTService) OTPTopic(mobileNumber string) (string, error) {
	level := strings.TrimPrefix(mobileNumber, "+")
	if level == "" || strings.ContainsAny(level, "+#/") {
		return "", fmt.Errorf("mobile number %q is not a valid topic level", mobileNumber)
	}
	if s.TopicPrefix == "" {
		return level, nil
	}
	return s.TopicPrefix + "/" + level, nil
}

// Send publishes the code for account
func (s *MQTTService) Send(ctx context.Context, account *models.Account, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	topic, err := s.OTPTopic(account.MobileNumber)
	if err != nil {
		return err
	}
	return s.Publish(topic, newOTPMessage(account, code))
}
