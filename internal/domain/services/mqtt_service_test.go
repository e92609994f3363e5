package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/testutil"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient implements the parts of mqtt.Client the service uses.
type fakeClient struct {
	mqtt.Client
	connected   bool
	publishErr  error
	messages    []published
	disconnects int
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Connect() mqtt.Token {
	c.connected = true
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(uint) {
	c.connected = false
	c.disconnects++
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return &fakeToken{err: c.publishErr}
}

func TestMQTTService_SendPublishesPerMobileTopic(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.MQTTTopicPrefix = "census/otp/"
	cfg.MQTTQoS = 1
	client := &fakeClient{}
	svc := newMQTTServiceWithClient(client, cfg)

	require.NoError(t, svc.Connect())
	assert.True(t, svc.IsConnected())

	account := &models.Account{MobileNumber: "9999999999", Name: "Asha"}
	require.NoError(t, svc.Send(context.Background(), account, "0427"))

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "census/otp/9999999999", msg.topic)
	assert.Equal(t, byte(1), msg.qos)

	var body OTPMessage
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, "9999999999", body.MobileNumber)
	assert.Equal(t, "0427", body.OTP)

	svc.Disconnect()
	assert.False(t, svc.IsConnected())
}

func TestMQTTService_SendErrors(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.MQTTQoS = 9
	client := &fakeClient{connected: true, publishErr: errors.New("broker refused")}
	svc := newMQTTServiceWithClient(client, cfg)
	assert.Equal(t, byte(1), svc.QoS)

	err := svc.Send(context.Background(), &models.Account{MobileNumber: "1"}, "1234")
	assert.EqualError(t, err, "broker refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = svc.Send(ctx, &models.Account{MobileNumber: "1"}, "1234")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMQTTService_OTPTopic(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.MQTTTopicPrefix = "census/otp"
	client := &fakeClient{connected: true}
	svc := newMQTTServiceWithClient(client, cfg)

	require.NoError(t, svc.Send(context.Background(), &models.Account{MobileNumber: "+919999999999"}, "0427"))
	require.Len(t, client.messages, 1)
	assert.Equal(t, "census/otp/919999999999", client.messages[0].topic)

	for _, mobile := range []string{"+91/99#9", "99+9", "#", "a/b", "+", ""} {
		_, err := svc.OTPTopic(mobile)
		assert.Error(t, err, mobile)
	}
	err := svc.Send(context.Background(), &models.Account{MobileNumber: "+91/99#9"}, "0427")
	assert.Error(t, err)
	assert.Len(t, client.messages, 1)

	svc.TopicPrefix = ""
	topic, err := svc.OTPTopic("+919999999999")
	require.NoError(t, err)
	assert.Equal(t, "919999999999", topic)
}

func TestMQTTService_CloseStopsUnconnectedClient(t *testing.T) {
	client := &fakeClient{}
	svc := newMQTTServiceWithClient(client, testutil.TestConfig())

	svc.Disconnect()
	assert.Zero(t, client.disconnects)

	svc.Close()
	assert.Equal(t, 1, client.disconnects)
}

func TestOutboxKey(t *testing.T) {
	assert.Equal(t, "otp:9999999999", OutboxKey("9999999999"))
}
