package mqtt

import (
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/services"
)

// Client wraps the MQTT client with river monitoring specific functionality
type Client struct {
	client       mqtt.Client
	parser       *services.SampleParser
	topicSamples string
	dataHandler  func(*models.SampleReading)
	errorHandler func(error)
	isConnected  bool
}

// Config holds MQTT connection configuration
type Config struct {
	BrokerURL    string
	ClientID     string
	Username     string
	Password     string
	TopicSamples string
	KeepAlive    time.Duration
	PingTimeout  time.Duration
	ConnectRetry bool
}

// DefaultConfig returns default MQTT configuration
func DefaultConfig() *Config {
	return &Config{
		BrokerURL:    "tcp://localhost:1883",
		ClientID:     "riverwatch_backend",
		Username:     "",
		Password:     "",
		TopicSamples: "riverwatch/stations/+/samples",
		KeepAlive:    30 * time.Second,
		PingTimeout:  10 * time.Second,
		ConnectRetry: true,
	}
}

// NewClient creates a new MQTT client for river monitoring stations
func NewClient(config *Config) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetPingTimeout(config.PingTimeout)
	opts.SetCleanSession(true)

	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}

	client := &Client{
		parser:       services.NewSampleParser(),
		topicSamples: config.TopicSamples,
		isConnected:  false,
	}

	// Set connection handlers
	opts.SetDefaultPublishHandler(client.defaultMessageHandler)
	opts.SetOnConnectHandler(client.onConnect)
	opts.SetConnectionLostHandler(client.onConnectionLost)

	client.client = mqtt.NewClient(opts)

	return client
}

// Connect establishes connection to MQTT broker
func (c *Client) Connect() error {
	log.Println("Connecting to MQTT broker...")

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Println("Successfully connected to MQTT broker")
	c.isConnected = true
	return nil
}

// Disconnect closes the MQTT connection
func (c *Client) Disconnect() {
	if c.isConnected {
		c.client.Disconnect(250)
		c.isConnected = false
		log.Println("Disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status
func (c *Client) IsConnected() bool {
	return c.isConnected && c.client.IsConnected()
}

// SubscribeToSampleData subscribes to station sample topics
func (c *Client) SubscribeToSampleData() error {
	if token := c.client.Subscribe(c.topicSamples, 1, c.sampleDataHandler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", c.topicSamples, token.Error())
	}
	log.Printf("Subscribed to topic: %s", c.topicSamples)

	return nil
}

// SetDataHandler sets the callback function for processed sample data
func (c *Client) SetDataHandler(handler func(*models.SampleReading)) {
	c.dataHandler = handler
}

// SetErrorHandler sets the callback function for errors
func (c *Client) SetErrorHandler(handler func(error)) {
	c.errorHandler = handler
}

// stationIDFromTopic extracts the station ID from a sample topic,
// e.g. "riverwatch/stations/godavari_nashik/samples".
func stationIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) >= 4 && parts[1] == "stations" {
		return parts[2]
	}
	return "unknown"
}

// sampleDataHandler processes incoming station sample messages
func (c *Client) sampleDataHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received sample data on topic %s: %s", msg.Topic(), string(msg.Payload()))

	stationID := stationIDFromTopic(msg.Topic())

	// Try parsing as JSON first (preferred format)
	reading, err := c.parser.ParseSampleJSON(msg.Payload(), stationID)
	if err != nil {
		// Fallback to comma-separated format
		reading, err = c.parser.ParseSampleString(string(msg.Payload()), stationID)
		if err != nil {
			log.Printf("Failed to parse sample data: %v", err)
			if c.errorHandler != nil {
				c.errorHandler(fmt.Errorf("sample data parsing failed: %w", err))
			}
			return
		}
	}

	// Log the successful parsing
	log.Printf("Parsed sample reading: %s", c.parser.FormatSampleReading(reading))

	// Implausible values are flagged but never dropped. The station keeps
	// reporting and the assessment carries the advisory issues.
	if validation := reading.Validate(); !validation.IsValid {
		log.Printf("⚠️  Station %s sample outside plausible range: %v", stationID, validation.Issues)
	}

	// Call the data handler if set
	if c.dataHandler != nil {
		c.dataHandler(reading)
	}
}

// defaultMessageHandler handles messages on unsubscribed topics
func (c *Client) defaultMessageHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received message on unhandled topic %s: %s", msg.Topic(), string(msg.Payload()))
}

// onConnect callback when connection is established
func (c *Client) onConnect(client mqtt.Client) {
	log.Println("MQTT client connected")
	c.isConnected = true
}

// onConnectionLost callback when connection is lost
func (c *Client) onConnectionLost(client mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
	c.isConnected = false

	if c.errorHandler != nil {
		c.errorHandler(fmt.Errorf("MQTT connection lost: %w", err))
	}
}
