// Package mqtt publishes lock status to an MQTT broker.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	presenceOnline  = "online"
	presenceOffline = "offline"

	publishWait = 5 * time.Second
)

// Config holds broker settings. An empty Host disables publishing.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	PingSecs   int    `yaml:"ping_secs"`
}

// TLS reports whether the broker connection uses certificates.
func (c Config) TLS() bool {
	return c.CACert != "" || c.ClientCert != ""
}

// BrokerURL returns the paho broker address, filling in the default port
// for the scheme.
func (c Config) BrokerURL() string {
	scheme, port := "tcp", 1883
	if c.TLS() {
		scheme, port = "ssl", 8883
	}
	if c.Port != 0 {
		port = c.Port
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, port)
}

// Handlers are called from paho's goroutines when the link changes.
type Handlers struct {
	OnConnect    func()
	OnDisconnect func()
}

// Client publishes lock status for one node. A disabled Client accepts
// every call and drops the messages.
type Client struct {
	client    paho.Client
	clientID  string
	handlers  Handlers
	connected atomic.Bool
}

// New builds a Client. Nothing is dialed until Connect.
func New(cfg Config, clientID string, handlers Handlers) (*Client, error) {
	c := &Client{clientID: clientID, handlers: handlers}
	if cfg.Host == "" {
		log.Println("MQTT disabled (no host configured)")
		return c, nil
	}

	// The broker marks the node offline if the link drops without a
	// clean disconnect.
	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL()).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60*time.Second).
		SetWill(PresenceTopic(clientID), presenceOffline, 1, true).
		SetConnectionLostHandler(c.lost).
		SetOnConnectHandler(c.established)

	if cfg.TLS() {
		tlsConfig, err := loadTLS(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
		opts.SetTLSConfig(tlsConfig)
	} else {
		log.Println("MQTT using non-TLS connection")
	}

	paho.ERROR = log.New(os.Stdout, "[MQTT ERROR] ", 0)
	paho.CRITICAL = log.New(os.Stdout, "[MQTT CRIT] ", 0)
	paho.WARN = log.New(os.Stdout, "[MQTT WARN] ", 0)

	c.client = paho.NewClient(opts)
	return c, nil
}

func loadTLS(cfg Config) (*tls.Config, error) {
	out := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.CACert != "" {
		pem, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", cfg.CACert)
		}
		out.RootCAs = pool
	}

	if cfg.ClientCert != "" {
		if cfg.ClientKey == "" {
			return nil, fmt.Errorf("client_cert set without client_key")
		}
		pair, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		out.Certificates = []tls.Certificate{pair}
	}
	return out, nil
}

// IsEnabled reports whether a broker is configured.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// Connected reports whether the broker link is currently up. A disabled
// Client is never connected.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// ClientID returns the id used in status topics.
func (c *Client) ClientID() string {
	return c.clientID
}

// Connect dials the broker and blocks until the first connection succeeds
// or fails. A disabled Client runs OnConnect and returns.
func (c *Client) Connect() error {
	if !c.IsEnabled() {
		if c.handlers.OnConnect != nil {
			c.handlers.OnConnect()
		}
		return nil
	}

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect %s: %w", c.clientID, token.Error())
	}
	return nil
}

// Disconnect marks the node offline and closes the link.
func (c *Client) Disconnect() {
	if !c.IsEnabled() {
		return
	}
	if c.Connected() {
		c.client.Publish(PresenceTopic(c.clientID), 1, true, presenceOffline).WaitTimeout(publishWait)
	}
	c.client.Disconnect(250)
	c.connected.Store(false)
}

// Publish queues payload on topic at QoS 1 and returns without waiting for
// the broker. Delivery failures are logged.
func (c *Client) Publish(topic string, payload string) {
	if !c.IsEnabled() {
		return
	}
	token := c.client.Publish(topic, 1, false, payload)
	go func() {
		if !token.WaitTimeout(publishWait) {
			log.Printf("MQTT publish %s: no ack after %v", topic, publishWait)
		} else if err := token.Error(); err != nil {
			log.Printf("MQTT publish %s: %v", topic, err)
		}
	}()
}

func (c *Client) established(client paho.Client) {
	c.connected.Store(true)
	log.Printf("MQTT connected as %s", c.clientID)
	client.Publish(PresenceTopic(c.clientID), 1, true, presenceOnline)
	if c.handlers.OnConnect != nil {
		c.handlers.OnConnect()
	}
}

func (c *Client) lost(client paho.Client, err error) {
	c.connected.Store(false)
	log.Printf("MQTT connection lost: %v", err)
	if c.handlers.OnDisconnect != nil {
		c.handlers.OnDisconnect()
	}
}
