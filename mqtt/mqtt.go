// Package mqtt carries door commands and move status over an MQTT broker.
//
// Commands arrive on doorctl/control/<client_id>/<command>; status is
// published on doorctl/status/<client_id>/<kind>.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	controlRoot = "doorctl/control"
	statusRoot  = "doorctl/status"

	defaultPort    = 1883
	defaultTLSPort = 8883
)

// Config holds MQTT connection settings. An empty Host disables MQTT.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
}

func (cfg Config) useTLS() bool {
	return cfg.CACert != "" || cfg.ClientCert != ""
}

// brokerURL returns the paho broker address, defaulting the port by scheme.
func (cfg Config) brokerURL() string {
	scheme, port := "tcp", defaultPort
	if cfg.useTLS() {
		scheme, port = "ssl", defaultTLSPort
	}
	if cfg.Port != 0 {
		port = cfg.Port
	}
	return fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, port)
}

// Handlers are called from paho's goroutines.
type Handlers struct {
	OnConnect    func()
	OnDisconnect func()
	OnCommand    func(command string)
}

// Client is a door's connection to the broker. A client built without a
// host is disabled: it reports itself connected and drops everything else.
type Client struct {
	client   paho.Client
	clientID string
	handlers Handlers
}

var routeLogs sync.Once

// New creates a client for clientID. Nothing is sent until Connect.
func New(cfg Config, clientID string, handlers Handlers) (*Client, error) {
	c := &Client{clientID: clientID, handlers: handlers}

	if cfg.Host == "" {
		log.Println("MQTT disabled (no host configured)")
		return c, nil
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.brokerURL()).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60 * time.Second).
		SetConnectionLostHandler(c.handleConnectionLost).
		SetOnConnectHandler(c.handleConnect)

	if cfg.useTLS() {
		tlsConfig, err := loadTLS(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
		opts.SetTLSConfig(tlsConfig)
	} else {
		log.Println("MQTT using non-TLS connection")
	}

	routeLogs.Do(func() {
		paho.ERROR = log.New(os.Stdout, "[MQTT ERROR] ", 0)
		paho.CRITICAL = log.New(os.Stdout, "[MQTT CRIT] ", 0)
		paho.WARN = log.New(os.Stdout, "[MQTT WARN] ", 0)
	})

	c.client = paho.NewClient(opts)
	return c, nil
}

func loadTLS(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		pem, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Connect blocks until the first connection succeeds. paho reconnects on
// its own after that. A disabled client calls OnConnect straight away.
func (c *Client) Connect() error {
	if c.client == nil {
		c.connected()
		return nil
	}

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect: %w", token.Error())
	}
	return nil
}

// Disconnect waits up to 250ms for in-flight work, then closes.
func (c *Client) Disconnect() {
	if c.client == nil {
		return
	}
	c.client.Disconnect(250)
}

// PublishStatus publishes payload on the client's status topic for kind.
func (c *Client) PublishStatus(kind, payload string) {
	if c.client == nil {
		return
	}
	c.client.Publish(c.statusTopic(kind), 0, false, payload)
}

func (c *Client) controlFilter() string {
	return fmt.Sprintf("%s/%s/+", controlRoot, c.clientID)
}

func (c *Client) statusTopic(kind string) string {
	return fmt.Sprintf("%s/%s/%s", statusRoot, c.clientID, kind)
}

// command returns the command of a control topic addressed to this
// client, or false for any other topic.
func (c *Client) command(topic string) (string, bool) {
	cmd, ok := strings.CutPrefix(topic, fmt.Sprintf("%s/%s/", controlRoot, c.clientID))
	if !ok || cmd == "" || strings.Contains(cmd, "/") {
		return "", false
	}
	return cmd, true
}

func (c *Client) connected() {
	if c.handlers.OnConnect != nil {
		c.handlers.OnConnect()
	}
}

// handleConnect resubscribes on every (re)connect; the session is clean.
func (c *Client) handleConnect(client paho.Client) {
	log.Println("MQTT connected")
	filter := c.controlFilter()
	if token := client.Subscribe(filter, 1, c.handleControl); token.Wait() && token.Error() != nil {
		log.Printf("MQTT subscribe %s: %v", filter, token.Error())
	}
	c.connected()
}

func (c *Client) handleConnectionLost(client paho.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
	if c.handlers.OnDisconnect != nil {
		c.handlers.OnDisconnect()
	}
}

func (c *Client) handleControl(client paho.Client, msg paho.Message) {
	cmd, ok := c.command(msg.Topic())
	if !ok {
		log.Printf("MQTT ignoring %s", msg.Topic())
		return
	}
	if c.handlers.OnCommand != nil {
		c.handlers.OnCommand(cmd)
	}
}
