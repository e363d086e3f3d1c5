// Package client is a Go client for the Cascade Hardware Monitor API.
//
// Every method performs exactly one blocking HTTP round trip and returns a typed
// model from package model. Failures are *APIError, *ConnectionError or *Error,
// all matching ErrCascade.
//
//	c := client.New(client.DefaultConfig())
//	cpu, err := c.CPU(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("CPU load: %.1f%%\n", cpu.Load)
package client

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultHost    = "localhost"
	DefaultPort    = 8085
	DefaultTimeout = 10 * time.Second

	apiPrefix = "/api/v1"
)

// Config is fixed when the client is built.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration

	// TLSSkipVerify disables certificate and hostname checks for every request.
	TLSSkipVerify bool
	// Secure switches the base URL to https (and the reserved stream URL to wss).
	Secure bool
}

// DefaultConfig targets a server on localhost:8085 with a 10s timeout.
func DefaultConfig() Config {
	return Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		Timeout: DefaultTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) hostPort() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BaseURL is the prefix every request path is appended to.
func (c Config) BaseURL() string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.hostPort(), apiPrefix)
}

// WebSocketURL is reserved for server push; the client does not stream yet.
func (c Config) WebSocketURL() string {
	scheme := "ws"
	if c.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s", scheme, c.hostPort())
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The caller's client is used as is,
// so Timeout and TLSSkipVerify no longer apply to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger traces each request at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to one Cascade server. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	// AI groups the automation endpoints under /ai.
	AI *AIClient
}

// New builds a client. Zero fields in cfg fall back to DefaultConfig values.
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.TLSSkipVerify,
	}

	c := &Client{
		cfg:     cfg,
		baseURL: cfg.BaseURL(),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.AI = &AIClient{client: c}

	return c
}

// Config returns the normalised configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// BaseURL returns the URL prefix requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
