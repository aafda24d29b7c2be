package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

// Config holds distanbol configuration.
// Stored at: ~/.distanbol/config.yaml
type Config struct {
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
	Stanbol  StanbolCfg  `mapstructure:"stanbol" yaml:"stanbol"`
	Fetch    FetchCfg    `mapstructure:"fetch" yaml:"fetch"`
	Defaults DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// StanbolCfg configures the enhancer client and the managed container.
type StanbolCfg struct {
	// URL is the enhancer endpoint (supports ${ENV_VAR} syntax)
	URL            string `mapstructure:"url" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     uint   `mapstructure:"max_retries" yaml:"max_retries"`
	// MaxBytes caps the enhancer response body
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
	// Managed starts a local Stanbol container with the server
	Managed       bool   `mapstructure:"managed" yaml:"managed"`
	ContainerName string `mapstructure:"container_name" yaml:"container_name"`
	Image         string `mapstructure:"image" yaml:"image"`
	HostPort      string `mapstructure:"host_port" yaml:"host_port"`
}

// FetchCfg bounds URL fetches.
type FetchCfg struct {
	TimeoutSeconds int   `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxBytes       int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// DefaultsCfg holds request defaults.
type DefaultsCfg struct {
	// Confidence is used when a request carries no usable threshold
	Confidence float64 `mapstructure:"confidence" yaml:"confidence"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Stanbol: StanbolCfg{
			URL:            stanbol.DefaultURL,
			TimeoutSeconds: int(stanbol.DefaultTimeout / time.Second),
			MaxRetries:     stanbol.DefaultMaxRetries,
			MaxBytes:       stanbol.DefaultMaxBytes,
			ContainerName:  stanbol.DefaultContainerName,
			Image:          stanbol.DefaultImage,
			HostPort:       stanbol.DefaultHostPort,
		},
		Fetch: FetchCfg{
			TimeoutSeconds: int(source.DefaultTimeout / time.Second),
			MaxBytes:       source.DefaultMaxBytes,
		},
		Defaults: DefaultsCfg{
			Confidence: 0.7,
		},
	}
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	var errs []error
	if c.Defaults.Confidence < 0 || c.Defaults.Confidence > 1 {
		errs = append(errs, fmt.Errorf("defaults.confidence must be between 0 and 1, got %v", c.Defaults.Confidence))
	}
	if c.Stanbol.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("stanbol.timeout_seconds must be positive"))
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout_seconds must be positive"))
	}
	if c.Server.Port == "" {
		errs = append(errs, fmt.Errorf("server.port is required"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (s ServerCfg) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// ToStanbolConfig converts the config to a stanbol client config.
// When the container is managed the URL points at its published port.
func (c *Config) ToStanbolConfig() stanbol.Config {
	url := ResolveEnvVars(c.Stanbol.URL)
	if c.Stanbol.Managed {
		url = "http://localhost:" + c.Stanbol.HostPort + "/enhancer"
	}
	return stanbol.Config{
		URL:        url,
		Timeout:    time.Duration(c.Stanbol.TimeoutSeconds) * time.Second,
		MaxRetries: c.Stanbol.MaxRetries,
		MaxBytes:   c.Stanbol.MaxBytes,
	}
}

// ToDockerConfig converts the config to a container manager config.
func (c *Config) ToDockerConfig() stanbol.DockerConfig {
	return stanbol.DockerConfig{
		ContainerName: c.Stanbol.ContainerName,
		Image:         c.Stanbol.Image,
		HostPort:      c.Stanbol.HostPort,
	}
}

// ToSourceConfig converts the config to a URL fetcher config.
func (c *Config) ToSourceConfig() source.Config {
	return source.Config{
		Timeout:  time.Duration(c.Fetch.TimeoutSeconds) * time.Second,
		MaxBytes: c.Fetch.MaxBytes,
	}
}
