package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Settings is the complete runtime configuration of the relay.
type Settings struct {
	Server   ServerSettings   `mapstructure:"server" json:"server"`
	Upstream UpstreamSettings `mapstructure:"upstream" json:"upstream"`
	Tag      string           `mapstructure:"tag" json:"tag"`
	Logs     LogSettings      `mapstructure:"logs" json:"logs"`
}

// ServerSettings controls the inbound HTTP listener.
type ServerSettings struct {
	Host            string        `mapstructure:"host" json:"host"`
	Port            int           `mapstructure:"port" json:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"writeTimeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" json:"idleTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdownTimeout"`
}

// UpstreamSettings describes the player API the relay forwards to.
type UpstreamSettings struct {
	BaseURL       string        `mapstructure:"base_url" json:"baseUrl"`
	APIKey        string        `mapstructure:"api_key" json:"apiKey"`
	ClientName    string        `mapstructure:"client_name" json:"clientName"`
	ClientVersion string        `mapstructure:"client_version" json:"clientVersion"`
	UserAgent     string        `mapstructure:"user_agent" json:"userAgent"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
}

// LogSettings configures the process logger. An empty File logs to stderr.
type LogSettings struct {
	Level      string `mapstructure:"level" json:"level"`
	JSON       bool   `mapstructure:"json" json:"json"`
	File       string `mapstructure:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"maxSizeMb"`
	MaxBackups int    `mapstructure:"max_backups" json:"maxBackups"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"maxAgeDays"`
}

// Address returns the host:port the server listens on.
func (s ServerSettings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Validate reports the first setting that would prevent the relay from serving.
func (s *Settings) Validate() error {
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", s.Server.Port)
	}
	if strings.TrimSpace(s.Upstream.APIKey) == "" {
		return fmt.Errorf("upstream.api_key is required (set %s)", EnvName(KeyUpstreamAPIKey))
	}
	u, err := url.Parse(s.Upstream.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("upstream.base_url %q is not an absolute http(s) url", s.Upstream.BaseURL)
	}
	if s.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	if s.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}

// Redacted returns a copy safe to print or log.
func (s Settings) Redacted() Settings {
	s.Upstream.APIKey = lo.Ternary(s.Upstream.APIKey == "", "", "********")
	return s
}
