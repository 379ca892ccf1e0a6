package config

import (
	"strings"
	"time"
)

const (
	KeyServerHost            = "server.host"
	KeyServerPort            = "server.port"
	KeyServerReadTimeout     = "server.read_timeout"
	KeyServerWriteTimeout    = "server.write_timeout"
	KeyServerIdleTimeout     = "server.idle_timeout"
	KeyServerShutdownTimeout = "server.shutdown_timeout"

	KeyUpstreamBaseURL       = "upstream.base_url"
	KeyUpstreamAPIKey        = "upstream.api_key"
	KeyUpstreamClientName    = "upstream.client_name"
	KeyUpstreamClientVersion = "upstream.client_version"
	KeyUpstreamUserAgent     = "upstream.user_agent"
	KeyUpstreamTimeout       = "upstream.timeout"

	KeyTag = "tag"

	KeyLogsLevel      = "logs.level"
	KeyLogsJSON       = "logs.json"
	KeyLogsFile       = "logs.file"
	KeyLogsMaxSizeMB  = "logs.max_size_mb"
	KeyLogsMaxBackups = "logs.max_backups"
	KeyLogsMaxAgeDays = "logs.max_age_days"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LINKRELAY"

// EnvKeyReplacer maps configuration keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Field is a registered configuration key and its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Defaults lists every known key in registration order.
var Defaults []Field

func register(key string, value any, description string) {
	for _, f := range Defaults {
		if f.Key == key {
			panic("duplicate config key: " + key)
		}
	}
	Defaults = append(Defaults, Field{Key: key, Value: value, Description: description})
}

func init() {
	register(KeyServerHost, "0.0.0.0", "Interface to listen on")
	register(KeyServerPort, 6119, "Port to listen on")
	register(KeyServerReadTimeout, 15*time.Second, "Maximum time to read a request")
	register(KeyServerWriteTimeout, 30*time.Second, "Maximum time to write a response")
	register(KeyServerIdleTimeout, 60*time.Second, "Keep-alive idle timeout")
	register(KeyServerShutdownTimeout, 10*time.Second, "Grace period for in-flight requests on shutdown")

	register(KeyUpstreamBaseURL, "https://www.youtube.com", "Player API origin")
	register(KeyUpstreamAPIKey, "", "Player API key, required")
	register(KeyUpstreamClientName, "ANDROID", "Client profile name sent upstream")
	register(KeyUpstreamClientVersion, "19.08.35", "Client profile version sent upstream")
	register(KeyUpstreamUserAgent, "com.google.android.youtube/19.08.35 (Linux; U; Android 13)", "User-Agent sent upstream")
	register(KeyUpstreamTimeout, 15*time.Second, "Timeout for the upstream call")

	register(KeyTag, "Join @FAST_DevelopersOfficial, API by Shantanu ( FAST )", "Attribution string included in every response")

	register(KeyLogsLevel, "info", "panic, fatal, error, warn, info, debug or trace")
	register(KeyLogsJSON, false, "Use the JSON log formatter")
	register(KeyLogsFile, "", "Write logs to this file instead of stderr")
	register(KeyLogsMaxSizeMB, 10, "Rotate the log file after this many megabytes")
	register(KeyLogsMaxBackups, 3, "Rotated log files to keep")
	register(KeyLogsMaxAgeDays, 28, "Days to keep rotated log files")
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(EnvKeyReplacer.Replace(key))
}
