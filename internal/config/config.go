// Package config loads the redaction client's settings from viper.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/share"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyBackendURL         = "backend.url"
	KeyBackendSubmitPath  = "backend.submit_path"
	KeyBackendForwardPath = "backend.forward_path"
	KeyBackendTimeout     = "backend.timeout"
	KeyDownloadDir        = "download.dir"
	KeyDownloadBrowser    = "download.browser"
	KeyCaptureCommand     = "capture.command"
	KeyShareMessage       = "share.message"
	KeyShareCopiedFor     = "share.copied_for"
	KeyLoggingLevel       = "logging.level"
	KeyLoggingFormat      = "logging.format"
	KeyLoggingFile        = "logging.file"
)

// DefaultBackendURL matches the redaction service's development server.
const DefaultBackendURL = "http://localhost:5000"

// Config holds every setting the client needs.
type Config struct {
	Backend  BackendConfig
	Download DownloadConfig
	Share    ShareConfig
	Logging  LoggingConfig
	Capture  CaptureConfig
}

// BackendConfig locates the redaction service.
type BackendConfig struct {
	URL         string
	SubmitPath  string
	ForwardPath string
	Timeout     time.Duration
}

// DownloadConfig controls how artifacts are retrieved. With Browser set the
// download URL is opened in the system browser; otherwise artifacts are saved
// into Dir.
type DownloadConfig struct {
	Dir     string
	Browser bool
}

// CaptureConfig names the external still-capture command.
type CaptureConfig struct {
	Command string
}

// ShareConfig controls link sharing.
type ShareConfig struct {
	Message   string
	CopiedFor time.Duration
}

// LoggingConfig controls slog output. File, when set, redirects logs while
// the TUI owns the terminal.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, DefaultBackendURL)
	v.SetDefault(KeyBackendSubmitPath, backend.DefaultSubmitPath)
	v.SetDefault(KeyBackendForwardPath, backend.DefaultForwardPath)
	v.SetDefault(KeyBackendTimeout, backend.DefaultTimeout)
	v.SetDefault(KeyDownloadDir, ".")
	v.SetDefault(KeyDownloadBrowser, false)
	v.SetDefault(KeyShareMessage, share.DefaultMessage)
	v.SetDefault(KeyShareCopiedFor, share.DefaultCopiedFor)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Backend: BackendConfig{
			URL:         v.GetString(KeyBackendURL),
			SubmitPath:  v.GetString(KeyBackendSubmitPath),
			ForwardPath: v.GetString(KeyBackendForwardPath),
			Timeout:     v.GetDuration(KeyBackendTimeout),
		},
		Download: DownloadConfig{
			Dir:     ExpandPath(v.GetString(KeyDownloadDir)),
			Browser: v.GetBool(KeyDownloadBrowser),
		},
		Capture: CaptureConfig{
			Command: v.GetString(KeyCaptureCommand),
		},
		Share: ShareConfig{
			Message:   v.GetString(KeyShareMessage),
			CopiedFor: v.GetDuration(KeyShareCopiedFor),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLoggingLevel),
			Format: v.GetString(KeyLoggingFormat),
			File:   ExpandPath(v.GetString(KeyLoggingFile)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the client cannot work with.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, KeyBackendURL)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http or https URL, got %q", common.ErrInvalidConfig, KeyBackendURL, c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyBackendTimeout)
	}
	if c.Share.CopiedFor < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyShareCopiedFor)
	}
	if !c.Download.Browser && c.Download.Dir == "" {
		return fmt.Errorf("%w: %s is required when %s is false", common.ErrMissingConfig, KeyDownloadDir, KeyDownloadBrowser)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// BackendClientConfig converts the backend settings for the wire client.
func (c *Config) BackendClientConfig() backend.Config {
	return backend.Config{
		BaseURL:     c.Backend.URL,
		SubmitPath:  c.Backend.SubmitPath,
		ForwardPath: c.Backend.ForwardPath,
		Timeout:     c.Backend.Timeout,
	}
}
