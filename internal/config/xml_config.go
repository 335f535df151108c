// Package config provides file-based configuration for the DocToPPT client
// and its server emulator. XML is the native format; .yaml and .yml files
// are read and written as YAML.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doctoppt/client/internal/upload"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up next to the executable.
const DefaultFileName = "DocToPPT.client.config"

// EnvPrefix prefixes every environment override, e.g. DOCTOPPT_BASE_URL.
const EnvPrefix = "DOCTOPPT"

// AppConfig represents the root configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"DocToPPT" yaml:"-"`

	// Conversion server the client talks to
	Server ServerConfig `xml:"Server" yaml:"server"`

	// Health probe settings
	Health HealthConfig `xml:"Health" yaml:"health"`

	// Console presentation
	UI UIConfig `xml:"UI" yaml:"ui"`

	// Local server emulator
	Emulator EmulatorConfig `xml:"Emulator" yaml:"emulator"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced" yaml:"advanced"`
}

// ServerConfig locates the conversion server endpoints
type ServerConfig struct {
	BaseURL        string `xml:"BaseURL" yaml:"baseUrl" validate:"required,url"`
	UploadPath     string `xml:"UploadPath" yaml:"uploadPath" validate:"required,startswith=/"`
	ProcessingPath string `xml:"ProcessingPath" yaml:"processingPath" validate:"required,startswith=/"`
	StatusPath     string `xml:"StatusPath" yaml:"statusPath" validate:"required,startswith=/"`
	HealthPath     string `xml:"HealthPath" yaml:"healthPath" validate:"required,startswith=/"`
}

// HealthConfig contains health probe settings
type HealthConfig struct {
	IntervalSeconds int `xml:"IntervalSeconds" yaml:"intervalSeconds" validate:"gte=1"`
	TimeoutSeconds  int `xml:"TimeoutSeconds" yaml:"timeoutSeconds" validate:"gte=1"`
}

// UIConfig contains submit control and notification settings
type UIConfig struct {
	SubmitLabel string `xml:"SubmitLabel" yaml:"submitLabel" validate:"required"`
	BusyLabel   string `xml:"BusyLabel" yaml:"busyLabel" validate:"required"`
	Colors      bool   `xml:"Colors" yaml:"colors"`
}

// EmulatorConfig contains settings for the local conversion server emulator
type EmulatorConfig struct {
	BindAddress      string `xml:"BindAddress" yaml:"bindAddress"`
	Port             int    `xml:"Port" yaml:"port" validate:"gte=1,lte=65535"`
	Mode             string `xml:"Mode" yaml:"mode" validate:"oneof=json redirect html error"`
	UploadsDirectory string `xml:"UploadsDirectory" yaml:"uploadsDirectory" validate:"required"`
	BodyLimit        string `xml:"BodyLimit" yaml:"bodyLimit" validate:"required"`
	Version          string `xml:"Version" yaml:"version"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel" yaml:"logLevel" validate:"oneof=debug info warn warning error"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging" yaml:"enableRequestLogging"`
}

// envOverrides lists the settings that can be changed from the environment.
type envOverrides struct {
	BaseURL        string `envconfig:"BASE_URL"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	HealthInterval int    `envconfig:"HEALTH_INTERVAL"`
	Port           int    `envconfig:"PORT"`
	Mode           string `envconfig:"MODE"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	paths := upload.DefaultPaths()
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:        "http://localhost:5000",
			UploadPath:     paths.Upload,
			ProcessingPath: paths.Processing,
			StatusPath:     paths.Status,
			HealthPath:     paths.Health,
		},
		Health: HealthConfig{
			IntervalSeconds: 30,
			TimeoutSeconds:  10,
		},
		UI: UIConfig{
			SubmitLabel: "Generate presentation",
			BusyLabel:   "Sending file...",
			Colors:      true,
		},
		Emulator: EmulatorConfig{
			BindAddress:      "127.0.0.1",
			Port:             5000,
			Mode:             "json",
			UploadsDirectory: "./static/uploads",
			BodyLimit:        "16M",
			Version:          "0.1.0",
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from configPath, creating it with
// defaults when it does not exist. Environment overrides are applied and
// the result is validated.
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshal(configPath, data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration in the format implied by the file extension
func (c *AppConfig) Save(configPath string) error {
	var content []byte
	if isYAML(configPath) {
		output, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		content = append([]byte("# DocToPPT client configuration\n# This file is auto-generated on first run\n\n"), output...)
	} else {
		output, err := xml.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		header := []byte(xml.Header + "\n<!-- DocToPPT Client Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
		content = append(header, output...)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks field constraints and reports every violation at once
func (c *AppConfig) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if env.BaseURL != "" {
		c.Server.BaseURL = env.BaseURL
	}
	if env.LogLevel != "" {
		c.Advanced.LogLevel = strings.ToLower(env.LogLevel)
	}
	if env.HealthInterval > 0 {
		c.Health.IntervalSeconds = env.HealthInterval
	}
	if env.Port > 0 {
		c.Emulator.Port = env.Port
	}
	if env.Mode != "" {
		c.Emulator.Mode = env.Mode
	}
	return nil
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if c.Emulator.UploadsDirectory != "" && !filepath.IsAbs(c.Emulator.UploadsDirectory) {
		c.Emulator.UploadsDirectory = filepath.Join(configDir, c.Emulator.UploadsDirectory)
	}
}

// UploadPaths returns the endpoint routes for the upload client
func (c *AppConfig) UploadPaths() upload.Paths {
	return upload.Paths{
		Upload:     c.Server.UploadPath,
		Processing: c.Server.ProcessingPath,
		Status:     c.Server.StatusPath,
		Health:     c.Server.HealthPath,
	}
}

// HealthInterval returns the probe period
func (c *AppConfig) HealthInterval() time.Duration {
	return time.Duration(c.Health.IntervalSeconds) * time.Second
}

// HealthTimeout returns the per-probe deadline
func (c *AppConfig) HealthTimeout() time.Duration {
	return time.Duration(c.Health.TimeoutSeconds) * time.Second
}

// GetServerAddr returns the emulator bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Emulator.BindAddress, c.Emulator.Port)
}

// GetUploadDir returns the absolute emulator uploads directory path
func (c *AppConfig) GetUploadDir() string {
	return c.Emulator.UploadsDirectory
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func unmarshal(path string, data []byte, v *AppConfig) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return xml.Unmarshal(data, v)
}
