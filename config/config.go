// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"
)

const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 9650
	DefaultBasePath = "/ext"
)

type Config struct {
	// Logging
	LogLevel     string `json:"logLevel"     yaml:"logLevel"`
	LogDir       string `json:"logDir"       yaml:"logDir"`
	LogMaxSizeMB int    `json:"logMaxSizeMB" yaml:"logMaxSizeMB"`
	LogMaxFiles  int    `json:"logMaxFiles"  yaml:"logMaxFiles"`

	// HTTP
	HTTPHost        string            `json:"httpHost"        yaml:"httpHost"`
	HTTPPort        uint16            `json:"httpPort"        yaml:"httpPort"`
	BasePath        string            `json:"basePath"        yaml:"basePath"`
	AllowedOrigins  []string          `json:"allowedOrigins"  yaml:"allowedOrigins"`
	AllowedHosts    []string          `json:"allowedHosts"    yaml:"allowedHosts"`
	HTTP            server.HTTPConfig `json:"http"            yaml:"http"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout" yaml:"shutdownTimeout"`

	// WebSocket
	WebSocket pubsub.ServerConfig `json:"webSocket" yaml:"webSocket"`

	// Chain
	ChainIDSeed      string        `json:"chainIDSeed"      yaml:"chainIDSeed"`
	ValidityWindow   time.Duration `json:"validityWindow"   yaml:"validityWindow"`
	BaseComputeUnits uint64        `json:"baseComputeUnits" yaml:"baseComputeUnits"`

	// Storage
	DataDir string        `json:"dataDir" yaml:"dataDir"`
	Pebble  pebble.Config `json:"pebble"  yaml:"pebble"`

	// Tracing
	Trace trace.Config `json:"trace" yaml:"trace"`
}

// New returns a config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     logging.Info.LowerString(),
		LogMaxSizeMB: 8,
		LogMaxFiles:  5,

		HTTPHost:        DefaultHTTPHost,
		HTTPPort:        DefaultHTTPPort,
		BasePath:        DefaultBasePath,
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		HTTP:            server.NewDefaultHTTPConfig(),
		ShutdownTimeout: 10 * time.Second,

		WebSocket: pubsub.NewDefaultServerConfig(),

		ChainIDSeed:      consts.Name,
		ValidityWindow:   60 * time.Second,
		BaseComputeUnits: 1,

		DataDir: ".countervm",
		Pebble:  pebble.NewDefaultConfig(),

		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			AppName:         consts.Name,
			Agent:           consts.Name,
			Version:         consts.Version.String(),
		},
	}
}

// Load overlays the YAML (or JSON) file at [path] on the defaults. An empty
// [path] returns the defaults.
func Load(path string) (*Config, error) {
	c := New()
	if len(path) == 0 {
		return c, c.Verify()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c, c.Verify()
}

// Verify checks the fields that can not be defaulted.
func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ValidityWindow < time.Second {
		return fmt.Errorf("%w: validity window %s is less than 1s", ErrInvalidConfig, c.ValidityWindow)
	}
	if len(c.ChainIDSeed) == 0 {
		return fmt.Errorf("%w: chain id seed is empty", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return level
}

func (c *Config) GetChainID() ids.ID { return utils.ToID([]byte(c.ChainIDSeed)) }

func (c *Config) GetHTTPAddress() string { return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort) }

func (c *Config) GetTraceConfig() *trace.Config { return &c.Trace }
