package config

import (
	"fmt"
	"os"

	"github.com/Ozodimgba/geyser/pkg/logger"
)

// Environment variables carrying the stream credentials. These are
// deployment secrets, so they never live in the yaml file.
const (
	EnvEndpoint = "GEYSER_ENDPOINT"
	EnvXToken   = "GEYSER_X_TOKEN"
)

type LogConfig struct {
	Format   string `json:",default=console"` // "console" or "json"
	LogDir   string `json:",optional"`        // empty keeps logs on stderr
	Level    string `json:",default=info"`    // debug / info / warn / error
	Compress bool   `json:",optional"`        // compress rotated files
}

func (c LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// GrpcConfig tunes the Geyser client connection. Endpoint and XToken are
// filled from the environment by ApplyEnv.
type GrpcConfig struct {
	Endpoint string `json:",optional"`
	XToken   string `json:",optional"`

	// Application-level stream ping; 0 disables it.
	StreamPingIntervalSec int `json:",default=30"`

	// Transport keepalive.
	KeepalivePingIntervalSec int `json:",default=30"`
	KeepalivePingTimeoutSec  int `json:",default=10"`

	// Flow-control windows, sized for sustained transaction streams.
	InitialWindowSize     int `json:",default=16777216"`
	InitialConnWindowSize int `json:",default=33554432"`

	// Message size limits.
	MaxCallSendMsgSize int `json:",default=4194304"`
	MaxCallRecvMsgSize int `json:",default=67108864"`

	ConnectTimeoutSec int `json:",default=10"`
	SendTimeoutSec    int `json:",default=10"`
}

// Config is the top-level watcher configuration.
type Config struct {
	Logger LogConfig  `json:",optional"`
	Grpc   GrpcConfig `json:",optional"`
}

// ApplyEnv overlays the stream credentials from the environment. Values
// already present in the yaml file act as fallbacks for local runs.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Grpc.Endpoint = v
	}
	if v := os.Getenv(EnvXToken); v != "" {
		c.Grpc.XToken = v
	}
}

// Validate reports the first missing required value.
func (c *Config) Validate() error {
	if c.Grpc.Endpoint == "" {
		return fmt.Errorf("missing stream endpoint: set %s", EnvEndpoint)
	}
	if c.Grpc.XToken == "" {
		return fmt.Errorf("missing access token: set %s", EnvXToken)
	}
	return nil
}
