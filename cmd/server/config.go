package main

import (
	"strings"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	BufferSize           int           `env:"BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	ClassifierAddr    string        `env:"CLASSIFIER_ADDR,default=localhost:50051"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT,default=2s"`
	UnsafeThreshold   float64       `env:"UNSAFE_THRESHOLD,default=0.8"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	DebugPort      int    `env:"DEBUG_PORT,default=8081"`

	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=1h"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH,required=true"`
	// Present a classifier-role token to the sidecar.
	ClassifierAuth bool `env:"CLASSIFIER_AUTH,default=true"`
}

func (c Config) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	return strings.Split(c.AllowedOrigins, ",")
}
