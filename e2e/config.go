package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_SERVER_URL is the websocket endpoint, the suites are skipped when empty
	ServerURL      string `envconfig:"E2E_SERVER_URL"`
	ClassifierAddr string `envconfig:"E2E_CLASSIFIER_ADDR"`
	// E2E_AUTH_SECRET signs the classifier token when the sidecar requires one
	AuthSecret string `envconfig:"E2E_AUTH_SECRET"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
