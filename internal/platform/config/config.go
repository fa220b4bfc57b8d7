package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/config"
)

// Env holds process settings read from the environment.
type Env struct {
	ListenAddr  string `env:"RELAY_LISTEN_ADDR" envDefault:":8080"`
	ConfigFile  string `env:"RELAY_CONFIG_FILE"`
	PostgresDSN string `env:"POSTGRES_DSN"`
}

// Relay holds the relay settings read from YAML.
type Relay struct {
	Debug           bool              `yaml:"debug"`
	Webhook         WebhookSettings   `yaml:"webhook"`
	Analytics       AnalyticsSettings `yaml:"analytics"`
	Cookies         CookieSettings    `yaml:"cookies"`
	SignupDetection struct {
		Paths []string `yaml:"paths"`
	} `yaml:"signupDetection"`
}

type WebhookSettings struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type AnalyticsSettings struct {
	Endpoint      string        `yaml:"endpoint"`
	MeasurementID string        `yaml:"measurementId"`
	APISecret     string        `yaml:"apiSecret"`
	Timeout       time.Duration `yaml:"timeout"`
}

type CookieSettings struct {
	VisitorID     string `yaml:"visitorId"`
	FirstTouch    string `yaml:"firstTouch"`
	SignupTracked string `yaml:"signupTracked"`
	GAClient      string `yaml:"gaClient"`
}

// Config is everything main needs to wire the relay.
type Config struct {
	Env   Env
	Relay Relay
}

const defaultRelayYAML = `
debug: false
webhook:
  url: ${TZC_WEBHOOK_URL:""}
  timeout: 10s
analytics:
  endpoint: https://www.google-analytics.com
  measurementId: ${GA4_MEASUREMENT_ID:""}
  apiSecret: ${GA4_API_SECRET:""}
  timeout: 5s
cookies:
  visitorId: tzc_visitor_id
  firstTouch: tzc_first_touch
  signupTracked: tzc_signup_tracked
  gaClient: _ga
signupDetection:
  paths:
    - /welcome
    - /onboarding
    - /home
`

// ParseEnv loads process settings from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Load reads the environment and, when RELAY_CONFIG_FILE is set, layers that
// file over the built-in defaults.
func Load() (Config, error) {
	var result Config

	e, err := ParseEnv()
	if err != nil {
		return result, err
	}
	result.Env = e

	var sources []io.Reader
	if e.ConfigFile != "" {
		f, err := os.Open(e.ConfigFile)
		if err != nil {
			return result, fmt.Errorf("failed to open config file %s %w", e.ConfigFile, err)
		}
		defer f.Close()
		sources = append(sources, f)
	}

	result.Relay, err = LoadRelay(os.LookupEnv, sources...)
	return result, err
}

// LoadRelay merges sources over the defaults, expanding ${VAR:default}
// references with lookup.
func LoadRelay(lookup func(string) (string, bool), sources ...io.Reader) (Relay, error) {
	var result Relay

	options := []config.YAMLOption{config.Source(strings.NewReader(defaultRelayYAML))}
	for _, s := range sources {
		options = append(options, config.Source(s))
	}
	options = append(options, config.Expand(lookup))

	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}
	readError := func(key string, cause error) error {
		return fmt.Errorf("failed to read '%s' from yaml config %w", key, cause)
	}

	key := "debug"
	if err = yaml.Get(key).Populate(&result.Debug); err != nil {
		return result, readError(key, err)
	}
	key = "webhook"
	if err = yaml.Get(key).Populate(&result.Webhook); err != nil {
		return result, readError(key, err)
	}
	key = "analytics"
	if err = yaml.Get(key).Populate(&result.Analytics); err != nil {
		return result, readError(key, err)
	}
	key = "cookies"
	if err = yaml.Get(key).Populate(&result.Cookies); err != nil {
		return result, readError(key, err)
	}
	key = "signupDetection"
	if err = yaml.Get(key).Populate(&result.SignupDetection); err != nil {
		return result, readError(key, err)
	}

	return result, nil
}
