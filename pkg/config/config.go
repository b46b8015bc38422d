package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// Generator providers.
const (
	ProviderAuto     = "auto"
	ProviderTemplate = "template"
	ProviderGenAI    = "genai"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL         = "ROADMAP_API_URL"
	EnvAddr           = "ROADMAP_ADDR"
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvFallback       = "ROADMAP_FALLBACK"
	EnvStorePath      = "ROADMAP_DB"
	EnvSessionKey     = "ROADMAP_SESSION_KEY"
	EnvAllowedOrigins = "ROADMAP_ALLOWED_ORIGINS"
	EnvProvider       = "ROADMAP_GENERATOR"
	EnvModel          = "ROADMAP_MODEL"
	EnvAPITimeout     = "ROADMAP_API_TIMEOUT"
)

// Config is the full service configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	API       API       `yaml:"api"`
	Wizard    Wizard    `yaml:"wizard"`
	Generator Generator `yaml:"generator"`
	Store     Store     `yaml:"store"`
}

// Server configures the HTTP listener and browser sessions.
type Server struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	SessionKey     string        `yaml:"sessionKey"`
	SessionTTL     time.Duration `yaml:"sessionTTL"`
	TemplatesDir   string        `yaml:"templatesDir"`
	ShutdownGrace  time.Duration `yaml:"shutdownGrace"`
}

// API points the wizard at a roadmap backend.
type API struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// Wizard holds session behaviour.
type Wizard struct {
	Fallback string `yaml:"fallback"`
}

// Generator configures roadmap generation on the server side.
type Generator struct {
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	APIKey          string  `yaml:"apiKey"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int32   `yaml:"maxOutputTokens"`
}

// Store configures the saved roadmap database.
type Store struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":8000",
			SessionTTL:    30 * time.Minute,
			ShutdownGrace: 10 * time.Second,
		},
		API: API{
			BaseURL: "http://localhost:8000",
			Timeout: 60 * time.Second,
		},
		Wizard: Wizard{
			Fallback: string(wizard.FallbackEnabled),
		},
		Generator: Generator{
			Provider:    ProviderAuto,
			Temperature: 0.7,
		},
		Store: Store{
			Path: "roadmaps.db",
		},
	}
}

// Load reads path over the defaults, applies the process environment, and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data, path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	set := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}

	set(EnvAPIURL, &c.API.BaseURL)
	set(EnvAddr, &c.Server.Addr)
	set(EnvAPIKey, &c.Generator.APIKey)
	set(EnvFallback, &c.Wizard.Fallback)
	set(EnvStorePath, &c.Store.Path)
	set(EnvSessionKey, &c.Server.SessionKey)
	set(EnvProvider, &c.Generator.Provider)
	set(EnvModel, &c.Generator.Model)

	if value, ok := lookup(EnvAllowedOrigins); ok && strings.TrimSpace(value) != "" {
		c.Server.AllowedOrigins = splitList(value)
	}
	if value, ok := lookup(EnvAPITimeout); ok && strings.TrimSpace(value) != "" {
		timeout, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvAPITimeout, err)
		}
		c.API.Timeout = timeout
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New("config: server.sessionTTL must be positive")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: api.baseURL %q must be an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("config: api.timeout must be positive")
	}
	if _, err := c.FallbackPolicy(); err != nil {
		return fmt.Errorf("config: wizard.fallback: %w", err)
	}
	switch c.Generator.Provider {
	case ProviderAuto, ProviderTemplate:
	case ProviderGenAI:
		if strings.TrimSpace(c.Generator.APIKey) == "" {
			return fmt.Errorf("config: generator.provider %q requires an api key (%s)", ProviderGenAI, EnvAPIKey)
		}
	default:
		return fmt.Errorf("config: unknown generator.provider %q", c.Generator.Provider)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("config: store.path is required")
	}
	return nil
}

// FallbackPolicy parses Wizard.Fallback.
func (c Config) FallbackPolicy() (wizard.FallbackPolicy, error) {
	return wizard.ParseFallbackPolicy(c.Wizard.Fallback)
}

// ResolvedProvider maps ProviderAuto onto genai when an API key is present
// and onto the template generator otherwise.
func (c Config) ResolvedProvider() string {
	if c.Generator.Provider != ProviderAuto {
		return c.Generator.Provider
	}
	if strings.TrimSpace(c.Generator.APIKey) != "" {
		return ProviderGenAI
	}
	return ProviderTemplate
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseDuration accepts Go durations and bare seconds.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
