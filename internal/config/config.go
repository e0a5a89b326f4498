package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration. Values load from an optional
// YAML file and can be overridden per-field with STUDIOOPS_* environment
// variables; pricing ratios and complexity bounds are injected into the
// services from here rather than hard-coded at call sites.
type Config struct {
	DBPath string `yaml:"db_path"`

	Pricing PricingConfig `yaml:"pricing"`
	Webhook WebhookConfig `yaml:"webhook"`
	Server  ServerConfig  `yaml:"server"`

	AttachmentDir string `yaml:"attachment_dir"`
}

type PricingConfig struct {
	HoursPerPoint float64 `yaml:"hours_per_point"`
	PricePerPoint float64 `yaml:"price_per_point"`

	ItemComplexityMin     float64 `yaml:"item_complexity_min"`
	ItemComplexityMax     float64 `yaml:"item_complexity_max"`
	TemplateComplexityMin float64 `yaml:"template_complexity_min"`
	TemplateComplexityMax float64 `yaml:"template_complexity_max"`
}

type WebhookConfig struct {
	// Secret is the shared HMAC key for payment webhook signatures.
	Secret string `yaml:"secret"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config with the studio's standard values.
func Default() Config {
	return Config{
		Pricing: PricingConfig{
			HoursPerPoint:         10,
			PricePerPoint:         150,
			ItemComplexityMin:     0.5,
			ItemComplexityMax:     2.0,
			TemplateComplexityMin: 1.0,
			TemplateComplexityMax: 5.0,
		},
		Server:        ServerConfig{Addr: ":8480"},
		AttachmentDir: "attachments",
	}
}

// Load reads configuration from the given file path (optional; empty path
// or a missing file falls back to defaults) and applies environment
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDIOOPS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDIOOPS_WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.Secret = v
	}
	if v := os.Getenv("STUDIOOPS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STUDIOOPS_ATTACHMENT_DIR"); v != "" {
		cfg.AttachmentDir = v
	}
	if v := os.Getenv("STUDIOOPS_HOURS_PER_POINT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Pricing.HoursPerPoint = f
		}
	}
	if v := os.Getenv("STUDIOOPS_PRICE_PER_POINT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Pricing.PricePerPoint = f
		}
	}
}
