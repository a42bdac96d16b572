package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"vanrent/internal/pricing"
)

type Config struct {
	Server struct {
		Port           int     `yaml:"port"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps"`
		RateLimitBurst int     `yaml:"rate_limit_burst"`
	} `yaml:"server"`

	Reservations struct {
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"reservations"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Engine struct {
		SlotIntervalMinutes int `yaml:"slot_interval_minutes"`
		DraftTTLMinutes     int `yaml:"draft_ttl_minutes"`
	} `yaml:"engine"`

	OfficesPath string             `yaml:"offices_path"`
	Categories  []pricing.Category `yaml:"categories"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitRPS <= 0 {
		cfg.Server.RateLimitRPS = 50
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 100
	}
	if cfg.OfficesPath == "" {
		cfg.OfficesPath = "configs/offices.yaml"
	}

	return &cfg, nil
}

// SlotInterval returns the configured slot granularity.
func (c *Config) SlotInterval() int {
	if c.Engine.SlotIntervalMinutes <= 0 {
		return 15
	}
	return c.Engine.SlotIntervalMinutes
}

// DraftTTL returns how long an idle booking draft is kept.
func (c *Config) DraftTTL() time.Duration {
	if c.Engine.DraftTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Engine.DraftTTLMinutes) * time.Minute
}

// ReservationsCacheTTL returns the redis cache TTL for reservation lookups.
func (c *Config) ReservationsCacheTTL() time.Duration {
	if c.Reservations.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Reservations.CacheTTLSeconds) * time.Second
}

// CategoryByID finds a configured pricing category.
func (c *Config) CategoryByID(id string) (pricing.Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return pricing.Category{}, false
}
