// Package brand loads and validates the brand watch configuration file
// The file gates every pipeline run; validation failures are fatal at
// startup before any external call is made
package brand

import (
	"os"
	"strings"

	perr "brandwatch/internal/platform/errors"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the immutable brand configuration, constructed once at startup
type Config struct {
	Brand struct {
		// Handles are stored without the @ sigil; Load strips it
		Handles          []string `yaml:"handles"`
		Keywords         []string `yaml:"keywords" validate:"required_without=Handles"`
		NegativeKeywords []string `yaml:"negative_keywords"`
	} `yaml:"brand"`

	Language         string `yaml:"language" validate:"required"`
	LanguageFallback string `yaml:"language_fallback"`

	Thresholds struct {
		Notify  float64 `yaml:"notify" validate:"gte=0,lte=1,gtefield=LogOnly"`
		LogOnly float64 `yaml:"log_only" validate:"gte=0,lte=1"`
	} `yaml:"thresholds"`

	Image struct {
		Enabled       bool    `yaml:"enabled"`
		LogoThreshold float64 `yaml:"logo_threshold" validate:"gte=0,lte=1"`
	} `yaml:"image"`

	Notifications struct {
		SlackWebhookURL   string `yaml:"slack_webhook_url" validate:"omitempty,url"`
		DiscordWebhookURL string `yaml:"discord_webhook_url" validate:"omitempty,url"`
	} `yaml:"notifications"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads, defaults, and validates the configuration at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "read brand config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates raw YAML bytes
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "parse brand config")
	}

	setDefaults(&cfg)
	canonicalize(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "validate brand config")
	}
	if err := checkInvariants(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.LanguageFallback == "" {
		cfg.LanguageFallback = cfg.Language
	}
	if cfg.Image.LogoThreshold == 0 {
		cfg.Image.LogoThreshold = 0.7
	}
}

func canonicalize(cfg *Config) {
	for i, h := range cfg.Brand.Handles {
		cfg.Brand.Handles[i] = strings.TrimPrefix(strings.TrimSpace(h), "@")
	}
}

// checkInvariants covers cross-field rules the tag grammar cannot express
func checkInvariants(cfg *Config) error {
	if len(cfg.Brand.Handles) == 0 && len(cfg.Brand.Keywords) == 0 {
		return perr.Validationf("brand config needs at least one handle or keyword")
	}
	if cfg.Notifications.SlackWebhookURL == "" && cfg.Notifications.DiscordWebhookURL == "" {
		return perr.Validationf("brand config needs at least one notification webhook")
	}
	return nil
}

// MentionTerms returns the handles rendered as @-prefixed match terms
func (c *Config) MentionTerms() []string {
	out := make([]string, 0, len(c.Brand.Handles))
	for _, h := range c.Brand.Handles {
		out = append(out, "@"+h)
	}
	return out
}

// ExcludeTerms is the union of mention terms and keywords in encounter
// order, used by the image pipeline to exclude textually explicit posts
func (c *Config) ExcludeTerms() []string {
	out := c.MentionTerms()
	return append(out, c.Brand.Keywords...)
}
