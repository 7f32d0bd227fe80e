package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the pipeline defaults that used to live as scattered
// constants. It is loaded once and passed read-only to the decoders that
// need defaults.
type Config struct {
	Register struct {
		Currency  string `envconfig:"REGISTER_CURRENCY" default:"RUR"`
		Placement int    `envconfig:"REGISTER_PLACEMENT" default:"1"`
		Name      string `envconfig:"REGISTER_NAME" default:""`
		Date      string `envconfig:"REGISTER_DATE" default:""` // dd.mm.yyyy, today when empty
	}

	Person struct {
		Work string `envconfig:"PERSON_WORK" default:"ООО"`
	}

	Phones struct {
		Region     string `envconfig:"PHONE_REGION" default:"RU"`
		ZaimRegion string `envconfig:"PHONE_ZAIM_REGION" default:"CH"`
	}
}

// RegDate returns the registration stamp date: the configured value when
// set and parseable, otherwise today.
func (c *Config) RegDate() time.Time {
	if d, err := time.Parse("02.01.2006", c.Register.Date); err == nil {
		return d
	}

	now := time.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
