package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "RUR", cfg.Register.Currency)
	assert.Equal(t, 1, cfg.Register.Placement)
	assert.Equal(t, "ООО", cfg.Person.Work)
	assert.Equal(t, "RU", cfg.Phones.Region)
	assert.Equal(t, "CH", cfg.Phones.ZaimRegion)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REGISTER_CURRENCY", "RUB")
	t.Setenv("REGISTER_PLACEMENT", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "RUB", cfg.Register.Currency)
	assert.Equal(t, 7, cfg.Register.Placement)
}

func TestRegDate(t *testing.T) {
	var cfg Config

	cfg.Register.Date = "01.02.2024"
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), cfg.RegDate())

	cfg.Register.Date = ""
	got := cfg.RegDate()
	assert.Equal(t, 0, got.Hour())
	assert.False(t, got.After(time.Now()))
}