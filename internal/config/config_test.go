package config

import (
	"math"
	"testing"
	"time"

	"github.com/flexprice/invoicer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
	assert.Equal(t, "template1", cfg.Render.DefaultVariant)
	assert.Equal(t, 595.28, cfg.Render.PageWidth)
	assert.Equal(t, 841.89, cfg.Render.PageHeight)
	assert.Equal(t, types.OverflowPolicyReject, cfg.Render.OverflowPolicy)
	assert.Equal(t, 2*time.Second, cfg.Render.GlyphTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"unknown overflow policy", func(c *Configuration) { c.Render.OverflowPolicy = "shrink" }},
		{"zero page width", func(c *Configuration) { c.Render.PageWidth = 0 }},
		{"negative page height", func(c *Configuration) { c.Render.PageHeight = -1 }},
		{"infinite page width", func(c *Configuration) { c.Render.PageWidth = math.Inf(1) }},
		{"nan page height", func(c *Configuration) { c.Render.PageHeight = math.NaN() }},
		{"glyph too large", func(c *Configuration) { c.Render.GlyphSize = 5000 }},
		{"no concurrency", func(c *Configuration) { c.Render.Concurrency = 0 }},
		{"missing address", func(c *Configuration) { c.Server.Address = "" }},
		{"sample rate out of range", func(c *Configuration) { c.Sentry.SampleRate = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewConfig_EnvOverride(t *testing.T) {
	t.Setenv("INVOICER_RENDER_OVERFLOW_POLICY", "overlap")
	t.Setenv("INVOICER_RENDER_DEFAULT_VARIANT", "template3")
	t.Setenv("INVOICER_SERVER_ADDRESS", ":9999")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, types.OverflowPolicyOverlap, cfg.Render.OverflowPolicy)
	assert.Equal(t, "template3", cfg.Render.DefaultVariant)
	assert.Equal(t, ":9999", cfg.Server.Address)
}

func TestNewConfig_RejectsInfinitePage(t *testing.T) {
	t.Setenv("INVOICER_RENDER_PAGE_WIDTH", "inf")

	cfg, err := NewConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	c := PostgresConfig{User: "u", Password: "p", DBName: "d", Host: "h", Port: 5432, SSLMode: "disable"}
	assert.Equal(t, "user=u password=p dbname=d host=h port=5432 sslmode=disable", c.GetDSN())
}
