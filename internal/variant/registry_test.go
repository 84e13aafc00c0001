package variant

import (
	"testing"

	"github.com/flexprice/invoicer/internal/planner"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry(DefaultName)

	for _, name := range []string{"template1", "template2", "template3", "template4"} {
		cfg, ok := r.Select(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, cfg.Name)
	}

	cfg, ok := r.Select("nope")
	assert.False(t, ok)
	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, planner.DecorationWaves, cfg.Decoration)

	cfg, ok = r.Select("")
	assert.False(t, ok)
	assert.Equal(t, DefaultName, cfg.Name)
}

func TestRegistry_Fallback(t *testing.T) {
	r := NewRegistry("template3")
	assert.Equal(t, "template3", r.Default())
	cfg, _ := r.Select("missing")
	assert.Equal(t, planner.DecorationHeaderBar, cfg.Decoration)

	r = NewRegistry("bogus")
	assert.Equal(t, DefaultName, r.Default())
}

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, []string{"template1", "template2", "template3", "template4"}, NewRegistry("").Names())
}

func TestBuiltins_Distinct(t *testing.T) {
	seen := map[planner.Decoration]bool{}
	for _, cfg := range builtins() {
		assert.False(t, seen[cfg.Decoration], cfg.Name)
		seen[cfg.Decoration] = true
		assert.Equal(t, "Rs.", cfg.Currency)
	}
}
