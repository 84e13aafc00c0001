package variant

import (
	"sort"

	"github.com/flexprice/invoicer/internal/layout"
	"github.com/flexprice/invoicer/internal/planner"
	"github.com/samber/lo"
)

// DefaultName is the variant used when a request names none or an unknown one
const DefaultName = "template1"

// Registry is the closed set of variants known to the process. It is built
// once at startup and is read-only afterwards.
type Registry struct {
	variants map[string]planner.Config
	fallback string
}

// NewRegistry returns a registry holding the built-in variants. fallback
// names the default; an unknown fallback reverts to DefaultName.
func NewRegistry(fallback string) *Registry {
	r := &Registry{variants: make(map[string]planner.Config)}
	for _, cfg := range builtins() {
		r.variants[cfg.Name] = cfg
	}
	if _, ok := r.variants[fallback]; !ok {
		fallback = DefaultName
	}
	r.fallback = fallback
	return r
}

// Select returns the configuration registered under name. Unknown names
// return the default; ok reports whether name was found.
func (r *Registry) Select(name string) (cfg planner.Config, ok bool) {
	if cfg, ok := r.variants[name]; ok {
		return cfg, true
	}
	return r.variants[r.fallback], false
}

// Default is the name of the fallback variant
func (r *Registry) Default() string {
	return r.fallback
}

// Names lists the registered variants in sorted order
func (r *Registry) Names() []string {
	names := lo.Keys(r.variants)
	sort.Strings(names)
	return names
}

func builtins() []planner.Config {
	green := planner.DefaultConfig()

	gold := planner.DefaultConfig()
	gold.Name = "template2"
	gold.Decoration = planner.DecorationBands
	gold.Palette.Accent = layout.MustHex("#d4af37")
	gold.Palette.OnAccent = layout.MustHex("#1a1a1a")
	gold.Palette.Heading = layout.MustHex("#1a1a1a")
	gold.Palette.Subtle = layout.MustHex("#666666")
	gold.Palette.Label = layout.MustHex("#b8941f")
	gold.Palette.Body = layout.MustHex("#333333")
	gold.Palette.RowBorder = layout.MustHex("#f0f0f0")
	gold.Palette.RowTint = layout.MustHex("#fbf7ea")
	gold.Palette.Strip = layout.MustHex("#f0d066")
	gold.Palette.Thanks = layout.MustHex("#1a1a1a")
	gold.Palette.Decoration = [3]layout.Color{
		layout.MustHex("#1a1a1a"),
		layout.MustHex("#d4af37"),
		layout.MustHex("#f0d066"),
	}

	blue := planner.DefaultConfig()
	blue.Name = "template3"
	blue.Decoration = planner.DecorationHeaderBar
	blue.Columns = planner.ColumnSplit{Description: 0.55, Quantity: 0.15}
	blue.Palette.Accent = layout.MustHex("#0a5ad9")
	blue.Palette.Heading = layout.MustHex("#0a2a66")
	blue.Palette.Subtle = layout.MustHex("#33415c")
	blue.Palette.Label = layout.MustHex("#0a2a66")
	blue.Palette.Body = layout.MustHex("#33415c")
	blue.Palette.RowBorder = layout.MustHex("#d6e0f0")
	blue.Palette.RowTint = layout.MustHex("#f3f7fd")
	blue.Palette.Strip = layout.MustHex("#a9c7f5")
	blue.Palette.Thanks = layout.MustHex("#0a2a66")
	blue.Palette.Decoration = [3]layout.Color{
		layout.MustHex("#0a5ad9"),
		layout.MustHex("#3b7be3"),
		layout.MustHex("#a9c7f5"),
	}

	classic := planner.DefaultConfig()
	classic.Name = "template4"
	classic.Decoration = planner.DecorationBorder
	classic.Palette.Accent = layout.Black
	classic.Palette.Heading = layout.Black
	classic.Palette.Subtle = layout.MustHex("#333333")
	classic.Palette.Label = layout.Black
	classic.Palette.Body = layout.MustHex("#333333")
	classic.Palette.RowBorder = layout.MustHex("#cccccc")
	classic.Palette.RowTint = layout.MustHex("#f5f5f5")
	classic.Palette.Strip = layout.MustHex("#cccccc")
	classic.Palette.Thanks = layout.Black
	classic.Palette.Decoration = [3]layout.Color{layout.Black, layout.Black, layout.Black}

	return []planner.Config{green, gold, blue, classic}
}
