package glyph

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/flexprice/invoicer/internal/config"
	"github.com/flexprice/invoicer/internal/layout"
	"github.com/flexprice/invoicer/internal/logger"
)

// Resolver obtains a glyph ahead of layout and degrades to no glyph on any
// failure
type Resolver struct {
	provider Provider
	size     int
	timeout  time.Duration
	logger   *logger.Logger
}

func NewResolver(provider Provider, cfg *config.Configuration, log *logger.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		size:     cfg.Render.GlyphSize,
		timeout:  cfg.Render.GlyphTimeout,
		logger:   log,
	}
}

type result struct {
	data []byte
	err  error
}

// Resolve returns the glyph for text, or nil when text is empty, the
// provider fails or times out, or the returned bytes are not a decodable
// image
func (r *Resolver) Resolve(ctx context.Context, text string) *layout.Bitmap {
	if r == nil || r.provider == nil || text == "" {
		return nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan result, 1)
	go func() {
		data, err := r.provider.Encode(ctx, text, r.size)
		done <- result{data: data, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		r.logger.Warnw("glyph generation timed out, rendering without glyph",
			"text", text,
			"error", ctx.Err())
		return nil
	}
	if res.err != nil {
		r.logger.Warnw("glyph generation failed, rendering without glyph",
			"text", text,
			"error", res.err)
		return nil
	}

	bm, err := Decode(res.data)
	if err != nil {
		r.logger.Warnw("glyph is not a valid image, rendering without glyph",
			"text", text,
			"error", err)
		return nil
	}
	return bm
}

// Decode checks that data is a PNG or JPEG image and describes it
func Decode(data []byte) (*layout.Bitmap, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &layout.Bitmap{
		Data:   data,
		Format: strings.ToUpper(format),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
