package glyph

import (
	"context"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/skip2/go-qrcode"
)

const maxSize = 4096

// Provider encodes a short text into a square scannable bitmap (PNG)
type Provider interface {
	Encode(ctx context.Context, text string, size int) ([]byte, error)
}

type qrProvider struct {
	level qrcode.RecoveryLevel
}

// NewQRProvider returns a Provider producing QR codes with medium error
// recovery
func NewQRProvider() Provider {
	return &qrProvider{level: qrcode.Medium}
}

func (p *qrProvider) Encode(ctx context.Context, text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ierr.NewError("glyph text is empty").
			WithHint("Nothing to encode").
			Mark(ierr.ErrValidation)
	}
	if size <= 0 || size > maxSize {
		return nil, ierr.NewErrorf("invalid glyph size %d", size).
			WithHintf("Glyph size must be between 1 and %d", maxSize).
			Mark(ierr.ErrValidation)
	}
	if err := ctx.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Glyph generation was cancelled").
			Mark(ierr.ErrSystem)
	}

	png, err := qrcode.Encode(text, p.level, size)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode QR code").
			Mark(ierr.ErrSystem)
	}
	return png, nil
}
