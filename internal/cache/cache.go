package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache holds rendered documents and other short-lived values
type Cache interface {
	// Get returns the value and whether it was present
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores value. An expiration of 0 uses the cache default.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes every key starting with prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	Flush(ctx context.Context)
}

const (
	PrefixInvoicePDF = "invoice_pdf:v1"
)

// GenerateKey joins prefix and params with colons
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, len(params)+1)
	parts[0] = prefix

	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}

	return strings.Join(parts, ":")
}

// DocumentKey addresses one rendering of an invoice. The revision is the
// invoice's updated_at, so an edited invoice never hits an old rendering.
func DocumentKey(invoiceID, variant string, revision time.Time) string {
	return GenerateKey(PrefixInvoicePDF, invoiceID, variant, revision.UnixNano())
}

// DocumentPrefix matches every rendering of an invoice
func DocumentPrefix(invoiceID string) string {
	return GenerateKey(PrefixInvoicePDF, invoiceID) + ":"
}
