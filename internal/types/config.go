package types

type RunMode string

const (
	// ModeLocal is the mode for running the API server with local defaults
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// OverflowPolicy decides what happens when an invoice has more line items
// than a single page can hold
type OverflowPolicy string

const (
	// OverflowPolicyReject fails the render with a validation error
	OverflowPolicyReject OverflowPolicy = "reject"
	// OverflowPolicyOverlap renders anyway, the footer is clamped to the page
	// and may overlap the totals panel
	OverflowPolicyOverlap OverflowPolicy = "overlap"
)

func (p OverflowPolicy) Validate() bool {
	switch p {
	case OverflowPolicyReject, OverflowPolicyOverlap:
		return true
	}
	return false
}
