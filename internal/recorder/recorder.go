// Package recorder persists an audit trail of issued quotes.
// The quoting core owns the in-memory store; the recorder is the
// external persistence collaborator and never feeds back into quoting.
package recorder

import "quote-engine/core/types"

// Recorder records quote outcomes for later analysis
type Recorder interface {
	// RecordQuote appends one issued quote to the audit trail
	RecordQuote(record *types.QuoteRecord) error

	// Close releases underlying resources
	Close() error
}

// NoopRecorder is used when the audit trail is not configured
type NoopRecorder struct{}

// NewNoopRecorder creates a no-op recorder
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *types.QuoteRecord) error { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
