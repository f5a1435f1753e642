package token

import (
	"errors"
	"io"
)

// Option is how options for the Engine are set up.
type Option func(*Engine) error

// WithRandom sets the source the random payload is drawn from.
//
// Default: crypto/rand.Reader. Anything else must be a cryptographically secure
// source that is safe for concurrent use; this option exists mainly for tests.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) error {
		if r == nil {
			return errors.New("random source cannot be nil")
		}
		e.random = r
		return nil
	}
}

// WithChecksumPadding sets the side on which short checksums are padded.
//
// Default: PadLeft. Validation recomputes the checksum with the same mode, so an
// engine only accepts secrets issued with its own padding.
func WithChecksumPadding(p Padding) Option {
	return func(e *Engine) error {
		if p != PadLeft && p != PadRight {
			return errors.New("unknown checksum padding")
		}
		e.padding = p
		return nil
	}
}
