package core

import (
	"fmt"

	"github.com/sssecrets/go-sssecrets/token"
)

// Format is the set of secret shapes a Core accepts.
type Format int

const (
	// FormatToken accepts generated tokens: <prefix>_<payload><checksum>.
	FormatToken Format = 1 << iota

	// FormatHeader accepts header-wrapped payloads: <prefix>_<checksum>_<payload>.
	FormatHeader

	// FormatAny accepts both tokens and headers (default).
	FormatAny = FormatToken | FormatHeader
)

// String returns a string representation of the format set.
func (f Format) String() string {
	switch f {
	case FormatToken:
		return "FormatToken"
	case FormatHeader:
		return "FormatHeader"
	case FormatAny:
		return "FormatAny"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Allows reports whether secrets of the given kind are accepted.
func (f Format) Allows(kind token.Kind) bool {
	switch kind {
	case token.KindToken:
		return f&FormatToken != 0
	case token.KindHeader:
		return f&FormatHeader != 0
	default:
		return false
	}
}

func (f Format) valid() bool {
	return f != 0 && f&^FormatAny == 0
}
