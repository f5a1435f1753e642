package token

import (
	"strings"
	"unicode/utf8"

	"github.com/sssecrets/go-sssecrets/base62"
)

// Kind distinguishes generated tokens from header-wrapped payloads.
type Kind int

const (
	// KindToken is <prefix>_<30 char payload><6 char checksum>.
	KindToken Kind = iota + 1

	// KindHeader is <prefix>_<6 char checksum>_<opaque payload>.
	KindHeader
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Secret is a parsed and checksum-verified structured secret.
type Secret struct {
	Kind     Kind
	Prefix   string
	Payload  string
	Checksum string
	Raw      string
}

// String returns the secret with its payload masked, suitable for logs.
func (s *Secret) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindHeader:
		return s.Prefix + string(Separator) + s.Checksum + string(Separator) + "[REDACTED]"
	default:
		return s.Prefix + string(Separator) + "[REDACTED]" + s.Checksum
	}
}

// Parse parses s as a token generated by any engine and verifies its checksum.
//
// Unlike Validate, Parse requires the exact layout <prefix>_<payload><checksum>
// with nothing before the prefix delimiter other than the prefix and nothing after
// the checksum.
func (e *Engine) Parse(s string) (*Secret, error) {
	i := strings.IndexByte(s, Separator)
	for i >= 0 {
		if len(s)-i-1 == PayloadLength+ChecksumLength && base62.IsValid(s[i+1:]) {
			break
		}
		next := strings.IndexByte(s[i+1:], Separator)
		if next < 0 {
			i = -1
			break
		}
		i += next + 1
	}
	if i < 0 || utf8.RuneCountInString(s[:i]) > MaxPrefixLength {
		return nil, ErrMalformed
	}

	payload := s[i+1 : i+1+PayloadLength]
	sum := s[i+1+PayloadLength:]
	if !e.checksumEqual(payload, sum) {
		return nil, ErrChecksumMismatch
	}

	return &Secret{
		Kind:     KindToken,
		Prefix:   s[:i],
		Payload:  payload,
		Checksum: sum,
		Raw:      s,
	}, nil
}

// ParseHeader parses s as a header-wrapped payload and verifies its checksum.
//
// When s starts with the engine's own prefix followed by an underscore, the six
// characters after it are the checksum and must be followed by a second underscore.
// Otherwise the first underscore within MaxPrefixLength characters of the start
// that is followed by six alphabet characters and another underscore is used.
// Everything after the second underscore is the payload, underscores included.
// A foreign prefix that itself contains an underscore followed by six alphabet
// characters and another underscore is therefore split at its own underscore and
// fails the checksum.
func (e *Engine) ParseHeader(s string) (*Secret, error) {
	i := e.headerDelimiter(s)
	if i < 0 {
		return nil, ErrMalformed
	}

	sum := s[i+1 : i+1+ChecksumLength]
	payload := s[i+2+ChecksumLength:]
	if !e.checksumEqual(payload, sum) {
		return nil, ErrChecksumMismatch
	}

	return &Secret{
		Kind:     KindHeader,
		Prefix:   s[:i],
		Payload:  payload,
		Checksum: sum,
		Raw:      s,
	}, nil
}

func (e *Engine) headerDelimiter(s string) int {
	if strings.HasPrefix(s, e.prefix) && isHeaderDelimiter(s, len(e.prefix)) {
		return len(e.prefix)
	}
	for i := 0; i < len(s); i++ {
		if utf8.RuneCountInString(s[:i]) > MaxPrefixLength {
			break
		}
		if isHeaderDelimiter(s, i) {
			return i
		}
	}
	return -1
}

// isHeaderDelimiter reports whether s[i:] starts with _<6 alphabet chars>_.
func isHeaderDelimiter(s string, i int) bool {
	end := i + 1 + ChecksumLength
	if end >= len(s) || s[i] != Separator || s[end] != Separator {
		return false
	}
	return base62.IsValid(s[i+1 : end])
}

// HasPrefix reports whether the secret was issued under this engine's prefix.
func (e *Engine) HasPrefix(s *Secret) bool {
	return s != nil && s.Prefix == e.prefix
}
