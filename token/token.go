package token

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/sssecrets/go-sssecrets/base62"
)

const (
	// PayloadLength is the number of base62 characters in a token's random payload.
	PayloadLength = 30

	// ChecksumLength is the width of the padded base62 CRC32 checksum.
	ChecksumLength = 6

	// MaxPrefixLength is the maximum combined length of org and type.
	MaxPrefixLength = 10

	// Separator joins the prefix to the rest of a token or header.
	Separator = '_'
)

// Padding selects the side on which short checksums are filled with zero characters.
type Padding int

const (
	// PadLeft prepends zero characters, keeping the checksum a valid base62 numeral
	// of the CRC32 value.
	PadLeft Padding = iota

	// PadRight appends zero characters, which is how some existing issuers
	// right-justify checksums shorter than six characters.
	PadRight
)

var (
	// ErrPrefixTooLong is returned by New when org and type exceed MaxPrefixLength characters.
	ErrPrefixTooLong = errors.New("prefix is too long")

	// ErrMalformed is returned when a string does not have the shape of a token or header.
	ErrMalformed = errors.New("malformed secret")

	// ErrChecksumMismatch is returned when the embedded checksum does not match the payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// upperBound is the exclusive upper bound of the random integer behind a payload: 10^60.
var upperBound = new(big.Int).Exp(big.NewInt(10), big.NewInt(60), nil)

// Engine generates and validates structured secrets for one org/type prefix.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	org     string
	typ     string
	prefix  string
	random  io.Reader
	padding Padding
}

// New creates an Engine for the given org and type fragments.
//
// The fragments are concatenated to form the literal prefix of every generated
// secret, so their combined length may not exceed MaxPrefixLength characters.
//
// Example:
//
//	engine, err := token.New("t", "k")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	secret, err := engine.Generate() // "tk_GUkLdIZV8xnQQZobkuynSyyPkcweVm14nosQ"
func New(org, typ string, opts ...Option) (*Engine, error) {
	if n := utf8.RuneCountInString(org) + utf8.RuneCountInString(typ); n > MaxPrefixLength {
		return nil, fmt.Errorf("%w: %q is %d characters, limit is %d",
			ErrPrefixTooLong, org+typ, n, MaxPrefixLength)
	}

	e := &Engine{
		org:     org,
		typ:     typ,
		prefix:  org + typ,
		random:  rand.Reader,
		padding: PadLeft,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return e, nil
}

// Org returns the organisation fragment of the prefix.
func (e *Engine) Org() string { return e.org }

// Type returns the type fragment of the prefix.
func (e *Engine) Type() string { return e.typ }

// Prefix returns org followed by type.
func (e *Engine) Prefix() string { return e.prefix }

// Generate returns a new token of the form <org><type>_<payload><checksum>.
//
// The payload is the first PayloadLength characters of the base62 encoding of a
// uniformly drawn integer in [0, 10^60). Draws whose encoding is shorter than
// PayloadLength are discarded and drawn again, so every token has the same length.
// An error is returned only if the random source fails.
func (e *Engine) Generate() (string, error) {
	payload, err := e.randomPayload()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(e.prefix) + 1 + PayloadLength + ChecksumLength)
	b.WriteString(e.prefix)
	b.WriteByte(Separator)
	b.WriteString(payload)
	b.WriteString(e.Checksum(payload))
	return b.String(), nil
}

func (e *Engine) randomPayload() (string, error) {
	for {
		n, err := rand.Int(e.random, upperBound)
		if err != nil {
			return "", fmt.Errorf("failed to read random payload: %w", err)
		}

		encoded, err := base62.Encode(n)
		if err != nil {
			return "", err
		}
		if len(encoded) >= PayloadLength {
			return encoded[:PayloadLength], nil
		}
	}
}

// Checksum returns the padded base62 CRC32 of s using the engine's padding mode.
func (e *Engine) Checksum(s string) string {
	return checksum(s, e.padding)
}

// Checksum returns the base62 encoded CRC32 (IEEE) of s, left-padded with the
// zero character to ChecksumLength.
func Checksum(s string) string {
	return checksum(s, PadLeft)
}

func checksum(s string, padding Padding) string {
	encoded := base62.EncodeUint64(uint64(crc32.ChecksumIEEE([]byte(s))))
	if padding == PadRight {
		return encoded + strings.Repeat(string(base62.Zero), ChecksumLength-len(encoded))
	}
	return base62.Pad(encoded, ChecksumLength)
}

// Validate reports whether s carries a payload whose checksum matches the last
// ChecksumLength characters of s.
//
// The payload is the first run of PayloadLength alphabet characters that directly
// follows an underscore. The prefix is not compared with the engine's prefix;
// use Parse and HasPrefix for that.
func (e *Engine) Validate(s string) bool {
	payload, ok := findPayload(s)
	if !ok {
		return false
	}
	return e.checksumEqual(payload, s[len(s)-ChecksumLength:])
}

// findPayload returns the PayloadLength characters after the first underscore
// that is followed by that many alphabet characters.
func findPayload(s string) (string, bool) {
	for i := 0; i+PayloadLength < len(s); i++ {
		if s[i] != Separator {
			continue
		}
		candidate := s[i+1 : i+1+PayloadLength]
		if base62.IsValid(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// GenerateHeader wraps an arbitrary payload as <org><type>_<checksum>_<payload>.
func (e *Engine) GenerateHeader(payload string) string {
	var b strings.Builder
	b.Grow(len(e.prefix) + 2 + ChecksumLength + len(payload))
	b.WriteString(e.prefix)
	b.WriteByte(Separator)
	b.WriteString(e.Checksum(payload))
	b.WriteByte(Separator)
	b.WriteString(payload)
	return b.String()
}

// ValidateHeader reports whether s is a header whose checksum matches its payload.
// See ParseHeader for how the fields are located.
func (e *Engine) ValidateHeader(s string) bool {
	_, err := e.ParseHeader(s)
	return err == nil
}

func (e *Engine) checksumEqual(payload, sum string) bool {
	return subtle.ConstantTimeCompare([]byte(e.Checksum(payload)), []byte(sum)) == 1
}
