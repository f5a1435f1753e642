package base62

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the ordered set of base62 digits. A character's index is its value.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Base is the radix of the encoding.
const Base = len(Alphabet)

// Zero is the character that encodes the value 0 and is used for padding.
const Zero byte = '0'

var (
	// ErrNegative is returned when encoding a negative integer.
	ErrNegative = errors.New("base62: cannot encode a negative integer")

	// ErrNil is returned when encoding a nil *big.Int.
	ErrNil = errors.New("base62: cannot encode a nil integer")

	// ErrEmpty is returned when decoding an empty string.
	ErrEmpty = errors.New("base62: cannot decode an empty string")

	// ErrInvalidChar is returned when decoding a string containing a byte outside the alphabet.
	ErrInvalidChar = errors.New("base62: invalid character")

	// ErrOverflow is returned by DecodeUint64 when the value does not fit in 64 bits.
	ErrOverflow = errors.New("base62: value overflows uint64")
)

// DecodeError reports the position and value of the first byte outside the alphabet.
type DecodeError struct {
	Pos  int
	Char byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrInvalidChar, e.Char, e.Pos)
}

// Is allows the error to be compared with ErrInvalidChar.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidChar
}

// values maps a byte to its digit value, or -1 when the byte is not in the alphabet.
var values = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < Base; i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

var bigBase = big.NewInt(int64(Base))

// Encode returns the base62 representation of n. Zero encodes to "0".
func Encode(n *big.Int) (string, error) {
	if n == nil {
		return "", ErrNil
	}
	switch n.Sign() {
	case -1:
		return "", ErrNegative
	case 0:
		return string(Zero), nil
	}
	if n.IsUint64() {
		return EncodeUint64(n.Uint64()), nil
	}

	num := new(big.Int).Set(n)
	mod := new(big.Int)
	// Digits are produced least significant first and reversed at the end.
	var buf []byte
	for num.Sign() > 0 {
		num.QuoRem(num, bigBase, mod)
		buf = append(buf, Alphabet[mod.Int64()])
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// EncodeUint64 returns the base62 representation of n.
func EncodeUint64(n uint64) string {
	if n == 0 {
		return string(Zero)
	}

	// 62^11 > 2^64, so eleven digits always suffice.
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%uint64(Base)]
		n /= uint64(Base)
	}
	return string(buf[i:])
}

// Decode parses s as a big-endian base62 numeral.
func Decode(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmpty
	}

	num := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(s); i++ {
		v := values[s[i]]
		if v < 0 {
			return nil, &DecodeError{Pos: i, Char: s[i]}
		}
		num.Mul(num, bigBase)
		num.Add(num, digit.SetInt64(int64(v)))
	}
	return num, nil
}

// DecodeUint64 parses s as a big-endian base62 numeral that fits in a uint64.
func DecodeUint64(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}

	var num uint64
	for i := 0; i < len(s); i++ {
		v := values[s[i]]
		if v < 0 {
			return 0, &DecodeError{Pos: i, Char: s[i]}
		}
		if num > (^uint64(0)-uint64(v))/uint64(Base) {
			return 0, ErrOverflow
		}
		num = num*uint64(Base) + uint64(v)
	}
	return num, nil
}

// IsValid reports whether s is non-empty and consists only of alphabet characters.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if values[s[i]] < 0 {
			return false
		}
	}
	return true
}

// IsDigit reports whether c belongs to the alphabet.
func IsDigit(c byte) bool {
	return values[c] >= 0
}

// Pad left-pads s with the zero character up to width. Longer strings are returned unchanged.
func Pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(Zero), width-len(s)) + s
}
