/*
Package base62 converts between non-negative integers and strings over the
62 character alphabet 0-9, A-Z, a-z.

The alphabet order is part of the wire format of every structured secret: a
character's position in Alphabet is its numeric value, and changing it would
make previously issued values decode differently.

# Encoding

	s, err := base62.Encode(big.NewInt(3843)) // "zz"
	s = base62.EncodeUint64(crc)              // fast path for small values

Zero encodes to "0". Negative and nil integers are rejected with ErrNegative
and ErrNil.

# Decoding

	n, err := base62.Decode("zz")
	if errors.Is(err, base62.ErrInvalidChar) {
	    // s contained a byte outside the alphabet
	}

Decoding an empty string fails with ErrEmpty instead of yielding zero, so a
missing field can never be mistaken for the value 0.
*/
package base62
