/*
Package token generates and validates structured secrets in the style of
GitHub's authentication token format.

A token is a short recognisable prefix, a random base62 payload and a base62
CRC32 checksum:

	<org><type>_<30 base62 chars><6 base62 chars>
	tk_GUkLdIZV8xnQQZobkuynSyyPkcweVm14nosQ

The checksum lets secret scanners and servers reject corrupted or made-up
strings without a lookup. It is an integrity check, not a signature: anyone
can compute it.

A header wraps an existing opaque string with the same prefix and checksum so
that it becomes recognisable too:

	<org><type>_<6 base62 chars>_<payload>
	tk_1e6YXE_5be426ee126b88f9587bbbe767a7592c

# Usage

	engine, err := token.New("t", "k")
	if err != nil {
	    log.Fatal(err) // org+type longer than 10 characters
	}

	secret, err := engine.Generate()
	ok := engine.Validate(secret)

	header := engine.GenerateHeader(apiKey)
	ok = engine.ValidateHeader(header)

Validate and ValidateHeader are predicates over untrusted input and never
fail; Parse and ParseHeader return the fields together with ErrMalformed or
ErrChecksumMismatch for callers that need to know why a string was rejected.

Whether a well-formed secret was actually issued, and is still active, is up
to the caller.
*/
package token
