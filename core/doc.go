/*
Package core provides framework-agnostic structured secret checking that can be
used across different transport layers (HTTP, gRPC, CLI).

The Core type wraps a token.Engine with the policy a transport needs: which
formats are accepted, whether secrets issued under another prefix are
rejected, and what happens when no secret is presented at all.

# Architecture

The core package implements the "Core" in the Core-Adapter pattern:

	┌─────────────────────────────────────────────┐
	│         Transport Adapters                  │
	│  (HTTP, gRPC, Gin, Echo, CLI)               │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Core Engine (THIS PACKAGE)         │
	│  • Format selection                         │
	│  • Prefix check                             │
	│  • Credentials Optional Logic               │
	│  • Logger Integration                       │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          token.Engine                       │
	│  (Parsing & Checksum Verification)          │
	└─────────────────────────────────────────────┘

# Basic Usage

	engine, err := token.New("acme", "pat")
	if err != nil {
	    log.Fatal(err)
	}

	c, err := core.New(
	    core.WithEngine(engine),
	    core.WithFormats(core.FormatToken),
	)
	if err != nil {
	    log.Fatal(err)
	}

	secret, err := c.CheckSecret(ctx, raw)
	if err != nil {
	    // Handle validation error
	}

# Context Helpers

	ctx = core.SetSecret(ctx, secret)

	secret, err := core.GetSecret(ctx)
	if err != nil {
	    // Secret not found
	}

# Error Handling

Every rejection is a *ValidationError whose Code names the reason. All of
them match ErrSecretInvalid with errors.Is:

	secret, err := c.CheckSecret(ctx, raw)
	if err != nil {
	    if errors.Is(err, core.ErrSecretMissing) {
	        // Nothing presented
	    }

	    var validationErr *core.ValidationError
	    if errors.As(err, &validationErr) {
	        switch validationErr.Code {
	        case core.ErrorCodeChecksumMismatch:
	            // Typo or tampering
	        case core.ErrorCodePrefixMismatch:
	            // Issued for another org or type
	        }
	    }
	}

Code(err) returns the same code as a string, which is convenient for metric
labels.

# Logging

	c, err := core.New(
	    core.WithEngine(engine),
	    core.WithLogger(logger), // slog.Logger or compatible
	)

Secrets are only ever logged through token.Secret.String, which masks the
payload.
*/
package core
