package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sssecrets/go-sssecrets"
	"github.com/sssecrets/go-sssecrets/core"
	"github.com/sssecrets/go-sssecrets/token"
)

// GenerateCommand prints freshly generated tokens.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate new tokens",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of tokens to generate",
				Value:   1,
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}

			count := c.Int("count")
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			for i := 0; i < count; i++ {
				secret, err := rt.Engine.Generate()
				if err != nil {
					return err
				}
				fmt.Fprintln(out(c), secret)
			}
			rt.Log.WithField("count", count).Debug("tokens generated")
			return nil
		},
	}
}

// ValidateCommand checks tokens given as arguments or, with none, one per line on stdin.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate token checksums",
		ArgsUsage: "[token...]",
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}
			return checkAll(c, rt.Engine.Validate)
		},
	}
}

// HeaderCommand wraps a payload in a checksummed header.
func HeaderCommand() *cli.Command {
	return &cli.Command{
		Name:      "header",
		Usage:     "Wrap a payload as <prefix>_<checksum>_<payload>",
		ArgsUsage: "<payload>",
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}
			if c.NArg() != 1 {
				return errors.New("header takes exactly one payload argument")
			}

			fmt.Fprintln(out(c), rt.Engine.GenerateHeader(c.Args().First()))
			return nil
		},
	}
}

// ValidateHeaderCommand checks headers given as arguments or, with none, on stdin.
func ValidateHeaderCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate-header",
		Usage:     "Validate header checksums",
		ArgsUsage: "[header...]",
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}
			return checkAll(c, rt.Engine.ValidateHeader)
		},
	}
}

// ChecksumCommand prints the padded base62 CRC32 of each argument.
func ChecksumCommand() *cli.Command {
	return &cli.Command{
		Name:      "checksum",
		Usage:     "Print the base62 CRC32 checksum of a string",
		ArgsUsage: "<string...>",
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errors.New("checksum needs at least one argument")
			}

			for _, s := range c.Args().Slice() {
				fmt.Fprintln(out(c), rt.Engine.Checksum(s))
			}
			return nil
		},
	}
}

// InspectCommand parses a secret with the same rules the middleware applies
// and prints its fields with the payload redacted.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Parse a token or header and show its fields",
		ArgsUsage: "[secret...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "any-prefix",
				Usage: "accept secrets issued under any prefix",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}

			checker, err := core.New(
				core.WithEngine(rt.Engine),
				core.WithPrefixCheck(!c.Bool("any-prefix")),
				core.WithLogger(sssecrets.NewLogrusLogger(rt.Log)),
			)
			if err != nil {
				return err
			}

			return eachInput(c, func(raw string) bool {
				secret, err := checker.CheckSecret(c.Context, raw)
				if err != nil {
					fmt.Fprintf(out(c), "%s\tinvalid\t%s\n", redact(raw), core.Code(err))
					return false
				}
				fmt.Fprintf(out(c), "%s\t%s\tprefix=%s checksum=%s payload_len=%d\n",
					secret, secret.Kind, secret.Prefix, secret.Checksum, len(secret.Payload))
				return true
			})
		},
	}
}

func checkAll(c *cli.Context, check func(string) bool) error {
	return eachInput(c, func(raw string) bool {
		ok := check(raw)
		result := "valid"
		if !ok {
			result = "invalid"
		}
		fmt.Fprintf(out(c), "%s\t%s\n", redact(raw), result)
		return ok
	})
}

// eachInput runs fn over the arguments, or over stdin lines when there are none.
// It returns ErrInvalidSecret if fn reported failure for any input.
func eachInput(c *cli.Context, fn func(string) bool) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(c.App.Reader)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(inputs) == 0 {
		return errors.New("no input given")
	}

	failed := 0
	for _, raw := range inputs {
		if !fn(raw) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidSecret, failed, len(inputs))
	}
	return nil
}

// redact keeps only what precedes the first separator of raw.
func redact(raw string) string {
	i := strings.IndexByte(raw, token.Separator)
	if i < 0 {
		return "[REDACTED]"
	}
	return raw[:i+1] + "[REDACTED]"
}
