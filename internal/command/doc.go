// Package command provides the CLI command definitions for sssecrets.
//
// It uses urfave/cli/v2 for command parsing. Global flags select the
// org/type prefix and checksum padding; they override the config file and
// SSSECRETS_* environment variables (see internal/config).
package command
