// Package config loads sssecrets CLI settings.
//
// Values are layered with koanf, later sources overriding earlier ones:
// built-in defaults, a YAML file, SSSECRETS_* environment variables, and
// finally command-line flags.
//
// Environment variable names drop the prefix and are lowercased; a double
// underscore separates nested keys, so SSSECRETS_LOG_LEVEL sets log_level and
// SSSECRETS_SERVE__ADDR sets serve.addr.
package config
