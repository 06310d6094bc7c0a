// Package config loads and validates extractor configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then CLI flags (parsed by the binaries, with environment variable
// fallbacks). Validation happens once at startup; a bad config exits the
// process before any work starts.
package config
