// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. Config file ($XDG_CONFIG_HOME/todomgr/config.toml, or the --config path)
// 3. Environment variables (TODOMGR_*)
// 4. CLI flags, applied by the cli package
//
// Each level overrides the previous one.
package config
