// Package config provides the configuration for Hecto.
//
// Settings come from three layers, higher layers overriding lower:
//
//  3. Environment variables (HECTO_APP_NAME, HECTO_BACKEND, ...)
//  2. Config file (TOML, or YAML for .yaml/.yml paths)
//  1. Built-in defaults
//
// Command-line flags are applied on top by the caller.
//
// # Usage
//
//	cfg, err := config.Load(config.WithFile("~/.config/hecto/config.toml"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Terminal.Backend)
//
// The editor version is not a setting; it is fixed at build time.
package config
