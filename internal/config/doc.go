// Package config defines application configuration structures and loading
// logic. Configuration comes from an optional config.yaml plus environment
// variables with the PLANWATCH_ prefix; environment variables win.
package config
