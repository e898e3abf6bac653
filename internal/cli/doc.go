// Package cli provides command-line interface setup and configuration
// for the palabras application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and
// resolves everything into one immutable Config at startup.
package cli
