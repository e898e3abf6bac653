//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "palabras"

// Default target to run when none is specified
var Default = Build

// Build compiles the palabras binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/palabras")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	binDir := filepath.Join(home, "go", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	return sh.Copy(filepath.Join(binDir, binary), binary)
}

// Clean removes the build output
func Clean() error {
	return sh.Rm(binary)
}
