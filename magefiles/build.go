// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "puzzler"
	binaryDir  = "bin"
	cmdDir     = "./cmd/puzzler"
	versionPkg = "github.com/mesh-intelligence/puzzler/internal/version"
)

// ldflags stamps the git commit and build time into the version package.
func ldflags() string {
	sha, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || sha == "" {
		sha = "unknown"
	}
	return strings.Join([]string{
		"-X", versionPkg + ".GitSHA=" + sha,
		"-X", versionPkg + ".BuildTime=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}

// Build compiles the puzzler binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
