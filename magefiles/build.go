// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Build targets for orgchart.
//
//	mage build        compile bin/orgchart, version stamped from git
//	mage init         bootstrap the default sqlite store
//	mage install      copy the binary to GOPATH/bin
//	mage clean        remove build artifacts
//	mage test:all     run every test
//	mage test:unit    run tests in -short mode
//	mage test:cover   write coverage to bin/coverage.out
//	mage lint         run go vet, go mod tidy -diff and golangci-lint
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "orgchart"
	binaryDir  = "bin"
	cmdDir     = "./cmd/orgchart"
	versionVar = "github.com/mesh-intelligence/orgchart/internal/cli.Version"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the orgchart binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", versionFlags(), "-o", binaryPath(), cmdDir)
}

// Init builds orgchart and creates the tables in the default store.
func Init() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath(), "init")
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}

// versionFlags stamps the git description into cli.Version. Outside a
// repository the built-in version stays.
func versionFlags() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || out == "" {
		return ""
	}
	return "-X " + versionVar + "=" + strings.TrimPrefix(out, "v")
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
	src := binaryPath()
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
