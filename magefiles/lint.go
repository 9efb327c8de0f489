// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Lint runs go vet, checks go.mod is tidy, then runs golangci-lint.
func Lint() error {
	mg.Deps(Vet, Tidy)
	return sh.RunV(binLint, "run", "./...")
}

// Tidy fails when go mod tidy would change go.mod or go.sum.
func Tidy() error {
	return sh.RunV(binGo, "mod", "tidy", "-diff")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}
