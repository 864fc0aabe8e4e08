//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the gltfdump command into bin/.
func (Build) Cli() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/gltfdump", "./cmd/gltfdump"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod tidy and go vet over the module.
func (Build) Tidy() error {
	if _, err := executeCmd("go", withArgs("mod", "tidy")); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
