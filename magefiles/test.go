//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs vet and the full test suite with the race detector.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the math package tests only.
func (Test) Math() error {
	_, err := executeCmd("go", withArgs("test", "-count=1", "./engine/math/..."), withStream())
	return err
}
