//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Evaluates the testbed sample scene.
func (Run) Sample() error {
	fmt.Println("Run sample scene...")
	if _, err := executeCmd("go", withArgs("run", ".", "-scene", "testbed/sample.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Evaluates the testbed sample scene and re-runs it on every save.
func (Run) Watch() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-scene", "testbed/sample.toml", "-watch", "-log-level", "debug"), withStream()); err != nil {
		return err
	}
	return nil
}
