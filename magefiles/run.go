//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Generates every manifest once using meshgen.toml.
func (Run) Meshgen() error {
	fmt.Println("Run meshgen...")
	if _, err := executeCmd("go", withArgs("run", ".", "meshgen.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Regenerates manifests as they change until interrupted.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/meshgen", withArgs("meshgen.watch.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
