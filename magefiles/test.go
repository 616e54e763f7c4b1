//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests without the GPU backend.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-tags", "nogpu", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "-tags", "nogpu", "./..."), withStream())
	return err
}
