// Package testbed ships the sample scene the CLI evaluates when no scene file
// is given.
package testbed

import (
	_ "embed"

	"github.com/spaghettifunk/viewgeom/engine/scene"
)

//go:embed sample.toml
var sampleTOML []byte

// SamplePath is the location of the sample scene relative to the repository root.
const SamplePath = "testbed/sample.toml"

func NewSampleScene() (*scene.Scene, error) {
	return scene.Parse(sampleTOML, scene.FormatTOML)
}
