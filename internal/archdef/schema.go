// Package archdef loads architecture definitions from HCL manifests. A
// manifest declares the parts of an architecture that are pure data — the
// connectivity graph and the native/final gate sets — while the Go-side
// decomposer hooks are attached separately through the registry.
package archdef

import "github.com/hashicorp/hcl/v2"

// Definition is one `architecture` block from a manifest.
//
//	architecture "adonis" {
//	  connectivity = [[1, 3], [2, 3], [4, 3], [5, 3]]
//	  native_gates = ["phased_x", "x", "y", "z", "cz", "measure"]
//	  final_gates  = ["zz"]
//	}
type Definition struct {
	Name         string   `hcl:"name,label"`
	Connectivity [][]int  `hcl:"connectivity"`
	NativeGates  []string `hcl:"native_gates"`
	FinalGates   []string `hcl:"final_gates,optional"`
}

// fileRoot decodes all top-level blocks of a manifest file.
type fileRoot struct {
	Architectures []*Definition `hcl:"architecture,block"`
	Remain        hcl.Body      `hcl:",remain"`
}
