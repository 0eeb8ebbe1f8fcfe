package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks a configuration file may contain.
type fileRoot struct {
	Generator  *generatorBlock  `hcl:"generator,block"`
	SubBuild   *subBuildBlock   `hcl:"subbuild,block"`
	Packages   *packagesBlock   `hcl:"packages,block"`
	Attributes *attributesBlock `hcl:"attributes,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

// generatorBlock is the `generator` block.
type generatorBlock struct {
	Command *string `hcl:"command,optional"`
	Package *string `hcl:"package,optional"`
}

// subBuildBlock is the `subbuild` block.
type subBuildBlock struct {
	Command *string `hcl:"command,optional"`
}

// packagesBlock is the `packages` block.
type packagesBlock struct {
	Roots []string `hcl:"roots,optional"`
	Known []string `hcl:"known,optional"`
}

// attributesBlock holds free-form attribute defaults.
type attributesBlock struct {
	Body hcl.Body `hcl:",remain"`
}
