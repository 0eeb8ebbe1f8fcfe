package app

import (
	"github.com/vk/gendriver/internal/registry"
	"github.com/vk/gendriver/modules/gen"
)

// coreModules is the definitive list of all driver modules that are compiled
// into the gendriver binary.
var coreModules = []registry.Module{
	&gen.Module{},
}
