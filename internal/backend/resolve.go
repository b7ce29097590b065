package backend

import (
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

// Resolve chooses the backend, first match wins:
//
//  1. the first target (later targets never matter)
//  2. config name royale, js or node
//  3. a Royale or FlexJS SDK implies RoyaleOrSwf
//  4. otherwise no backend
func Resolve(desc project.Description, flavor sdk.Flavor) Variant {
	if target, ok := desc.FirstTarget(); ok {
		return ClassifyTarget(target)
	}
	switch desc.ConfigName {
	case ConfigRoyale:
		return VariantRoyaleOrSWF
	case ConfigJS:
		return VariantNativeJS
	case ConfigNode:
		return VariantNodeJS
	}
	if flavor.RoyaleCapable() {
		return VariantRoyaleOrSWF
	}
	return VariantNone
}
