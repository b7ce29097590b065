// Package backend picks the output backend for a project and creates the
// project handle the configuration stage works on.
package backend

import "strings"

// Variant is the backend a project compiles for. VariantNone marks the
// backend-less fallback project used with pure legacy SDKs.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantNativeJS
	VariantNodeJS
	VariantNodeModuleJS
	VariantRoyaleOrSWF
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantNativeJS:
		return "NativeJs"
	case VariantNodeJS:
		return "NodeJs"
	case VariantNodeModuleJS:
		return "NodeModuleJs"
	case VariantRoyaleOrSWF:
		return "RoyaleOrSwf"
	}
	return "unknown"
}

// JSCapable reports whether the variant is a real backend, as opposed to the
// fallback.
func (v Variant) JSCapable() bool {
	return v != VariantNone
}

// NativeLibraries names the externs libraries under the framework js/libs
// directory that the variant compiles against.
func (v Variant) NativeLibraries() []string {
	switch v {
	case VariantNodeJS, VariantNodeModuleJS:
		return []string{"js.swc", "node.swc"}
	case VariantNativeJS, VariantRoyaleOrSWF:
		return []string{"js.swc"}
	}
	return nil
}

// Reserved config names.
const (
	ConfigRoyale = "royale"
	ConfigJS     = "js"
	ConfigNode   = "node"
)

// Target names with a dedicated backend. Every other target, including
// JSRoyale, SWF and unknown names, compiles with the Royale backend.
const (
	TargetJSNative     = "JSNative"
	TargetJSNode       = "JSNode"
	TargetJSNodeModule = "JSNodeModule"
)

// ClassifyTarget maps a target name to its backend. Matching ignores case.
func ClassifyTarget(target string) Variant {
	switch {
	case strings.EqualFold(target, TargetJSNative):
		return VariantNativeJS
	case strings.EqualFold(target, TargetJSNode):
		return VariantNodeJS
	case strings.EqualFold(target, TargetJSNodeModule):
		return VariantNodeModuleJS
	}
	return VariantRoyaleOrSWF
}
