package sdk

// Flavor classifies a framework SDK.
type Flavor uint8

const (
	FlavorOther Flavor = iota
	FlavorRoyale
	FlavorLegacyFlexJS
)

func (f Flavor) String() string {
	switch f {
	case FlavorOther:
		return "other"
	case FlavorRoyale:
		return "royale"
	case FlavorLegacyFlexJS:
		return "flexjs"
	}
	return "unknown"
}

// RoyaleCapable reports whether the SDK implies a Royale-style project when
// nothing else says otherwise.
func (f Flavor) RoyaleCapable() bool {
	return f == FlavorRoyale || f == FlavorLegacyFlexJS
}

// ClassifyFlavor applies the flavor rule to the two marker probes.
// The Royale marker wins over the legacy binary.
func ClassifyFlavor(hasRoyaleMarker, hasLegacyCompiler bool) Flavor {
	switch {
	case hasRoyaleMarker:
		return FlavorRoyale
	case hasLegacyCompiler:
		return FlavorLegacyFlexJS
	}
	return FlavorOther
}
