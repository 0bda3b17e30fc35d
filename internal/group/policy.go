package group

import "math/big"

// IsKnownGroup reports whether a peer-supplied modulus/generator pair is
// one of the approved canonical groups. The comparison group is chosen by
// the modulus's own bit length using the same tiers as LookupByStrength,
// then both modulus and generator must match exactly. Anything else is
// rejected, which keeps a strict-group policy from being downgraded to a
// weak or adversarial group.
func IsKnownGroup(p, g *big.Int) bool {
	if !catalog.initialized || p == nil || g == nil {
		return false
	}

	m := LookupByStrength(p.BitLen())
	if m.P.Cmp(p) != 0 {
		return false
	}
	if catalog.generator.Cmp(g) != 0 {
		return false
	}
	return true
}

// FallbackGroup picks a group for group-exchange when no richer parameter
// source is configured. The caller receives its own deep copy, keyed off
// the maximum requested modulus size by the usual tiers.
func FallbackGroup(pmax uint32) (*Group, error) {
	if !catalog.initialized {
		return nil, ErrNotInitialized
	}
	return LookupByStrength(int(pmax)).Clone(), nil
}
