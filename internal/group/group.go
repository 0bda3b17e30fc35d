package group

import "math/big"

// Group is a Diffie-Hellman modulus/generator pair.
type Group struct {
	P *big.Int
	G *big.Int
}

// BitLen reports the size of the modulus in bits.
func (g *Group) BitLen() int { return g.P.BitLen() }

// Clone deep-copies the group so callers can own a negotiated group
// independently of the catalog lifecycle.
func (g *Group) Clone() *Group {
	return &Group{
		P: new(big.Int).Set(g.P),
		G: new(big.Int).Set(g.G),
	}
}
