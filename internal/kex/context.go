package kex

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"kexd/internal/group"
	"kexd/internal/util/memzero"
)

var one = big.NewInt(1)

// context is the per-handshake mutable state: the selected group, the
// local ephemeral keypair, the peer's public value, and the computed
// shared secret. It is owned by exactly one handshake and destroyed on
// every exit path.
type context struct {
	grp *group.Group
	x   *big.Int // local private exponent
	e   *big.Int // local public value
	f   *big.Int // peer public value
	k   *big.Int // shared secret
}

// newContext selects the group for the negotiated variant. Group-exchange
// variants take the session-negotiated group; fixed-group variants take
// the canonical one.
func newContext(a Algorithm, negotiated *group.Group) (*context, error) {
	if a.GroupExchange() {
		if negotiated == nil {
			return nil, ErrNoGroup
		}
		return &context{grp: negotiated}, nil
	}
	grp := a.fixedGroup()
	if grp == nil {
		return nil, group.ErrNotInitialized
	}
	return &context{grp: grp}, nil
}

// generateKeypair picks a random private exponent in [2, p-1) and
// computes the matching public value g^x mod p. Both are owned by this
// context; the backend never hands out borrowed values.
func (c *context) generateKeypair() error {
	pMinusOne := new(big.Int).Sub(c.grp.P, one)
	for {
		x, err := rand.Int(rand.Reader, pMinusOne)
		if err != nil {
			return fmt.Errorf("kex: generate private exponent: %w", err)
		}
		if x.Cmp(one) > 0 {
			c.x = x
			break
		}
	}
	c.e = new(big.Int).Exp(c.grp.G, c.x, c.grp.P)
	return nil
}

// setPeerPublic validates and stores the peer's ephemeral public value.
// Values outside (1, p-1) would collapse or leak the shared secret.
func (c *context) setPeerPublic(f *big.Int) error {
	pMinusOne := new(big.Int).Sub(c.grp.P, one)
	if f.Cmp(one) <= 0 || f.Cmp(pMinusOne) >= 0 {
		return ErrPeerValueRange
	}
	c.f = f
	return nil
}

// computeSharedSecret raises the peer's public value to the local private
// exponent. Requires both keypair halves to be in place.
func (c *context) computeSharedSecret() error {
	if c.x == nil || c.f == nil {
		return fmt.Errorf("kex: shared secret requires keypair and peer value")
	}
	c.k = new(big.Int).Exp(c.f, c.x, c.grp.P)
	return nil
}

// destroy zeroes the private exponent and shared secret and drops all
// references. Idempotent; runs on success and failure alike.
func (c *context) destroy() {
	if c == nil {
		return
	}
	memzero.ZeroWords(c.x)
	memzero.ZeroWords(c.k)
	c.x = nil
	c.k = nil
	c.e = nil
	c.f = nil
	c.grp = nil
}
