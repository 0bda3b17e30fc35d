package kex

import (
	"math/big"

	"kexd/internal/group"
	"kexd/internal/wire"
)

// Transcript is the negotiated-parameter record the session identifier
// binds: both version strings and both algorithm-negotiation payloads,
// plus the group-exchange size request when that variant is in use.
type Transcript struct {
	ClientVersion string
	ServerVersion string
	ClientKexInit []byte
	ServerKexInit []byte

	// Group-exchange size negotiation; ignored for fixed-group variants.
	GexMin       uint32
	GexPreferred uint32
	GexMax       uint32
}

// exchangeHash derives the session identifier: a digest over the
// transcript, the host key blob, the group parameters for group-exchange
// variants, both ephemeral public values, and the shared secret. Computed
// once per handshake and immutable afterward; re-keying and
// authentication reference it later.
func exchangeHash(a Algorithm, t Transcript, hostKeyBlob []byte, grp *group.Group, e, f, k *big.Int) []byte {
	var b wire.Buffer
	b.PutString([]byte(t.ClientVersion))
	b.PutString([]byte(t.ServerVersion))
	b.PutString(t.ClientKexInit)
	b.PutString(t.ServerKexInit)
	b.PutString(hostKeyBlob)
	if a.GroupExchange() {
		b.PutUint32(t.GexMin)
		b.PutUint32(t.GexPreferred)
		b.PutUint32(t.GexMax)
		b.PutMPInt(grp.P)
		b.PutMPInt(grp.G)
	}
	b.PutMPInt(e)
	b.PutMPInt(f)
	b.PutMPInt(k)

	h := a.newDigest()
	h.Write(b.Bytes())
	return h.Sum(nil)
}
